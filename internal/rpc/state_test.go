package rpc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateFileRoundTrip(t *testing.T) {
	f := NewStateFile(filepath.Join(t.TempDir(), StateFileName))
	assert.Equal(t, PickerState{}, f.Load("testnet"), "missing file")

	expiry := time.Now().Add(time.Minute).Round(time.Second)
	require.NoError(t, f.Save("testnet", PickerState{Endpoints: []string{"a", "b"}, RoundRobin: 1}))
	require.NoError(t, f.Save("mainnet", PickerState{Endpoints: []string{"c"}, CachedURL: "c", CacheExpiry: expiry}))

	reopened := NewStateFile(f.path)
	assert.Equal(t, 1, reopened.Load("testnet").RoundRobin)
	saved := reopened.Load("mainnet")
	assert.Equal(t, "c", saved.CachedURL)
	assert.True(t, expiry.Equal(saved.CacheExpiry))
}

func TestStateFileCorruptIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), StateFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))

	f := NewStateFile(path)
	assert.Equal(t, PickerState{}, f.Load("devnet"))
	require.NoError(t, f.Save("devnet", PickerState{RoundRobin: 2}))
	assert.Equal(t, 2, f.Load("devnet").RoundRobin)
}

func TestSelectBestRoundRobinAcrossRuns(t *testing.T) {
	a, _ := suiNode(t, 1000)
	b, _ := suiNode(t, 1000)
	urls := []string{a.URL, b.URL}
	store := NewStateFile(filepath.Join(t.TempDir(), StateFileName))

	var picks []string
	for range 3 {
		url, err := SelectBest(context.Background(), urls, "round-robin", WithState(store, "localnet"))
		require.NoError(t, err)
		picks = append(picks, url)
	}
	assert.Equal(t, []string{a.URL, b.URL, a.URL}, picks)
}

func TestSelectBestFastestSkipsBenchmarkWhileCached(t *testing.T) {
	a, hitsA := suiNode(t, 1000)
	b, hitsB := suiNode(t, 1000)
	urls := []string{a.URL, b.URL}
	store := NewStateFile(filepath.Join(t.TempDir(), StateFileName))

	first, err := SelectBest(context.Background(), urls, "fastest", WithState(store, "localnet"))
	require.NoError(t, err)
	before := hitsA.Load() + hitsB.Load()

	second, err := SelectBest(context.Background(), urls, "fastest", WithState(store, "localnet"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, before, hitsA.Load()+hitsB.Load(), "cached winner needs no pings")
}

func TestSelectBestWithoutStateStartsFresh(t *testing.T) {
	a, _ := suiNode(t, 1000)
	b, _ := suiNode(t, 1000)

	for range 2 {
		url, err := SelectBest(context.Background(), []string{a.URL, b.URL}, "round-robin")
		require.NoError(t, err)
		assert.Equal(t, a.URL, url)
	}
}
