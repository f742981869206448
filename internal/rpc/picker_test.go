package rpc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/suikit/internal/rpc"
)

const (
	mysten  = "https://fullnode.testnet.sui.io:443"
	private = "https://sui-testnet.internal.example:9000"
	archive = "https://archive.testnet.example"

	// A realistic testnet checkpoint height.
	tip uint64 = 48_211_300
)

// node builds a benchmarked fullnode endpoint.
func node(url string, ms int, checkpoint uint64) rpc.Endpoint {
	return rpc.Endpoint{
		URL:        url,
		Latency:    time.Duration(ms) * time.Millisecond,
		Checkpoint: checkpoint,
		Healthy:    true,
		Checked:    true,
	}
}

// down builds a fullnode whose ping failed.
func down(url string) rpc.Endpoint {
	return rpc.Endpoint{URL: url, Checked: true}
}

func TestFastestPick(t *testing.T) {
	tests := []struct {
		name      string
		endpoints []rpc.Endpoint
		want      string
	}{
		{
			name:      "lowest latency at the tip",
			endpoints: []rpc.Endpoint{node(mysten, 180, tip), node(private, 25, tip), node(archive, 90, tip)},
			want:      private,
		},
		{
			name:      "fast node beyond the lag threshold is dropped",
			endpoints: []rpc.Endpoint{node(mysten, 120, tip), node(private, 10, tip-60)},
			want:      mysten,
		},
		{
			name:      "tip beats a slightly faster lagging node",
			endpoints: []rpc.Endpoint{node(mysten, 100, tip), node(private, 90, tip-15)},
			want:      mysten,
		},
		{
			name:      "failed ping does not raise the best checkpoint",
			endpoints: []rpc.Endpoint{{URL: archive, Checkpoint: tip + 1_000_000, Checked: true}, node(mysten, 60, tip)},
			want:      mysten,
		},
		{
			name: "unmeasured endpoints all compete",
			endpoints: []rpc.Endpoint{
				{URL: mysten, Latency: 70 * time.Millisecond, Checkpoint: tip},
				{URL: private, Latency: 40 * time.Millisecond, Checkpoint: tip},
			},
			want: private,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, err := rpc.NewPicker(rpc.AlgorithmFastest).Pick(tt.endpoints)
			require.NoError(t, err)
			assert.Equal(t, tt.want, winner.URL)
		})
	}
}

func TestNoHealthyFullnode(t *testing.T) {
	for _, algo := range rpc.Algorithms() {
		t.Run(string(algo), func(t *testing.T) {
			_, err := rpc.NewPicker(algo).Pick([]rpc.Endpoint{down(mysten), down(private)})
			assert.ErrorIs(t, err, rpc.ErrNoHealthyRPC)

			_, err = rpc.NewPicker(algo).Pick(nil)
			assert.ErrorIs(t, err, rpc.ErrNoHealthyRPC)
		})
	}
}

func TestFastestReusesWinnerWithinTTL(t *testing.T) {
	rescored := 0
	p := rpc.NewPicker(rpc.AlgorithmFastest)
	p.OnBenchmark(func() { rescored++ })

	endpoints := []rpc.Endpoint{node(mysten, 80, tip), node(private, 30, tip)}
	for range 3 {
		winner, err := p.Pick(endpoints)
		require.NoError(t, err)
		assert.Equal(t, private, winner.URL)
	}
	assert.Equal(t, 1, rescored)
}

func TestRoundRobinRotatesHealthyFullnodes(t *testing.T) {
	endpoints := []rpc.Endpoint{node(mysten, 0, tip), down(private), node(archive, 0, tip)}
	p := rpc.NewPicker(rpc.AlgorithmRoundRobin)

	var got []string
	for range 4 {
		e, err := p.Pick(endpoints)
		require.NoError(t, err)
		got = append(got, e.URL)
	}
	assert.Equal(t, []string{mysten, archive, mysten, archive}, got)
}

func TestFailoverKeepsListOrder(t *testing.T) {
	p := rpc.NewPicker(rpc.AlgorithmFailover)

	winner, err := p.Pick([]rpc.Endpoint{down(private), node(mysten, 300, tip), node(archive, 10, tip)})
	require.NoError(t, err)
	assert.Equal(t, mysten, winner.URL, "first reachable node wins regardless of latency")
}

func TestPickerStateCarriesRoundRobinPosition(t *testing.T) {
	urls := []string{mysten, archive}
	endpoints := []rpc.Endpoint{node(mysten, 0, tip), node(archive, 0, tip)}

	first := rpc.NewPicker(rpc.AlgorithmRoundRobin)
	e, err := first.Pick(endpoints)
	require.NoError(t, err)
	assert.Equal(t, mysten, e.URL)

	// A later run resumes where the previous one stopped.
	next := rpc.NewPicker(rpc.AlgorithmRoundRobin)
	next.Restore(first.State(urls), urls)
	e, err = next.Pick(endpoints)
	require.NoError(t, err)
	assert.Equal(t, archive, e.URL)
}

func TestPickerStateIgnoredForOtherFullnodeList(t *testing.T) {
	urls := []string{mysten, archive}
	p := rpc.NewPicker(rpc.AlgorithmFastest)
	_, err := p.Pick([]rpc.Endpoint{node(mysten, 90, tip), node(archive, 20, tip)})
	require.NoError(t, err)
	st := p.State(urls)
	assert.Equal(t, archive, st.CachedURL)

	same := rpc.NewPicker(rpc.AlgorithmFastest)
	same.Restore(st, urls)
	url, ok := same.Cached()
	require.True(t, ok)
	assert.Equal(t, archive, url)

	// A fullnode was added since the state was saved.
	grown := rpc.NewPicker(rpc.AlgorithmFastest)
	grown.Restore(st, []string{mysten, archive, private})
	_, ok = grown.Cached()
	assert.False(t, ok)
}

func TestCachedOnlyForFreshFastestWinner(t *testing.T) {
	urls := []string{mysten}
	st := rpc.PickerState{Endpoints: urls, CachedURL: mysten, CacheExpiry: time.Now().Add(-time.Second)}

	expired := rpc.NewPicker(rpc.AlgorithmFastest)
	expired.Restore(st, urls)
	_, ok := expired.Cached()
	assert.False(t, ok, "expired entry")

	st.CacheExpiry = time.Now().Add(time.Minute)
	rr := rpc.NewPicker(rpc.AlgorithmRoundRobin)
	rr.Restore(st, urls)
	_, ok = rr.Cached()
	assert.False(t, ok, "round-robin never short-circuits")
}

func TestParseAlgorithm(t *testing.T) {
	a, err := rpc.ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, rpc.AlgorithmFastest, a)

	for _, want := range rpc.Algorithms() {
		got, err := rpc.ParseAlgorithm(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = rpc.ParseAlgorithm("random")
	assert.Error(t, err)
}
