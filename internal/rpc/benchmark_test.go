package rpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// ResultsToEndpoints: pure function
// ---------------------------------------------------------------------------

func TestResultsToEndpointsEmpty(t *testing.T) {
	assert.Empty(t, ResultsToEndpoints(nil))
	assert.Empty(t, ResultsToEndpoints([]BenchmarkResult{}))
}

func TestResultsToEndpointsHealthy(t *testing.T) {
	results := []BenchmarkResult{
		{URL: "https://rpc1.example.com", Latency: 50 * time.Millisecond, Checkpoint: 100},
	}
	endpoints := ResultsToEndpoints(results)
	require.Len(t, endpoints, 1)

	ep := endpoints[0]
	assert.Equal(t, "https://rpc1.example.com", ep.URL)
	assert.Equal(t, 50*time.Millisecond, ep.Latency)
	assert.Equal(t, uint64(100), ep.Checkpoint)
	assert.True(t, ep.Healthy)
	assert.True(t, ep.Checked)
}

func TestResultsToEndpointsMixed(t *testing.T) {
	results := []BenchmarkResult{
		{URL: "https://rpc1.example.com"},
		{URL: "https://rpc2.example.com", Err: errors.New("timeout")},
		{URL: "https://rpc3.example.com"},
	}
	endpoints := ResultsToEndpoints(results)
	require.Len(t, endpoints, 3)

	assert.True(t, endpoints[0].Healthy)
	assert.False(t, endpoints[1].Healthy)
	assert.True(t, endpoints[2].Healthy)
	for i, ep := range endpoints {
		assert.True(t, ep.Checked)
		assert.Equal(t, results[i].URL, ep.URL, "order must be preserved at index %d", i)
	}
}

// ---------------------------------------------------------------------------
// BenchmarkSUI / BestSUI: against fake fullnodes
// ---------------------------------------------------------------------------

func TestBenchmarkSUI(t *testing.T) {
	a, _ := suiNode(t, 500)
	b, _ := suiNode(t, 510)
	dead := deadNode(t)

	results := BenchmarkSUI(context.Background(), []string{a.URL, dead, b.URL})
	require.Len(t, results, 3)

	assert.Equal(t, a.URL, results[0].URL)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, uint64(500), results[0].Checkpoint)

	assert.Equal(t, dead, results[1].URL)
	assert.Error(t, results[1].Err)

	assert.Equal(t, uint64(510), results[2].Checkpoint)
}

func TestBestSUISingleURLSkipsBenchmark(t *testing.T) {
	srv, hits := suiNode(t, 1)

	url, err := BestSUI(context.Background(), []string{srv.URL}, AlgorithmFastest)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, url)
	assert.Zero(t, hits.Load())
}

func TestBestSUINoURLs(t *testing.T) {
	_, err := BestSUI(context.Background(), []string{}, AlgorithmFastest)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

func TestBestSUISkipsDeadAndStale(t *testing.T) {
	stale, _ := suiNode(t, 100)
	fresh, _ := suiNode(t, 1000)

	url, err := BestSUI(context.Background(), []string{deadNode(t), stale.URL, fresh.URL}, AlgorithmFastest)
	require.NoError(t, err)
	assert.Equal(t, fresh.URL, url)
}

func TestBestSUIAllDead(t *testing.T) {
	_, err := BestSUI(context.Background(), []string{deadNode(t), deadNode(t)}, AlgorithmFastest)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

// ---------------------------------------------------------------------------
// SelectBest
// ---------------------------------------------------------------------------

func TestSelectBestEmpty(t *testing.T) {
	_, err := SelectBest(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

func TestSelectBestSingle(t *testing.T) {
	url, err := SelectBest(context.Background(), []string{"https://only.example.com"}, "")
	require.NoError(t, err)
	assert.Equal(t, "https://only.example.com", url)
}

func TestSelectBestFailover(t *testing.T) {
	primary, _ := suiNode(t, 1000)
	secondary, _ := suiNode(t, 1000)

	url, err := SelectBest(context.Background(), []string{deadNode(t), primary.URL, secondary.URL}, "failover")
	require.NoError(t, err)
	assert.Equal(t, primary.URL, url)
}

func TestSelectBestInvalidAlgorithm(t *testing.T) {
	_, err := SelectBest(context.Background(), []string{"http://a", "http://b"}, "random")
	assert.Error(t, err)
}

func TestBestCheckpointIgnoresFailures(t *testing.T) {
	results := []BenchmarkResult{
		{URL: "a", Checkpoint: 900},
		{URL: "b", Checkpoint: 5000, Err: errors.New("timeout")},
		{URL: "c", Checkpoint: 950},
	}
	assert.Equal(t, uint64(950), BestCheckpoint(results))
	assert.Zero(t, BestCheckpoint(nil))
}
