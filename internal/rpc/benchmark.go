package rpc

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Mohsinsiddi/suikit/internal/chain"
)

// BenchmarkResult holds the result of a single endpoint benchmark.
type BenchmarkResult struct {
	URL        string
	Latency    time.Duration
	Checkpoint uint64
	Err        error
}

// BenchmarkSUI pings all fullnode URLs in parallel. Results follow the order
// of urls; a failing endpoint is reported in its result, not as an error.
func BenchmarkSUI(ctx context.Context, urls []string) []BenchmarkResult {
	results := make([]BenchmarkResult, len(urls))

	var g errgroup.Group
	for i, url := range urls {
		g.Go(func() error {
			c := chain.NewSUIClient(url)
			defer c.Close()

			latency, cp, err := c.Ping(ctx)
			results[i] = BenchmarkResult{
				URL:        url,
				Latency:    latency,
				Checkpoint: cp,
				Err:        err,
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// ResultsToEndpoints converts benchmark results to picker Endpoints.
// All returned endpoints are marked Checked.
func ResultsToEndpoints(results []BenchmarkResult) []Endpoint {
	endpoints := make([]Endpoint, 0, len(results))
	for _, r := range results {
		endpoints = append(endpoints, Endpoint{
			URL:        r.URL,
			Latency:    r.Latency,
			Checkpoint: r.Checkpoint,
			Healthy:    r.Err == nil,
			Checked:    true,
		})
	}
	return endpoints
}

// BestCheckpoint returns the highest checkpoint among successful results.
func BestCheckpoint(results []BenchmarkResult) uint64 {
	var best uint64
	for _, r := range results {
		if r.Err == nil && r.Checkpoint > best {
			best = r.Checkpoint
		}
	}
	return best
}

// BestSUI benchmarks urls and returns the winner under algo.
func BestSUI(ctx context.Context, urls []string, algo Algorithm) (string, error) {
	if len(urls) == 1 {
		return urls[0], nil
	}

	endpoints := ResultsToEndpoints(BenchmarkSUI(ctx, urls))
	winner, err := NewPicker(algo).Pick(endpoints)
	if err != nil {
		return "", err
	}
	return winner.URL, nil
}
