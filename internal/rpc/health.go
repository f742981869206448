package rpc

import (
	"context"
	"time"

	"github.com/Mohsinsiddi/suikit/internal/chain"
)

const healthTimeout = 5 * time.Second

// HealthCheck pings a single fullnode. The node is healthy if it answers
// within the timeout and is no more than staleCheckpointThreshold checkpoints
// behind bestCheckpoint (0 skips the recency check).
func HealthCheck(ctx context.Context, url string, bestCheckpoint uint64) (Endpoint, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	c := chain.NewSUIClient(url)
	defer c.Close()
	latency, cp, err := c.Ping(timeoutCtx)

	ep := Endpoint{
		URL:        url,
		Latency:    latency,
		Checkpoint: cp,
		Healthy:    err == nil,
		Checked:    true,
	}
	if err == nil && bestCheckpoint > 0 && isStale(cp, bestCheckpoint) {
		ep.Healthy = false
	}
	return ep, err
}
