// Package rpc chooses a fullnode endpoint among several candidates.
package rpc

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// ErrNoHealthyRPC is returned when no healthy RPC endpoint is available.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Algorithm defines how an RPC endpoint is selected.
type Algorithm string

const (
	AlgorithmFastest    Algorithm = "fastest"
	AlgorithmRoundRobin Algorithm = "round-robin"
	AlgorithmFailover   Algorithm = "failover"

	// Discard nodes more than this many checkpoints behind the best.
	// Checkpoints are produced several times per second.
	staleCheckpointThreshold = 20
	// Cache winner for this duration before re-benchmarking.
	cacheTTL = 5 * time.Minute
)

// Algorithms lists the supported selection algorithms.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmFastest, AlgorithmRoundRobin, AlgorithmFailover}
}

// ParseAlgorithm validates an algorithm name; empty means fastest.
func ParseAlgorithm(s string) (Algorithm, error) {
	if s == "" {
		return AlgorithmFastest, nil
	}
	for _, a := range Algorithms() {
		if Algorithm(s) == a {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid algorithm %q (choose fastest, round-robin or failover)", s)
}

// Endpoint is a fullnode endpoint with its measured attributes.
type Endpoint struct {
	URL        string
	Latency    time.Duration
	Checkpoint uint64
	Healthy    bool // meaningful only when Checked == true
	Checked    bool
}

// Picker selects an RPC endpoint according to the configured algorithm.
type Picker struct {
	algo        Algorithm
	mu          sync.Mutex
	rrIndex     int
	cachedURL   string
	cacheExpiry time.Time
	onBenchmark func()
}

// NewPicker creates a new Picker with the given algorithm.
func NewPicker(algo Algorithm) *Picker {
	return &Picker{algo: algo}
}

// OnBenchmark registers a hook called each time the fastest algorithm
// re-scores the endpoints instead of using its cached winner.
func (p *Picker) OnBenchmark(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onBenchmark = fn
}

// PickerState is the part of a Picker carried between runs: the round-robin
// position and the cached fastest winner, valid for one endpoint list.
type PickerState struct {
	Endpoints   []string  `json:"endpoints"`
	RoundRobin  int       `json:"round_robin"`
	CachedURL   string    `json:"cached_url,omitempty"`
	CacheExpiry time.Time `json:"cache_expiry"`
}

// State snapshots the picker for the given endpoint list.
func (p *Picker) State(urls []string) PickerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PickerState{
		Endpoints:   slices.Clone(urls),
		RoundRobin:  p.rrIndex,
		CachedURL:   p.cachedURL,
		CacheExpiry: p.cacheExpiry,
	}
}

// Restore loads st into the picker if it was saved for the same endpoint
// list; otherwise the picker starts fresh.
func (p *Picker) Restore(st PickerState, urls []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !slices.Equal(st.Endpoints, urls) {
		return
	}
	p.rrIndex = st.RoundRobin
	p.cachedURL = st.CachedURL
	p.cacheExpiry = st.CacheExpiry
}

// Cached returns the fastest winner while its cache entry is fresh, so the
// caller can skip benchmarking. Other algorithms never cache.
func (p *Picker) Cached() (string, bool) {
	if p.algo != AlgorithmFastest {
		return "", false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cachedURL == "" || !time.Now().Before(p.cacheExpiry) {
		return "", false
	}
	return p.cachedURL, true
}

// Pick selects an endpoint from the provided list according to the algorithm.
func (p *Picker) Pick(endpoints []Endpoint) (*Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoHealthyRPC
	}

	switch p.algo {
	case AlgorithmRoundRobin:
		return p.pickRoundRobin(endpoints)
	case AlgorithmFailover:
		return p.pickFailover(endpoints)
	default:
		return p.pickFastest(endpoints)
	}
}

func (p *Picker) pickFastest(endpoints []Endpoint) (*Endpoint, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cachedURL != "" && time.Now().Before(p.cacheExpiry) {
		for i := range endpoints {
			if endpoints[i].URL == p.cachedURL {
				return &endpoints[i], nil
			}
		}
	}

	if p.onBenchmark != nil {
		p.onBenchmark()
	}

	candidates := healthyEndpoints(endpoints)
	if len(candidates) == 0 {
		return nil, ErrNoHealthyRPC
	}

	best := bestCheckpoint(candidates)

	var winner *Endpoint
	var bestScore float64
	for _, e := range candidates {
		if isStale(e.Checkpoint, best) {
			continue
		}
		s := score(e, best)
		if winner == nil || s > bestScore {
			winner = e
			bestScore = s
		}
	}

	if winner == nil {
		return nil, ErrNoHealthyRPC
	}

	p.cachedURL = winner.URL
	p.cacheExpiry = time.Now().Add(cacheTTL)
	return winner, nil
}

func (p *Picker) pickRoundRobin(endpoints []Endpoint) (*Endpoint, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	healthy := healthyEndpoints(endpoints)
	if len(healthy) == 0 {
		return nil, ErrNoHealthyRPC
	}

	idx := p.rrIndex % len(healthy)
	p.rrIndex = (idx + 1) % len(healthy)
	return healthy[idx], nil
}

// pickFailover returns the first endpoint not known to be unhealthy.
func (p *Picker) pickFailover(endpoints []Endpoint) (*Endpoint, error) {
	for i := range endpoints {
		e := &endpoints[i]
		if e.Checked && !e.Healthy {
			continue
		}
		return e, nil
	}
	return nil, ErrNoHealthyRPC
}

// --- scoring ---

func score(e *Endpoint, best uint64) float64 {
	var s float64

	if ms := e.Latency.Milliseconds(); ms > 0 {
		s += 1000.0 / float64(ms)
	} else if e.Latency > 0 {
		s += 1000.0
	}

	// Up to +10 for being at the tip, minus half a point per checkpoint behind.
	if best > 0 {
		s += 10 - float64(best-e.Checkpoint)/2
	}
	return s
}

func bestCheckpoint(endpoints []*Endpoint) uint64 {
	var best uint64
	for _, e := range endpoints {
		if e.Checkpoint > best {
			best = e.Checkpoint
		}
	}
	return best
}

func isStale(checkpoint, best uint64) bool {
	return best > checkpoint && best-checkpoint > staleCheckpointThreshold
}

// healthyEndpoints returns endpoints eligible for selection. Once any endpoint
// has been checked, checked endpoints must be healthy to qualify.
func healthyEndpoints(endpoints []Endpoint) []*Endpoint {
	anyChecked := false
	for _, e := range endpoints {
		if e.Checked {
			anyChecked = true
			break
		}
	}

	var out []*Endpoint
	for i := range endpoints {
		e := &endpoints[i]
		if !anyChecked || !e.Checked || e.Healthy {
			out = append(out, e)
		}
	}
	return out
}
