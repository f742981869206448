package rpc

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// StateStore keeps picker state between runs, keyed by network.
type StateStore interface {
	Load(key string) PickerState
	Save(key string, st PickerState) error
}

type selectOptions struct {
	store StateStore
	key   string
}

// SelectOption configures SelectBest.
type SelectOption func(*selectOptions)

// WithState makes SelectBest resume from and record into store under key.
// Without it every call starts with a fresh picker.
func WithState(store StateStore, key string) SelectOption {
	return func(o *selectOptions) {
		o.store = store
		o.key = key
	}
}

// SelectBest picks the best fullnode URL from urls using the named algorithm
// ("fastest", "round-robin" or "failover"; empty means fastest).
//
// Returns ErrNoHealthyRPC when the list is empty or all endpoints fail.
func SelectBest(ctx context.Context, urls []string, algorithm string, opts ...SelectOption) (string, error) {
	if len(urls) == 0 {
		return "", ErrNoHealthyRPC
	}
	if len(urls) == 1 {
		return urls[0], nil
	}
	algo, err := ParseAlgorithm(algorithm)
	if err != nil {
		return "", err
	}

	var o selectOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		return BestSUI(ctx, urls, algo)
	}

	p := NewPicker(algo)
	p.Restore(o.store.Load(o.key), urls)
	if url, ok := p.Cached(); ok {
		log.WithField("url", url).Debug("using cached fastest fullnode")
		return url, nil
	}

	winner, err := p.Pick(ResultsToEndpoints(BenchmarkSUI(ctx, urls)))
	if err != nil {
		return "", err
	}
	if err := o.store.Save(o.key, p.State(urls)); err != nil {
		log.WithError(err).Warn("could not save fullnode picker state")
	}
	return winner.URL, nil
}
