// Package coinselect picks the coins that fund a payment.
//
// Coins are taken greedily, largest balance first, until the running total
// covers the target. Callers choose what happens when the owner cannot cover
// the target: BestEffort returns everything that was found, Strict fails.
package coinselect

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Mohsinsiddi/suikit/internal/chain"
)

var (
	// ErrNoValidCoins is returned when the owner holds no coins of the type.
	ErrNoValidCoins = errors.New("no valid coins found for the transaction")
	// ErrInsufficientBalance is returned in Strict mode when all coins
	// together do not cover the target.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount is returned for a zero target.
	ErrInvalidAmount = errors.New("target amount must be positive")
)

// Mode decides how an under-funded selection is reported.
type Mode string

const (
	// BestEffort returns every coin when their total is below the target.
	BestEffort Mode = "best-effort"
	// Strict fails with ErrInsufficientBalance instead.
	Strict Mode = "strict"
)

// Selection is the outcome of a coin selection pass.
type Selection struct {
	// Refs are the references of the selected coins, in selection order.
	Refs []chain.ObjectRef `json:"refs"`
	// Coins are the selected coins themselves.
	Coins  []chain.Coin `json:"-"`
	Total  uint64       `json:"total"`
	Target uint64       `json:"target"`
}

// Sufficient reports whether the selected coins cover the target.
func (s *Selection) Sufficient() bool {
	return s.Total >= s.Target
}

// Shortfall returns how much is missing to reach the target.
func (s *Selection) Shortfall() uint64 {
	if s.Sufficient() {
		return 0
	}
	return s.Target - s.Total
}

// Select picks coins by descending balance until their total reaches target.
// Coins with equal balances keep their input order. The input slice is not
// modified.
func Select(coins []chain.Coin, target uint64, mode Mode) (*Selection, error) {
	if target == 0 {
		return nil, ErrInvalidAmount
	}
	if len(coins) == 0 {
		return nil, ErrNoValidCoins
	}

	sorted := make([]chain.Coin, len(coins))
	copy(sorted, coins)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Balance > sorted[j].Balance
	})

	sel := &Selection{Target: target}
	for _, c := range sorted {
		sel.Coins = append(sel.Coins, c)
		sel.Refs = append(sel.Refs, c.Ref())
		sel.Total = addSaturating(sel.Total, c.Balance)
		if sel.Total >= target {
			break
		}
	}

	if !sel.Sufficient() && mode == Strict {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, sel.Total, target)
	}
	return sel, nil
}

func addSaturating(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// CoinLister fetches every coin of a type owned by an address.
// *chain.SUIClient satisfies it.
type CoinLister interface {
	GetAllCoins(ctx context.Context, owner, coinType string) ([]chain.Coin, error)
}

// Selector fetches an owner's coins and runs Select over them.
type Selector struct {
	coins CoinLister
}

// NewSelector creates a Selector backed by lister.
func NewSelector(lister CoinLister) *Selector {
	return &Selector{coins: lister}
}

type selectOptions struct {
	coinType string
	mode     Mode
}

// Option configures a single SelectCoins call.
type Option func(*selectOptions)

// WithCoinType selects coins of coinType instead of SUI.
func WithCoinType(coinType string) Option {
	return func(o *selectOptions) {
		if coinType != "" {
			o.coinType = coinType
		}
	}
}

// WithMode sets how an under-funded selection is reported.
func WithMode(m Mode) Option {
	return func(o *selectOptions) {
		if m != "" {
			o.mode = m
		}
	}
}

// SelectCoins fetches owner's coins and selects enough of them to cover
// amount. Fetch errors are returned unchanged.
func (s *Selector) SelectCoins(ctx context.Context, owner string, amount uint64, opts ...Option) (*Selection, error) {
	o := selectOptions{coinType: chain.NativeCoinType, mode: BestEffort}
	for _, opt := range opts {
		opt(&o)
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	coins, err := s.coins.GetAllCoins(ctx, owner, o.coinType)
	if err != nil {
		return nil, err
	}

	sel, err := Select(coins, amount, o.mode)
	if err != nil {
		return nil, fmt.Errorf("selecting %s coins for %s: %w", o.coinType, owner, err)
	}
	return sel, nil
}

// ParseMode validates a mode name; empty means BestEffort.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", BestEffort:
		return BestEffort, nil
	case Strict:
		return Strict, nil
	}
	return "", fmt.Errorf("invalid selection mode %q (choose %s or %s)", s, BestEffort, Strict)
}
