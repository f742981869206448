// Package client is the high-level Sui client used by the CLI. It resolves
// network endpoints, forwards queries to a fullnode provider, requests faucet
// funds and selects coins for payments.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Mohsinsiddi/suikit/internal/chain"
	"github.com/Mohsinsiddi/suikit/internal/coinselect"
)

// ErrNoFaucet is returned by RequestFunds when no faucet URL is configured.
var ErrNoFaucet = errors.New("no faucet configured for this network")

// Provider is the set of fullnode queries the client forwards.
// *chain.SUIClient implements it.
type Provider interface {
	GetBalance(ctx context.Context, owner, coinType string) (*chain.Balance, error)
	GetAllBalances(ctx context.Context, owner string) ([]*chain.Balance, error)
	GetAllCoins(ctx context.Context, owner, coinType string) ([]chain.Coin, error)
	GetObject(ctx context.Context, id string) (*chain.Object, error)
	MultiGetObjects(ctx context.Context, ids []string) ([]*chain.Object, error)
	GetDynamicFields(ctx context.Context, parent, cursor string, limit int) (*chain.DynamicFieldPage, error)
	GetDynamicFieldObject(ctx context.Context, parent string, name chain.DynamicFieldName) (*chain.Object, error)
	GetNormalizedMoveModule(ctx context.Context, pkg, module string) (*chain.NormalizedModule, error)
	GetNormalizedMoveModulesByPackage(ctx context.Context, pkg string) (map[string]*chain.NormalizedModule, error)
	GetReferenceGasPrice(ctx context.Context) (uint64, error)
}

// Faucet hands out test funds. *chain.FaucetClient implements it.
type Faucet interface {
	RequestFunds(ctx context.Context, recipient string) ([]chain.FaucetCoin, error)
}

// Options selects the network and optional endpoint overrides.
type Options struct {
	// Network defaults to devnet.
	Network     string
	FullnodeURL string
	FaucetURL   string
}

// Option customises a Client after endpoint resolution.
type Option func(*Client)

// WithProvider replaces the fullnode provider.
func WithProvider(p Provider) Option {
	return func(c *Client) { c.provider = p }
}

// WithFaucet replaces the faucet.
func WithFaucet(f Faucet) Option {
	return func(c *Client) { c.faucet = f }
}

// Client wraps a provider and faucet for one network.
type Client struct {
	network     string
	fullnodeURL string
	faucetURL   string

	provider Provider
	faucet   Faucet
	selector *coinselect.Selector
}

// New resolves opts against the network registry and builds a Client.
// Explicit URLs in opts take precedence over the network defaults.
func New(opts Options, options ...Option) (*Client, error) {
	net, err := chain.NewRegistry().GetByName(opts.Network)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, opts.Network)
	}

	c := &Client{
		network:     net.Name,
		fullnodeURL: firstNonEmpty(opts.FullnodeURL, net.FullnodeURL),
		faucetURL:   firstNonEmpty(opts.FaucetURL, net.FaucetURL),
	}
	c.provider = chain.NewSUIClient(c.fullnodeURL)
	if c.faucetURL != "" {
		c.faucet = chain.NewFaucetClient(c.faucetURL)
	}

	for _, o := range options {
		o(c)
	}
	c.selector = coinselect.NewSelector(c.provider)
	return c, nil
}

// Network returns the resolved network name.
func (c *Client) Network() string { return c.network }

// FullnodeURL returns the fullnode endpoint in use.
func (c *Client) FullnodeURL() string { return c.fullnodeURL }

// FaucetURL returns the faucet endpoint in use (empty = none).
func (c *Client) FaucetURL() string { return c.faucetURL }

// RequestFunds asks the faucet to send gas coins to recipient.
func (c *Client) RequestFunds(ctx context.Context, recipient string) ([]chain.FaucetCoin, error) {
	if c.faucet == nil {
		return nil, fmt.Errorf("%w (%s)", ErrNoFaucet, c.network)
	}
	return c.faucet.RequestFunds(ctx, recipient)
}

// GetBalance returns owner's balance of coinType; an empty coinType means SUI.
func (c *Client) GetBalance(ctx context.Context, owner, coinType string) (*chain.Balance, error) {
	return c.provider.GetBalance(ctx, owner, coinTypeOrNative(coinType))
}

// GetAllBalances returns every coin balance held by owner.
func (c *Client) GetAllBalances(ctx context.Context, owner string) ([]*chain.Balance, error) {
	return c.provider.GetAllBalances(ctx, owner)
}

// ListCoins returns all of owner's coins of coinType (SUI if empty).
func (c *Client) ListCoins(ctx context.Context, owner, coinType string) ([]chain.Coin, error) {
	return c.provider.GetAllCoins(ctx, owner, coinTypeOrNative(coinType))
}

// ReferenceGasPrice returns the gas price of the current epoch in MIST.
func (c *Client) ReferenceGasPrice(ctx context.Context) (uint64, error) {
	return c.provider.GetReferenceGasPrice(ctx)
}

// GetDynamicFields lists one page of parent's dynamic fields.
func (c *Client) GetDynamicFields(ctx context.Context, parent, cursor string, limit int) (*chain.DynamicFieldPage, error) {
	return c.provider.GetDynamicFields(ctx, parent, cursor, limit)
}

// GetDynamicFieldObject loads the value of one dynamic field.
func (c *Client) GetDynamicFieldObject(ctx context.Context, parent string, name chain.DynamicFieldName) (*chain.Object, error) {
	return c.provider.GetDynamicFieldObject(ctx, parent, name)
}

// GetObject fetches one object.
func (c *Client) GetObject(ctx context.Context, id string) (*chain.Object, error) {
	return c.provider.GetObject(ctx, id)
}

// GetObjects fetches many objects; results follow the order of ids.
func (c *Client) GetObjects(ctx context.Context, ids []string) ([]*chain.Object, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return c.provider.MultiGetObjects(ctx, ids)
}

// GetNormalizedModule returns the normalized interface of pkg::module.
func (c *Client) GetNormalizedModule(ctx context.Context, pkg, module string) (*chain.NormalizedModule, error) {
	return c.provider.GetNormalizedMoveModule(ctx, pkg, module)
}

// GetNormalizedModules returns every module of pkg keyed by name.
func (c *Client) GetNormalizedModules(ctx context.Context, pkg string) (map[string]*chain.NormalizedModule, error) {
	return c.provider.GetNormalizedMoveModulesByPackage(ctx, pkg)
}

// SelectCoins picks owner's coins of coinType (SUI if empty) to cover amount
// and returns their references, largest balance first.
func (c *Client) SelectCoins(ctx context.Context, owner string, amount uint64, coinType string, mode coinselect.Mode) (*coinselect.Selection, error) {
	return c.selector.SelectCoins(ctx, owner, amount,
		coinselect.WithCoinType(coinTypeOrNative(coinType)),
		coinselect.WithMode(mode),
	)
}

// Close releases provider resources when the provider supports it.
func (c *Client) Close() {
	if cl, ok := c.provider.(interface{ Close() }); ok {
		cl.Close()
	}
}

func coinTypeOrNative(coinType string) string {
	if strings.TrimSpace(coinType) == "" {
		return chain.NativeCoinType
	}
	return coinType
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
