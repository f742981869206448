package client

import (
	"context"
	"errors"
	"testing"

	"github.com/Mohsinsiddi/suikit/internal/chain"
	"github.com/Mohsinsiddi/suikit/internal/coinselect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider records the last call and returns canned data.
type fakeProvider struct {
	lastOwner    string
	lastCoinType string
	lastIDs      []string
	lastParent   string
	lastCursor   string
	lastLimit    int
	lastName     chain.DynamicFieldName
	lastPkg      string
	lastModule   string

	coins []chain.Coin
	err   error
}

func (f *fakeProvider) GetBalance(_ context.Context, owner, coinType string) (*chain.Balance, error) {
	f.lastOwner, f.lastCoinType = owner, coinType
	return &chain.Balance{CoinType: coinType}, f.err
}

func (f *fakeProvider) GetAllBalances(_ context.Context, owner string) ([]*chain.Balance, error) {
	f.lastOwner = owner
	return []*chain.Balance{{CoinType: chain.NativeCoinType}}, f.err
}

func (f *fakeProvider) GetAllCoins(_ context.Context, owner, coinType string) ([]chain.Coin, error) {
	f.lastOwner, f.lastCoinType = owner, coinType
	return f.coins, f.err
}

func (f *fakeProvider) GetObject(_ context.Context, id string) (*chain.Object, error) {
	f.lastIDs = []string{id}
	return &chain.Object{ID: id}, f.err
}

func (f *fakeProvider) MultiGetObjects(_ context.Context, ids []string) ([]*chain.Object, error) {
	f.lastIDs = ids
	out := make([]*chain.Object, len(ids))
	for i, id := range ids {
		out[i] = &chain.Object{ID: id}
	}
	return out, f.err
}

func (f *fakeProvider) GetDynamicFields(_ context.Context, parent, cursor string, limit int) (*chain.DynamicFieldPage, error) {
	f.lastParent, f.lastCursor, f.lastLimit = parent, cursor, limit
	return &chain.DynamicFieldPage{}, f.err
}

func (f *fakeProvider) GetDynamicFieldObject(_ context.Context, parent string, name chain.DynamicFieldName) (*chain.Object, error) {
	f.lastParent, f.lastName = parent, name
	return &chain.Object{}, f.err
}

func (f *fakeProvider) GetNormalizedMoveModule(_ context.Context, pkg, module string) (*chain.NormalizedModule, error) {
	f.lastPkg, f.lastModule = pkg, module
	return &chain.NormalizedModule{Name: module}, f.err
}

func (f *fakeProvider) GetNormalizedMoveModulesByPackage(_ context.Context, pkg string) (map[string]*chain.NormalizedModule, error) {
	f.lastPkg = pkg
	return map[string]*chain.NormalizedModule{"coin": {Name: "coin"}, "sui": {Name: "sui"}}, f.err
}

func (f *fakeProvider) GetReferenceGasPrice(context.Context) (uint64, error) {
	return 750, f.err
}

type fakeFaucet struct {
	recipient string
}

func (f *fakeFaucet) RequestFunds(_ context.Context, recipient string) ([]chain.FaucetCoin, error) {
	f.recipient = recipient
	return []chain.FaucetCoin{{ID: "0xgas", Amount: 1_000_000_000}}, nil
}

// ---------------------------------------------------------------------------
// Endpoint resolution
// ---------------------------------------------------------------------------

func TestNewDefaultsToDevnet(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, "devnet", c.Network())
	assert.Equal(t, "https://fullnode.devnet.sui.io:443", c.FullnodeURL())
	assert.Equal(t, "https://faucet.devnet.sui.io/gas", c.FaucetURL())
}

func TestNewMainnetDefaults(t *testing.T) {
	c, err := New(Options{Network: "mainnet"})
	require.NoError(t, err)
	assert.Equal(t, "mainnet", c.Network())
	assert.Equal(t, "https://fullnode.mainnet.sui.io:443", c.FullnodeURL())
	assert.Equal(t, "https://faucet.mainnet.sui.io/gas", c.FaucetURL())
}

func TestNewExplicitURLsOverrideNetwork(t *testing.T) {
	c, err := New(Options{
		Network:     "mainnet",
		FullnodeURL: "https://my-node.example.com",
		FaucetURL:   "https://my-faucet.example.com/gas",
	})
	require.NoError(t, err)
	assert.Equal(t, "mainnet", c.Network())
	assert.Equal(t, "https://my-node.example.com", c.FullnodeURL())
	assert.Equal(t, "https://my-faucet.example.com/gas", c.FaucetURL())
}

func TestNewOverrideOnlyFullnode(t *testing.T) {
	c, err := New(Options{Network: "testnet", FullnodeURL: "http://localhost:9999"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", c.FullnodeURL())
	assert.Equal(t, "https://faucet.testnet.sui.io/gas", c.FaucetURL())
}

func TestNewUnknownNetwork(t *testing.T) {
	_, err := New(Options{Network: "betanet"})
	require.Error(t, err)
	assert.ErrorIs(t, err, chain.ErrNetworkNotFound)
	assert.Contains(t, err.Error(), "betanet")
}

// ---------------------------------------------------------------------------
// Forwarding
// ---------------------------------------------------------------------------

func newTestClient(t *testing.T, p *fakeProvider, opts ...Option) *Client {
	t.Helper()
	c, err := New(Options{Network: "localnet"}, append([]Option{WithProvider(p)}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestGetBalanceDefaultsToNativeCoin(t *testing.T) {
	p := &fakeProvider{}
	c := newTestClient(t, p)

	bal, err := c.GetBalance(context.Background(), "0xabc", "")
	require.NoError(t, err)
	assert.Equal(t, chain.NativeCoinType, p.lastCoinType)
	assert.Equal(t, chain.NativeCoinType, bal.CoinType)

	_, err = c.GetBalance(context.Background(), "0xabc", "0x5::usdc::USDC")
	require.NoError(t, err)
	assert.Equal(t, "0x5::usdc::USDC", p.lastCoinType)
}

func TestListCoinsAndBalances(t *testing.T) {
	p := &fakeProvider{coins: []chain.Coin{{ObjectID: "0x1", Balance: 5}}}
	c := newTestClient(t, p)

	coins, err := c.ListCoins(context.Background(), "0xabc", "")
	require.NoError(t, err)
	assert.Len(t, coins, 1)
	assert.Equal(t, chain.NativeCoinType, p.lastCoinType)

	bals, err := c.GetAllBalances(context.Background(), "0xdef")
	require.NoError(t, err)
	assert.Len(t, bals, 1)
	assert.Equal(t, "0xdef", p.lastOwner)

	price, err := c.ReferenceGasPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(750), price)
}

func TestGetObjectsKeepsOrder(t *testing.T) {
	p := &fakeProvider{}
	c := newTestClient(t, p)

	objs, err := c.GetObjects(context.Background(), []string{"0x3", "0x1", "0x2"})
	require.NoError(t, err)
	require.Len(t, objs, 3)
	assert.Equal(t, "0x3", objs[0].ID)
	assert.Equal(t, "0x2", objs[2].ID)
}

func TestGetObjectsEmptySkipsProvider(t *testing.T) {
	p := &fakeProvider{}
	c := newTestClient(t, p)

	objs, err := c.GetObjects(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, objs)
	assert.Nil(t, p.lastIDs)
}

func TestGetObjectForwards(t *testing.T) {
	p := &fakeProvider{}
	c := newTestClient(t, p)

	obj, err := c.GetObject(context.Background(), "0x5")
	require.NoError(t, err)
	assert.Equal(t, "0x5", obj.ID)
}

func TestDynamicFieldsForward(t *testing.T) {
	p := &fakeProvider{}
	c := newTestClient(t, p)

	_, err := c.GetDynamicFields(context.Background(), "0xparent", "cur", 10)
	require.NoError(t, err)
	assert.Equal(t, "0xparent", p.lastParent)
	assert.Equal(t, "cur", p.lastCursor)
	assert.Equal(t, 10, p.lastLimit)

	name := chain.DynamicFieldName{Type: "u64", Value: "7"}
	_, err = c.GetDynamicFieldObject(context.Background(), "0xparent", name)
	require.NoError(t, err)
	assert.Equal(t, name, p.lastName)
}

func TestGetNormalizedModuleForwards(t *testing.T) {
	p := &fakeProvider{}
	c := newTestClient(t, p)

	mod, err := c.GetNormalizedModule(context.Background(), "0x2", "coin")
	require.NoError(t, err)
	assert.Equal(t, "0x2", p.lastPkg)
	assert.Equal(t, "coin", mod.Name)

	mods, err := c.GetNormalizedModules(context.Background(), "0x2")
	require.NoError(t, err)
	assert.Len(t, mods, 2)
}

func TestProviderErrorsPropagate(t *testing.T) {
	boom := errors.New("SUI RPC request: connection refused")
	c := newTestClient(t, &fakeProvider{err: boom})

	_, err := c.GetObject(context.Background(), "0x5")
	assert.ErrorIs(t, err, boom)
}

// ---------------------------------------------------------------------------
// Faucet
// ---------------------------------------------------------------------------

func TestRequestFundsUsesFaucet(t *testing.T) {
	f := &fakeFaucet{}
	c := newTestClient(t, &fakeProvider{}, WithFaucet(f))

	coins, err := c.RequestFunds(context.Background(), "0xme")
	require.NoError(t, err)
	assert.Equal(t, "0xme", f.recipient)
	require.Len(t, coins, 1)
	assert.Equal(t, uint64(1_000_000_000), coins[0].Amount)
}

func TestRequestFundsWithoutFaucet(t *testing.T) {
	c := newTestClient(t, &fakeProvider{})
	c.faucet = nil

	_, err := c.RequestFunds(context.Background(), "0xme")
	assert.ErrorIs(t, err, ErrNoFaucet)
}

// ---------------------------------------------------------------------------
// Coin selection
// ---------------------------------------------------------------------------

func TestSelectCoins(t *testing.T) {
	p := &fakeProvider{coins: []chain.Coin{
		{ObjectID: "0xa", Balance: 20},
		{ObjectID: "0xb", Balance: 50},
		{ObjectID: "0xc", Balance: 30},
	}}
	c := newTestClient(t, p)

	sel, err := c.SelectCoins(context.Background(), "0xowner", 60, "", "")
	require.NoError(t, err)
	assert.Equal(t, chain.NativeCoinType, p.lastCoinType)
	require.Len(t, sel.Refs, 2)
	assert.Equal(t, "0xb", sel.Refs[0].ObjectID)
	assert.Equal(t, "0xc", sel.Refs[1].ObjectID)
}

func TestSelectCoinsStrict(t *testing.T) {
	p := &fakeProvider{coins: []chain.Coin{{ObjectID: "0xa", Balance: 20}}}
	c := newTestClient(t, p)

	_, err := c.SelectCoins(context.Background(), "0xowner", 60, "", coinselect.Strict)
	assert.ErrorIs(t, err, coinselect.ErrInsufficientBalance)
}

func TestSelectCoinsNoCoins(t *testing.T) {
	c := newTestClient(t, &fakeProvider{})

	_, err := c.SelectCoins(context.Background(), "0xowner", 1, "", "")
	assert.ErrorIs(t, err, coinselect.ErrNoValidCoins)
}
