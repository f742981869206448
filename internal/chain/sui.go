package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrObjectNotFound is returned when an object does not exist or was deleted.
	ErrObjectNotFound = errors.New("object not found")
	// ErrClientClosed is returned by calls made after Close.
	ErrClientClosed = errors.New("sui client closed")
)

// SUIClient is a JSON-RPC client for a Sui fullnode.
type SUIClient struct {
	url    string
	client *http.Client

	mu     sync.Mutex
	rpc    *gethrpc.Client
	closed bool
}

// NewSUIClient creates a new SUI RPC client. No connection is made until the
// first call.
func NewSUIClient(url string) *SUIClient {
	return &SUIClient{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// URL returns the fullnode endpoint.
func (c *SUIClient) URL() string {
	return c.url
}

// Close releases the underlying connection. Later calls fail with
// ErrClientClosed. Close is safe to call concurrently with requests.
func (c *SUIClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.rpc != nil {
		c.rpc.Close()
		c.rpc = nil
	}
}

// GetBalance returns the total balance of coinType owned by owner.
func (c *SUIClient) GetBalance(ctx context.Context, owner, coinType string) (*Balance, error) {
	var resp balanceJSON
	if err := c.call(ctx, &resp, "suix_getBalance", owner, coinType); err != nil {
		return nil, err
	}
	return resp.toBalance()
}

// GetAllBalances returns the balance of every coin type owned by owner.
func (c *SUIClient) GetAllBalances(ctx context.Context, owner string) ([]*Balance, error) {
	var resp []balanceJSON
	if err := c.call(ctx, &resp, "suix_getAllBalances", owner); err != nil {
		return nil, err
	}
	out := make([]*Balance, 0, len(resp))
	for _, b := range resp {
		bal, err := b.toBalance()
		if err != nil {
			return nil, err
		}
		out = append(out, bal)
	}
	return out, nil
}

// GetLatestCheckpoint returns the latest checkpoint sequence number.
func (c *SUIClient) GetLatestCheckpoint(ctx context.Context) (uint64, error) {
	var seq jsonUint64
	if err := c.call(ctx, &seq, "sui_getLatestCheckpointSequenceNumber"); err != nil {
		return 0, err
	}
	return uint64(seq), nil
}

// GetReferenceGasPrice returns the reference gas price of the current epoch
// in MIST.
func (c *SUIClient) GetReferenceGasPrice(ctx context.Context) (uint64, error) {
	var price jsonUint64
	if err := c.call(ctx, &price, "suix_getReferenceGasPrice"); err != nil {
		return 0, err
	}
	return uint64(price), nil
}

// Ping tests the SUI endpoint and returns latency + checkpoint.
func (c *SUIClient) Ping(ctx context.Context) (time.Duration, uint64, error) {
	start := time.Now()
	cp, err := c.GetLatestCheckpoint(ctx)
	latency := time.Since(start)
	return latency, cp, err
}

// --- internal ---

func (c *SUIClient) conn() (*gethrpc.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClientClosed
	}
	if c.rpc == nil {
		cl, err := gethrpc.DialOptions(context.Background(), c.url, gethrpc.WithHTTPClient(c.client))
		if err != nil {
			return nil, err
		}
		c.rpc = cl
	}
	return c.rpc, nil
}

func (c *SUIClient) call(ctx context.Context, result any, method string, params ...any) error {
	cl, err := c.conn()
	if err != nil {
		return fmt.Errorf("SUI RPC dial %s: %w", c.url, err)
	}

	start := time.Now()
	err = cl.CallContext(ctx, result, method, params...)
	log.WithFields(log.Fields{
		"method":  method,
		"latency": time.Since(start).Round(time.Millisecond),
	}).Debug("sui rpc")
	if err == nil {
		return nil
	}

	var rpcErr gethrpc.Error
	if errors.As(err, &rpcErr) {
		return fmt.Errorf("SUI RPC error %d: %w", rpcErr.ErrorCode(), err)
	}
	var httpErr gethrpc.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Errorf("SUI RPC HTTP %d: %w", httpErr.StatusCode, err)
	}
	return fmt.Errorf("SUI RPC request: %w", err)
}

func (b balanceJSON) toBalance() (*Balance, error) {
	total, ok := new(big.Int).SetString(b.TotalBalance, 10)
	if !ok {
		return nil, fmt.Errorf("parsing sui balance: %q", b.TotalBalance)
	}
	return &Balance{
		CoinType:        b.CoinType,
		CoinObjectCount: b.CoinObjectCount,
		TotalBalance:    total,
	}, nil
}

func optionalCursor(cursor string) any {
	if cursor == "" {
		return nil
	}
	return cursor
}

func optionalLimit(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
