// Package price values Sui coin balances in fiat using CoinGecko.
package price

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mohsinsiddi/suikit/internal/chain"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Fetcher retrieves coin prices from CoinGecko.
type Fetcher struct {
	client   *http.Client
	baseURL  string
	currency string
}

// NewFetcher creates a new price fetcher quoting in currency (default USD).
func NewFetcher(currency string) *Fetcher {
	if currency == "" {
		currency = "usd"
	}
	return &Fetcher{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  defaultBaseURL,
		currency: strings.ToLower(currency),
	}
}

// Currency returns the lower-case quote currency.
func (f *Fetcher) Currency() string {
	return f.currency
}

// coinGeckoIDs maps Sui coin types to CoinGecko coin IDs.
var coinGeckoIDs = map[string]string{
	chain.NativeCoinType: "sui",
	"0xdba34672e30cb065b1f93e3ab55318768fd6fef66c15942c9f7cb846e2f900e7::usdc::USDC": "usd-coin",
	"0xdeeb7a4662eec9f2f3def03fb937a663dddaa2e215b8078a284d026b7946c270::deep::DEEP": "deep",
}

// coinDecimals holds the decimal places of the priced coins.
var coinDecimals = map[string]int32{
	chain.NativeCoinType: chain.SUIDecimals,
	"0xdba34672e30cb065b1f93e3ab55318768fd6fef66c15942c9f7cb846e2f900e7::usdc::USDC": 6,
	"0xdeeb7a4662eec9f2f3def03fb937a663dddaa2e215b8078a284d026b7946c270::deep::DEEP": 6,
}

// Decimals returns the decimal places of a priced coin type.
func Decimals(coinType string) (int32, bool) {
	d, ok := coinDecimals[canonicalCoinType(coinType)]
	return d, ok
}

// Known reports whether coinType has a price source.
func Known(coinType string) bool {
	_, ok := coinGeckoIDs[canonicalCoinType(coinType)]
	return ok
}

// GetPrice returns the price of one unit (not the smallest unit) of coinType.
func (f *Fetcher) GetPrice(ctx context.Context, coinType string) (decimal.Decimal, error) {
	id, ok := coinGeckoIDs[canonicalCoinType(coinType)]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown coin type: %s", coinType)
	}
	prices, err := f.fetchBatch(ctx, []string{id})
	if err != nil {
		return decimal.Zero, err
	}
	p, ok := prices[id]
	if !ok {
		return decimal.Zero, fmt.Errorf("price not available for: %s", id)
	}
	return p, nil
}

// GetPrices fetches prices for several coin types in one request. Coin types
// without a price source are left out of the result.
func (f *Fetcher) GetPrices(ctx context.Context, coinTypes []string) (map[string]decimal.Decimal, error) {
	ids := make(map[string]string)
	unique := make(map[string]struct{})
	for _, ct := range coinTypes {
		if id, ok := coinGeckoIDs[canonicalCoinType(ct)]; ok {
			ids[ct] = id
			unique[id] = struct{}{}
		}
	}
	if len(unique) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	idList := make([]string, 0, len(unique))
	for id := range unique {
		idList = append(idList, id)
	}
	sort.Strings(idList)

	prices, err := f.fetchBatch(ctx, idList)
	if err != nil {
		return nil, err
	}

	result := make(map[string]decimal.Decimal, len(ids))
	for ct, id := range ids {
		if p, ok := prices[id]; ok {
			result[ct] = p
		}
	}
	return result, nil
}

// Value converts an amount in a coin's smallest unit into fiat.
func Value(amount *big.Int, decimals int32, price decimal.Decimal) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -decimals).Mul(price)
}

func (f *Fetcher) fetchBatch(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", f.currency)
	endpoint := f.baseURL + "/simple/price?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building price request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching prices: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading price response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching prices: HTTP %d", resp.StatusCode)
	}

	// {"sui":{"usd":1.23}, ...}
	var raw map[string]map[string]decimal.Decimal
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parsing price response: %w", err)
	}

	prices := make(map[string]decimal.Decimal, len(raw))
	for id, quotes := range raw {
		if p, ok := quotes[f.currency]; ok {
			prices[id] = p
		}
	}
	return prices, nil
}

// canonicalCoinType maps a coin type onto the key form used above: the long
// form for every address except 0x2.
func canonicalCoinType(coinType string) string {
	norm := chain.NormalizeCoinType(coinType)
	if norm == chain.NormalizeCoinType(chain.NativeCoinType) {
		return chain.NativeCoinType
	}
	return norm
}
