package chain

import "context"

// GetCoins lists one page of owner's coins of coinType.
func (c *SUIClient) GetCoins(ctx context.Context, owner, coinType, cursor string, limit int) (*CoinPage, error) {
	var resp coinPageJSON
	if err := c.call(ctx, &resp, "suix_getCoins", owner, coinType, optionalCursor(cursor), optionalLimit(limit)); err != nil {
		return nil, err
	}

	page := &CoinPage{
		Data:        make([]Coin, 0, len(resp.Data)),
		HasNextPage: resp.HasNextPage,
	}
	if resp.NextCursor != nil {
		page.NextCursor = *resp.NextCursor
	}
	for _, raw := range resp.Data {
		coin, err := raw.toCoin()
		if err != nil {
			return nil, err
		}
		page.Data = append(page.Data, coin)
	}
	return page, nil
}

// GetAllCoins follows the cursor until every coin of coinType owned by owner
// has been fetched. Coins keep the order the node returned them in.
func (c *SUIClient) GetAllCoins(ctx context.Context, owner, coinType string) ([]Coin, error) {
	var (
		coins  []Coin
		cursor string
	)
	for {
		page, err := c.GetCoins(ctx, owner, coinType, cursor, 0)
		if err != nil {
			return nil, err
		}
		coins = append(coins, page.Data...)
		if !page.HasNextPage || page.NextCursor == "" || page.NextCursor == cursor {
			return coins, nil
		}
		cursor = page.NextCursor
	}
}
