package cmd

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/suikit/internal/chain"
	"github.com/Mohsinsiddi/suikit/internal/client"
	"github.com/Mohsinsiddi/suikit/internal/config"
	"github.com/Mohsinsiddi/suikit/internal/price"
	"github.com/Mohsinsiddi/suikit/internal/ui"
)

var (
	balanceCoinType string
	balanceAll      bool
	balanceLive     bool
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address-or-wallet]",
	Short: "Check a balance",
	Long: `Show the SUI balance of an address, or of any coin type with --coin-type.

Without an argument the default wallet is used. On mainnet the fiat value
is shown for coins with a known price.

Examples:
  suikit balance 0xABC...                     # SUI on the configured network
  suikit balance alice --network testnet      # wallet by name
  suikit balance --all                        # every coin type
  suikit balance --live                       # refreshing dashboard`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var arg string
		if len(args) == 1 {
			arg = args[0]
		}
		address, err := resolveAddress(arg)
		if err != nil {
			return err
		}

		c, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		if balanceLive {
			return runLiveDashboard(c, address)
		}
		if balanceAll {
			return printAllBalances(cmd.Context(), c, address)
		}
		return printBalance(cmd.Context(), c, address)
	},
}

func printBalance(ctx context.Context, c *client.Client, address string) error {
	ctx, cancel := context.WithTimeout(ctx, config.QueryTimeout)
	defer cancel()

	spin := ui.NewSpinner(fmt.Sprintf("Fetching balance on %s...", ui.NetworkName(c.Network())))
	spin.Start()
	bal, err := c.GetBalance(ctx, address, balanceCoinType)
	spin.Stop()
	if err != nil {
		return err
	}

	pairs := [][2]string{
		{"Address", ui.Addr(address)},
		{"Network", c.Network()},
		{"Coin", ui.ShortCoinType(bal.CoinType)},
		{"Balance", formatAmount(bal.CoinType, bal.TotalBalance)},
		{"Coins", fmt.Sprintf("%d", bal.CoinObjectCount)},
	}
	if v := fiatValues(ctx, c.Network(), []*chain.Balance{bal})[bal.CoinType]; v != "" {
		pairs = append(pairs, [2]string{"Value", v})
	}
	fmt.Println(ui.KeyValueBlock("Balance", pairs))
	return nil
}

func printAllBalances(ctx context.Context, c *client.Client, address string) error {
	ctx, cancel := context.WithTimeout(ctx, config.QueryTimeout)
	defer cancel()

	spin := ui.NewSpinner(fmt.Sprintf("Fetching balances on %s...", ui.NetworkName(c.Network())))
	spin.Start()
	bals, err := c.GetAllBalances(ctx, address)
	spin.Stop()
	if err != nil {
		return err
	}
	if len(bals) == 0 {
		fmt.Println(ui.Info("No coins found for " + ui.Addr(address)))
		fmt.Println(ui.Hint("Fund it with: suikit faucet " + address))
		return nil
	}

	values := fiatValues(ctx, c.Network(), bals)
	t := ui.NewTable([]ui.Column{
		{Title: "Coin", Width: 24},
		{Title: "Balance", Width: 24},
		{Title: "Coins", Width: 6},
		{Title: "Value", Width: 14},
	})
	for _, b := range bals {
		v := values[b.CoinType]
		if v == "" {
			v = ui.Meta("-")
		}
		t.AddRow(ui.Row{
			ui.ShortCoinType(b.CoinType),
			formatAmount(b.CoinType, b.TotalBalance),
			fmt.Sprintf("%d", b.CoinObjectCount),
			v,
		})
	}
	fmt.Println(ui.StyleTitle.Render("Balances of " + ui.TruncateAddr(address)))
	fmt.Println(t.Render())
	return nil
}

func runLiveDashboard(c *client.Client, address string) error {
	fetcher := func() ([]ui.BalanceEntry, error) {
		ctx, cancel := context.WithTimeout(context.Background(), config.QueryTimeout)
		defer cancel()

		bals, err := c.GetAllBalances(ctx, address)
		if err != nil {
			return nil, err
		}
		values := fiatValues(ctx, c.Network(), bals)

		entries := make([]ui.BalanceEntry, 0, len(bals))
		for _, b := range bals {
			entries = append(entries, ui.BalanceEntry{
				Address: address,
				Coin:    ui.ShortCoinType(b.CoinType),
				Balance: formatAmount(b.CoinType, b.TotalBalance),
				Value:   values[b.CoinType],
			})
		}
		return entries, nil
	}

	interval := time.Duration(cfg.WatchInterval) * time.Second
	title := fmt.Sprintf("suikit live balances (%s)", c.Network())
	_, err := ui.NewDashboard(title, interval, fetcher).Run()
	return err
}

// fiatValues prices balances on mainnet. Testnet coins have no market value
// and price failures only drop the column.
func fiatValues(ctx context.Context, network string, bals []*chain.Balance) map[string]string {
	out := make(map[string]string)
	if network != chain.NetworkMainnet {
		return out
	}

	types := make([]string, 0, len(bals))
	for _, b := range bals {
		types = append(types, b.CoinType)
	}
	fetcher := price.NewFetcher(cfg.PriceCurrency)
	prices, err := fetcher.GetPrices(ctx, types)
	if err != nil {
		log.WithError(err).Debug("price lookup failed")
		return out
	}

	for _, b := range bals {
		p, ok := prices[b.CoinType]
		if !ok {
			continue
		}
		decimals, _ := price.Decimals(b.CoinType)
		v := price.Value(b.TotalBalance, decimals, p)
		out[b.CoinType] = formatFiat(v, fetcher.Currency())
	}
	return out
}

func formatFiat(v decimal.Decimal, currency string) string {
	if currency == "usd" {
		return "$" + v.StringFixed(2)
	}
	return v.StringFixed(2) + " " + currency
}

// formatAmount renders SUI with its decimals; other coins are shown in their
// smallest unit unless their decimals are known.
func formatAmount(coinType string, amount *big.Int) string {
	if amount == nil {
		amount = new(big.Int)
	}
	if d, ok := price.Decimals(coinType); ok {
		s := decimal.NewFromBigInt(amount, -d).StringFixed(d)
		if d == chain.SUIDecimals && isNative(coinType) {
			return s + " SUI"
		}
		return s
	}
	return amount.String()
}

func isNative(coinType string) bool {
	return chain.NormalizeCoinType(coinType) == chain.NormalizeCoinType(chain.NativeCoinType)
}

func init() {
	balanceCmd.Flags().StringVar(&balanceCoinType, "coin-type", "", "coin type (default: 0x2::sui::SUI)")
	balanceCmd.Flags().BoolVar(&balanceAll, "all", false, "show every coin type held")
	balanceCmd.Flags().BoolVar(&balanceLive, "live", false, "live dashboard, refreshed every watch_interval seconds")
	balanceCmd.MarkFlagsMutuallyExclusive("all", "live", "coin-type")
}
