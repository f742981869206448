package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/suikit/internal/chain"
	"github.com/Mohsinsiddi/suikit/internal/coinselect"
	"github.com/Mohsinsiddi/suikit/internal/config"
	"github.com/Mohsinsiddi/suikit/internal/ui"
)

var (
	coinsCoinType string
	coinsStrict   bool
	coinsRaw      bool
	coinsJSON     bool
)

var coinsCmd = &cobra.Command{
	Use:   "coins",
	Short: "List coins and select coins for a payment",
}

var coinsListCmd = &cobra.Command{
	Use:   "list [address-or-wallet]",
	Short: "List the coin objects of an address",
	Args:  cobra.MaximumNArgs(1),
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

		ctx, cancel := context.WithTimeout(cmd.Context(), config.QueryTimeout)
		defer cancel()

		spin := ui.NewSpinner("Fetching coins...")
		spin.Start()
		coins, err := c.ListCoins(ctx, address, coinsCoinType)
		spin.Stop()
		if err != nil {
			return err
		}

		if coinsJSON {
			return printJSON(coins)
		}
		if len(coins) == 0 {
			fmt.Println(ui.Info("No coins found for " + ui.Addr(address)))
			return nil
		}

		t := coinTable()
		var total big.Int
		for _, coin := range coins {
			t.AddRow(coinRow(coin))
			total.Add(&total, new(big.Int).SetUint64(coin.Balance))
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d coin(s), total %s", len(coins), formatAmount(coinTypeFlag(), &total))))
		return nil
	},
}

var coinsSelectCmd = &cobra.Command{
	Use:   "select <amount> [address-or-wallet]",
	Short: "Select coins to cover an amount",
	Long: `Pick the largest coins first until their total covers the amount.

The amount is in SUI for the native coin ("1.5") and in the coin's smallest
unit for other coin types or with --raw.

When the owner holds less than the amount every coin is returned and a
warning is printed. Use --strict to fail instead.

Examples:
  suikit coins select 1.5
  suikit coins select 250000 alice --coin-type 0x...::usdc::USDC
  suikit coins select 100 --strict --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[0], coinTypeFlag(), coinsRaw)
		if err != nil {
			return err
		}
		var arg string
		if len(args) == 2 {
			arg = args[1]
		}
		address, err := resolveAddress(arg)
		if err != nil {
			return err
		}

		mode := coinselect.BestEffort
		if coinsStrict {
			mode = coinselect.Strict
		}

		c, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), config.QueryTimeout)
		defer cancel()

		sel, err := c.SelectCoins(ctx, address, amount, coinsCoinType, mode)
		if errors.Is(err, coinselect.ErrNoValidCoins) {
			return fmt.Errorf("%w\n  Fund the address with: suikit faucet %s", err, address)
		}
		if err != nil {
			return err
		}

		if coinsJSON {
			return printJSON(sel)
		}

		t := coinTable()
		for _, coin := range sel.Coins {
			t.AddRow(coinRow(coin))
		}
		fmt.Println(t.Render())

		coinType := coinTypeFlag()
		fmt.Println(ui.KeyValueBlock("Selection", [][2]string{
			{"Coins", fmt.Sprintf("%d", len(sel.Refs))},
			{"Total", formatAmount(coinType, new(big.Int).SetUint64(sel.Total))},
			{"Target", formatAmount(coinType, new(big.Int).SetUint64(sel.Target))},
		}))
		if !sel.Sufficient() {
			short := formatAmount(coinType, new(big.Int).SetUint64(sel.Shortfall()))
			fmt.Println(ui.Warn("Selected coins do not cover the amount, short by " + short))
		}
		return nil
	},
}

func coinTypeFlag() string {
	if coinsCoinType == "" {
		return chain.NativeCoinType
	}
	return coinsCoinType
}

// parseAmount reads a SUI decimal for the native coin and a raw integer
// otherwise.
func parseAmount(s, coinType string, raw bool) (uint64, error) {
	if !raw && isNative(coinType) {
		return chain.ParseSUI(s)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: expected an integer in the coin's smallest unit", s)
	}
	return n, nil
}

func coinTable() *ui.Table {
	return ui.NewTable([]ui.Column{
		{Title: "Object ID", Width: 16},
		{Title: "Version", Width: 10},
		{Title: "Digest", Width: 46},
		{Title: "Balance", Width: 22},
	})
}

func coinRow(coin chain.Coin) ui.Row {
	return ui.Row{
		ui.Addr(ui.TruncateAddr(coin.ObjectID)),
		fmt.Sprintf("%d", coin.Version),
		ui.Meta(coin.Digest),
		formatAmount(coin.CoinType, new(big.Int).SetUint64(coin.Balance)),
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	coinsCmd.PersistentFlags().StringVar(&coinsCoinType, "coin-type", "", "coin type (default: 0x2::sui::SUI)")
	coinsCmd.PersistentFlags().BoolVar(&coinsJSON, "json", false, "print JSON")
	coinsSelectCmd.Flags().BoolVar(&coinsStrict, "strict", false, "fail when the coins do not cover the amount")
	coinsSelectCmd.Flags().BoolVar(&coinsRaw, "raw", false, "amount is in the smallest unit (MIST for SUI)")

	coinsCmd.AddCommand(coinsListCmd, coinsSelectCmd)
}
