package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/suikit/internal/chain"
	"github.com/Mohsinsiddi/suikit/internal/client"
	"github.com/Mohsinsiddi/suikit/internal/config"
	"github.com/Mohsinsiddi/suikit/internal/ui"
)

var faucetCmd = &cobra.Command{
	Use:   "faucet [address-or-wallet]",
	Short: "Request test SUI from the network faucet",
	Long: `Ask the faucet of the configured network to send gas coins to an address.

Without an argument the default wallet is funded. Faucets are rate limited;
mainnet has none unless --faucet-url points at one.

Examples:
  suikit faucet                              # default wallet on devnet
  suikit faucet 0xABC... --network testnet
  suikit faucet alice --network localnet`,
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

		ctx, cancel := context.WithTimeout(cmd.Context(), config.FaucetTimeout)
		defer cancel()

		spin := ui.NewSpinner(fmt.Sprintf("Requesting funds on %s...", ui.NetworkName(c.Network())))
		spin.Start()
		coins, err := c.RequestFunds(ctx, address)
		spin.Stop()

		switch {
		case errors.Is(err, client.ErrNoFaucet):
			return fmt.Errorf("%w, pass one with --faucet-url", err)
		case errors.Is(err, chain.ErrFaucetRateLimited):
			fmt.Println(ui.Warn(err.Error()))
			return nil
		case err != nil:
			return err
		}

		var total uint64
		t := ui.NewTable([]ui.Column{
			{Title: "Coin", Width: 16},
			{Title: "Amount", Width: 18},
			{Title: "Tx Digest", Width: 46},
		})
		for _, coin := range coins {
			total += coin.Amount
			t.AddRow(ui.Row{
				ui.Addr(ui.TruncateAddr(coin.ID)),
				chain.FormatMIST(coin.Amount),
				ui.Meta(coin.TransferTxDigest),
			})
		}
		fmt.Println(ui.Success(fmt.Sprintf("Received %s SUI in %d coin(s)", chain.FormatMIST(total), len(coins))))
		if len(coins) > 0 {
			fmt.Println(t.Render())
		}
		return nil
	},
}
