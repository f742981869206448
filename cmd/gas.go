package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/suikit/internal/chain"
	"github.com/Mohsinsiddi/suikit/internal/config"
	"github.com/Mohsinsiddi/suikit/internal/ui"
)

var gasCmd = &cobra.Command{
	Use:   "gas",
	Short: "Show the reference gas price",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), config.QueryTimeout)
		defer cancel()

		gasPrice, err := c.ReferenceGasPrice(ctx)
		if err != nil {
			return err
		}
		fmt.Println(ui.KeyValueBlock("Gas", [][2]string{
			{"Network", c.Network()},
			{"Reference price", fmt.Sprintf("%d MIST", gasPrice)},
			{"In SUI", chain.FormatMIST(gasPrice)},
		}))
		return nil
	},
}
