package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/suikit/internal/chain"
	"github.com/Mohsinsiddi/suikit/internal/rpc"
	"github.com/Mohsinsiddi/suikit/internal/ui"
	"github.com/Mohsinsiddi/suikit/internal/wallet"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive setup wizard",
	Long:  "Launch the interactive setup wizard to pick a network, an RPC algorithm and a first wallet.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(ui.Banner())

		algos := rpc.Algorithms()
		algoNames := make([]string, len(algos))
		for i, a := range algos {
			algoNames[i] = string(a)
		}

		result, err := ui.RunWizard(chain.NewRegistry().Names(), algoNames)
		if err != nil {
			return err
		}
		if result == nil {
			fmt.Println(ui.Meta("Setup cancelled."))
			return nil
		}

		if result.Network != "" {
			cfg.Network = result.Network
		}
		if result.RPCAlgorithm != "" {
			cfg.RPCAlgorithm = result.RPCAlgorithm
		}

		if result.WalletAddress != "" {
			name := result.WalletName
			if name == "" {
				name = "default"
			}
			mgr := newWalletManager()
			err := mgr.Add(name, &wallet.Wallet{
				Address: result.WalletAddress,
				Type:    wallet.TypeWatchOnly,
			})
			if err == nil {
				err = mgr.SetDefault(name)
			}
			if err != nil {
				fmt.Println(ui.Warn(fmt.Sprintf("Could not add wallet: %v", err)))
			} else {
				cfg.DefaultWallet = name
			}
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Println(ui.Success("suikit configured! Run `suikit --help` to explore commands."))
		return nil
	},
}
