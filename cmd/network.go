package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/suikit/internal/chain"
	"github.com/Mohsinsiddi/suikit/internal/ui"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage networks",
}

var networkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in Sui networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := chain.NewRegistry()
		t := ui.NewTable([]ui.Column{
			{Title: "", Width: 2},
			{Title: "Name", Width: 10},
			{Title: "Fullnode", Width: 36},
			{Title: "Faucet", Width: 36},
		})

		current := networkName()
		for _, n := range reg.All() {
			mark := ""
			if n.Name == current {
				mark = ui.StyleSuccess.Render("●")
			}
			faucet := n.FaucetURL
			if faucet == "" {
				faucet = ui.Meta("-")
			}
			t.AddRow(ui.Row{mark, ui.NetworkName(n.Name), n.FullnodeURL, faucet})
		}

		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("current: %s", current)))
		return nil
	},
}

var networkUseCmd = &cobra.Command{
	Use:   "use [network]",
	Short: "Set the default network",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := chain.NewRegistry()
		name := ""
		if len(args) == 1 {
			name = args[0]
		} else {
			picked, err := ui.PickItem("Default network", networkItems(reg, configNetwork()))
			if err != nil {
				return err
			}
			if picked == "" {
				fmt.Println(ui.Meta("Cancelled."))
				return nil
			}
			name = picked
		}

		n, err := reg.GetByName(name)
		if err != nil {
			return fmt.Errorf("unknown network %q, run `suikit network list` to see all networks", name)
		}

		cleared := n.Name != configNetwork() && (cfg.FullnodeURL != "" || cfg.FaucetURL != "")
		if n.Name != configNetwork() {
			cfg.FullnodeURL, cfg.FaucetURL = "", ""
		}
		cfg.Network = n.Name
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Default network set to %s", ui.NetworkName(n.Name))))
		if cleared {
			fmt.Println(ui.Hint("Pinned fullnode/faucet URLs were cleared."))
		}
		return nil
	},
}

func networkItems(reg *chain.Registry, current string) []ui.PickerItem {
	items := make([]ui.PickerItem, 0, len(reg.All()))
	for _, n := range reg.All() {
		items = append(items, ui.PickerItem{Name: n.Name, Detail: n.FullnodeURL, Current: n.Name == current})
	}
	return items
}

func init() {
	networkCmd.AddCommand(networkListCmd, networkUseCmd)
}
