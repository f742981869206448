package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/suikit/internal/ui"
	"github.com/Mohsinsiddi/suikit/internal/wallet"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage wallets",
	Long: `Keep named addresses so commands can take a wallet name instead of an
address. Watch-only wallets hold just an address; signing wallets also keep
an Ed25519 seed in the OS keychain (or an encrypted file when no keychain is
available; set SUIKIT_KEYRING_PASSWORD to skip the passphrase prompt).`,
}

var walletAddCmd = &cobra.Command{
	Use:   "add <name> <address>",
	Short: "Add a watch-only wallet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, address := args[0], args[1]
		mgr := newWalletManager()
		w := &wallet.Wallet{Name: name, Address: address, Type: wallet.TypeWatchOnly}
		if err := mgr.Add(name, w); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Watch-only wallet %q added: %s", name, ui.Addr(w.Address))))
		fmt.Println(ui.Hint(fmt.Sprintf("Set as default with: suikit wallet use %s", name)))
		return nil
	},
}

var walletGenerateCmd = &cobra.Command{
	Use:   "generate <name>",
	Short: "Generate a new Ed25519 wallet",
	Long: `Generate a new Ed25519 key pair and store the seed in the OS keychain.

The seed is shown ONCE. Copy it into a password manager; without it the
wallet cannot be recovered.

Re-export later with: suikit wallet export <name>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := newWalletManager()
		w, err := mgr.Generate(name)
		if err != nil {
			return err
		}
		seed, err := mgr.ExportKey(name)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("  %s  %s\n", ui.Meta("Wallet :"), ui.Val(w.Name))
		fmt.Printf("  %s  %s\n\n", ui.Meta("Address:"), ui.Addr(w.Address))
		fmt.Println(ui.DangerBox("SAVE YOUR PRIVATE KEY. It is shown only once.",
			ui.Val(seed),
			"",
			ui.Hint("Store it in a password manager. Never share it."),
		))
		fmt.Println(ui.Hint("Fund it with: suikit faucet " + name))
		return nil
	},
}

var walletImportCmd = &cobra.Command{
	Use:   "import <name> [hex-seed]",
	Short: "Import an Ed25519 seed as a signing wallet",
	Long: `Import a 32-byte Ed25519 seed in hex. When the seed is not given as an
argument it is read from the terminal so it stays out of shell history.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		seed := ""
		if len(args) == 2 {
			seed = args[1]
		} else {
			seed = ui.PromptInput("  Paste the hex seed")
		}

		mgr := newWalletManager()
		w, err := mgr.AddWithKey(name, seed)
		if err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Signing wallet %q imported: %s", name, ui.Addr(w.Address))))
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		wallets := newWalletManager().List()
		if len(wallets) == 0 {
			fmt.Println(ui.Info("No wallets configured yet."))
			fmt.Println(ui.Hint("Add one with: suikit wallet add myWallet 0xYourAddress"))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 16},
			{Title: "Address", Width: 66},
			{Title: "Type", Width: 10},
			{Title: "Default", Width: 7},
		})
		for _, w := range wallets {
			def := ""
			if w.IsDefault || w.Name == cfg.DefaultWallet {
				def = ui.StyleSuccess.Render("✓")
			}
			t.AddRow(ui.Row{ui.Val(w.Name), ui.Addr(w.Address), ui.Meta(w.Type), def})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d wallet(s) configured", len(wallets))))
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Set the default wallet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newWalletManager()

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			wallets := mgr.List()
			if len(wallets) == 0 {
				return fmt.Errorf("no wallets configured, add one with: suikit wallet add <name> <address>")
			}
			items := make([]ui.PickerItem, len(wallets))
			for i, w := range wallets {
				items[i] = ui.PickerItem{
					Name:    w.Name,
					Detail:  ui.TruncateAddr(w.Address),
					Current: w.IsDefault || w.Name == cfg.DefaultWallet,
				}
			}
			picked, err := ui.PickItem("Default wallet", items)
			if err != nil {
				return err
			}
			if picked == "" {
				fmt.Println(ui.Meta("Cancelled."))
				return nil
			}
			name = picked
		}

		if err := mgr.SetDefault(name); err != nil {
			return err
		}
		cfg.DefaultWallet = name
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Default wallet set to %q.", name)))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !ui.ConfirmDanger(fmt.Sprintf("Remove wallet %q?", name)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		if err := newWalletManager().Remove(name); err != nil {
			return err
		}
		if cfg.DefaultWallet == name {
			cfg.DefaultWallet = ""
			if err := cfg.Save(); err != nil {
				return err
			}
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

var walletExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Show the seed of a signing wallet",
	Long: `Retrieve and display the stored seed of a signing wallet.

You must type the wallet name to confirm before the seed is shown.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		fmt.Println(ui.Warn("You are about to reveal a private key. Keep it secret."))
		if ui.PromptInput(fmt.Sprintf("  Type wallet name %q to confirm", name)) != name {
			fmt.Println(ui.Err("Name mismatch, export cancelled."))
			return nil
		}

		seed, err := newWalletManager().ExportKey(name)
		if err != nil {
			return err
		}
		fmt.Println(ui.DangerBox("PRIVATE KEY. Do not share this with anyone.", ui.Val(seed)))
		return nil
	},
}

func init() {
	walletCmd.AddCommand(
		walletAddCmd,
		walletGenerateCmd,
		walletImportCmd,
		walletListCmd,
		walletUseCmd,
		walletRemoveCmd,
		walletExportCmd,
	)
}
