package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/suikit/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", ui.StyleTitle.Render("Current Configuration"))
		fmt.Println(string(data))
		fmt.Println(ui.Meta("Config directory: " + cfg.Dir()))
		return nil
	},
}

var configSetFullnodeCmd = &cobra.Command{
	Use:   "set-fullnode <url|\"\">",
	Short: "Pin a fullnode URL for the default network (empty string clears it)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateURL(args[0]); err != nil {
			return err
		}
		if err := checkPinNetwork(); err != nil {
			return err
		}
		cfg.FullnodeURL = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		printPinned("Fullnode", args[0])
		return nil
	},
}

var configSetFaucetCmd = &cobra.Command{
	Use:   "set-faucet <url|\"\">",
	Short: "Pin a faucet URL for the default network (empty string clears it)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateURL(args[0]); err != nil {
			return err
		}
		if err := checkPinNetwork(); err != nil {
			return err
		}
		cfg.FaucetURL = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		printPinned("Faucet", args[0])
		return nil
	},
}

var configSetCurrencyCmd = &cobra.Command{
	Use:   "set-currency <code>",
	Short: "Set the fiat currency for balance values (e.g. usd, eur)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.PriceCurrency = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Price currency set to %q", args[0])))
		return nil
	},
}

func printPinned(what, u string) {
	if u == "" {
		fmt.Println(ui.Success(what + " URL cleared, network defaults apply."))
		return
	}
	fmt.Println(ui.Success(fmt.Sprintf("%s URL for %s set to %s", what, ui.NetworkName(configNetwork()), u)))
	fmt.Println(ui.Hint("Switching networks with `suikit network use` clears it."))
}

// checkPinNetwork rejects pinning under a --network that differs from the
// persisted one, since pins belong to the persisted network.
func checkPinNetwork() error {
	if networkFlag != "" && networkFlag != configNetwork() {
		return fmt.Errorf("endpoint pins apply to the default network %q, run `suikit network use %s` first", configNetwork(), networkFlag)
	}
	return nil
}

// validateURL accepts an empty string (clear) or an absolute http(s) URL.
func validateURL(s string) error {
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid URL %q: expected http(s)://host[:port]", s)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configListCmd, configSetFullnodeCmd, configSetFaucetCmd, configSetCurrencyCmd)
}
