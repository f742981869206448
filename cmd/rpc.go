package cmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/suikit/internal/chain"
	"github.com/Mohsinsiddi/suikit/internal/config"
	"github.com/Mohsinsiddi/suikit/internal/rpc"
	"github.com/Mohsinsiddi/suikit/internal/ui"
)

var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Manage fullnode endpoints",
	Long: `Register extra fullnodes for a network. When a network has custom
fullnodes, every command picks one of them (or the built-in fullnode) with
the configured algorithm: fastest, round-robin or failover.`,
}

var rpcAddCmd = &cobra.Command{
	Use:   "add <network> <url>",
	Short: "Add a custom fullnode URL for a network",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := lookupNetwork(args[0])
		if err != nil {
			return err
		}
		if err := validateURL(args[1]); err != nil {
			return err
		}
		if err := cfg.AddRPC(n.Name, args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Added fullnode for %s: %s", ui.NetworkName(n.Name), args[1])))
		return nil
	},
}

var rpcRemoveCmd = &cobra.Command{
	Use:   "remove <network> <url>",
	Short: "Remove a custom fullnode URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := lookupNetwork(args[0])
		if err != nil {
			return err
		}
		if err := cfg.RemoveRPC(n.Name, args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Removed fullnode for %s: %s", n.Name, args[1])))
		return nil
	},
}

var rpcListCmd = &cobra.Command{
	Use:   "list [network]",
	Short: "List fullnodes for a network",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := lookupNetwork(networkArg(args))
		if err != nil {
			return err
		}

		fmt.Println(ui.StyleTitle.Render(fmt.Sprintf("Fullnodes for %s", n.DisplayName)))
		fmt.Printf("  %s %s\n", ui.Meta("(built-in)"), n.FullnodeURL)
		for _, u := range cfg.GetRPCs(n.Name) {
			fmt.Printf("  %s %s\n", ui.Meta("(custom)  "), u)
		}
		fmt.Println(ui.Meta("algorithm: " + cfg.RPCAlgorithm))
		return nil
	},
}

var rpcBenchmarkCmd = &cobra.Command{
	Use:     "bench [network]",
	Aliases: []string{"benchmark"},
	Short:   "Benchmark the fullnodes of a network and show the pick",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := lookupNetwork(networkArg(args))
		if err != nil {
			return err
		}
		urls := append(append([]string{}, cfg.GetRPCs(n.Name)...), n.FullnodeURL)

		algo, err := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
		if err != nil {
			return err
		}

		fmt.Println(ui.StyleTitle.Render(fmt.Sprintf("Benchmarking %s fullnodes...", n.DisplayName)))

		ctx, cancel := context.WithTimeout(cmd.Context(), config.RPCSelectTimeout)
		defer cancel()

		results := rpc.BenchmarkSUI(ctx, urls)

		t := ui.NewTable([]ui.Column{
			{Title: "Fullnode", Width: 40},
			{Title: "Latency", Width: 10},
			{Title: "Checkpoint", Width: 12},
			{Title: "Status", Width: 10},
		})
		for _, r := range results {
			status := ui.Success("healthy")
			latency := fmt.Sprintf("%dms", r.Latency.Milliseconds())
			checkpoint := fmt.Sprintf("%d", r.Checkpoint)
			if r.Err != nil {
				status = ui.Err("down")
				latency = "-"
				checkpoint = "-"
			}
			t.AddRow(ui.Row{r.URL, latency, checkpoint, status})
		}
		fmt.Println(t.Render())

		pinnedFullnode, _ := pinnedURLs(n.Name)
		if pinned := firstNonEmpty(fullnodeURL, pinnedFullnode); pinned != "" && !slices.Contains(urls, pinned) {
			ep, err := rpc.HealthCheck(ctx, pinned, rpc.BestCheckpoint(results))
			fmt.Println(ui.Info(fmt.Sprintf("pinned fullnode %s: %s", ui.Addr(pinned), healthStatus(ep, err))))
			if ep.Healthy {
				fmt.Println(ui.Hint("Commands use the pinned fullnode; the pick below applies once it is cleared."))
			}
		}

		winner, err := rpc.NewPicker(algo).Pick(rpc.ResultsToEndpoints(results))
		if err != nil {
			return err
		}
		fmt.Println(ui.Info(fmt.Sprintf("%s pick: %s", algo, ui.Addr(winner.URL))))
		return nil
	},
}

var rpcAlgorithmCmd = &cobra.Command{
	Use:   "algorithm",
	Short: "Show or set the fullnode selection algorithm",
}

var rpcAlgorithmSetCmd = &cobra.Command{
	Use:       "set <fastest|round-robin|failover>",
	Short:     "Set the fullnode selection algorithm",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"fastest", "round-robin", "failover"},
	RunE: func(cmd *cobra.Command, args []string) error {
		algo, err := rpc.ParseAlgorithm(args[0])
		if err != nil {
			return err
		}
		cfg.RPCAlgorithm = string(algo)
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("RPC algorithm set to %q", algo)))
		return nil
	},
}

// healthStatus describes a health check result: down, stale or healthy.
func healthStatus(ep rpc.Endpoint, err error) string {
	switch {
	case err != nil:
		return fmt.Sprintf("down (%v)", err)
	case !ep.Healthy:
		return fmt.Sprintf("stale (checkpoint %d)", ep.Checkpoint)
	default:
		return fmt.Sprintf("healthy (%dms, checkpoint %d)", ep.Latency.Milliseconds(), ep.Checkpoint)
	}
}

func lookupNetwork(name string) (*chain.Network, error) {
	n, err := chain.NewRegistry().GetByName(name)
	if err != nil {
		return nil, fmt.Errorf("unknown network %q, run `suikit network list` to see all networks", name)
	}
	return n, nil
}

func networkArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return networkName()
}

func init() {
	rpcAlgorithmCmd.AddCommand(rpcAlgorithmSetCmd)
	rpcCmd.AddCommand(rpcAddCmd, rpcRemoveCmd, rpcListCmd, rpcBenchmarkCmd, rpcAlgorithmCmd)
}
