package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/suikit/internal/chain"
	"github.com/Mohsinsiddi/suikit/internal/client"
	"github.com/Mohsinsiddi/suikit/internal/config"
	"github.com/Mohsinsiddi/suikit/internal/rpc"
	"github.com/Mohsinsiddi/suikit/internal/wallet"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/suikit/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir      string
	cfg         *config.Config
	verbose     bool
	networkFlag string
	fullnodeURL string
	faucetURL   string
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "suikit",
	Short: "A toolkit for the Sui blockchain",
	Long: `suikit is a terminal toolkit for Sui developers.

  Request faucet funds, check balances, inspect objects, dynamic fields
  and Move modules, and pick coins to cover a payment.

The network defaults to devnet. Override it for a single invocation with
--network, or point at your own endpoints with --fullnode-url and
--faucet-url. Persist a choice with: suikit network use <name>`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		level, err := cfg.Level()
		if err != nil {
			return err
		}
		if verbose {
			level = log.DebugLevel
		}
		log.SetLevel(level)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	if envDir := os.Getenv(config.DirEnv); envDir != "" {
		cfgDir = envDir
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.suikit)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&networkFlag, "network", "n", "", "network: mainnet, testnet, devnet or localnet")
	rootCmd.PersistentFlags().StringVar(&fullnodeURL, "fullnode-url", "", "fullnode JSON-RPC URL (overrides the network default)")
	rootCmd.PersistentFlags().StringVar(&faucetURL, "faucet-url", "", "faucet URL (overrides the network default)")

	rootCmd.AddCommand(
		initCmd,
		networkCmd,
		walletCmd,
		balanceCmd,
		coinsCmd,
		objectCmd,
		fieldCmd,
		moduleCmd,
		faucetCmd,
		gasCmd,
		rpcCmd,
		configCmd,
	)
}

// newClient builds a client for the configured network. When custom
// fullnodes are registered for the network and no explicit URL is set, the
// best one is picked with the configured algorithm.
func newClient(ctx context.Context) (*client.Client, error) {
	network := networkName()
	pinnedFullnode, pinnedFaucet := pinnedURLs(network)
	opts := client.Options{
		Network:     network,
		FullnodeURL: firstNonEmpty(fullnodeURL, pinnedFullnode),
		FaucetURL:   firstNonEmpty(faucetURL, pinnedFaucet),
	}

	if opts.FullnodeURL == "" {
		if custom := cfg.GetRPCs(opts.Network); len(custom) > 0 {
			urls := append([]string{}, custom...)
			if def := defaultFullnode(opts.Network); def != "" {
				urls = append(urls, def)
			}
			ctx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
			defer cancel()

			state := rpc.NewStateFile(filepath.Join(cfg.Dir(), rpc.StateFileName))
			best, err := rpc.SelectBest(ctx, urls, cfg.RPCAlgorithm, rpc.WithState(state, opts.Network))
			if err != nil {
				return nil, err
			}
			log.WithField("url", best).Debug("selected fullnode")
			opts.FullnodeURL = best
		}
	}

	c, err := client.New(opts)
	if errors.Is(err, chain.ErrNetworkNotFound) {
		return nil, fmt.Errorf("unknown network %q, run `suikit network list` to see all networks", opts.Network)
	}
	return c, err
}

// networkName returns the network in effect: --network, then the config,
// then devnet. Flag overrides are never written back to the config.
func networkName() string {
	return firstNonEmpty(networkFlag, cfg.Network, chain.DefaultNetwork)
}

// configNetwork is the persisted network, ignoring --network.
func configNetwork() string {
	return firstNonEmpty(cfg.Network, chain.DefaultNetwork)
}

// pinnedURLs returns the fullnode and faucet pins from the config. Pins belong
// to the persisted network and are ignored when --network selects another.
func pinnedURLs(network string) (fullnode, faucet string) {
	if network != configNetwork() {
		if cfg.FullnodeURL != "" || cfg.FaucetURL != "" {
			log.WithField("network", network).Debug("ignoring endpoints pinned for " + configNetwork())
		}
		return "", ""
	}
	return cfg.FullnodeURL, cfg.FaucetURL
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func defaultFullnode(network string) string {
	n, err := chain.NewRegistry().GetByName(network)
	if err != nil {
		return ""
	}
	return n.FullnodeURL
}

// newWalletManager opens the wallet book in the config dir. The keychain is
// opened on first use so watch-only commands never prompt.
func newWalletManager() *wallet.Manager {
	return wallet.NewManager(
		wallet.WithStore(wallet.NewJSONStore(cfg.WalletsPath())),
		wallet.WithKeystore(&lazyKeystore{dir: cfg.Dir()}),
	)
}

// resolveAddress turns an argument into an address: a hex address is used
// as is, anything else is looked up as a wallet name, and no argument means
// the default wallet.
func resolveAddress(arg string) (string, error) {
	mgr := newWalletManager()

	if arg == "" {
		if cfg.DefaultWallet != "" {
			if w, err := mgr.Get(cfg.DefaultWallet); err == nil {
				return w.Address, nil
			}
		}
		w := mgr.Default()
		if w == nil {
			return "", fmt.Errorf("no address given and no default wallet, add one with:\n  suikit wallet add myWallet 0x...\n  suikit wallet use myWallet")
		}
		return w.Address, nil
	}

	if looksLikeAddress(arg) {
		if !chain.IsValidAddress(arg) {
			return "", fmt.Errorf("%w: %q", wallet.ErrInvalidAddress, arg)
		}
		return chain.NormalizeAddress(arg), nil
	}

	w, err := mgr.Get(arg)
	if err != nil {
		return "", fmt.Errorf("wallet %q not found, run `suikit wallet list` or pass an address directly", arg)
	}
	return w.Address, nil
}

func looksLikeAddress(s string) bool {
	return len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X")
}

// lazyKeystore opens the OS keychain the first time a key is touched.
type lazyKeystore struct {
	dir string
	ks  *wallet.Keystore
}

func (l *lazyKeystore) open() (*wallet.Keystore, error) {
	if l.ks != nil {
		return l.ks, nil
	}
	ks, err := wallet.DefaultKeystore(l.dir)
	if err != nil {
		return nil, err
	}
	l.ks = ks
	return ks, nil
}

func (l *lazyKeystore) Store(name, hexSeed string) (string, error) {
	ks, err := l.open()
	if err != nil {
		return "", err
	}
	return ks.Store(name, hexSeed)
}

func (l *lazyKeystore) Retrieve(ref string) (string, error) {
	ks, err := l.open()
	if err != nil {
		return "", err
	}
	return ks.Retrieve(ref)
}

func (l *lazyKeystore) Delete(ref string) error {
	ks, err := l.open()
	if err != nil {
		return err
	}
	return ks.Delete(ref)
}
