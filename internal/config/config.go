// Package config loads and persists the suikit configuration directory.
//
// The directory holds config.json (settings) and wallets.json (the address
// book, owned by the wallet package). Settings are read through viper so that every key can be overridden
// from the environment with a SUIKIT_ prefix, e.g. SUIKIT_NETWORK=testnet.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// NetworkKey selects the Sui network (mainnet, testnet, devnet, localnet).
	NetworkKey = "network"
	// FullnodeURLKey overrides the network's fullnode endpoint.
	FullnodeURLKey = "fullnode_url"
	// FaucetURLKey overrides the network's faucet endpoint.
	FaucetURLKey = "faucet_url"
	// DefaultWalletKey names the wallet used when no address is given.
	DefaultWalletKey = "default_wallet"
	// RPCAlgorithmKey is the fullnode selection algorithm for custom RPCs.
	RPCAlgorithmKey = "rpc_algorithm"
	// PriceCurrencyKey is the fiat currency balances are valued in.
	PriceCurrencyKey = "price_currency"
	// WatchIntervalKey is the live balance refresh interval in seconds.
	WatchIntervalKey = "watch_interval"
	// LogLevelKey is a logrus level name.
	LogLevelKey = "log_level"
	// CustomRPCsKey maps a network name to extra fullnode URLs.
	CustomRPCsKey = "custom_rpcs"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SUIKIT"
	// DirEnv overrides the config directory.
	DirEnv = "SUIKIT_CONFIG_DIR"

	defaultDirName   = ".suikit"
	defaultNetwork   = "devnet"
	defaultAlgorithm = "fastest"
	defaultCurrency  = "USD"
	defaultInterval  = 10
	defaultLogLevel  = "info"

	configFile = "config.json"
	// WalletsFile is the address book inside the config directory.
	WalletsFile = "wallets.json"
)

// DefaultDir returns $SUIKIT_CONFIG_DIR or ~/.suikit.
func DefaultDir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home dir: %w", err)
	}
	return filepath.Join(home, defaultDirName), nil
}

// Load reads config from dir, falling back to defaults for missing keys.
// An empty dir means DefaultDir. The directory is created if needed.
func Load(dir string) (*Config, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	path := filepath.Join(dir, configFile)
	cfg, err := readConfig(path, true)
	if err != nil {
		return nil, err
	}
	// Environment overrides apply to this run only; Save writes the
	// file-backed value of any key the caller left untouched.
	file, err := readConfig(path, false)
	if err != nil {
		return nil, err
	}
	cfg.configDir = dir
	cfg.file = file
	loaded := *cfg
	cfg.loaded = &loaded

	log.WithField("dir", dir).Debug("config loaded")
	return cfg, nil
}

func readConfig(path string, withEnv bool) (*Config, error) {
	vip := newViper(path, withEnv)
	if err := vip.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.CustomRPCs == nil {
		cfg.CustomRPCs = make(map[string][]string)
	}
	return cfg, nil
}

func newViper(path string, withEnv bool) *viper.Viper {
	vip := viper.New()
	vip.SetConfigFile(path)
	vip.SetConfigType("json")
	if withEnv {
		vip.SetEnvPrefix(EnvPrefix)
		vip.AutomaticEnv()
	}

	vip.SetDefault(NetworkKey, defaultNetwork)
	vip.SetDefault(FullnodeURLKey, "")
	vip.SetDefault(FaucetURLKey, "")
	vip.SetDefault(DefaultWalletKey, "")
	vip.SetDefault(RPCAlgorithmKey, defaultAlgorithm)
	vip.SetDefault(PriceCurrencyKey, defaultCurrency)
	vip.SetDefault(WatchIntervalKey, defaultInterval)
	vip.SetDefault(LogLevelKey, defaultLogLevel)
	vip.SetDefault(CustomRPCsKey, map[string][]string{})
	return vip
}

// Save writes the config to disk. Values that came from SUIKIT_* variables
// and were not changed since Load are not persisted.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	out := c.persisted()
	if err := saveJSON(filepath.Join(c.configDir, configFile), out); err != nil {
		return err
	}
	c.file = out
	loaded := *c
	loaded.file, loaded.loaded = nil, nil
	c.loaded = &loaded
	return nil
}

// persisted returns c with env-only values swapped for their file values.
func (c *Config) persisted() *Config {
	out := *c
	out.file, out.loaded = nil, nil
	if c.file == nil || c.loaded == nil {
		return &out
	}

	cur, loaded, file := out.stringFields(), c.loaded.stringFields(), c.file.stringFields()
	for i := range cur {
		if *cur[i] == *loaded[i] {
			*cur[i] = *file[i]
		}
	}
	if out.WatchInterval == c.loaded.WatchInterval {
		out.WatchInterval = c.file.WatchInterval
	}
	return &out
}

func (c *Config) stringFields() []*string {
	return []*string{
		&c.Network,
		&c.FullnodeURL,
		&c.FaucetURL,
		&c.DefaultWallet,
		&c.RPCAlgorithm,
		&c.PriceCurrency,
		&c.LogLevel,
	}
}

// Level parses the configured log level.
func (c *Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid %s: %w", LogLevelKey, err)
	}
	return lvl, nil
}

// AddRPC adds a custom fullnode URL for a network.
func (c *Config) AddRPC(network, url string) error {
	if c.CustomRPCs == nil {
		c.CustomRPCs = make(map[string][]string)
	}
	if slices.Contains(c.CustomRPCs[network], url) {
		return fmt.Errorf("RPC %s already exists for network %s", url, network)
	}
	c.CustomRPCs[network] = append(c.CustomRPCs[network], url)
	return nil
}

// RemoveRPC removes a custom fullnode URL for a network.
func (c *Config) RemoveRPC(network, url string) error {
	rpcs := c.CustomRPCs[network]
	idx := slices.Index(rpcs, url)
	if idx == -1 {
		return fmt.Errorf("RPC %s not found for network %s", url, network)
	}
	c.CustomRPCs[network] = slices.Delete(rpcs, idx, idx+1)
	return nil
}

// GetRPCs returns the custom fullnode URLs for a network.
func (c *Config) GetRPCs(network string) []string {
	return c.CustomRPCs[network]
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath returns the path of the wallet address book.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, WalletsFile)
}

// --- helpers ---

func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
