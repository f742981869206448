package config

// Config holds all suikit settings.
type Config struct {
	Network       string              `json:"network"        mapstructure:"network"`
	FullnodeURL   string              `json:"fullnode_url"   mapstructure:"fullnode_url"`
	FaucetURL     string              `json:"faucet_url"     mapstructure:"faucet_url"`
	DefaultWallet string              `json:"default_wallet" mapstructure:"default_wallet"`
	RPCAlgorithm  string              `json:"rpc_algorithm"  mapstructure:"rpc_algorithm"` // "fastest" | "round-robin" | "failover"
	PriceCurrency string              `json:"price_currency" mapstructure:"price_currency"`
	WatchInterval int                 `json:"watch_interval" mapstructure:"watch_interval"` // seconds
	LogLevel      string              `json:"log_level"      mapstructure:"log_level"`
	CustomRPCs    map[string][]string `json:"custom_rpcs"    mapstructure:"custom_rpcs"`

	configDir string
	// file holds the values in config.json; loaded holds the effective
	// values, env overrides included, as of the last Load or Save.
	file   *Config
	loaded *Config
}
