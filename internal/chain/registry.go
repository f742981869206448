package chain

import (
	"errors"
	"strings"
)

// ErrNetworkNotFound is returned when a network is not in the registry.
var ErrNetworkNotFound = errors.New("network not found")

// Network names.
const (
	NetworkMainnet  = "mainnet"
	NetworkTestnet  = "testnet"
	NetworkDevnet   = "devnet"
	NetworkLocalnet = "localnet"

	// DefaultNetwork is used when no network is configured.
	DefaultNetwork = NetworkDevnet
)

// NativeCoinType is the fully qualified type of the SUI coin.
const NativeCoinType = "0x2::sui::SUI"

// Network holds the endpoints for a single Sui network.
type Network struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	FullnodeURL string `json:"fullnode_url"`
	// FaucetURL is the faucet gas endpoint (empty = no faucet).
	FaucetURL   string `json:"faucet_url,omitempty"`
	ExplorerURL string `json:"explorer_url,omitempty"`
}

// Registry is the network registry.
type Registry struct {
	networks []Network
	byName   map[string]*Network
}

// NewRegistry creates and returns the registry of all built-in networks.
func NewRegistry() *Registry {
	networks := allNetworks()
	r := &Registry{
		networks: networks,
		byName:   make(map[string]*Network, len(networks)),
	}
	for i := range r.networks {
		n := &r.networks[i]
		r.byName[n.Name] = n
	}
	return r
}

// All returns every network in the registry.
func (r *Registry) All() []Network {
	return r.networks
}

// Names returns the network names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.networks))
	for i, n := range r.networks {
		names[i] = n.Name
	}
	return names
}

// GetByName finds a network by name (e.g. "testnet"). Empty resolves to
// DefaultNetwork.
func (r *Registry) GetByName(name string) (*Network, error) {
	if name == "" {
		name = DefaultNetwork
	}
	n, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, ErrNetworkNotFound
	}
	return n, nil
}

// ObjectURL returns the explorer link for an object, or "" when the network
// has no explorer.
func (n *Network) ObjectURL(id string) string {
	if n.ExplorerURL == "" {
		return ""
	}
	return n.ExplorerURL + "/object/" + id
}

// AccountURL returns the explorer link for an account.
func (n *Network) AccountURL(address string) string {
	if n.ExplorerURL == "" {
		return ""
	}
	return n.ExplorerURL + "/account/" + address
}

// --- network data ---

func allNetworks() []Network {
	return []Network{
		{
			Name: NetworkMainnet, DisplayName: "Sui Mainnet",
			FullnodeURL: "https://fullnode.mainnet.sui.io:443",
			FaucetURL:   "https://faucet.mainnet.sui.io/gas",
			ExplorerURL: "https://suiscan.xyz/mainnet",
		},
		{
			Name: NetworkTestnet, DisplayName: "Sui Testnet",
			FullnodeURL: "https://fullnode.testnet.sui.io:443",
			FaucetURL:   "https://faucet.testnet.sui.io/gas",
			ExplorerURL: "https://suiscan.xyz/testnet",
		},
		{
			Name: NetworkDevnet, DisplayName: "Sui Devnet",
			FullnodeURL: "https://fullnode.devnet.sui.io:443",
			FaucetURL:   "https://faucet.devnet.sui.io/gas",
			ExplorerURL: "https://suiscan.xyz/devnet",
		},
		{
			Name: NetworkLocalnet, DisplayName: "Sui Localnet",
			FullnodeURL: "http://127.0.0.1:9000",
			FaucetURL:   "http://127.0.0.1:9123/gas",
		},
	}
}
