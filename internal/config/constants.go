package config

import "time"

// Timeouts shared by the commands.
const (
	RPCSelectTimeout = 10 * time.Second // custom RPC benchmark
	QueryTimeout     = 30 * time.Second // single fullnode query
	FaucetTimeout    = 45 * time.Second // faucet request, including queueing
)

// CoinsPageLimit is the page size used when listing coins interactively.
const CoinsPageLimit = 50
