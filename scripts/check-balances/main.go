// check-balances: queries the SUI balance of a set of addresses on every
// public Sui network in parallel and prints a summary table.
//
// Run from the module root:
//
//	go run ./scripts/check-balances 0xADDR1 0xADDR2
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Mohsinsiddi/suikit/internal/chain"
)

const rpcTimeout = 12 * time.Second

type result struct {
	network string
	address string
	balance string
	coins   int
	err     string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: check-balances <address>...")
		os.Exit(2)
	}

	var addresses []string
	for _, a := range os.Args[1:] {
		if !chain.IsValidAddress(a) {
			fmt.Fprintf(os.Stderr, "invalid address %q\n", a)
			os.Exit(2)
		}
		addresses = append(addresses, chain.NormalizeAddress(a))
	}

	var networks []chain.Network
	for _, n := range chain.NewRegistry().All() {
		if n.Name != chain.NetworkLocalnet {
			networks = append(networks, n)
		}
	}

	results := make([]result, len(networks)*len(addresses))
	var g errgroup.Group
	for i, n := range networks {
		for j, addr := range addresses {
			idx := i*len(addresses) + j
			g.Go(func() error {
				results[idx] = check(n, addr)
				return nil
			})
		}
	}
	_ = g.Wait()

	printTable(results)
}

func check(n chain.Network, addr string) result {
	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	client := chain.NewSUIClient(n.FullnodeURL)
	defer client.Close()

	r := result{network: n.Name, address: shortAddr(addr), balance: "-"}
	bal, err := client.GetBalance(ctx, addr, chain.NativeCoinType)
	if err != nil {
		r.err = shortErr(err)
		return r
	}
	r.balance = trimZeros(chain.FormatMISTBig(bal.TotalBalance))
	r.coins = bal.CoinObjectCount
	return r
}

func printTable(results []result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].network != results[j].network {
			return results[i].network < results[j].network
		}
		return results[i].address < results[j].address
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NETWORK\tADDRESS\tSUI\tCOINS\tERROR")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", r.network, r.address, r.balance, r.coins, r.err)
	}
	w.Flush()
}

func shortAddr(a string) string {
	if len(a) <= 14 {
		return a
	}
	return a[:8] + "…" + a[len(a)-4:]
}

func shortErr(err error) string {
	s := err.Error()
	if len(s) > 48 {
		s = s[:48] + "…"
	}
	return s
}

// trimZeros drops trailing zeros after the decimal point: "1.500000000" → "1.5".
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
