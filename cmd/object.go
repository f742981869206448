package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/suikit/internal/chain"
	"github.com/Mohsinsiddi/suikit/internal/config"
	"github.com/Mohsinsiddi/suikit/internal/ui"
)

var objectJSON bool

var objectCmd = &cobra.Command{
	Use:   "object",
	Short: "Inspect on-chain objects",
}

var objectGetCmd = &cobra.Command{
	Use:   "get <object-id>...",
	Short: "Fetch one or more objects",
	Long: `Fetch objects by id and show their type, version, digest and fields.

Several ids are fetched in batches; output follows the order given.

Examples:
  suikit object get 0x5
  suikit object get 0x6 0x8 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := normalizeIDs(args)
		if err != nil {
			return err
		}

		c, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), config.QueryTimeout)
		defer cancel()

		var objs []*chain.Object
		if len(ids) == 1 {
			obj, err := c.GetObject(ctx, ids[0])
			if err != nil {
				return err
			}
			objs = []*chain.Object{obj}
		} else {
			objs, err = c.GetObjects(ctx, ids)
			if err != nil {
				return err
			}
		}

		if objectJSON {
			if len(objs) == 1 {
				return printJSON(objs[0])
			}
			return printJSON(objs)
		}

		explorer := explorerFor(c.Network())
		for _, obj := range objs {
			printObject(obj, explorer)
		}
		return nil
	},
}

func printObject(obj *chain.Object, explorer *chain.Network) {
	pairs := [][2]string{
		{"ID", ui.Addr(obj.ID)},
		{"Type", obj.Type},
		{"Version", fmt.Sprintf("%d", obj.Version)},
		{"Digest", obj.Digest},
	}
	if explorer != nil {
		if link := explorer.ObjectURL(obj.ID); link != "" {
			pairs = append(pairs, [2]string{"Explorer", ui.Meta(link)})
		}
	}
	for _, k := range sortedKeys(obj.Display) {
		pairs = append(pairs, [2]string{"display." + k, obj.Display[k]})
	}
	fmt.Println(ui.KeyValueBlock("Object", pairs))

	if len(obj.Fields) > 0 {
		data, err := json.MarshalIndent(obj.Fields, "  ", "  ")
		if err == nil {
			fmt.Println(ui.Meta("  fields:"))
			fmt.Println("  " + string(data))
		}
	}
	fmt.Println()
}

func normalizeIDs(args []string) ([]string, error) {
	ids := make([]string, 0, len(args))
	for _, a := range args {
		if !chain.IsValidAddress(a) {
			return nil, fmt.Errorf("invalid object id %q", a)
		}
		ids = append(ids, chain.NormalizeAddress(a))
	}
	return ids, nil
}

func explorerFor(network string) *chain.Network {
	n, err := chain.NewRegistry().GetByName(network)
	if err != nil {
		return nil
	}
	return n
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// parseFieldValue reads a dynamic field name value. JSON objects, arrays and
// booleans are decoded; anything else, numbers included, is passed as a
// string since the node expects u64 and wider integers quoted.
func parseFieldValue(s string) any {
	t := strings.TrimSpace(s)
	if t == "true" || t == "false" || strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[") {
		var v any
		if err := json.Unmarshal([]byte(t), &v); err == nil {
			return v
		}
	}
	return s
}

func init() {
	objectGetCmd.Flags().BoolVar(&objectJSON, "json", false, "print JSON")
	objectCmd.AddCommand(objectGetCmd)
}
