package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/suikit/internal/chain"
	"github.com/Mohsinsiddi/suikit/internal/config"
	"github.com/Mohsinsiddi/suikit/internal/ui"
)

var moduleJSON bool

var moduleCmd = &cobra.Command{
	Use:   "module",
	Short: "Inspect Move modules",
}

var moduleGetCmd = &cobra.Command{
	Use:   "get <package-id> [module]",
	Short: "Show the exposed functions of a module or package",
	Long: `Show the normalized interface of a Move module. Without a module name
every module of the package is listed.

Examples:
  suikit module get 0x2 coin
  suikit module get 0x2`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := normalizeIDs(args[:1])
		if err != nil {
			return err
		}
		pkg := ids[0]

		c, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), config.QueryTimeout)
		defer cancel()

		if len(args) == 2 {
			mod, err := c.GetNormalizedModule(ctx, pkg, args[1])
			if err != nil {
				return err
			}
			if moduleJSON {
				return printJSON(mod)
			}
			printModule(mod)
			return nil
		}

		mods, err := c.GetNormalizedModules(ctx, pkg)
		if err != nil {
			return err
		}
		if moduleJSON {
			return printJSON(mods)
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Module", Width: 24},
			{Title: "Structs", Width: 8},
			{Title: "Functions", Width: 10},
			{Title: "Entry", Width: 6},
		})
		for _, name := range sortedKeys(mods) {
			m := mods[name]
			t.AddRow(ui.Row{
				ui.Val(name),
				fmt.Sprintf("%d", len(m.Structs)),
				fmt.Sprintf("%d", len(m.ExposedFunctions)),
				fmt.Sprintf("%d", countEntry(m)),
			})
		}
		fmt.Println(ui.StyleTitle.Render("Package " + ui.TruncateAddr(pkg)))
		fmt.Println(t.Render())
		return nil
	},
}

func printModule(mod *chain.NormalizedModule) {
	fmt.Println(ui.StyleTitle.Render(fmt.Sprintf("%s::%s", ui.TruncateAddr(mod.Address), mod.Name)))

	t := ui.NewTable([]ui.Column{
		{Title: "Function", Width: 28},
		{Title: "Visibility", Width: 10},
		{Title: "Entry", Width: 6},
		{Title: "Params", Width: 7},
		{Title: "Returns", Width: 8},
	})
	for _, name := range sortedKeys(mod.ExposedFunctions) {
		fn := mod.ExposedFunctions[name]
		entry := ""
		if fn.IsEntry {
			entry = ui.StyleSuccess.Render("✓")
		}
		t.AddRow(ui.Row{
			ui.Val(name),
			strings.ToLower(fn.Visibility),
			entry,
			fmt.Sprintf("%d", len(fn.Parameters)),
			fmt.Sprintf("%d", len(fn.Return)),
		})
	}
	fmt.Println(t.Render())

	if len(mod.Structs) > 0 {
		fmt.Println(ui.Meta("structs: " + strings.Join(sortedKeys(mod.Structs), ", ")))
	}
}

func countEntry(m *chain.NormalizedModule) int {
	n := 0
	for _, fn := range m.ExposedFunctions {
		if fn.IsEntry {
			n++
		}
	}
	return n
}

func init() {
	moduleGetCmd.Flags().BoolVar(&moduleJSON, "json", false, "print JSON")
	moduleCmd.AddCommand(moduleGetCmd)
}
