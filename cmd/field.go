package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/suikit/internal/chain"
	"github.com/Mohsinsiddi/suikit/internal/config"
	"github.com/Mohsinsiddi/suikit/internal/ui"
)

var (
	fieldCursor string
	fieldLimit  int
	fieldJSON   bool
)

var fieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Inspect dynamic fields of an object",
}

var fieldListCmd = &cobra.Command{
	Use:   "list <parent-id>",
	Short: "List one page of dynamic fields",
	Args:  cobra.ExactArgs(1),
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

		page, err := c.GetDynamicFields(ctx, ids[0], fieldCursor, fieldLimit)
		if err != nil {
			return err
		}
		if fieldJSON {
			return printJSON(page)
		}
		if len(page.Data) == 0 {
			fmt.Println(ui.Info("No dynamic fields."))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 24},
			{Title: "Name Type", Width: 20},
			{Title: "Kind", Width: 14},
			{Title: "Object ID", Width: 16},
			{Title: "Object Type", Width: 40},
		})
		for _, f := range page.Data {
			t.AddRow(ui.Row{
				fmt.Sprintf("%v", f.Name.Value),
				f.Name.Type,
				f.Kind,
				ui.Addr(ui.TruncateAddr(f.ObjectID)),
				f.ObjectType,
			})
		}
		fmt.Println(t.Render())
		if page.HasNextPage {
			fmt.Println(ui.Hint(fmt.Sprintf("More fields: suikit field list %s --cursor %s", ids[0], page.NextCursor)))
		}
		return nil
	},
}

var fieldGetCmd = &cobra.Command{
	Use:   "get <parent-id> <name-type> <name-value>",
	Short: "Fetch the object behind one dynamic field",
	Long: `Fetch the object stored under a dynamic field name.

Examples:
  suikit field get 0xPARENT u64 7
  suikit field get 0xPARENT 0x1::string::String alice
  suikit field get 0xPARENT 0xPKG::keys::Key '{"id":"3"}'`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := normalizeIDs(args[:1])
		if err != nil {
			return err
		}
		name := chain.DynamicFieldName{Type: args[1], Value: parseFieldValue(args[2])}

		c, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), config.QueryTimeout)
		defer cancel()

		obj, err := c.GetDynamicFieldObject(ctx, ids[0], name)
		if err != nil {
			return err
		}
		if fieldJSON {
			return printJSON(obj)
		}
		printObject(obj, explorerFor(c.Network()))
		return nil
	},
}

func init() {
	fieldCmd.PersistentFlags().BoolVar(&fieldJSON, "json", false, "print JSON")
	fieldListCmd.Flags().StringVar(&fieldCursor, "cursor", "", "cursor from a previous page")
	fieldListCmd.Flags().IntVar(&fieldLimit, "limit", config.CoinsPageLimit, "page size")
	fieldCmd.AddCommand(fieldListCmd, fieldGetCmd)
}
