package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukaforge/shelfdb/pkg/types"
)

// newSortCmd creates the "shelf sort" command. Sorting is stable and
// persists the new row order.
func newSortCmd() *cobra.Command {
	var descending bool
	cmd := &cobra.Command{
		Use:   "sort TABLE COLUMN",
		Short: "Sort a table's rows by a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTable(args[0], func(_ *types.Database, table *types.Table) error {
				if err := table.SortBy(args[1], !descending); err != nil {
					return err
				}
				order := "ascending"
				if descending {
					order = "descending"
				}
				fmt.Printf("Sorted %q by %q (%s)\n", args[0], args[1], order)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&descending, "desc", false, "sort in descending order")
	return cmd
}
