// Row subcommands: insert, get, update, delete, list.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dukaforge/shelfdb/pkg/types"
)

// newRowCmd creates the "shelf row" command group.
func newRowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "row",
		Short: "Manage rows of a table",
	}
	cmd.AddCommand(newRowInsertCmd())
	cmd.AddCommand(newRowGetCmd())
	cmd.AddCommand(newRowUpdateCmd())
	cmd.AddCommand(newRowDeleteCmd())
	cmd.AddCommand(newRowListCmd())
	return cmd
}

// withTable attaches the store, resolves the named table, runs fn, and saves
// when fn succeeds.
func withTable(name string, fn func(db *types.Database, table *types.Table) error) error {
	s, err := attachStore()
	if err != nil {
		return err
	}
	defer s.Detach()

	db, err := s.Database()
	if err != nil {
		return err
	}
	table, err := db.GetTable(name)
	if err != nil {
		return fmt.Errorf("table %q: %w", name, err)
	}
	if err := fn(db, table); err != nil {
		return err
	}
	return s.Save()
}

func parsePosition(arg string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q", arg)
	}
	return pos, nil
}

func newRowInsertCmd() *cobra.Command {
	var htmlFiles []string
	cmd := &cobra.Command{
		Use:   "insert TABLE col=token [col=token ...]",
		Short: "Insert a validated row",
		Long: "Insert a row into TABLE. Each value is given as col=token using the\n" +
			"column type's canonical text; StringInterval columns take the JSON\n" +
			"object form, e.g. range={\"low\":\"a\",\"high\":\"b\"}.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := parseRowValues(args[1:], htmlFiles)
			if err != nil {
				return err
			}
			return withTable(args[0], func(_ *types.Database, table *types.Table) error {
				pos, err := table.Insert(raw)
				if err != nil {
					return err
				}
				fmt.Printf("Inserted row at position %d\n", pos)
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&htmlFiles, "html-file", nil, "load an HtmlFile column from a file: col=path (repeatable)")
	return cmd
}

func newRowGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get TABLE POSITION",
		Short: "Read the row at a position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			return withTable(args[0], func(_ *types.Database, table *types.Table) error {
				rec, err := table.Read(pos)
				if err != nil {
					return err
				}
				if flags.jsonMode {
					out, err := recordOut(table.Schema(), rec)
					if err != nil {
						return err
					}
					return printJSON(out)
				}
				fmt.Println(renderRecord(table.Schema(), rec))
				return nil
			})
		},
	}
}

func newRowUpdateCmd() *cobra.Command {
	var htmlFiles []string
	cmd := &cobra.Command{
		Use:   "update TABLE POSITION col=token [col=token ...]",
		Short: "Replace the row at a position with re-validated values",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			raw, err := parseRowValues(args[2:], htmlFiles)
			if err != nil {
				return err
			}
			return withTable(args[0], func(_ *types.Database, table *types.Table) error {
				if err := table.Update(pos, raw); err != nil {
					return err
				}
				fmt.Printf("Updated row at position %d\n", pos)
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&htmlFiles, "html-file", nil, "load an HtmlFile column from a file: col=path (repeatable)")
	return cmd
}

func newRowDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete TABLE POSITION",
		Short: "Delete the row at a position (later rows shift down)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			return withTable(args[0], func(_ *types.Database, table *types.Table) error {
				if err := table.Delete(pos); err != nil {
					return err
				}
				fmt.Printf("Deleted row at position %d\n", pos)
				return nil
			})
		},
	}
}

func newRowListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list TABLE",
		Short: "List all rows in table order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTable(args[0], func(_ *types.Database, table *types.Table) error {
				schema := table.Schema()
				if flags.jsonMode {
					rows := make([]map[string]any, 0, table.Len())
					for _, rec := range table.All() {
						out, err := recordOut(schema, rec)
						if err != nil {
							return err
						}
						rows = append(rows, out)
					}
					return printJSON(rows)
				}
				for pos, rec := range table.All() {
					fmt.Printf("%d: %s\n", pos, renderRecord(schema, rec))
				}
				return nil
			})
		},
	}
}
