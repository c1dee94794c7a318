// Table subcommands: create, drop, list, show.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukaforge/shelfdb/pkg/types"
)

// newTableCmd creates the "shelf table" command group.
func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Manage tables",
	}
	cmd.AddCommand(newTableCreateCmd())
	cmd.AddCommand(newTableDropCmd())
	cmd.AddCommand(newTableListCmd())
	cmd.AddCommand(newTableShowCmd())
	return cmd
}

func newTableCreateCmd() *cobra.Command {
	var columns []string
	cmd := &cobra.Command{
		Use:   "create NAME --column name:Type [--column name:Type ...]",
		Short: "Create a table with typed columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, err := parseColumns(columns)
			if err != nil {
				return err
			}
			schema, err := types.NewSchema(cols)
			if err != nil {
				return err
			}

			s, err := attachStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			db, err := s.Database()
			if err != nil {
				return err
			}
			if _, err := db.CreateTable(args[0], schema); err != nil {
				return fmt.Errorf("create table %q: %w", args[0], err)
			}
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf("Created table %q with %d column(s)\n", args[0], len(cols))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&columns, "column", nil, "column definition name:Type (repeatable)")
	cmd.MarkFlagRequired("column")
	return cmd
}

func newTableDropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop NAME",
		Short: "Drop a table and all its rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := attachStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			db, err := s.Database()
			if err != nil {
				return err
			}
			if err := db.DropTable(args[0]); err != nil {
				return fmt.Errorf("drop table %q: %w", args[0], err)
			}
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf("Dropped table %q\n", args[0])
			return nil
		},
	}
}

func newTableListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List table names",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := attachStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			db, err := s.Database()
			if err != nil {
				return err
			}
			names := db.TableNames()
			if flags.jsonMode {
				return printJSON(names)
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func newTableShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a table's schema and rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := attachStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			db, err := s.Database()
			if err != nil {
				return err
			}
			table, err := db.GetTable(args[0])
			if err != nil {
				return fmt.Errorf("table %q: %w", args[0], err)
			}

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
				return printJSON(map[string]any{
					"name":    args[0],
					"schema":  schema.Columns(),
					"records": rows,
				})
			}

			for _, col := range schema.Columns() {
				fmt.Printf("%s: %s\n", col.Name, col.Type)
			}
			for pos, rec := range table.All() {
				fmt.Printf("%d: %s\n", pos, renderRecord(schema, rec))
			}
			return nil
		},
	}
}
