package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newInitCmd creates the "shelf init" command. It writes the default
// config.yaml, creates the data directory, and persists an empty database.
func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the shelf configuration and database",
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
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf("Initialized database %q\n", db.Name())
			return nil
		},
	}
}
