package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the shelf CLI version string.
const Version = "0.1.0"

// newVersionCmd creates the "shelf version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("shelf v%s\n", Version)
		},
	}
}
