// Package cli implements the shelf command-line interface: table and row
// CRUD, sorting, and store initialization over the persistence backends.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/dukaforge/shelfdb/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	database  string
	backend   string
	jsonMode  bool
	verbose   bool
}

var flags rootFlags

// NewRootCmd creates the top-level "shelf" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shelf",
		Short: "A minimal typed-record database manager",
		Long: "Shelf manages databases of typed, validated records. Tables are\n" +
			"defined with typed columns; rows are validated on every insert and\n" +
			"update and persisted through a JSON or SQLite backend.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .shelf)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .shelf-db)")
	root.PersistentFlags().StringVar(&flags.database, "database", "", "database name (default: shelf)")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "storage backend: json or sqlite")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log backend activity")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newTableCmd())
	root.AddCommand(newRowCmd())
	root.AddCommand(newSortCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		if isUserError(err) {
			os.Exit(exitUserError)
		}
		os.Exit(exitSysError)
	}
}

// isUserError reports whether the error is caller misuse (bad input, stale
// position, typo'd column or table) rather than a system failure.
func isUserError(err error) bool {
	var (
		verrs   types.ValidationErrors
		verr    *types.ValidationError
		unknown *types.UnknownColumnError
		oor     *types.OutOfRangeError
	)
	if errors.As(err, &verrs) || errors.As(err, &verr) ||
		errors.As(err, &unknown) || errors.As(err, &oor) {
		return true
	}
	return errors.Is(err, types.ErrTableNotFound) ||
		errors.Is(err, types.ErrTableExists) ||
		errors.Is(err, types.ErrInvalidName) ||
		errors.Is(err, types.ErrBackendUnknown)
}

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() string {
	if flags.configDir != "" {
		return flags.configDir
	}
	if v := os.Getenv("SHELF_CONFIG_DIR"); v != "" {
		return v
	}
	return ".shelf"
}
