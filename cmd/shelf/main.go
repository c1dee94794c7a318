// Command shelf is the CLI entry point for the shelfdb database manager.
package main

import "github.com/dukaforge/shelfdb/internal/cli"

func main() {
	cli.Execute()
}
