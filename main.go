// Command cryptile encrypts and decrypts files into .cryptile containers.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/cryptile/internal/commands"
	"github.com/idelchi/cryptile/internal/config"
	"github.com/idelchi/cryptile/internal/logic"
)

// version is set at build time.
var version = "unknown"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", logic.Describe(err))

		os.Exit(1)
	}
}
