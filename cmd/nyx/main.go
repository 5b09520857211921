// Command nyx is the Nyx scripting language's command-line front end.
package main

import (
	"os"

	"github.com/nyxlang/nyx/cmd/nyx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
