package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	aboutFlag   bool
	evalExpr    string
	dumpAST     bool
	trace       bool
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:                   "nyx <script.nyx> [script_args...]",
	Short:                 "Nyx scripting language interpreter",
	Long:                  `nyx executes Nyx scripts: dynamically-typed, closure-supporting, with a small native standard library (std:io, std:math, std:string, std:list, std:time, std:type).`,
	Version:               Version,
	DisableFlagsInUseLine: true,
	Args:                  cobra.ArbitraryArgs,
	SilenceUsage:          true,
	RunE:                  runRoot,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().BoolVar(&aboutFlag, "about", false, "print about text and exit")
	rootCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading a script file")
	rootCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before executing")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "trace statement execution to stderr")
	rootCmd.Flags().BoolVar(&verboseFlag, "verbose", false, "print the script path to stderr before executing it")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
