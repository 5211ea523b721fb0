package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mjc",
	Short: "MiniJava-to-C compiler",
	Long: `mjc compiles MiniJava — a small, statically typed, class-based
object-oriented language — to C by way of a three-address intermediate
representation (TAC).

The pipeline is four stages: Symbol Builder (class/field/method
registration with inheritance), Type Checker (enforces MiniJava's type
rules on the parse tree), IR Lowering (emits TAC blocks with object layout
and method-table dispatch), and the C Backend (a single translation unit
compilable with any C89-or-later compiler).`,
	Version: Version,
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

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".mjc.yaml", "path to the project config file")
}
