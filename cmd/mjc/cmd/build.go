package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/mjlang/mjc/internal/codegen/cbackend"
	"github.com/mjlang/mjc/internal/config"
	"github.com/mjlang/mjc/internal/ir"
	"github.com/spf13/cobra"
)

var (
	buildEval    string
	buildOut     string
	buildEmit    string
	buildDumpTAC bool
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a MiniJava file to C (or dump its intermediate forms)",
	Long: `Run the full pipeline — lex, parse, check, lower to TAC, generate C —
and write the result to stdout or --out.

Examples:
  mjc build Factorial.java
  mjc build Factorial.java --out factorial.c
  mjc build Factorial.java --dump-tac
  mjc build -e "..." --emit symbols`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildEval, "eval", "e", "", "compile inline code instead of reading from file")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output file (overrides config, default stdout)")
	buildCmd.Flags().StringVar(&buildEmit, "emit", "", "output form: c, tac, symbols (overrides config)")
	buildCmd.Flags().BoolVar(&buildDumpTAC, "dump-tac", false, "shorthand for --emit tac")
}

func runBuild(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args, buildEval)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if buildOut != "" {
		cfg.Output = buildOut
	}
	if buildEmit != "" {
		cfg.Emit = buildEmit
	}
	if buildDumpTAC {
		cfg.Emit = "tac"
	}

	prog, st, sink, compileErr := compile(input, filename, cfg)
	if compileErr != nil {
		fmt.Fprint(os.Stderr, formatSink(sink, true))
		return compileErr
	}

	var buf bytes.Buffer
	switch cfg.Emit {
	case "tac":
		ir.Dump(&buf, ir.Lower(prog, st))
	case "symbols":
		printSymbolsText(&buf, st)
	case "c", "":
		if err := cbackend.Emit(&buf, ir.Lower(prog, st)); err != nil {
			return fmt.Errorf("generating C: %w", err)
		}
	default:
		return fmt.Errorf("unknown --emit form %q (want c, tac or symbols)", cfg.Emit)
	}

	return writeOutput(cfg.Output, buf.Bytes())
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
