package cmd

import (
	"fmt"
	"os"

	"github.com/mjlang/mjc/internal/ast"
	"github.com/mjlang/mjc/internal/config"
	"github.com/mjlang/mjc/internal/errors"
	"github.com/mjlang/mjc/internal/lexer"
	"github.com/mjlang/mjc/internal/parser"
	"github.com/mjlang/mjc/internal/semantic"
	"github.com/spf13/cobra"
)

var checkEval string

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse and type-check a MiniJava file without generating C",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkEval, "eval", "e", "", "check inline code instead of reading from file")
}

func runCheck(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args, checkEval)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, _, sink, checkErr := compile(input, filename, cfg)
	if checkErr != nil {
		fmt.Fprint(os.Stderr, formatSink(sink, true))
		return checkErr
	}

	fmt.Println("ok")
	return nil
}

// compile runs stages 1-2 (Symbol Builder, Type Checker) and returns the
// parse tree and populated symbol table alongside the sink that collected
// any errors.
func compile(input, filename string, cfg config.Config) (*ast.Program, *semantic.SymbolTable, *errors.Sink, error) {
	l := lexer.New(input)
	p := parser.New(l)
	prog, perr := p.ParseProgram()
	if perr != nil {
		sink := errors.NewSink(input, filename, cfg.MaxErrors)
		for _, e := range p.Errors() {
			sink.Error(e.Pos, "%s", e.Message)
		}
		return nil, nil, sink, sink.Die()
	}

	sink := errors.NewSink(input, filename, cfg.MaxErrors)
	st := semantic.Build(prog, sink)
	semantic.Check(prog, st, sink)

	return prog, st, sink, sink.Die()
}

func formatSink(sink *errors.Sink, color bool) string {
	if sink == nil {
		return ""
	}
	out := ""
	for _, e := range sink.Errors() {
		out += e.Format(color) + "\n"
	}
	return out
}
