package cmd

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/mjlang/mjc/internal/lexer"
	"github.com/mjlang/mjc/internal/parser"
	"github.com/spf13/cobra"
)

var astEval string

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Parse a MiniJava file and print its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().StringVarP(&astEval, "eval", "e", "", "parse inline code instead of reading from file")
}

func runAST(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args, astEval)
	if err != nil {
		return err
	}

	p := parser.New(lexer.New(input))
	prog, perr := p.ParseProgram()
	if perr != nil {
		for _, e := range p.Errors() {
			fmt.Printf("%s:%s\n", filename, e.Error())
		}
		return perr
	}

	pretty.Println(prog)
	return nil
}
