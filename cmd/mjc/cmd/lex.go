package cmd

import (
	"fmt"

	"github.com/mjlang/mjc/internal/lexer"
	"github.com/mjlang/mjc/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexEval    string
	lexShowPos bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a MiniJava file or expression",
	Long: `Tokenize a MiniJava program and print the resulting tokens, one per
line. Useful for debugging the lexer.

Examples:
  mjc lex Factorial.java
  mjc lex -e "1 + 2 * 3"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", true, "show token positions (line:column)")
}

func runLex(_ *cobra.Command, args []string) error {
	input, _, err := readSource(args, lexEval)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	for {
		tok := l.NextToken()
		if lexShowPos {
			fmt.Printf("%-12s %-20q @%s\n", tok.Type, tok.Literal, tok.Pos)
		} else {
			fmt.Printf("%-12s %q\n", tok.Type, tok.Literal)
		}
		if tok.Type == token.EOF {
			break
		}
	}
	return nil
}
