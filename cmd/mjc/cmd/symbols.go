package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mjlang/mjc/internal/config"
	"github.com/mjlang/mjc/internal/semantic"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var (
	symbolsEval string
	symbolsJSON bool
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [file]",
	Short: "Print the resolved class/field/method symbol table",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
	symbolsCmd.Flags().StringVarP(&symbolsEval, "eval", "e", "", "check inline code instead of reading from file")
	symbolsCmd.Flags().BoolVar(&symbolsJSON, "json", false, "emit the symbol table as JSON instead of a text table")
}

func runSymbols(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args, symbolsEval)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, st, sink, compileErr := compile(input, filename, cfg)
	if st == nil {
		fmt.Fprint(os.Stderr, formatSink(sink, true))
		return compileErr
	}

	if symbolsJSON {
		doc, err := symbolsToJSON(st)
		if err != nil {
			return err
		}
		fmt.Println(doc)
	} else {
		printSymbolsText(os.Stdout, st)
	}

	// Type errors don't prevent printing the symbol table (pass 1 always
	// completes), but the command should still fail the build.
	return compileErr
}

// printSymbolsText renders the text form of the symbol table to w. Shared by
// the `symbols` subcommand and `mjc build --emit symbols`.
func printSymbolsText(w io.Writer, st *semantic.SymbolTable) {
	for _, c := range st.Classes() {
		super := "-"
		if c.Super != nil {
			super = c.Super.Name
		}
		fmt.Fprintf(w, "class %s extends %s\n", c.Name, super)
		for _, f := range c.OwnFields() {
			offset, _ := c.FieldOffset(f.Name)
			fmt.Fprintf(w, "  field  %-12s %-10s offset=%d\n", f.Name, f.Type, offset)
		}
		for _, m := range c.OwnMethods() {
			slot, _ := c.MethodSlot(m.Name)
			fmt.Fprintf(w, "  method %-12s %-10s slot=%d\n", m.Name, m.Return, slot)
		}
	}
}

// symbolsToJSON builds a JSON document describing every class's fields and
// methods via sequential sjson.Set calls, in the style of an
// incrementally-assembled document rather than a marshaled struct.
func symbolsToJSON(st *semantic.SymbolTable) (string, error) {
	doc := "{}"
	var err error

	for ci, c := range st.Classes() {
		base := fmt.Sprintf("classes.%d", ci)
		doc, err = sjson.Set(doc, base+".name", c.Name)
		if err != nil {
			return "", err
		}
		if c.Super != nil {
			doc, err = sjson.Set(doc, base+".extends", c.Super.Name)
			if err != nil {
				return "", err
			}
		}
		for fi, f := range c.OwnFields() {
			offset, _ := c.FieldOffset(f.Name)
			doc, err = sjson.Set(doc, fmt.Sprintf("%s.fields.%d.name", base, fi), f.Name)
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, fmt.Sprintf("%s.fields.%d.type", base, fi), f.Type.String())
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, fmt.Sprintf("%s.fields.%d.offset", base, fi), offset)
			if err != nil {
				return "", err
			}
		}
		for mi, m := range c.OwnMethods() {
			slot, _ := c.MethodSlot(m.Name)
			doc, err = sjson.Set(doc, fmt.Sprintf("%s.methods.%d.name", base, mi), m.Name)
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, fmt.Sprintf("%s.methods.%d.return", base, mi), m.Return.String())
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, fmt.Sprintf("%s.methods.%d.slot", base, mi), slot)
			if err != nil {
				return "", err
			}
		}
	}

	return doc, nil
}
