package cmd

import (
	"fmt"
	"os"
)

// readSource resolves a command's input: either the literal text passed via
// -e/--eval, or the contents of the single positional file argument.
func readSource(args []string, eval string) (input, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e/--eval for inline code")
}
