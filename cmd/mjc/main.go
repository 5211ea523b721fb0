// Command mjc compiles MiniJava programs to C.
package main

import (
	"os"

	"github.com/mjlang/mjc/cmd/mjc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
