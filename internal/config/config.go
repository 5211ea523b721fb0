// Package config loads the optional `.mjc.yaml` project file that adjusts
// compiler defaults (output path, emitted artifacts, error-limit and
// warning-strictness policy) without requiring a flag on every invocation.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the resolved set of compiler options, after merging
// `.mjc.yaml` (if present) over Default().
type Config struct {
	// Output is the destination path for generated C; "-" means stdout.
	Output string `yaml:"output"`

	// Emit selects what the `build` subcommand writes: "c" (the default,
	// generated C source), "tac" (the lowered TAC dump), or "symbols"
	// (the resolved symbol table).
	Emit string `yaml:"emit"`

	// WarningsAsErrors promotes type-checker warnings (currently none are
	// emitted as warnings rather than errors, but the knob exists so a
	// future diagnostic can be downgraded without a breaking config change).
	WarningsAsErrors bool `yaml:"warningsAsErrors"`

	// MaxErrors caps how many user errors Sink records before silently
	// dropping the rest (0 = unlimited).
	MaxErrors int `yaml:"maxErrors"`
}

// Default returns the built-in configuration used when no `.mjc.yaml` is
// found.
func Default() Config {
	return Config{
		Output:           "-",
		Emit:             "c",
		WarningsAsErrors: false,
		MaxErrors:        0,
	}
}

// Load reads path (typically ".mjc.yaml") and overlays it onto Default().
// A missing file is not an error — it just yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
