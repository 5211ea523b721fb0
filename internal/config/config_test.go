package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load of a missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadOverlaysOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mjc.yaml")
	contents := "output: out.c\nmaxErrors: 5\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output != "out.c" {
		t.Errorf("Output = %q, want out.c", cfg.Output)
	}
	if cfg.MaxErrors != 5 {
		t.Errorf("MaxErrors = %d, want 5", cfg.MaxErrors)
	}
	// Emit wasn't set in the file, so it should retain the default.
	if cfg.Emit != "c" {
		t.Errorf("Emit = %q, want default %q", cfg.Emit, "c")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mjc.yaml")
	if err := os.WriteFile(path, []byte("output: [unterminated"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
