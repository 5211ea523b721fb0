package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteOutputToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.c")

	if err := writeOutput(path, []byte("hello")); err != nil {
		t.Fatalf("writeOutput: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestRunBuildEmitsC(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Main.java")
	out := filepath.Join(dir, "Main.c")
	if err := os.WriteFile(src, []byte(`class Main {
    public static void main(String[] args) {
        System.out.println(1 + 2);
    }
}
`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	buildOut = out
	buildEmit = ""
	buildEval = ""
	buildDumpTAC = false
	configPath = filepath.Join(dir, ".mjc.yaml") // deliberately missing -> defaults
	defer func() { buildOut, buildEmit, configPath = "", "", ".mjc.yaml" }()

	if err := runBuild(nil, []string{src}); err != nil {
		t.Fatalf("runBuild: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading generated C: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("generated C file is empty")
	}
}

func TestRunBuildDumpTAC(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Main.java")
	out := filepath.Join(dir, "Main.tac")
	if err := os.WriteFile(src, []byte(`class Main {
    public static void main(String[] args) {
        System.out.println(1);
    }
}
`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	buildOut = out
	buildDumpTAC = true
	buildEval = ""
	configPath = filepath.Join(dir, ".mjc.yaml")
	defer func() { buildOut, buildDumpTAC, configPath = "", false, ".mjc.yaml" }()

	if err := runBuild(nil, []string{src}); err != nil {
		t.Fatalf("runBuild: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading TAC dump: %v", err)
	}
	if string(data) == "" {
		t.Fatal("TAC dump is empty")
	}
}
