package stix

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_Compile_ToMemRunsAllPhases(t *testing.T) {
	root, err := CompileToMem("fn add(a: int, b: int) -> int { a + b; }\nlet r = add(1, 2);")
	if err != nil {
		t.Fatalf("CompileToMem: %v", err)
	}
	if len(root.Value.Stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(root.Value.Stmts))
	}
}

func Test_Compile_ToMemSurfacesLexErrors(t *testing.T) {
	_, err := CompileToMem("let hello_world = ℵ")
	var le *LexError
	if !errors.As(err, &le) {
		t.Fatalf("got %v, want a *LexError", err)
	}
}

func Test_Compile_ToBinaryIsUnsupported(t *testing.T) {
	err := CompileToBinary("let x = 1;", "out")
	if !errors.Is(err, ErrUnsupportedMode) {
		t.Fatalf("got %v, want ErrUnsupportedMode", err)
	}
	// The front end still runs first; broken sources fail before the mode
	// check.
	err = CompileToBinary("let x = ;", "out")
	if errors.Is(err, ErrUnsupportedMode) {
		t.Fatalf("mode error masked the parse error: %v", err)
	}
}

func Test_Compile_FileInJITMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.stix")
	if err := os.WriteFile(path, []byte("let x = 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Compile(path, JIT()); err != nil {
		t.Fatalf("Compile: %v", err)
	}
}

func Test_Compile_FileErrorsAreRenderedAgainstSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.stix")
	if err := os.WriteFile(path, []byte("let x = ;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := Compile(path, JIT())
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "PARSE ERROR in "+path) || !strings.Contains(msg, "^") {
		t.Fatalf("expected a caret snippet naming the file:\n%s", msg)
	}
}

func Test_Compile_FileInAOTModeReportsUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.stix")
	if err := os.WriteFile(path, []byte("let x = 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := Compile(path, AheadOfTime(filepath.Join(dir, "prog")))
	if !errors.Is(err, ErrUnsupportedMode) {
		t.Fatalf("got %v, want ErrUnsupportedMode", err)
	}
}

func Test_Compile_MissingFile(t *testing.T) {
	if err := Compile(filepath.Join(t.TempDir(), "nope.stix"), JIT()); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

func Test_Mode_Constructors(t *testing.T) {
	if m := JIT(); m.Kind != ModeJIT || m.Dest != "" {
		t.Fatalf("JIT() = %+v", m)
	}
	if m := AheadOfTime("a.out"); m.Kind != ModeAOT || m.Dest != "a.out" {
		t.Fatalf("AheadOfTime() = %+v", m)
	}
	if ModeJIT.String() != "jit" || ModeAOT.String() != "aot" {
		t.Fatalf("mode names: %s %s", ModeJIT, ModeAOT)
	}
}
