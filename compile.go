// compile.go — compilation driver.
//
// The front end runs in three phases: tokenize, parse, walk. CompileToMem
// runs them over an in-memory source string; Compile reads a file, picks
// the requested mode and renders any diagnostic against the file's
// contents. Ahead-of-time output is not implemented; requesting it
// reports ErrUnsupportedMode.
package stix

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Version is the toolchain version reported by the CLI.
const Version = "0.1.0"

// ModeKind selects the compilation strategy.
type ModeKind uint8

const (
	// ModeJIT compiles in memory and would execute the result directly.
	ModeJIT ModeKind = iota
	// ModeAOT compiles to a binary on disk.
	ModeAOT
)

func (k ModeKind) String() string {
	if k == ModeAOT {
		return "aot"
	}
	return "jit"
}

// Mode is a compilation request: a strategy plus, for ahead-of-time
// builds, the destination path.
type Mode struct {
	Kind ModeKind
	Dest string
}

// JIT returns the in-memory compilation mode.
func JIT() Mode { return Mode{Kind: ModeJIT} }

// AheadOfTime returns the binary-output mode targeting dest.
func AheadOfTime(dest string) Mode { return Mode{Kind: ModeAOT, Dest: dest} }

// CompileToMem runs the front end over src and returns the scope-checked
// tree. Diagnostics are returned raw; callers wanting caret snippets wrap
// them with WrapErrorWithSource.
func CompileToMem(src string) (*Node[Block], error) {
	start := time.Now()
	root, err := Parse(src)
	if err != nil {
		return nil, err
	}
	slog.Debug("parsed", "dur", time.Since(start))

	start = time.Now()
	walker := NewWalker()
	if err := walker.Walk(root); err != nil {
		return nil, err
	}
	slog.Debug("walked", "dur", time.Since(start))
	return root, nil
}

// CompileToBinary would lower the tree to a native binary at dest.
func CompileToBinary(src, dest string) error {
	if _, err := CompileToMem(src); err != nil {
		return err
	}
	return fmt.Errorf("%w: no native code generator is available", ErrUnsupportedMode)
}

// Compile reads the file at path and compiles it under mode. Lex and
// parse diagnostics come back rendered against the file's contents.
func Compile(path string, mode Mode) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	src := string(data)
	slog.Debug("compiling", "path", path, "mode", mode.Kind)

	switch mode.Kind {
	case ModeAOT:
		err = CompileToBinary(src, mode.Dest)
	default:
		_, err = CompileToMem(src)
	}
	if err != nil {
		return WrapErrorWithName(err, path, src)
	}
	return nil
}
