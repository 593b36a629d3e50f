// errors.go — diagnostic types and caret-snippet rendering.
//
// The lexer, parser and walker report positions as byte offsets into the
// source; human coordinates are derived only at render time. The entry
// points are WrapErrorWithSource and WrapErrorWithName, which recognize
// *LexError and *ParseError and replace them with a multi-line snippet:
//
//	PARSE ERROR in demo.stix at 3:14: expected ";", found ")"
//
//	   2 | let x = (1 + 2
//	   3 |              )
//	     |             ^
//	   4 | x;
//
// The snippet shows up to one line of context before and after, numbers
// the lines, and places a caret under the 1-based column. Other error
// kinds pass through unchanged.
package stix

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// LexError reports input no lexical rule matched. Offset is the byte
// offset of the first offending byte and Slice is the full rune starting
// there.
type LexError struct {
	Offset int
	Slice  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unrecognized token %q at byte offset %d", e.Slice, e.Offset)
}

// ParseError reports a token the grammar could not accept.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at byte offset %d", e.Msg, e.Offset)
}

// TypeUsageError reports a structurally ill-formed type, such as an
// intersection containing a primitive member.
type TypeUsageError struct {
	Msg string
}

func (e *TypeUsageError) Error() string { return e.Msg }

// ErrUnsupportedMode is returned by compilation entry points asked for an
// output form the toolchain cannot produce yet.
var ErrUnsupportedMode = errors.New("unsupported compilation mode")

// WrapErrorWithSource returns err augmented with a caret-annotated snippet
// of src. It recognizes *LexError and *ParseError; anything else is
// returned untouched.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name in the
// header, e.g. a file path.
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		line, col := lineColAt(src, e.Offset)
		msg := fmt.Sprintf("unrecognized token %q", e.Slice)
		return errors.New(prettyErrorStringLabeled(src, "LEXICAL ERROR", srcName, line, col, msg))
	case *ParseError:
		line, col := lineColAt(src, e.Offset)
		return errors.New(prettyErrorStringLabeled(src, "PARSE ERROR", srcName, line, col, e.Msg))
	default:
		return err
	}
}

// lineColAt converts a byte offset into 1-based line and column numbers;
// columns count runes. Out-of-range offsets clamp to the source bounds.
func lineColAt(src string, offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	line, col = 1, 1
	for i := 0; i < offset; {
		r, size := utf8.DecodeRuneInString(src[i:])
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i += size
	}
	return line, col
}

// prettyErrorStringLabeled builds a Python-like snippet with a header and
// a caret. It shows at most one previous and one next line when available.
// Coordinates are 1-based and clamped to the source bounds.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
