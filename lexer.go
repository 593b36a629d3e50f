// lexer.go — source text → token sequence.
//
// The lexer is a pure left-to-right byte scanner over an immutable source
// string. At each position it tries, in order: whitespace, comments,
// literals (base-prefixed integers, floats, floats with exponents, chars,
// unicode-escaped chars, strings), identifiers, and finally the fixed
// punctuation/operator spellings (longest first). Whitespace and comments
// are recognized and consumed but never emitted, so the output sequence
// contains only meaningful tokens with strictly increasing, non-overlapping
// byte offsets.
//
// The scan is fail-fast: the first position where no rule matches aborts
// the whole scan with a *LexError naming the byte offset and the offending
// slice. No recovery token is emitted and no partial token list is
// returned. Line/column are deliberately not computed here; see errors.go
// for on-demand derivation when rendering.
package stix

import (
	"unicode/utf8"
)

// TokenKind is the closed set of token classifications.
type TokenKind uint8

const (
	// KindError marks input no lexical rule matched.
	KindError TokenKind = iota
	// KindIdent is an identifier: [A-Za-z_][A-Za-z0-9_]*. Keywords are not
	// distinguished at this layer; `let` and `fn` are plain identifiers.
	KindIdent
	// KindWhitespace is recognized but never emitted.
	KindWhitespace
	// KindLineComment is `# ...` to end of line; recognized, never emitted.
	KindLineComment
	// KindBlockComment is `/* ... */`; recognized, never emitted.
	KindBlockComment
	// KindLiteral is any literal; the sub-kind lives in Token.Lit.
	KindLiteral

	// Punctuation.
	KindSemi         // ";"
	KindOpenBrace    // "{"
	KindCloseBrace   // "}"
	KindOpenParen    // "("
	KindCloseParen   // ")"
	KindOpenBracket  // "["
	KindCloseBracket // "]"
	KindComma        // ","
	KindColon        // ":"
	KindQuestion     // "?"
	KindDot          // "."
	KindAt           // "@"

	// Single-character operators.
	KindPlus    // "+"
	KindMinus   // "-"
	KindStar    // "*"
	KindSlash   // "/"
	KindPercent // "%"
	KindAmp     // "&"
	KindPipe    // "|"
	KindCaret   // "^"
	KindTilde   // "~"
	KindNot     // "!"
	KindLt      // "<"
	KindGt      // ">"
	KindEq      // "="

	// Multi-character operators, matched longest-first.
	KindShl        // "<<"
	KindShr        // ">>"
	KindEqEq       // "=="
	KindNotEq      // "!="
	KindLtEq       // "<="
	KindGtEq       // ">="
	KindAmpAmp     // "&&"
	KindPipePipe   // "||"
	KindArrow      // "->"
	KindPlusPlus   // "++"
	KindMinusMinus // "--"
	KindPlusEq     // "+="
	KindMinusEq    // "-="
	KindStarEq     // "*="
	KindSlashEq    // "/="
	KindPercentEq  // "%="
	KindAmpEq      // "&="
	KindPipeEq     // "|="
	KindCaretEq    // "^="
	KindShlEq      // "<<="
	KindShrEq      // ">>="
)

var tokenKindNames = map[TokenKind]string{
	KindError:        "Error",
	KindIdent:        "Ident",
	KindWhitespace:   "Whitespace",
	KindLineComment:  "LineComment",
	KindBlockComment: "BlockComment",
	KindLiteral:      "Literal",
	KindSemi:         "Semi",
	KindOpenBrace:    "OpenBrace",
	KindCloseBrace:   "CloseBrace",
	KindOpenParen:    "OpenParen",
	KindCloseParen:   "CloseParen",
	KindOpenBracket:  "OpenBracket",
	KindCloseBracket: "CloseBracket",
	KindComma:        "Comma",
	KindColon:        "Colon",
	KindQuestion:     "Question",
	KindDot:          "Dot",
	KindAt:           "At",
	KindPlus:         "Plus",
	KindMinus:        "Minus",
	KindStar:         "Star",
	KindSlash:        "Slash",
	KindPercent:      "Percent",
	KindAmp:          "Amp",
	KindPipe:         "Pipe",
	KindCaret:        "Caret",
	KindTilde:        "Tilde",
	KindNot:          "Not",
	KindLt:           "Lt",
	KindGt:           "Gt",
	KindEq:           "Eq",
	KindShl:          "Shl",
	KindShr:          "Shr",
	KindEqEq:         "EqEq",
	KindNotEq:        "NotEq",
	KindLtEq:         "LtEq",
	KindGtEq:         "GtEq",
	KindAmpAmp:       "AmpAmp",
	KindPipePipe:     "PipePipe",
	KindArrow:        "Arrow",
	KindPlusPlus:     "PlusPlus",
	KindMinusMinus:   "MinusMinus",
	KindPlusEq:       "PlusEq",
	KindMinusEq:      "MinusEq",
	KindStarEq:       "StarEq",
	KindSlashEq:      "SlashEq",
	KindPercentEq:    "PercentEq",
	KindAmpEq:        "AmpEq",
	KindPipeEq:       "PipeEq",
	KindCaretEq:      "CaretEq",
	KindShlEq:        "ShlEq",
	KindShrEq:        "ShrEq",
}

func (k TokenKind) String() string {
	if s, ok := tokenKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Base is the numeric radix classification of an integer or float literal.
type Base uint8

const (
	Decimal Base = iota
	Hexadecimal
	Octal
	Binary
)

func (b Base) String() string {
	switch b {
	case Hexadecimal:
		return "hexadecimal"
	case Octal:
		return "octal"
	case Binary:
		return "binary"
	}
	return "decimal"
}

// ResolveBase classifies the radix of a matched literal slice. It is a pure
// function of the text: one leading sign is skipped, then the first two
// bytes decide (`0x` hex, `0o` octal, `0b` binary, anything else decimal).
// Because the classification depends only on the slice, it cannot disagree
// between overlapping literal rules that match the same text.
func ResolveBase(s string) Base {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if len(s) < 2 {
		return Decimal
	}
	switch s[0:2] {
	case "0x":
		return Hexadecimal
	case "0o":
		return Octal
	case "0b":
		return Binary
	}
	return Decimal
}

// LiteralKind is the sub-classification of a literal token.
type LiteralKind uint8

const (
	// LitError marks a literal no rule matched.
	LitError LiteralKind = iota
	LitInt
	LitFloat
	LitChar
	LitString
)

func (k LiteralKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitChar:
		return "char"
	case LitString:
		return "string"
	}
	return "error"
}

// Token is a lexical unit. Offset/Length locate the raw Text slice in the
// source; Lit and Base are meaningful only when Kind is KindLiteral (and
// Base only for int/float sub-kinds).
type Token struct {
	Kind   TokenKind
	Offset int
	Length int
	Text   string
	Lit    LiteralKind
	Base   Base
}

// Lexer scans a source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of the token being scanned
	cur    int // current index
	tokens []Token
}

// NewLexer creates a lexer over src. The lexer borrows src read-only for
// the duration of the scan and keeps no state between scans.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Tokenize scans src to completion and returns the emitted tokens, or the
// first *LexError encountered.
func Tokenize(src string) ([]Token, error) {
	return NewLexer(src).Scan()
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	return ch, true
}

func (l *Lexer) emit(kind TokenKind) Token {
	tok := Token{
		Kind:   kind,
		Offset: l.start,
		Length: l.cur - l.start,
		Text:   l.src[l.start:l.cur],
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) emitLiteral(lit LiteralKind) Token {
	text := l.src[l.start:l.cur]
	tok := Token{
		Kind:   KindLiteral,
		Offset: l.start,
		Length: l.cur - l.start,
		Text:   text,
		Lit:    lit,
		Base:   ResolveBase(text),
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

// errAt builds the fail-fast error for the rune beginning at offset.
func (l *Lexer) errAt(offset int) error {
	r, size := utf8.DecodeRuneInString(l.src[offset:])
	if r == utf8.RuneError && size <= 1 {
		size = 1
	}
	return &LexError{Offset: offset, Slice: l.src[offset : offset+size]}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
func isOctalDigit(b byte) bool  { return b >= '0' && b <= '7' }
func isBinaryDigit(b byte) bool { return b == '0' || b == '1' }
func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

// skipWhitespace consumes spaces, tabs, carriage returns and newlines.
func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.src[l.cur] {
		case ' ', '\t', '\r', '\n':
			l.cur++
			l.start = l.cur
		default:
			return
		}
	}
}

// skipLineComment consumes `# ...` up to (not including) the newline.
func (l *Lexer) skipLineComment() {
	for !l.isAtEnd() && l.src[l.cur] != '\n' {
		l.cur++
	}
	l.start = l.cur
}

// skipBlockComment consumes `/* ... */`, which may span lines. An
// unterminated comment is a lex error at the opener.
func (l *Lexer) skipBlockComment() error {
	opener := l.cur
	l.cur += 2 // consume "/*"
	for l.cur+1 < len(l.src) {
		if l.src[l.cur] == '*' && l.src[l.cur+1] == '/' {
			l.cur += 2
			l.start = l.cur
			return nil
		}
		l.cur++
	}
	return l.errAt(opener)
}

// digitsWhile consumes a run of digits accepted by pred, reporting whether
// at least one was consumed.
func (l *Lexer) digitsWhile(pred func(byte) bool) bool {
	saw := false
	for {
		b, ok := l.peek()
		if !ok || !pred(b) {
			return saw
		}
		l.advance()
		saw = true
	}
}

// scanNumber scans an integer or float literal starting at l.start. The
// optional sign has already been consumed by the caller. Base-prefixed
// forms (0x/0o/0b/0d) are always integers; decimal forms may continue into
// a fraction and/or exponent, which makes them floats.
func (l *Lexer) scanNumber() (Token, error) {
	if b, ok := l.peek(); ok && b == '0' {
		if p, ok := l.peekN(1); ok {
			var pred func(byte) bool
			switch p {
			case 'x':
				pred = isHexDigit
			case 'o':
				pred = isOctalDigit
			case 'b':
				pred = isBinaryDigit
			case 'd':
				pred = isDigit
			}
			if pred != nil {
				if d, ok := l.peekN(2); ok && pred(d) {
					l.advance() // '0'
					l.advance() // prefix letter
					l.digitsWhile(pred)
					return l.emitLiteral(LitInt), nil
				}
			}
		}
	}

	sawDigits := l.digitsWhile(isDigit)

	// fraction: [0-9]* '.' [0-9]+
	sawDot := false
	if b, ok := l.peek(); ok && b == '.' {
		if d, ok := l.peekN(1); ok && isDigit(d) {
			l.advance() // '.'
			l.digitsWhile(isDigit)
			sawDot = true
			sawDigits = true
		}
	}

	// exponent: e [+-]? [0-9]+
	sawExp := false
	if b, ok := l.peek(); ok && sawDigits && (b == 'e' || b == 'E') {
		save := l.cur
		l.advance()
		if s, ok := l.peek(); ok && (s == '+' || s == '-') {
			l.advance()
		}
		if l.digitsWhile(isDigit) {
			sawExp = true
		} else {
			l.cur = save
		}
	}

	if !sawDigits {
		return Token{}, l.errAt(l.start)
	}
	if sawDot || sawExp {
		return l.emitLiteral(LitFloat), nil
	}
	return l.emitLiteral(LitInt), nil
}

// scanChar scans a single-rune character literal or a unicode escape of
// the form backslash-u followed by four hex digits. The opening quote has
// been consumed.
func (l *Lexer) scanChar() (Token, error) {
	b, ok := l.peek()
	if !ok {
		return Token{}, l.errAt(l.start)
	}
	if b == '\\' {
		// unicode escape
		l.advance()
		if u, ok := l.peek(); !ok || u != 'u' {
			return Token{}, l.errAt(l.start)
		}
		l.advance()
		for i := 0; i < 4; i++ {
			h, ok := l.peek()
			if !ok || !isHexDigit(h) {
				return Token{}, l.errAt(l.start)
			}
			l.advance()
		}
	} else {
		r, size := utf8.DecodeRuneInString(l.src[l.cur:])
		if r == utf8.RuneError && size <= 1 {
			return Token{}, l.errAt(l.start)
		}
		l.cur += size
	}
	if q, ok := l.peek(); !ok || q != '\'' {
		return Token{}, l.errAt(l.start)
	}
	l.advance()
	return l.emitLiteral(LitChar), nil
}

// scanString scans a double-quoted string, allowing `\"` escapes. The
// opening quote has been consumed. The raw text is preserved; no
// unescaping happens at this layer.
func (l *Lexer) scanString() (Token, error) {
	for {
		b, ok := l.advance()
		if !ok {
			return Token{}, l.errAt(l.start)
		}
		switch b {
		case '"':
			return l.emitLiteral(LitString), nil
		case '\\':
			if n, ok := l.peek(); ok && n == '"' {
				l.advance()
			}
		}
	}
}

func (l *Lexer) scanIdentifier() Token {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.emit(KindIdent)
}

// signStartsLiteral reports whether a '+'/'-' at the current position opens
// a signed numeric literal rather than an operator: true when the next
// byte is a digit or a '.' followed by a digit.
func (l *Lexer) signStartsLiteral() bool {
	b, ok := l.peekN(1)
	if !ok {
		return false
	}
	if isDigit(b) {
		return true
	}
	if b == '.' {
		d, ok := l.peekN(2)
		return ok && isDigit(d)
	}
	return false
}

// match consumes the given bytes when they appear next, in order.
func (l *Lexer) match(rest string) bool {
	if l.cur+len(rest) > len(l.src) {
		return false
	}
	if l.src[l.cur:l.cur+len(rest)] != rest {
		return false
	}
	l.cur += len(rest)
	return true
}

// scanToken scans exactly one emitted token, skipping any whitespace and
// comments before it. At end of input it returns ok=false.
func (l *Lexer) scanToken() (Token, bool, error) {
	for {
		l.skipWhitespace()
		l.start = l.cur
		if l.isAtEnd() {
			return Token{}, false, nil
		}

		ch := l.src[l.cur]

		// Comments.
		if ch == '#' {
			l.skipLineComment()
			continue
		}
		if ch == '/' {
			if n, ok := l.peekN(1); ok && n == '*' {
				if err := l.skipBlockComment(); err != nil {
					return Token{}, false, err
				}
				continue
			}
		}

		// Literals.
		if ch == '+' || ch == '-' {
			if l.signStartsLiteral() {
				l.advance()
				tok, err := l.scanNumber()
				return tok, err == nil, err
			}
		}
		if isDigit(ch) {
			tok, err := l.scanNumber()
			return tok, err == nil, err
		}
		if ch == '.' {
			if d, ok := l.peekN(1); ok && isDigit(d) {
				tok, err := l.scanNumber()
				return tok, err == nil, err
			}
		}
		if ch == '\'' {
			l.advance()
			tok, err := l.scanChar()
			return tok, err == nil, err
		}
		if ch == '"' {
			l.advance()
			tok, err := l.scanString()
			return tok, err == nil, err
		}

		// Identifiers.
		if isAlpha(ch) {
			return l.scanIdentifier(), true, nil
		}

		// Punctuation and operators, longest spelling first.
		l.advance()
		switch ch {
		case ';':
			return l.emit(KindSemi), true, nil
		case '{':
			return l.emit(KindOpenBrace), true, nil
		case '}':
			return l.emit(KindCloseBrace), true, nil
		case '(':
			return l.emit(KindOpenParen), true, nil
		case ')':
			return l.emit(KindCloseParen), true, nil
		case '[':
			return l.emit(KindOpenBracket), true, nil
		case ']':
			return l.emit(KindCloseBracket), true, nil
		case ',':
			return l.emit(KindComma), true, nil
		case ':':
			return l.emit(KindColon), true, nil
		case '?':
			return l.emit(KindQuestion), true, nil
		case '.':
			return l.emit(KindDot), true, nil
		case '@':
			return l.emit(KindAt), true, nil
		case '+':
			if l.match("+") {
				return l.emit(KindPlusPlus), true, nil
			}
			if l.match("=") {
				return l.emit(KindPlusEq), true, nil
			}
			return l.emit(KindPlus), true, nil
		case '-':
			if l.match(">") {
				return l.emit(KindArrow), true, nil
			}
			if l.match("-") {
				return l.emit(KindMinusMinus), true, nil
			}
			if l.match("=") {
				return l.emit(KindMinusEq), true, nil
			}
			return l.emit(KindMinus), true, nil
		case '*':
			if l.match("=") {
				return l.emit(KindStarEq), true, nil
			}
			return l.emit(KindStar), true, nil
		case '/':
			if l.match("=") {
				return l.emit(KindSlashEq), true, nil
			}
			return l.emit(KindSlash), true, nil
		case '%':
			if l.match("=") {
				return l.emit(KindPercentEq), true, nil
			}
			return l.emit(KindPercent), true, nil
		case '&':
			if l.match("&") {
				return l.emit(KindAmpAmp), true, nil
			}
			if l.match("=") {
				return l.emit(KindAmpEq), true, nil
			}
			return l.emit(KindAmp), true, nil
		case '|':
			if l.match("|") {
				return l.emit(KindPipePipe), true, nil
			}
			if l.match("=") {
				return l.emit(KindPipeEq), true, nil
			}
			return l.emit(KindPipe), true, nil
		case '^':
			if l.match("=") {
				return l.emit(KindCaretEq), true, nil
			}
			return l.emit(KindCaret), true, nil
		case '~':
			return l.emit(KindTilde), true, nil
		case '!':
			if l.match("=") {
				return l.emit(KindNotEq), true, nil
			}
			return l.emit(KindNot), true, nil
		case '<':
			if l.match("<=") {
				return l.emit(KindShlEq), true, nil
			}
			if l.match("<") {
				return l.emit(KindShl), true, nil
			}
			if l.match("=") {
				return l.emit(KindLtEq), true, nil
			}
			return l.emit(KindLt), true, nil
		case '>':
			if l.match(">=") {
				return l.emit(KindShrEq), true, nil
			}
			if l.match(">") {
				return l.emit(KindShr), true, nil
			}
			if l.match("=") {
				return l.emit(KindGtEq), true, nil
			}
			return l.emit(KindGt), true, nil
		case '=':
			if l.match("=") {
				return l.emit(KindEqEq), true, nil
			}
			return l.emit(KindEq), true, nil
		}

		return Token{}, false, l.errAt(l.start)
	}
}

// Scan tokenizes the entire source. On the first unmatched input it
// returns a *LexError and no tokens.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		_, ok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return l.tokens, nil
		}
	}
}
