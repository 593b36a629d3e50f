// parser.go — recursive-descent parser with precedence climbing.
//
// The parser consumes the token stream from lexer.go and produces the
// owned tree defined in ast.go. Statements are parsed by keyword dispatch;
// expressions by precedence climbing over the BinaryOp rank table in
// operators.go: an operator is consumed while its rank is at most the
// current limit, and since every binary operator chains left-to-right the
// right operand is parsed with rank-1 as its limit.
//
// Errors are fail fast: the first offending token aborts the parse with a
// *ParseError carrying the byte offset.
package stix

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parser turns a token stream into a tree. Use Parse or ParseExprSource
// rather than constructing one directly.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a parser over an already-lexed token stream.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse lexes and parses a whole source string into a root block.
func Parse(src string) (*Node[Block], error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := NewParser(tokens)
	block, err := p.parseStmts(func() bool { return p.atEnd() })
	if err != nil {
		return nil, err
	}
	return &block, nil
}

// ParseExprSource lexes and parses a source string holding exactly one
// expression.
func ParseExprSource(src string) (*Node[Expr], error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := NewParser(tokens)
	expr, err := p.parseExpr(lowestPrecedence)
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		tok := p.peek()
		return nil, &ParseError{Offset: tok.Offset, Msg: fmt.Sprintf("unexpected %q after expression", tok.Text)}
	}
	return expr, nil
}

// lowestPrecedence admits every binary operator.
const lowestPrecedence = 15

// IsIncomplete reports whether err means the input ended mid-construct,
// so a REPL should keep reading rather than surface the error.
func IsIncomplete(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && strings.Contains(pe.Msg, "end of input")
}

func (p *Parser) atEnd() bool { return p.pos >= len(p.tokens) }

// peek returns the current token, or nil at end of stream.
func (p *Parser) peek() *Token {
	if p.atEnd() {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *Parser) next() *Token {
	tok := p.peek()
	if tok != nil {
		p.pos++
	}
	return tok
}

// eof returns the byte offset just past the last token, for errors at end
// of stream.
func (p *Parser) eof() int {
	if len(p.tokens) == 0 {
		return 0
	}
	last := p.tokens[len(p.tokens)-1]
	return last.Offset + last.Length
}

func (p *Parser) expect(kind TokenKind, what string) (*Token, error) {
	tok := p.peek()
	if tok == nil {
		return nil, &ParseError{Offset: p.eof(), Msg: fmt.Sprintf("expected %s, found end of input", what)}
	}
	if tok.Kind != kind {
		return nil, &ParseError{Offset: tok.Offset, Msg: fmt.Sprintf("expected %s, found %q", what, tok.Text)}
	}
	p.pos++
	return tok, nil
}

func tokenSpan(tok *Token) Span {
	return Span{Start: tok.Offset, End: tok.Offset + tok.Length}
}

func spanBetween(from, to Span) Span {
	return Span{Start: from.Start, End: to.End}
}

// ────────────────────────────── statements ──────────────────────────────

// controlKeywords are reserved for constructs this parser does not build;
// their expression variants (Conditional, Loop, While, Match) are produced
// elsewhere.
var controlKeywords = map[string]bool{
	"if": true, "else": true, "loop": true, "while": true, "for": true,
	"match": true, "return": true, "break": true, "continue": true,
}

// parseStmts parses statements until done reports true. The caller is
// responsible for consuming the delimiters around the block.
func (p *Parser) parseStmts(done func() bool) (Node[Block], error) {
	var stmts []Node[Stmt]
	start := p.eof()
	if tok := p.peek(); tok != nil {
		start = tok.Offset
	}
	end := start
	for !done() {
		stmt, err := p.parseStmt()
		if err != nil {
			return Node[Block]{}, err
		}
		end = stmt.Span.End
		stmts = append(stmts, stmt)
	}
	return NewNode(Block{Stmts: stmts}, Span{Start: start, End: end}), nil
}

func (p *Parser) parseStmt() (Node[Stmt], error) {
	tok := p.peek()
	if tok == nil {
		return Node[Stmt]{}, &ParseError{Offset: p.eof(), Msg: "expected statement, found end of input"}
	}
	if tok.Kind == KindIdent {
		switch tok.Text {
		case "let", "mut":
			return p.parseDeclarationStmt()
		case "fn":
			return p.parseFuncDeclStmt()
		case "extern":
			return p.parseExternFuncStmt()
		default:
			if controlKeywords[tok.Text] {
				return Node[Stmt]{}, &ParseError{Offset: tok.Offset, Msg: fmt.Sprintf("%q statements are not supported here", tok.Text)}
			}
		}
	}
	return p.parseExprStmt()
}

// parseDeclarationStmt parses `let a = 1, b: int = 2;` and the `mut`
// equivalent. The keyword applies to every binding in the list.
func (p *Parser) parseDeclarationStmt() (Node[Stmt], error) {
	kw := p.next()
	mutability := Immutable
	if kw.Text == "mut" {
		mutability = Mutable
	}
	var decls []Node[Declaration]
	for {
		decl, err := p.parseDeclaration(mutability)
		if err != nil {
			return Node[Stmt]{}, err
		}
		decls = append(decls, decl)
		if tok := p.peek(); tok != nil && tok.Kind == KindComma {
			p.pos++
			continue
		}
		break
	}
	semi, err := p.expect(KindSemi, `";"`)
	if err != nil {
		return Node[Stmt]{}, err
	}
	span := spanBetween(tokenSpan(kw), tokenSpan(semi))
	return NewNode[Stmt](DeclarationStmt{Decls: decls}, span), nil
}

func (p *Parser) parseDeclaration(mutability Mutability) (Node[Declaration], error) {
	ident, err := p.parseIdent()
	if err != nil {
		return Node[Declaration]{}, err
	}
	var typeExpr *Node[TypeExpr]
	if tok := p.peek(); tok != nil && tok.Kind == KindColon {
		p.pos++
		te, err := p.parseTypeExpr()
		if err != nil {
			return Node[Declaration]{}, err
		}
		typeExpr = &te
	}
	if _, err := p.expect(KindEq, `"="`); err != nil {
		return Node[Declaration]{}, err
	}
	value, err := p.parseExpr(lowestPrecedence)
	if err != nil {
		return Node[Declaration]{}, err
	}
	decl := Declaration{
		Ident:      ident,
		Mutability: mutability,
		TypeExpr:   typeExpr,
		Value:      *value,
	}
	return NewNode(decl, spanBetween(ident.Span, value.Span)), nil
}

// parseFuncDeclStmt parses `fn name(a: int, b: int) -> int { ... }`.
func (p *Parser) parseFuncDeclStmt() (Node[Stmt], error) {
	kw := p.next()
	ident, err := p.parseIdent()
	if err != nil {
		return Node[Stmt]{}, err
	}
	args, err := p.parseParenArguments()
	if err != nil {
		return Node[Stmt]{}, err
	}
	retType, err := p.parseRetTypeExpr()
	if err != nil {
		return Node[Stmt]{}, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return Node[Stmt]{}, err
	}
	span := spanBetween(tokenSpan(kw), body.Span)
	decl := FuncDecl{Ident: ident, Args: args, RetTypeExpr: retType, Body: body}
	return NewNode[Stmt](FuncDeclStmt{Decl: NewNode(decl, span)}, span), nil
}

// parseExternFuncStmt parses `extern fn name(a: int) -> int;`.
func (p *Parser) parseExternFuncStmt() (Node[Stmt], error) {
	kw := p.next()
	fn := p.peek()
	if fn == nil || fn.Kind != KindIdent || fn.Text != "fn" {
		offset := p.eof()
		if fn != nil {
			offset = fn.Offset
		}
		return Node[Stmt]{}, &ParseError{Offset: offset, Msg: `expected "fn" after "extern"`}
	}
	p.pos++
	ident, err := p.parseIdent()
	if err != nil {
		return Node[Stmt]{}, err
	}
	args, err := p.parseParenArguments()
	if err != nil {
		return Node[Stmt]{}, err
	}
	retType, err := p.parseRetTypeExpr()
	if err != nil {
		return Node[Stmt]{}, err
	}
	semi, err := p.expect(KindSemi, `";"`)
	if err != nil {
		return Node[Stmt]{}, err
	}
	span := spanBetween(tokenSpan(kw), tokenSpan(semi))
	decl := ExternFunc{Ident: ident, Args: args, RetTypeExpr: retType}
	return NewNode[Stmt](ExternFuncStmt{Decl: NewNode(decl, span)}, span), nil
}

func (p *Parser) parseExprStmt() (Node[Stmt], error) {
	expr, err := p.parseExpr(lowestPrecedence)
	if err != nil {
		return Node[Stmt]{}, err
	}
	// A block in statement position carries no trailing semicolon.
	if _, ok := expr.Value.(BlockExpr); ok {
		return NewNode[Stmt](ExprStmt{Expr: *expr}, expr.Span), nil
	}
	semi, err := p.expect(KindSemi, `";"`)
	if err != nil {
		return Node[Stmt]{}, err
	}
	span := spanBetween(expr.Span, tokenSpan(semi))
	return NewNode[Stmt](ExprStmt{Expr: *expr}, span), nil
}

func (p *Parser) parseIdent() (Node[Ident], error) {
	tok, err := p.expect(KindIdent, "identifier")
	if err != nil {
		return Node[Ident]{}, err
	}
	return NewNode(Ident{Name: tok.Text}, tokenSpan(tok)), nil
}

func (p *Parser) parseTypeExpr() (Node[TypeExpr], error) {
	tok := p.peek()
	if tok == nil {
		return Node[TypeExpr]{}, &ParseError{Offset: p.eof(), Msg: "expected type, found end of input"}
	}
	// `()` spells the unit type.
	if tok.Kind == KindOpenParen {
		p.pos++
		closer, err := p.expect(KindCloseParen, `")"`)
		if err != nil {
			return Node[TypeExpr]{}, err
		}
		span := spanBetween(tokenSpan(tok), tokenSpan(closer))
		return NewNode(TypeExpr{Name: "()"}, span), nil
	}
	if tok.Kind != KindIdent {
		return Node[TypeExpr]{}, &ParseError{Offset: tok.Offset, Msg: fmt.Sprintf("expected type, found %q", tok.Text)}
	}
	p.pos++
	return NewNode(TypeExpr{Name: tok.Text}, tokenSpan(tok)), nil
}

func (p *Parser) parseRetTypeExpr() (*Node[TypeExpr], error) {
	if tok := p.peek(); tok == nil || tok.Kind != KindArrow {
		return nil, nil
	}
	p.pos++
	te, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	return &te, nil
}

func (p *Parser) parseParenArguments() ([]Node[ParenArgument], error) {
	if _, err := p.expect(KindOpenParen, `"("`); err != nil {
		return nil, err
	}
	var args []Node[ParenArgument]
	for {
		tok := p.peek()
		if tok == nil {
			return nil, &ParseError{Offset: p.eof(), Msg: `expected ")", found end of input`}
		}
		if tok.Kind == KindCloseParen {
			p.pos++
			return args, nil
		}
		if len(args) > 0 {
			if _, err := p.expect(KindComma, `","`); err != nil {
				return nil, err
			}
		}
		ident, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(KindColon, `":"`); err != nil {
			return nil, err
		}
		te, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		arg := ParenArgument{Ident: ident, TypeExpr: te}
		args = append(args, NewNode(arg, spanBetween(ident.Span, te.Span)))
	}
}

func (p *Parser) parseBlock() (Node[Block], error) {
	opener, err := p.expect(KindOpenBrace, `"{"`)
	if err != nil {
		return Node[Block]{}, err
	}
	block, err := p.parseStmts(func() bool {
		tok := p.peek()
		return tok == nil || tok.Kind == KindCloseBrace
	})
	if err != nil {
		return Node[Block]{}, err
	}
	closer, err := p.expect(KindCloseBrace, `"}"`)
	if err != nil {
		return Node[Block]{}, err
	}
	block.Span = spanBetween(tokenSpan(opener), tokenSpan(closer))
	return block, nil
}

// ────────────────────────────── expressions ─────────────────────────────

// parseExpr is the precedence climber: it consumes binary operators whose
// rank is at most limit, at equal rank chaining to the left.
func (p *Parser) parseExpr(limit int) (*Node[Expr], error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok == nil {
			return lhs, nil
		}
		op, err := ParseBinaryOp(tok.Text)
		if err != nil {
			return lhs, nil
		}
		prec := op.Precedence()
		if prec > limit {
			return lhs, nil
		}
		p.pos++
		rhsLimit := prec
		if op.Associativity() == Ltr {
			rhsLimit = prec - 1
		}
		rhs, err := p.parseExpr(rhsLimit)
		if err != nil {
			return nil, err
		}
		span := spanBetween(lhs.Span, rhs.Span)
		node := NewNode[Expr](BinaryExpr{Lhs: lhs, Rhs: rhs, Op: op}, span)
		lhs = &node
	}
}

// prefixUnaryOps maps prefix operator tokens to their unary readings.
var prefixUnaryOps = map[TokenKind]UnaryOp{
	KindMinus: Negation,
	KindNot:   LogicalNot,
	KindTilde: BitwiseNot,
	KindAmp:   AddressOf,
	KindStar:  Dereference,
}

func (p *Parser) parseUnary() (*Node[Expr], error) {
	tok := p.peek()
	if tok == nil {
		return nil, &ParseError{Offset: p.eof(), Msg: "expected expression, found end of input"}
	}
	if op, ok := prefixUnaryOps[tok.Kind]; ok {
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		span := spanBetween(tokenSpan(tok), operand.Span)
		node := NewNode[Expr](UnaryExpr{Operand: operand, Op: op}, span)
		return &node, nil
	}
	operand, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(operand)
}

// parsePostfix wraps operand with any trailing `++`, `--` or `[index]`.
func (p *Parser) parsePostfix(operand *Node[Expr]) (*Node[Expr], error) {
	for {
		tok := p.peek()
		if tok == nil {
			return operand, nil
		}
		switch tok.Kind {
		case KindPlusPlus, KindMinusMinus:
			p.pos++
			op := Increment
			if tok.Kind == KindMinusMinus {
				op = Decrement
			}
			span := spanBetween(operand.Span, tokenSpan(tok))
			node := NewNode[Expr](UnaryExpr{Operand: operand, Op: op}, span)
			operand = &node
		case KindOpenBracket:
			p.pos++
			index, err := p.parseExpr(lowestPrecedence)
			if err != nil {
				return nil, err
			}
			closer, err := p.expect(KindCloseBracket, `"]"`)
			if err != nil {
				return nil, err
			}
			span := spanBetween(operand.Span, tokenSpan(closer))
			node := NewNode[Expr](UnaryExpr{Operand: operand, Op: Index, Index: index}, span)
			operand = &node
		default:
			return operand, nil
		}
	}
}

func (p *Parser) parsePrimary() (*Node[Expr], error) {
	tok := p.peek()
	if tok == nil {
		return nil, &ParseError{Offset: p.eof(), Msg: "expected expression, found end of input"}
	}
	switch tok.Kind {
	case KindLiteral:
		p.pos++
		lit, err := convertLiteral(tok)
		if err != nil {
			return nil, err
		}
		span := tokenSpan(tok)
		node := NewNode[Expr](LiteralExpr{Lit: NewNode(lit, span)}, span)
		return &node, nil
	case KindIdent:
		if tok.Text == "true" || tok.Text == "false" {
			p.pos++
			span := tokenSpan(tok)
			lit := Literal(BoolLit{Value: tok.Text == "true"})
			node := NewNode[Expr](LiteralExpr{Lit: NewNode(lit, span)}, span)
			return &node, nil
		}
		return p.parseIdentOrCall()
	case KindOpenParen:
		p.pos++
		expr, err := p.parseExpr(lowestPrecedence)
		if err != nil {
			return nil, err
		}
		closer, err := p.expect(KindCloseParen, `")"`)
		if err != nil {
			return nil, err
		}
		expr.Span = spanBetween(tokenSpan(tok), tokenSpan(closer))
		return expr, nil
	case KindOpenBrace:
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node := NewNode[Expr](BlockExpr{Block: block}, block.Span)
		return &node, nil
	case KindOpenBracket:
		return p.parseArrayLit()
	default:
		return nil, &ParseError{Offset: tok.Offset, Msg: fmt.Sprintf("expected expression, found %q", tok.Text)}
	}
}

func (p *Parser) parseIdentOrCall() (*Node[Expr], error) {
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok == nil || tok.Kind != KindOpenParen {
		node := NewNode[Expr](IdentExpr{Ident: ident}, ident.Span)
		return &node, nil
	}
	p.pos++
	var args []Node[Expr]
	for {
		tok = p.peek()
		if tok == nil {
			return nil, &ParseError{Offset: p.eof(), Msg: `expected ")", found end of input`}
		}
		if tok.Kind == KindCloseParen {
			p.pos++
			break
		}
		if len(args) > 0 {
			if _, err := p.expect(KindComma, `","`); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpr(lowestPrecedence)
		if err != nil {
			return nil, err
		}
		args = append(args, *arg)
	}
	span := spanBetween(ident.Span, tokenSpan(tok))
	node := NewNode[Expr](FuncCall{Callee: ident, Args: args}, span)
	return &node, nil
}

func (p *Parser) parseArrayLit() (*Node[Expr], error) {
	opener := p.next()
	var elems []Node[Expr]
	var closer *Token
	for {
		tok := p.peek()
		if tok == nil {
			return nil, &ParseError{Offset: p.eof(), Msg: `expected "]", found end of input`}
		}
		if tok.Kind == KindCloseBracket {
			p.pos++
			closer = tok
			break
		}
		if len(elems) > 0 {
			if _, err := p.expect(KindComma, `","`); err != nil {
				return nil, err
			}
		}
		elem, err := p.parseExpr(lowestPrecedence)
		if err != nil {
			return nil, err
		}
		elems = append(elems, *elem)
	}
	span := spanBetween(tokenSpan(opener), tokenSpan(closer))
	lit := Literal(ArrayLit{Elems: elems})
	node := NewNode[Expr](LiteralExpr{Lit: NewNode(lit, span)}, span)
	return &node, nil
}

// ─────────────────────────── literal conversion ──────────────────────────

// convertLiteral turns a literal token into its decoded Literal value.
func convertLiteral(tok *Token) (Literal, error) {
	switch tok.Lit {
	case LitInt:
		value, err := parseIntText(tok.Text)
		if err != nil {
			return nil, &ParseError{Offset: tok.Offset, Msg: fmt.Sprintf("invalid integer literal %q", tok.Text)}
		}
		return IntLit{Value: value, Base: tok.Base}, nil
	case LitFloat:
		value, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, &ParseError{Offset: tok.Offset, Msg: fmt.Sprintf("invalid float literal %q", tok.Text)}
		}
		return FloatLit{Value: value, Base: tok.Base}, nil
	case LitChar:
		value, err := decodeCharText(tok.Text)
		if err != nil {
			return nil, &ParseError{Offset: tok.Offset, Msg: fmt.Sprintf("invalid character literal %s", tok.Text)}
		}
		return CharLit{Value: value}, nil
	case LitString:
		return StringLit{Value: decodeStringText(tok.Text)}, nil
	}
	return nil, &ParseError{Offset: tok.Offset, Msg: fmt.Sprintf("invalid literal %q", tok.Text)}
}

// parseIntText decodes an integer literal, including the `0d` explicit
// decimal prefix which strconv does not know.
func parseIntText(text string) (int64, error) {
	sign := ""
	if len(text) > 0 && (text[0] == '+' || text[0] == '-') {
		sign, text = text[:1], text[1:]
	}
	if strings.HasPrefix(text, "0d") {
		text = text[2:]
		return strconv.ParseInt(sign+text, 10, 64)
	}
	return strconv.ParseInt(sign+text, 0, 64)
}

// decodeCharText decodes a character literal's quoted text, either a
// single rune or a `\uXXXX` escape.
func decodeCharText(text string) (rune, error) {
	body := strings.TrimSuffix(strings.TrimPrefix(text, "'"), "'")
	if strings.HasPrefix(body, `\u`) {
		code, err := strconv.ParseUint(body[2:], 16, 32)
		if err != nil {
			return 0, err
		}
		return rune(code), nil
	}
	runes := []rune(body)
	if len(runes) != 1 {
		return 0, fmt.Errorf("character literal holds %d runes", len(runes))
	}
	return runes[0], nil
}

// decodeStringText strips the quotes and resolves `\"` escapes.
func decodeStringText(text string) string {
	body := strings.TrimSuffix(strings.TrimPrefix(text, `"`), `"`)
	return strings.ReplaceAll(body, `\"`, `"`)
}
