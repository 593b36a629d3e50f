// ast.go — syntax tree data structures.
//
// Every piece of parsed syntax is wrapped in a Node, which pairs the value
// with the half-open byte span of the source text it was parsed from. The
// expression, statement and literal families are closed sums: each variant
// implements an unexported marker method so a type switch over them is
// exhaustive and new variants cannot be added from outside the package.
//
// Child expressions are owned through *Node[Expr] pointers; the tree is
// strictly acyclic and no node is shared between parents.
package stix

// Span is a half-open byte interval [Start, End) into the original UTF-8
// source. Offsets are bytes, not runes.
type Span struct {
	Start int // inclusive
	End   int // exclusive
}

// Node pairs a syntax value with its originating span. The span is set at
// construction and is not mutated afterwards.
type Node[T any] struct {
	Value T
	Span  Span
}

// NewNode wraps value with the given span.
func NewNode[T any](value T, span Span) Node[T] {
	return Node[T]{Value: value, Span: span}
}

// Mutability classifies a variable binding.
type Mutability uint8

const (
	Immutable Mutability = iota
	Mutable
)

func (m Mutability) String() string {
	if m == Mutable {
		return "mut"
	}
	return "let"
}

// Ident is a name occurrence. Identifiers are always span-wrapped at their
// use sites (Node[Ident]).
type Ident struct {
	Name string
}

// TypeExpr is a syntactic reference to a type by name, resolved to a Type
// via TypeFromName during walking.
type TypeExpr struct {
	Name string
}

// ───────────────────────────── expressions ─────────────────────────────

// Expr is the closed sum of expression variants.
type Expr interface{ isExpr() }

// LiteralExpr is a literal occurrence.
type LiteralExpr struct {
	Lit Node[Literal]
}

// IdentExpr is an identifier occurrence in expression position.
type IdentExpr struct {
	Ident Node[Ident]
}

// BinaryExpr applies a binary operator to two owned child expressions.
type BinaryExpr struct {
	Lhs *Node[Expr]
	Rhs *Node[Expr]
	Op  BinaryOp
}

// UnaryExpr applies a unary operator to an owned child expression. For the
// postfix index operator, Index holds the bracketed expression.
type UnaryExpr struct {
	Operand *Node[Expr]
	Op      UnaryOp
	Index   *Node[Expr]
}

// BlockExpr is a `{ ... }` block in expression position.
type BlockExpr struct {
	Block Node[Block]
}

// FuncCall is a call expression `callee(arg, ...)`.
type FuncCall struct {
	Callee Node[Ident]
	Args   []Node[Expr]
}

// Conditional, Loop, While and Match are declared members of the expression
// sum whose grammar productions live in the (external) control-flow parser.
type Conditional struct {
	Cond *Node[Expr]
	Then Node[Block]
	Else *Node[Block]
}

type Loop struct {
	Body Node[Block]
}

type While struct {
	Cond *Node[Expr]
	Body Node[Block]
}

type Match struct {
	Subject *Node[Expr]
}

func (LiteralExpr) isExpr() {}
func (IdentExpr) isExpr()   {}
func (BinaryExpr) isExpr()  {}
func (UnaryExpr) isExpr()   {}
func (BlockExpr) isExpr()   {}
func (FuncCall) isExpr()    {}
func (Conditional) isExpr() {}
func (Loop) isExpr()        {}
func (While) isExpr()       {}
func (Match) isExpr()       {}

// ───────────────────────────── literals ────────────────────────────────

// Literal is the closed sum of literal variants.
type Literal interface{ isLiteral() }

// IntLit is an integer literal with its numeric base.
type IntLit struct {
	Value int64
	Base  Base
}

// FloatLit is a floating point literal with its numeric base.
type FloatLit struct {
	Value float64
	Base  Base
}

type BoolLit struct {
	Value bool
}

type CharLit struct {
	Value rune
}

type StringLit struct {
	Value string
}

// ArrayLit is `[e1, e2, ...]`; its element type is inferred later.
type ArrayLit struct {
	Elems []Node[Expr]
}

func (IntLit) isLiteral()    {}
func (FloatLit) isLiteral()  {}
func (BoolLit) isLiteral()   {}
func (CharLit) isLiteral()   {}
func (StringLit) isLiteral() {}
func (ArrayLit) isLiteral()  {}

// ───────────────────────────── statements ──────────────────────────────

// Stmt is the closed sum of statement variants.
type Stmt interface{ isStmt() }

// DeclarationStmt declares one or more variables, e.g. `let a = 1, b = 2;`.
type DeclarationStmt struct {
	Decls []Node[Declaration]
}

// FuncDeclStmt declares a function with a body.
type FuncDeclStmt struct {
	Decl Node[FuncDecl]
}

// ExternFuncStmt declares an externally provided function.
type ExternFuncStmt struct {
	Decl Node[ExternFunc]
}

// ExprStmt is a bare expression in statement position.
type ExprStmt struct {
	Expr Node[Expr]
}

func (DeclarationStmt) isStmt() {}
func (FuncDeclStmt) isStmt()    {}
func (ExternFuncStmt) isStmt()  {}
func (ExprStmt) isStmt()        {}

// Block is an ordered sequence of statements.
type Block struct {
	Stmts []Node[Stmt]
}

// Declaration is a single `let`/`mut` binding. TypeExpr is nil when the
// binding's type is left to be inferred from the value.
type Declaration struct {
	Ident      Node[Ident]
	Mutability Mutability
	TypeExpr   *Node[TypeExpr]
	Value      Node[Expr]
}

// ParenArgument is a function parameter `name: type`.
type ParenArgument struct {
	Ident    Node[Ident]
	TypeExpr Node[TypeExpr]
}

// FuncDecl is a function declaration with a body. RetTypeExpr is nil when
// the function returns the unit type.
type FuncDecl struct {
	Ident       Node[Ident]
	Args        []Node[ParenArgument]
	RetTypeExpr *Node[TypeExpr]
	Body        Node[Block]
}

// ExternFunc is an external function declaration: a signature without a body.
type ExternFunc struct {
	Ident       Node[Ident]
	Args        []Node[ParenArgument]
	RetTypeExpr *Node[TypeExpr]
}
