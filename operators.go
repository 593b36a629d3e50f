// operators.go — operator enumerations and the precedence/associativity
// tables that drive expression parsing.
//
// Precedence is an integer rank where a LOWER rank binds TIGHTER, so
// multiplicative operators (rank 5) bind before additive ones (rank 6) and
// assignment forms (rank 15) bind loosest of all. Associativity resolves
// chains of operators of equal rank. Both properties are pure lookups on
// the operator value; they are never stored per expression node.
package stix

import "fmt"

// Associativity is the evaluation direction for operator chains.
type Associativity uint8

const (
	// Ltr is left-to-right associativity.
	Ltr Associativity = iota
	// Rtl is right-to-left associativity.
	Rtl
)

func (a Associativity) String() string {
	if a == Rtl {
		return "right-to-left"
	}
	return "left-to-right"
}

// BinaryOp is the closed enumeration of binary operator spellings.
type BinaryOp uint8

const (
	// Plus is the addition operator, `+`.
	Plus BinaryOp = iota
	// Minus is the subtraction operator, `-`.
	Minus
	// Mul is the multiplication operator, `*`.
	Mul
	// Div is the division operator, `/`.
	Div
	// Mod is the modulo operator, `%`.
	Mod
	// BitwiseAnd is `&`.
	BitwiseAnd
	// BitwiseOr is `|`.
	BitwiseOr
	// BitwiseXor is `^`.
	BitwiseXor
	// LogicalAnd is `&&`.
	LogicalAnd
	// LogicalOr is `||`.
	LogicalOr
	// Shl is the bitwise left shift operator, `<<`.
	Shl
	// Shr is the bitwise right shift operator, `>>`.
	Shr
	// Eq is the equality operator, `==`.
	Eq
	// Ne is the inequality operator, `!=`.
	Ne
	// Lt is `<`.
	Lt
	// Gt is `>`.
	Gt
	// Le is `<=`.
	Le
	// Ge is `>=`.
	Ge
	// Assign is `=`.
	Assign
	// PlusEq is `+=`.
	PlusEq
	// MinusEq is `-=`.
	MinusEq
	// MulEq is `*=`.
	MulEq
	// DivEq is `/=`.
	DivEq
	// ModEq is `%=`.
	ModEq
	// BitwiseAndEq is `&=`.
	BitwiseAndEq
	// BitwiseOrEq is `|=`.
	BitwiseOrEq
	// BitwiseXorEq is `^=`.
	BitwiseXorEq
	// ShlEq is `<<=`.
	ShlEq
	// ShrEq is `>>=`.
	ShrEq
)

var binaryOpSpellings = map[string]BinaryOp{
	"+":   Plus,
	"-":   Minus,
	"*":   Mul,
	"/":   Div,
	"%":   Mod,
	"&":   BitwiseAnd,
	"|":   BitwiseOr,
	"^":   BitwiseXor,
	"&&":  LogicalAnd,
	"||":  LogicalOr,
	"<<":  Shl,
	">>":  Shr,
	"==":  Eq,
	"!=":  Ne,
	"<":   Lt,
	">":   Gt,
	"<=":  Le,
	">=":  Ge,
	"=":   Assign,
	"+=":  PlusEq,
	"-=":  MinusEq,
	"*=":  MulEq,
	"/=":  DivEq,
	"%=":  ModEq,
	"&=":  BitwiseAndEq,
	"|=":  BitwiseOrEq,
	"^=":  BitwiseXorEq,
	"<<=": ShlEq,
	">>=": ShrEq,
}

var binaryOpNames = func() map[BinaryOp]string {
	m := make(map[BinaryOp]string, len(binaryOpSpellings))
	for s, op := range binaryOpSpellings {
		m[op] = s
	}
	return m
}()

// ParseBinaryOp resolves an operator spelling to its BinaryOp value.
func ParseBinaryOp(s string) (BinaryOp, error) {
	op, ok := binaryOpSpellings[s]
	if !ok {
		return 0, fmt.Errorf("invalid binary operator: %q", s)
	}
	return op, nil
}

func (op BinaryOp) String() string { return binaryOpNames[op] }

// Precedence returns the binding rank of op; lower ranks bind tighter.
// The table is total: every operator not named in an earlier row, which is
// exactly the assignment family, lands on the loosest rank 15.
func (op BinaryOp) Precedence() int {
	switch op {
	case Mul, Div, Mod:
		return 5
	case Plus, Minus:
		return 6
	case Shl, Shr:
		return 7
	case BitwiseAnd:
		return 8
	case BitwiseXor:
		return 9
	case BitwiseOr:
		return 10
	case Lt, Gt, Le, Ge:
		return 11
	case Eq, Ne:
		return 12
	case LogicalAnd:
		return 13
	case LogicalOr:
		return 14
	default:
		return 15
	}
}

// Associativity returns the chain direction of op. Every binary operator,
// compound assignment included, associates left-to-right.
func (op BinaryOp) Associativity() Associativity {
	return Ltr
}

// IsAssignment reports whether op is `=` or one of the compound forms.
func (op BinaryOp) IsAssignment() bool {
	_, ok := assignmentKinds[op]
	return ok
}

// AssignmentKind classifies the assignment subfamily of BinaryOp.
type AssignmentKind uint8

const (
	// AssignPlain is `=`.
	AssignPlain AssignmentKind = iota
	// AddAssign is `+=`.
	AddAssign
	// SubAssign is `-=`.
	SubAssign
	// MulAssign is `*=`.
	MulAssign
	// DivAssign is `/=`.
	DivAssign
	// ModAssign is `%=`.
	ModAssign
	// AndAssign is `&=`.
	AndAssign
	// OrAssign is `|=`.
	OrAssign
	// XorAssign is `^=`.
	XorAssign
	// ShlAssign is `<<=`.
	ShlAssign
	// ShrAssign is `>>=`.
	ShrAssign
)

var assignmentKinds = map[BinaryOp]AssignmentKind{
	Assign:       AssignPlain,
	PlusEq:       AddAssign,
	MinusEq:      SubAssign,
	MulEq:        MulAssign,
	DivEq:        DivAssign,
	ModEq:        ModAssign,
	BitwiseAndEq: AndAssign,
	BitwiseOrEq:  OrAssign,
	BitwiseXorEq: XorAssign,
	ShlEq:        ShlAssign,
	ShrEq:        ShrAssign,
}

// AssignmentKindOf returns the AssignmentKind for op, when op is an
// assignment form.
func AssignmentKindOf(op BinaryOp) (AssignmentKind, bool) {
	k, ok := assignmentKinds[op]
	return k, ok
}

// UnaryOp is the closed enumeration of unary operator spellings.
type UnaryOp uint8

const (
	// Increment is the postfix `++`.
	Increment UnaryOp = iota
	// Decrement is the postfix `--`.
	Decrement
	// Index is the postfix `[n]`.
	Index
	// AddressOf is the prefix `&`.
	AddressOf
	// BitwiseNot is the prefix `~`.
	BitwiseNot
	// LogicalNot is the prefix `!`.
	LogicalNot
	// Dereference is the prefix `*`.
	Dereference
	// Negation is the prefix `-`.
	Negation
)

func (op UnaryOp) String() string {
	switch op {
	case Increment:
		return "++"
	case Decrement:
		return "--"
	case Index:
		return "[]"
	case AddressOf:
		return "&"
	case BitwiseNot:
		return "~"
	case LogicalNot:
		return "!"
	case Dereference:
		return "*"
	case Negation:
		return "-"
	}
	return "?"
}

// ParseUnaryOp resolves a unary operator spelling. A spelling of the form
// `[...]` resolves to Index. `*` and `-` resolve to their prefix readings
// (Dereference, Negation); it is the parser's job to decide whether those
// characters are unary or binary at a given position.
func ParseUnaryOp(s string) (UnaryOp, error) {
	if len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' {
		return Index, nil
	}
	switch s {
	case "++":
		return Increment, nil
	case "--":
		return Decrement, nil
	case "&":
		return AddressOf, nil
	case "~":
		return BitwiseNot, nil
	case "!":
		return LogicalNot, nil
	case "*":
		return Dereference, nil
	case "-":
		return Negation, nil
	}
	return 0, fmt.Errorf("invalid unary operator: %q", s)
}

// Precedence returns the binding rank of op; postfix operators bind tighter
// than prefix ones.
func (op UnaryOp) Precedence() int {
	switch op {
	case Increment, Decrement, Index:
		return 1
	default:
		return 2
	}
}

// Associativity returns the chain direction of op: postfix operators are
// left-to-right, prefix operators right-to-left.
func (op UnaryOp) Associativity() Associativity {
	switch op {
	case Increment, Decrement, Index:
		return Ltr
	default:
		return Rtl
	}
}
