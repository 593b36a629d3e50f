// operators_test.go
package stix

import "testing"

var allBinaryOps = []BinaryOp{
	Plus, Minus, Mul, Div, Mod,
	Shl, Shr,
	BitwiseAnd, BitwiseXor, BitwiseOr,
	Lt, Gt, Le, Ge,
	Eq, Ne,
	LogicalAnd, LogicalOr,
	Assign, PlusEq, MinusEq, MulEq, DivEq, ModEq,
	BitwiseAndEq, BitwiseOrEq, BitwiseXorEq, ShlEq, ShrEq,
}

func Test_BinaryOp_SpellingsRoundTrip(t *testing.T) {
	for _, op := range allBinaryOps {
		spelling := op.String()
		if spelling == "" {
			t.Fatalf("operator %d has no spelling", op)
		}
		parsed, err := ParseBinaryOp(spelling)
		if err != nil {
			t.Fatalf("ParseBinaryOp(%q): %v", spelling, err)
		}
		if parsed != op {
			t.Fatalf("ParseBinaryOp(%q) = %v, want %v", spelling, parsed, op)
		}
	}
}

func Test_BinaryOp_RejectsUnknownSpelling(t *testing.T) {
	for _, s := range []string{"", "->", "**", "=>", "and"} {
		if _, err := ParseBinaryOp(s); err == nil {
			t.Fatalf("ParseBinaryOp(%q): expected error", s)
		}
	}
}

func Test_BinaryOp_PrecedenceRanks(t *testing.T) {
	cases := []struct {
		op   BinaryOp
		want int
	}{
		{Mul, 5}, {Div, 5}, {Mod, 5},
		{Plus, 6}, {Minus, 6},
		{Shl, 7}, {Shr, 7},
		{BitwiseAnd, 8},
		{BitwiseXor, 9},
		{BitwiseOr, 10},
		{Lt, 11}, {Gt, 11}, {Le, 11}, {Ge, 11},
		{Eq, 12}, {Ne, 12},
		{LogicalAnd, 13},
		{LogicalOr, 14},
		{Assign, 15}, {PlusEq, 15}, {ShrEq, 15},
	}
	for _, tc := range cases {
		if got := tc.op.Precedence(); got != tc.want {
			t.Fatalf("%v.Precedence() = %d, want %d", tc.op, got, tc.want)
		}
	}
}

func Test_BinaryOp_AllChainLeftToRight(t *testing.T) {
	for _, op := range allBinaryOps {
		if got := op.Associativity(); got != Ltr {
			t.Fatalf("%v.Associativity() = %v, want Ltr", op, got)
		}
	}
}

func Test_BinaryOp_AssignmentClassification(t *testing.T) {
	for _, op := range allBinaryOps {
		want := op.Precedence() == 15
		if got := op.IsAssignment(); got != want {
			t.Fatalf("%v.IsAssignment() = %v, want %v", op, got, want)
		}
	}
	if kind, ok := AssignmentKindOf(PlusEq); !ok || kind != AddAssign {
		t.Fatalf("AssignmentKindOf(PlusEq) = %v, %v", kind, ok)
	}
	if _, ok := AssignmentKindOf(Plus); ok {
		t.Fatalf("AssignmentKindOf(Plus): expected no assignment kind")
	}
}

func Test_UnaryOp_Spellings(t *testing.T) {
	cases := []struct {
		spelling string
		want     UnaryOp
	}{
		{"++", Increment},
		{"--", Decrement},
		{"[0]", Index},
		{"&", AddressOf},
		{"~", BitwiseNot},
		{"!", LogicalNot},
		{"*", Dereference},
		{"-", Negation},
	}
	for _, tc := range cases {
		got, err := ParseUnaryOp(tc.spelling)
		if err != nil {
			t.Fatalf("ParseUnaryOp(%q): %v", tc.spelling, err)
		}
		if got != tc.want {
			t.Fatalf("ParseUnaryOp(%q) = %v, want %v", tc.spelling, got, tc.want)
		}
	}
	if _, err := ParseUnaryOp("+"); err == nil {
		t.Fatalf(`ParseUnaryOp("+"): expected error`)
	}
}

func Test_UnaryOp_PostfixBindsTighterThanPrefix(t *testing.T) {
	for _, op := range []UnaryOp{Increment, Decrement, Index} {
		if op.Precedence() != 1 || op.Associativity() != Ltr {
			t.Fatalf("%v: want postfix rank 1 and Ltr", op)
		}
	}
	for _, op := range []UnaryOp{AddressOf, BitwiseNot, LogicalNot, Dereference, Negation} {
		if op.Precedence() != 2 || op.Associativity() != Rtl {
			t.Fatalf("%v: want prefix rank 2 and Rtl", op)
		}
	}
}
