// printer_test.go
package stix

import "testing"

func Test_Printer_LiteralForms(t *testing.T) {
	cases := []struct {
		lit  Literal
		want string
	}{
		{IntLit{Value: 42, Base: Hexadecimal}, "(int 42)"},
		{FloatLit{Value: 2.5, Base: Decimal}, "(float 2.5)"},
		{BoolLit{Value: true}, "(bool true)"},
		{CharLit{Value: 'x'}, "(char 'x')"},
		{StringLit{Value: `a "b"`}, `(str "a \"b\"")`},
	}
	for _, tc := range cases {
		expr := LiteralExpr{Lit: NewNode(tc.lit, Span{})}
		if got := PrintExpr(expr); got != tc.want {
			t.Fatalf("got %s, want %s", got, tc.want)
		}
	}
}

func Test_Printer_WholeProgram(t *testing.T) {
	src := "let x = 1;\nfn id(v: int) -> int { v; }\nid(x);"
	root, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := PrintBlock(&root.Value)
	want := `(block (declare (let x _ (int 1))) (fn id (v:int) int (block (id v))) (call id (id x)))`
	if got != want {
		t.Fatalf("\nwant: %s\ngot:  %s", want, got)
	}
}

func Test_Printer_NestedBlocks(t *testing.T) {
	root, err := Parse("{ { let x = 1; } }")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := PrintBlock(&root.Value)
	want := `(block (block (block (declare (let x _ (int 1))))))`
	if got != want {
		t.Fatalf("\nwant: %s\ngot:  %s", want, got)
	}
}
