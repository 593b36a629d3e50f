package stix

import "testing"

func intExpr(v int64) Node[Expr] {
	return NewNode[Expr](LiteralExpr{Lit: NewNode[Literal](IntLit{Value: v, Base: Decimal}, Span{})}, Span{})
}

func floatExpr(v float64) Node[Expr] {
	return NewNode[Expr](LiteralExpr{Lit: NewNode[Literal](FloatLit{Value: v, Base: Decimal}, Span{})}, Span{})
}

func identExpr(name string) Node[Expr] {
	return NewNode[Expr](IdentExpr{Ident: NewNode(Ident{Name: name}, Span{})}, Span{})
}

// newDecl builds a declaration; ty == "" leaves the type to inference.
func newDecl(name, ty string, value Node[Expr]) *Declaration {
	d := &Declaration{
		Ident:      NewNode(Ident{Name: name}, Span{}),
		Mutability: Immutable,
		Value:      value,
	}
	if ty != "" {
		te := NewNode(TypeExpr{Name: ty}, Span{})
		d.TypeExpr = &te
	}
	return d
}

func mustDeclare(t *testing.T, w *Walker, d *Declaration) {
	t.Helper()
	if err := w.DeclareVariable(d); err != nil {
		t.Fatalf("DeclareVariable(%s): %v", d.Ident.Value.Name, err)
	}
}

func Test_Walker_DeclaredTypeWinsOverValue(t *testing.T) {
	w := NewWalker()
	mustDeclare(t, w, newDecl("x", "float", intExpr(1)))
	v, ok := w.LookupVariable("x")
	if !ok {
		t.Fatalf("x not found")
	}
	if !EquateTypes(v.Type, FloatType{}) {
		t.Fatalf("x: got type %s, want float", v.Type)
	}
}

func Test_Walker_InfersTypeFromValue(t *testing.T) {
	w := NewWalker()
	mustDeclare(t, w, newDecl("x", "", intExpr(1)))
	v, _ := w.LookupVariable("x")
	if !EquateTypes(v.Type, IntType{}) {
		t.Fatalf("x: got type %s, want int", v.Type)
	}
}

func Test_Walker_ShadowingPrefersNewestBinding(t *testing.T) {
	w := NewWalker()
	mustDeclare(t, w, newDecl("x", "int", intExpr(1)))
	mustDeclare(t, w, newDecl("x", "float", floatExpr(2.0)))
	v, ok := w.LookupVariable("x")
	if !ok {
		t.Fatalf("x not found")
	}
	if !EquateTypes(v.Type, FloatType{}) {
		t.Fatalf("x: got type %s, want the newer float binding", v.Type)
	}
}

func Test_Walker_InnerFrameShadowsOuter(t *testing.T) {
	w := NewWalker()
	mustDeclare(t, w, newDecl("x", "int", intExpr(1)))

	w.EnterBlock(&Block{})
	mustDeclare(t, w, newDecl("x", "str", identExpr("y")))
	if v, _ := w.LookupVariable("x"); !EquateTypes(v.Type, StringType{}) {
		t.Fatalf("inner x: got type %s, want str", v.Type)
	}
	w.ExitBlock()

	if v, _ := w.LookupVariable("x"); !EquateTypes(v.Type, IntType{}) {
		t.Fatalf("outer x after exit: got type %s, want int", v.Type)
	}
}

func Test_Walker_BlockBindingsDropOnExit(t *testing.T) {
	w := NewWalker()
	w.EnterBlock(&Block{})
	mustDeclare(t, w, newDecl("y", "int", intExpr(1)))
	w.ExitBlock()
	if _, ok := w.LookupVariable("y"); ok {
		t.Fatalf("y still visible after its block was exited")
	}
}

func Test_Walker_ExitNeverPopsRootFrame(t *testing.T) {
	w := NewWalker()
	mustDeclare(t, w, newDecl("x", "int", intExpr(1)))
	w.ExitBlock()
	w.ExitBlock()
	if _, ok := w.LookupVariable("x"); !ok {
		t.Fatalf("root binding lost after spurious ExitBlock calls")
	}
}

func Test_Walker_EnterBlockHoistsFunctions(t *testing.T) {
	root, err := Parse("let r = 0;\nfn f(a: int) -> int { a; }")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w := NewWalker()
	w.EnterBlock(&root.Value)
	// f is visible before its declaration statement has been walked.
	fn, ok := w.LookupFunction("f")
	if !ok {
		t.Fatalf("f not hoisted")
	}
	if !EquateTypes(fn.RetType, IntType{}) {
		t.Fatalf("f: got return type %s, want int", fn.RetType)
	}
	want := FuncType{Params: []Type{IntType{}}, Return: IntType{}}
	if !EquateTypes(fn.Type(), want) {
		t.Fatalf("f: got signature %s, want %s", fn.Type(), want)
	}
}

func Test_Walker_TopLevelFunctionsGetModuleLinkage(t *testing.T) {
	root, err := Parse("fn f() { }\nextern fn g() -> int;")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w := NewWalker()
	if err := w.Walk(root); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	f, ok := w.LookupFunction("f")
	if !ok || f.Linkage != Module {
		t.Fatalf("f: got %v, want module linkage", f)
	}
	g, ok := w.LookupFunction("g")
	if !ok || g.Linkage != External {
		t.Fatalf("g: got %v, want external linkage", g)
	}
	if !EquateTypes(f.RetType, UnitType{}) {
		t.Fatalf("f: got return type %s, want ()", f.RetType)
	}
}

func Test_Walker_NestedFunctionsGetLocalLinkage(t *testing.T) {
	root, err := Parse("fn outer() {\n\tfn inner() { }\n\tlet x = 1;\n}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w := NewWalker()
	if err := w.Walk(root); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	// inner was confined to outer's body.
	if _, ok := w.LookupFunction("inner"); ok {
		t.Fatalf("inner escaped its enclosing function")
	}
	outer, ok := w.LookupFunction("outer")
	if !ok || outer.Linkage != Module {
		t.Fatalf("outer: got %v, want module linkage", outer)
	}
}

func Test_Walker_FunctionParamsAreBoundInBody(t *testing.T) {
	root, err := Parse("fn add(a: int, b: int) -> int {\n\tlet sum = a + b;\n}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w := NewWalker()
	if err := w.Walk(root); err != nil {
		t.Fatalf("Walk: %v", err)
	}
}

func Test_Walker_GetExprTypeLiterals(t *testing.T) {
	w := NewWalker()
	cases := []struct {
		expr Node[Expr]
		want Type
	}{
		{intExpr(1), IntType{}},
		{floatExpr(1.5), FloatType{}},
		{NewNode[Expr](LiteralExpr{Lit: NewNode[Literal](BoolLit{Value: true}, Span{})}, Span{}), BoolType{}},
		{NewNode[Expr](LiteralExpr{Lit: NewNode[Literal](CharLit{Value: 'x'}, Span{})}, Span{}), CharType{}},
		{NewNode[Expr](LiteralExpr{Lit: NewNode[Literal](StringLit{Value: "s"}, Span{})}, Span{}), StringType{}},
		{NewNode[Expr](LiteralExpr{Lit: NewNode[Literal](ArrayLit{}, Span{})}, Span{}), ArrayType{Elem: InferType{}}},
	}
	for _, tc := range cases {
		if got := w.GetExprType(tc.expr.Value); !EquateTypes(got, tc.want) {
			t.Fatalf("GetExprType = %s, want %s", got, tc.want)
		}
	}
}

func Test_Walker_GetExprTypeIdentifiers(t *testing.T) {
	w := NewWalker()
	mustDeclare(t, w, newDecl("x", "int", intExpr(1)))
	if got := w.GetExprType(identExpr("x").Value); !EquateTypes(got, IntType{}) {
		t.Fatalf("x: got %s, want int", got)
	}
	if got := w.GetExprType(identExpr("missing").Value); !EquateTypes(got, InferType{}) {
		t.Fatalf("missing: got %s, want _", got)
	}
}

func Test_Walker_GetExprTypeBinaryIsOperandIntersection(t *testing.T) {
	w := NewWalker()
	mustDeclare(t, w, newDecl("a", "int", intExpr(1)))
	mustDeclare(t, w, newDecl("b", "int", intExpr(2)))
	mustDeclare(t, w, newDecl("f", "float", floatExpr(1.0)))

	same := identExpr("a")
	other := identExpr("b")
	mixed := identExpr("f")

	add := BinaryExpr{Lhs: &same, Rhs: &other, Op: Plus}
	if got := w.GetExprType(add); !EquateTypes(got, IntType{}) {
		t.Fatalf("a + b: got %s, want int", got)
	}
	bad := BinaryExpr{Lhs: &same, Rhs: &mixed, Op: Plus}
	if got := w.GetExprType(bad); !EquateTypes(got, NeverType{}) {
		t.Fatalf("a + f: got %s, want never", got)
	}
}

func Test_Walker_GetExprTypeBlockIsUnit(t *testing.T) {
	w := NewWalker()
	block := BlockExpr{Block: NewNode(Block{}, Span{})}
	if got := w.GetExprType(block); !EquateTypes(got, UnitType{}) {
		t.Fatalf("block: got %s, want ()", got)
	}
}

func Test_Stack_FindReturnsNewestMatch(t *testing.T) {
	s := NewStack[Variable]()
	s.Push(Variable{Name: "x", Type: IntType{}})
	s.Push(Variable{Name: "y", Type: BoolType{}})
	s.Push(Variable{Name: "x", Type: FloatType{}})

	got := s.Find(func(v *Variable) bool { return v.Name == "x" })
	if got == nil || !EquateTypes(got.Type, FloatType{}) {
		t.Fatalf("Find(x) = %v, want the float binding", got)
	}
	if s.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", s.Size())
	}
	top, ok := s.Pop()
	if !ok || !EquateTypes(top.Type, FloatType{}) {
		t.Fatalf("Pop() = %v, %v", top, ok)
	}
	if none := s.Find(func(v *Variable) bool { return v.Name == "z" }); none != nil {
		t.Fatalf("Find(z) = %v, want nil", none)
	}
}
