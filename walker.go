// walker.go — the scope-resolving walker.
//
// A Walker owns one traversal session over a parsed tree: it maintains a
// nested stack of scope frames for variables and for functions, registers
// declarations as it steps through statements, and computes expression
// types by recursive descent combined with the pure type operations.
//
// Scoping rules:
//   - Entering a block pushes a fresh frame and hoists every function and
//     extern declared directly in it; exiting the block pops the frame,
//     discarding exactly the bindings the block introduced.
//   - Variables are never hoisted: a declaration is visible only from the
//     statement that introduced it onward.
//   - Lookup searches frames innermost-first and, within a frame, from the
//     most recently pushed binding to the oldest. Duplicate names are
//     never conflict-checked; the last one pushed shadows the rest.
//   - Lookups never fail: absence is an (record, false) result, and an
//     unresolved identifier types as Infer rather than erroring.
//
// A session is single-threaded and owns its frames; two sessions never
// share state.
package stix

// Stack is a generic LIFO with newest-first search.
type Stack[T any] struct {
	contents []T
}

// NewStack creates an empty stack.
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Size returns the number of items on the stack.
func (s *Stack[T]) Size() int { return len(s.contents) }

// Push places an item on top of the stack.
func (s *Stack[T]) Push(item T) {
	s.contents = append(s.contents, item)
}

// Pop removes and returns the top item.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.contents) == 0 {
		return zero, false
	}
	item := s.contents[len(s.contents)-1]
	s.contents = s.contents[:len(s.contents)-1]
	return item, true
}

// Find returns the newest item satisfying the predicate, or nil.
func (s *Stack[T]) Find(pred func(*T) bool) *T {
	for i := len(s.contents) - 1; i >= 0; i-- {
		if pred(&s.contents[i]) {
			return &s.contents[i]
		}
	}
	return nil
}

// Linkage classifies the visibility/origin of a function.
type Linkage uint8

const (
	// Local functions are declared in an inner scope and not exported.
	Local Linkage = iota
	// Module functions are declared at the top level of the module being
	// compiled.
	Module
	// External functions are imported via an extern declaration.
	External
)

func (l Linkage) String() string {
	switch l {
	case Module:
		return "module"
	case External:
		return "external"
	}
	return "local"
}

// Function is the symbol record for a callable.
type Function struct {
	Name    string
	Args    []ParenArgument
	Linkage Linkage
	RetType Type
}

// Type returns the function's signature as a FuncType.
func (f *Function) Type() Type {
	params := make([]Type, len(f.Args))
	for i, arg := range f.Args {
		params[i] = TypeFromName(arg.TypeExpr.Value.Name)
	}
	return FuncType{Params: params, Return: f.RetType}
}

// FunctionFromDecl builds a Function record from a declaration.
func FunctionFromDecl(decl *FuncDecl, linkage Linkage) Function {
	return Function{
		Name:    decl.Ident.Value.Name,
		Args:    argValues(decl.Args),
		Linkage: linkage,
		RetType: retType(decl.RetTypeExpr),
	}
}

func argValues(args []Node[ParenArgument]) []ParenArgument {
	out := make([]ParenArgument, len(args))
	for i, a := range args {
		out[i] = a.Value
	}
	return out
}

func retType(expr *Node[TypeExpr]) Type {
	if expr == nil {
		return UnitType{}
	}
	return TypeFromName(expr.Value.Name)
}

// Variable is the symbol record for a binding.
type Variable struct {
	Name       string
	Mutability Mutability
	Type       Type
}

// Walker resolves scopes over a parsed tree. Create one per traversal
// session with NewWalker; it must not be shared between sessions.
type Walker struct {
	currentFunction *Function
	variables       []*Stack[Variable]
	functions       []*Stack[Function]
}

// NewWalker creates a walker with a single root scope frame.
func NewWalker() *Walker {
	return &Walker{
		variables: []*Stack[Variable]{NewStack[Variable]()},
		functions: []*Stack[Function]{NewStack[Function]()},
	}
}

// CurrentFunction returns the function record enclosing the current
// position, or nil at the top level.
func (w *Walker) CurrentFunction() *Function {
	return w.currentFunction
}

// atModuleLevel reports whether the walker is in the root scope frame.
func (w *Walker) atModuleLevel() bool { return len(w.functions) == 1 }

// EnterBlock pushes a fresh scope frame and hoists every function and
// extern declared directly in the block.
func (w *Walker) EnterBlock(block *Block) {
	w.pushFrames()
	w.DeclareAllInStmts(block.Stmts)
}

// ExitBlock pops the innermost scope frame. The root frame stays.
func (w *Walker) ExitBlock() {
	if len(w.variables) > 1 {
		w.variables = w.variables[:len(w.variables)-1]
		w.functions = w.functions[:len(w.functions)-1]
	}
}

func (w *Walker) pushFrames() {
	w.variables = append(w.variables, NewStack[Variable]())
	w.functions = append(w.functions, NewStack[Function]())
}

// DeclareAllInStmts registers every function and extern declaration found
// directly in the statement list, independent of declaration order
// relative to use. Nothing else is declared here.
func (w *Walker) DeclareAllInStmts(stmts []Node[Stmt]) {
	for _, stmt := range stmts {
		switch s := stmt.Value.(type) {
		case FuncDeclStmt:
			w.DeclareFunction(&s.Decl.Value)
		case ExternFuncStmt:
			w.DeclareExternFunction(&s.Decl.Value)
		}
	}
}

// DeclareFunction registers a function in the innermost frame. Top-level
// functions get module linkage, nested ones local linkage.
func (w *Walker) DeclareFunction(decl *FuncDecl) {
	linkage := Local
	if w.atModuleLevel() {
		linkage = Module
	}
	w.functionFrame().Push(FunctionFromDecl(decl, linkage))
}

// DeclareExternFunction registers an externally provided function in the
// innermost frame.
func (w *Walker) DeclareExternFunction(decl *ExternFunc) {
	w.functionFrame().Push(Function{
		Name:    decl.Ident.Value.Name,
		Args:    argValues(decl.Args),
		Linkage: External,
		RetType: retType(decl.RetTypeExpr),
	})
}

// DeclareVariable registers a variable binding in the innermost frame. The
// binding's type is its declared type when present, otherwise the computed
// type of its value expression. A declared intersection type must be well
// formed.
func (w *Walker) DeclareVariable(decl *Declaration) error {
	var ty Type
	if decl.TypeExpr != nil {
		ty = TypeFromName(decl.TypeExpr.Value.Name)
	} else {
		ty = w.GetExprType(decl.Value.Value)
	}
	if _, ok := ty.(IntersectionType); ok {
		if err := ValidateIntersection(ty); err != nil {
			return err
		}
	}
	w.variableFrame().Push(Variable{
		Name:       decl.Ident.Value.Name,
		Mutability: decl.Mutability,
		Type:       ty,
	})
	return nil
}

func (w *Walker) variableFrame() *Stack[Variable] {
	return w.variables[len(w.variables)-1]
}

func (w *Walker) functionFrame() *Stack[Function] {
	return w.functions[len(w.functions)-1]
}

// NextStmt advances the walker by one statement, registering any variable
// and function declarations it carries. Statement kinds with no
// declarations are no-ops at this layer.
func (w *Walker) NextStmt(stmt Stmt) error {
	switch s := stmt.(type) {
	case DeclarationStmt:
		for i := range s.Decls {
			if err := w.DeclareVariable(&s.Decls[i].Value); err != nil {
				return err
			}
		}
	case FuncDeclStmt:
		w.DeclareFunction(&s.Decl.Value)
	case ExternFuncStmt:
		w.DeclareExternFunction(&s.Decl.Value)
	}
	return nil
}

// LookupVariable finds the nearest visible binding for name, searching
// frames innermost-first and each frame newest-first.
func (w *Walker) LookupVariable(name string) (*Variable, bool) {
	for i := len(w.variables) - 1; i >= 0; i-- {
		if v := w.variables[i].Find(func(v *Variable) bool { return v.Name == name }); v != nil {
			return v, true
		}
	}
	return nil, false
}

// LookupFunction finds the nearest visible function record for name.
func (w *Walker) LookupFunction(name string) (*Function, bool) {
	for i := len(w.functions) - 1; i >= 0; i-- {
		if f := w.functions[i].Find(func(f *Function) bool { return f.Name == name }); f != nil {
			return f, true
		}
	}
	return nil, false
}

// GetExprType computes the type of an expression in the current scope.
// Unresolved identifiers and not-yet-typed expression kinds degrade to
// Infer; this never fails.
func (w *Walker) GetExprType(expr Expr) Type {
	switch e := expr.(type) {
	case LiteralExpr:
		switch e.Lit.Value.(type) {
		case BoolLit:
			return BoolType{}
		case IntLit:
			return IntType{}
		case FloatLit:
			return FloatType{}
		case StringLit:
			return StringType{}
		case CharLit:
			return CharType{}
		case ArrayLit:
			return ArrayType{Elem: InferType{}}
		}
		return InferType{}
	case IdentExpr:
		if v, ok := w.LookupVariable(e.Ident.Value.Name); ok {
			return v.Type
		}
		return InferType{}
	case BinaryExpr:
		lhs := w.GetExprType(e.Lhs.Value)
		rhs := w.GetExprType(e.Rhs.Value)
		return Intersect(lhs, rhs)
	case BlockExpr:
		return UnitType{}
	default:
		return InferType{}
	}
}

// Walk performs one full traversal session over an owned tree. The root
// block's bindings live in the walker's root frame, so top-level functions
// get module linkage and stay visible after the walk; nested blocks are
// entered and exited with their own frames, function bodies are walked
// with their parameters bound and CurrentFunction set, and the first error
// stops the traversal.
func (w *Walker) Walk(root *Node[Block]) error {
	w.DeclareAllInStmts(root.Value.Stmts)
	return w.walkStmts(root.Value.Stmts)
}

func (w *Walker) walkBlock(block *Block) error {
	w.EnterBlock(block)
	defer w.ExitBlock()
	return w.walkStmts(block.Stmts)
}

func (w *Walker) walkStmts(stmts []Node[Stmt]) error {
	for i := range stmts {
		stmt := stmts[i].Value
		if err := w.NextStmt(stmt); err != nil {
			return err
		}
		switch s := stmt.(type) {
		case FuncDeclStmt:
			if err := w.walkFunction(&s.Decl.Value); err != nil {
				return err
			}
		case ExprStmt:
			if b, ok := s.Expr.Value.(BlockExpr); ok {
				if err := w.walkBlock(&b.Block.Value); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (w *Walker) walkFunction(decl *FuncDecl) error {
	fn := FunctionFromDecl(decl, Local)
	if found, ok := w.LookupFunction(fn.Name); ok {
		fn.Linkage = found.Linkage
	}
	prev := w.currentFunction
	w.currentFunction = &fn
	defer func() { w.currentFunction = prev }()

	w.pushFrames()
	defer w.ExitBlock()
	for _, arg := range decl.Args {
		w.variableFrame().Push(Variable{
			Name:       arg.Value.Ident.Value.Name,
			Mutability: Immutable,
			Type:       TypeFromName(arg.Value.TypeExpr.Value.Name),
		})
	}
	return w.walkBlock(&decl.Body.Value)
}
