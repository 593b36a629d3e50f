// types.go — the structural type representation and the pure operations
// over it: equality, subtyping, intersection, and container-insertion
// validity checks.
//
// Type is a closed sum: every variant implements the unexported marker
// method, so exhaustive type switches inside this package catch a missing
// case at compile time when a variant is added.
//
// The operations are deliberately conservative:
//   - EquateTypes is true only for identical primitives or structurally
//     identical composites; any other pairing is false, never an error.
//   - IsSubtype is non-reflexive: a type is not a subtype of itself. The
//     only positive case is membership in a union.
//   - Intersect is not a lattice meet; it returns the left type on
//     equality and Never otherwise.
package stix

import (
	"fmt"
	"strings"
)

// Type is the closed set of type variants.
type Type interface {
	isType()
	String() string
}

type (
	// IntType is a 64-bit integer.
	IntType struct{}
	// FloatType is a 64-bit floating point number.
	FloatType struct{}
	// BoolType is a boolean.
	BoolType struct{}
	// CharType is a single character.
	CharType struct{}
	// StringType is a string.
	StringType struct{}
	// UnitType is the empty tuple `()`.
	UnitType struct{}
	// NeverType is the type with no values.
	NeverType struct{}
	// InferType is a type that has yet to be inferred.
	InferType struct{}
	// TupleType is an ordered sequence of element types.
	TupleType struct{ Elems []Type }
	// ArrayType is a homogeneous array.
	ArrayType struct{ Elem Type }
	// MapType is a key/value map.
	MapType struct{ Key, Value Type }
	// SetType is a set of elements.
	SetType struct{ Elem Type }
	// OptionalType is a possibly-absent value.
	OptionalType struct{ Inner Type }
	// UnionType is a union of member types.
	UnionType struct{ Members []Type }
	// IntersectionType is an intersection of member types.
	IntersectionType struct{ Members []Type }
	// CircularType marks a type already referred to on the current path.
	CircularType struct{ Inner Type }
	// FuncType is a function signature.
	FuncType struct {
		Params []Type
		Return Type
	}
	// ReferenceType refers to a named, not yet resolved type.
	ReferenceType struct{ Name string }
)

func (IntType) isType()          {}
func (FloatType) isType()        {}
func (BoolType) isType()         {}
func (CharType) isType()         {}
func (StringType) isType()       {}
func (UnitType) isType()         {}
func (NeverType) isType()        {}
func (InferType) isType()        {}
func (TupleType) isType()        {}
func (ArrayType) isType()        {}
func (MapType) isType()          {}
func (SetType) isType()          {}
func (OptionalType) isType()     {}
func (UnionType) isType()        {}
func (IntersectionType) isType() {}
func (CircularType) isType()     {}
func (FuncType) isType()         {}
func (ReferenceType) isType()    {}

func (IntType) String() string    { return "int" }
func (FloatType) String() string  { return "float" }
func (BoolType) String() string   { return "bool" }
func (CharType) String() string   { return "char" }
func (StringType) String() string { return "str" }
func (UnitType) String() string   { return "()" }
func (NeverType) String() string  { return "never" }
func (InferType) String() string  { return "_" }

func (t TupleType) String() string        { return "(" + joinTypes(t.Elems, ", ") + ")" }
func (t ArrayType) String() string        { return "[" + t.Elem.String() + "]" }
func (t MapType) String() string          { return fmt.Sprintf("{%s: %s}", t.Key, t.Value) }
func (t SetType) String() string          { return "{" + t.Elem.String() + "}" }
func (t OptionalType) String() string     { return t.Inner.String() + "?" }
func (t UnionType) String() string        { return joinTypes(t.Members, " | ") }
func (t IntersectionType) String() string { return joinTypes(t.Members, " & ") }
func (t CircularType) String() string     { return "..." + t.Inner.String() }
func (t ReferenceType) String() string    { return t.Name }

func (t FuncType) String() string {
	return fmt.Sprintf("fn(%s) -> %s", joinTypes(t.Params, ", "), t.Return)
}

func joinTypes(ts []Type, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

// TypeFromName maps a type name to its primitive Type, or to a
// ReferenceType when the name is not a primitive.
func TypeFromName(s string) Type {
	switch s {
	case "()":
		return UnitType{}
	case "bool":
		return BoolType{}
	case "char":
		return CharType{}
	case "float":
		return FloatType{}
	case "int":
		return IntType{}
	case "str":
		return StringType{}
	}
	return ReferenceType{Name: s}
}

// IsPrimitive reports whether t is one of the intersectable-forbidden
// primitives: int, float, bool or str.
func IsPrimitive(t Type) bool {
	switch t.(type) {
	case IntType, FloatType, BoolType, StringType:
		return true
	}
	return false
}

// EquatePrimitives reports whether two primitive types are identical.
// Non-primitive input is never equal here.
func EquatePrimitives(a, b Type) bool {
	switch a.(type) {
	case IntType:
		_, ok := b.(IntType)
		return ok
	case FloatType:
		_, ok := b.(FloatType)
		return ok
	case BoolType:
		_, ok := b.(BoolType)
		return ok
	case StringType:
		_, ok := b.(StringType)
		return ok
	}
	return false
}

// EquateTypes reports whether a and b are the same type: identical
// primitives, or recursively structurally identical composites. Any other
// pairing is false; equality never fails.
func EquateTypes(a, b Type) bool {
	if IsPrimitive(a) && IsPrimitive(b) {
		return EquatePrimitives(a, b)
	}
	switch at := a.(type) {
	case CharType:
		_, ok := b.(CharType)
		return ok
	case UnitType:
		_, ok := b.(UnitType)
		return ok
	case NeverType:
		_, ok := b.(NeverType)
		return ok
	case InferType:
		_, ok := b.(InferType)
		return ok
	case TupleType:
		bt, ok := b.(TupleType)
		return ok && equateTypeSeqs(at.Elems, bt.Elems)
	case ArrayType:
		bt, ok := b.(ArrayType)
		return ok && EquateTypes(at.Elem, bt.Elem)
	case MapType:
		bt, ok := b.(MapType)
		return ok && EquateTypes(at.Key, bt.Key) && EquateTypes(at.Value, bt.Value)
	case SetType:
		bt, ok := b.(SetType)
		return ok && EquateTypes(at.Elem, bt.Elem)
	case OptionalType:
		bt, ok := b.(OptionalType)
		return ok && EquateTypes(at.Inner, bt.Inner)
	case UnionType:
		bt, ok := b.(UnionType)
		return ok && equateTypeSeqs(at.Members, bt.Members)
	case IntersectionType:
		bt, ok := b.(IntersectionType)
		return ok && equateTypeSeqs(at.Members, bt.Members)
	case CircularType:
		bt, ok := b.(CircularType)
		return ok && EquateTypes(at.Inner, bt.Inner)
	case FuncType:
		bt, ok := b.(FuncType)
		return ok && equateTypeSeqs(at.Params, bt.Params) && EquateTypes(at.Return, bt.Return)
	case ReferenceType:
		bt, ok := b.(ReferenceType)
		return ok && at.Name == bt.Name
	}
	return false
}

func equateTypeSeqs(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EquateTypes(a[i], b[i]) {
			return false
		}
	}
	return true
}

// IsSubtype reports whether a is included within b. The relation is
// intentionally non-reflexive — a type is never a subtype of itself — and
// the only positive case is membership in a union: IsSubtype(Int,
// Union[Int, Float]) is true while IsSubtype(Int, Int) is false.
func IsSubtype(a, b Type) bool {
	if EquateTypes(a, b) {
		return false
	}
	if u, ok := b.(UnionType); ok {
		for _, m := range u.Members {
			if EquateTypes(m, a) {
				return true
			}
		}
	}
	return false
}

// Intersect computes the intersection of a and b: a when the two are
// equal, Never otherwise. This is a conservative approximation, not a
// general lattice meet.
func Intersect(a, b Type) Type {
	if EquateTypes(a, b) {
		return a
	}
	return NeverType{}
}

// ValidateMapInsertion reports whether a key/value pair of types k and v
// may be inserted into a container of type m. False whenever m is not a
// map type.
func ValidateMapInsertion(k, v, m Type) bool {
	mt, ok := m.(MapType)
	if !ok {
		return false
	}
	return IsSubtype(mt.Key, k) && IsSubtype(mt.Value, v)
}

// ValidateSetInsertion reports whether a value of type v may be inserted
// into a container of type s. False whenever s is not a set type.
func ValidateSetInsertion(v, s Type) bool {
	st, ok := s.(SetType)
	if !ok {
		return false
	}
	return IsSubtype(st.Elem, v)
}

// ValidateArrayInsertion reports whether a value of type v may be inserted
// into a container of type a. False whenever a is not an array type.
func ValidateArrayInsertion(v, a Type) bool {
	at, ok := a.(ArrayType)
	if !ok {
		return false
	}
	return IsSubtype(at.Elem, v)
}

// ValidateIntersection checks that an intersection type is well formed:
// primitives cannot be intersected. Calling it on anything that is not an
// intersection type is itself a usage error.
func ValidateIntersection(t Type) error {
	it, ok := t.(IntersectionType)
	if !ok {
		return &TypeUsageError{Msg: "cannot validate intersection of a non-intersection type"}
	}
	for _, m := range it.Members {
		if IsPrimitive(m) {
			return &TypeUsageError{Msg: fmt.Sprintf("cannot compute intersection type of primitives: %s", m)}
		}
	}
	return nil
}
