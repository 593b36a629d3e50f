package stix

import (
	"errors"
	"testing"
)

func Test_Types_EquatePrimitives(t *testing.T) {
	if !EquateTypes(IntType{}, IntType{}) {
		t.Fatalf("EquateTypes(Int, Int) = false, want true")
	}
	if EquateTypes(IntType{}, FloatType{}) {
		t.Fatalf("EquateTypes(Int, Float) = true, want false")
	}
	if !EquatePrimitives(StringType{}, StringType{}) {
		t.Fatalf("EquatePrimitives(Str, Str) = false, want true")
	}
}

func Test_Types_EquateStructural(t *testing.T) {
	cases := []struct {
		name string
		a, b Type
		want bool
	}{
		{"identical arrays", ArrayType{Elem: IntType{}}, ArrayType{Elem: IntType{}}, true},
		{"different element types", ArrayType{Elem: IntType{}}, ArrayType{Elem: FloatType{}}, false},
		{"identical maps", MapType{Key: StringType{}, Value: IntType{}}, MapType{Key: StringType{}, Value: IntType{}}, true},
		{"swapped map key and value", MapType{Key: StringType{}, Value: IntType{}}, MapType{Key: IntType{}, Value: StringType{}}, false},
		{"identical tuples", TupleType{Elems: []Type{IntType{}, BoolType{}}}, TupleType{Elems: []Type{IntType{}, BoolType{}}}, true},
		{"tuple length mismatch", TupleType{Elems: []Type{IntType{}}}, TupleType{Elems: []Type{IntType{}, IntType{}}}, false},
		{"identical unions", UnionType{Members: []Type{IntType{}, FloatType{}}}, UnionType{Members: []Type{IntType{}, FloatType{}}}, true},
		{"union member order matters", UnionType{Members: []Type{IntType{}, FloatType{}}}, UnionType{Members: []Type{FloatType{}, IntType{}}}, false},
		{"identical optionals", OptionalType{Inner: IntType{}}, OptionalType{Inner: IntType{}}, true},
		{"optional is not its inner type", OptionalType{Inner: IntType{}}, IntType{}, false},
		{"identical functions", FuncType{Params: []Type{IntType{}}, Return: BoolType{}}, FuncType{Params: []Type{IntType{}}, Return: BoolType{}}, true},
		{"function return mismatch", FuncType{Params: []Type{IntType{}}, Return: BoolType{}}, FuncType{Params: []Type{IntType{}}, Return: IntType{}}, false},
		{"identical references", ReferenceType{Name: "Point"}, ReferenceType{Name: "Point"}, true},
		{"different references", ReferenceType{Name: "Point"}, ReferenceType{Name: "Rect"}, false},
		{"unit types", UnitType{}, UnitType{}, true},
		{"never types", NeverType{}, NeverType{}, true},
		{"infer types", InferType{}, InferType{}, true},
		{"nested containers", SetType{Elem: ArrayType{Elem: CharType{}}}, SetType{Elem: ArrayType{Elem: CharType{}}}, true},
		{"circular wrappers", CircularType{Inner: ReferenceType{Name: "T"}}, CircularType{Inner: ReferenceType{Name: "T"}}, true},
	}
	for _, tc := range cases {
		if got := EquateTypes(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: EquateTypes(%s, %s) = %v, want %v", tc.name, tc.a, tc.b, got, tc.want)
		}
		// Equality is symmetric.
		if got := EquateTypes(tc.b, tc.a); got != tc.want {
			t.Fatalf("%s: EquateTypes(%s, %s) = %v, want %v (reversed)", tc.name, tc.b, tc.a, got, tc.want)
		}
	}
}

func Test_Types_SubtypingIsNotReflexive(t *testing.T) {
	if IsSubtype(IntType{}, IntType{}) {
		t.Fatalf("IsSubtype(Int, Int) = true, want false")
	}
	union := UnionType{Members: []Type{IntType{}, FloatType{}}}
	if IsSubtype(union, union) {
		t.Fatalf("IsSubtype of a union with itself = true, want false")
	}
}

func Test_Types_SubtypingIsUnionMembership(t *testing.T) {
	union := UnionType{Members: []Type{IntType{}, FloatType{}}}
	if !IsSubtype(IntType{}, union) {
		t.Fatalf("IsSubtype(Int, Union[Int, Float]) = false, want true")
	}
	if !IsSubtype(FloatType{}, union) {
		t.Fatalf("IsSubtype(Float, Union[Int, Float]) = false, want true")
	}
	if IsSubtype(BoolType{}, union) {
		t.Fatalf("IsSubtype(Bool, Union[Int, Float]) = true, want false")
	}
	if IsSubtype(IntType{}, FloatType{}) {
		t.Fatalf("IsSubtype(Int, Float) = true, want false")
	}
}

func Test_Types_IntersectEqualTypesIsIdentity(t *testing.T) {
	arr := ArrayType{Elem: IntType{}}
	got := Intersect(arr, ArrayType{Elem: IntType{}})
	if !EquateTypes(got, arr) {
		t.Fatalf("Intersect of equal arrays = %s, want %s", got, arr)
	}
}

func Test_Types_IntersectUnequalTypesIsNever(t *testing.T) {
	got := Intersect(IntType{}, FloatType{})
	if _, ok := got.(NeverType); !ok {
		t.Fatalf("Intersect(Int, Float) = %s, want never", got)
	}
}

func Test_Types_InsertionValidators(t *testing.T) {
	keyUnion := UnionType{Members: []Type{IntType{}, FloatType{}}}
	valUnion := UnionType{Members: []Type{StringType{}, BoolType{}}}
	m := MapType{Key: IntType{}, Value: StringType{}}

	if !ValidateMapInsertion(keyUnion, valUnion, m) {
		t.Fatalf("map insertion with covering unions rejected")
	}
	// Exact types fail because the subtype relation is non-reflexive.
	if ValidateMapInsertion(IntType{}, StringType{}, m) {
		t.Fatalf("map insertion with exact key/value types accepted")
	}
	if ValidateMapInsertion(keyUnion, valUnion, SetType{Elem: IntType{}}) {
		t.Fatalf("map insertion into a non-map accepted")
	}

	elemUnion := UnionType{Members: []Type{IntType{}, NeverType{}}}
	if !ValidateSetInsertion(elemUnion, SetType{Elem: IntType{}}) {
		t.Fatalf("set insertion with covering union rejected")
	}
	if ValidateSetInsertion(IntType{}, SetType{Elem: IntType{}}) {
		t.Fatalf("set insertion with exact element type accepted")
	}
	if !ValidateArrayInsertion(elemUnion, ArrayType{Elem: IntType{}}) {
		t.Fatalf("array insertion with covering union rejected")
	}
	if ValidateArrayInsertion(IntType{}, MapType{Key: IntType{}, Value: IntType{}}) {
		t.Fatalf("array insertion into a non-array accepted")
	}
}

func Test_Types_ValidateIntersection(t *testing.T) {
	ok := IntersectionType{Members: []Type{ReferenceType{Name: "A"}, ReferenceType{Name: "B"}}}
	if err := ValidateIntersection(ok); err != nil {
		t.Fatalf("ValidateIntersection of references: %v", err)
	}

	bad := IntersectionType{Members: []Type{ReferenceType{Name: "A"}, IntType{}}}
	err := ValidateIntersection(bad)
	if err == nil {
		t.Fatalf("ValidateIntersection with a primitive member: expected error")
	}
	var usage *TypeUsageError
	if !errors.As(err, &usage) {
		t.Fatalf("error %v is not a *TypeUsageError", err)
	}

	if err := ValidateIntersection(IntType{}); err == nil {
		t.Fatalf("ValidateIntersection of a non-intersection: expected error")
	}
}

func Test_Types_TypeFromName(t *testing.T) {
	cases := []struct {
		name string
		want Type
	}{
		{"int", IntType{}},
		{"float", FloatType{}},
		{"bool", BoolType{}},
		{"char", CharType{}},
		{"str", StringType{}},
		{"()", UnitType{}},
		{"Point", ReferenceType{Name: "Point"}},
	}
	for _, tc := range cases {
		if got := TypeFromName(tc.name); !EquateTypes(got, tc.want) {
			t.Fatalf("TypeFromName(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func Test_Types_IsPrimitive(t *testing.T) {
	for _, ty := range []Type{IntType{}, FloatType{}, BoolType{}, StringType{}} {
		if !IsPrimitive(ty) {
			t.Fatalf("IsPrimitive(%s) = false, want true", ty)
		}
	}
	for _, ty := range []Type{CharType{}, UnitType{}, NeverType{}, ArrayType{Elem: IntType{}}, ReferenceType{Name: "T"}} {
		if IsPrimitive(ty) {
			t.Fatalf("IsPrimitive(%s) = true, want false", ty)
		}
	}
}
