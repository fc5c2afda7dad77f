package hir

// TypeRefKind discriminates TypeRef variants without a type switch.
type TypeRefKind uint8

const (
	KindNever TypeRefKind = iota
	KindPlaceholder
	KindTuple
	KindPath
	KindRawPtr
	KindReference
	KindArray
	KindSlice
	KindFn
	KindImplTrait
	KindDynTrait
	KindError
)

var typeRefKindNames = [...]string{
	KindNever:       "Never",
	KindPlaceholder: "Placeholder",
	KindTuple:       "Tuple",
	KindPath:        "Path",
	KindRawPtr:      "RawPtr",
	KindReference:   "Reference",
	KindArray:       "Array",
	KindSlice:       "Slice",
	KindFn:          "Fn",
	KindImplTrait:   "ImplTrait",
	KindDynTrait:    "DynTrait",
	KindError:       "Error",
}

func (k TypeRefKind) String() string {
	if int(k) < len(typeRefKindNames) {
		return typeRefKindNames[k]
	}
	return "TypeRefKind(?)"
}

// TypeRef is an unresolved type. The set of implementations is closed.
type TypeRef interface {
	Kind() TypeRefKind
	typeRef()
}

type (
	// NeverType is `!`.
	NeverType struct{}
	// PlaceholderType is `_`, left for inference.
	PlaceholderType struct{}
	// TupleType with no elements is the unit type.
	TupleType struct{ Elems []TypeRef }
	PathType  struct{ Path Path }
	// RawPtrType is `*const T` / `*mut T`.
	RawPtrType struct {
		Inner      TypeRef
		Mutability Mutability
	}
	// ReferenceType is `&T` / `&mut T`; the lifetime is not kept.
	ReferenceType struct {
		Inner      TypeRef
		Mutability Mutability
	}
	// ArrayType is `[T; N]`; the length is not kept.
	ArrayType struct{ Elem TypeRef }
	SliceType struct{ Elem TypeRef }
	// FnType holds the parameter types followed by the return type.
	FnType        struct{ Types []TypeRef }
	ImplTraitType struct{ Bounds []TypeBound }
	DynTraitType  struct{ Bounds []TypeBound }
	// ErrorType stands for a type whose syntax was missing or malformed.
	ErrorType struct{}
)

func (NeverType) Kind() TypeRefKind       { return KindNever }
func (PlaceholderType) Kind() TypeRefKind { return KindPlaceholder }
func (TupleType) Kind() TypeRefKind       { return KindTuple }
func (PathType) Kind() TypeRefKind        { return KindPath }
func (RawPtrType) Kind() TypeRefKind      { return KindRawPtr }
func (ReferenceType) Kind() TypeRefKind   { return KindReference }
func (ArrayType) Kind() TypeRefKind       { return KindArray }
func (SliceType) Kind() TypeRefKind       { return KindSlice }
func (FnType) Kind() TypeRefKind          { return KindFn }
func (ImplTraitType) Kind() TypeRefKind   { return KindImplTrait }
func (DynTraitType) Kind() TypeRefKind    { return KindDynTrait }
func (ErrorType) Kind() TypeRefKind       { return KindError }

func (NeverType) typeRef()       {}
func (PlaceholderType) typeRef() {}
func (TupleType) typeRef()       {}
func (PathType) typeRef()        {}
func (RawPtrType) typeRef()      {}
func (ReferenceType) typeRef()   {}
func (ArrayType) typeRef()       {}
func (SliceType) typeRef()       {}
func (FnType) typeRef()          {}
func (ImplTraitType) typeRef()   {}
func (DynTraitType) typeRef()    {}
func (ErrorType) typeRef()       {}

// Unit returns the empty tuple.
func Unit() TypeRef {
	return TupleType{}
}

// Params returns the parameter types.
func (f FnType) Params() []TypeRef {
	if len(f.Types) == 0 {
		return nil
	}
	return f.Types[:len(f.Types)-1]
}

// Ret returns the return type, or nil for an empty (malformed) list.
func (f FnType) Ret() TypeRef {
	if len(f.Types) == 0 {
		return nil
	}
	return f.Types[len(f.Types)-1]
}

// TypeBound is a bound of an `impl`/`dyn` type.
type TypeBound interface {
	typeBound()
}

// PathBound is a trait bound.
type PathBound struct{ Path Path }

// ErrorBound replaces bounds that have no path shape: lifetimes,
// higher-ranked bounds and malformed ones.
type ErrorBound struct{}

func (PathBound) typeBound()  {}
func (ErrorBound) typeBound() {}

// AsPath returns the trait path of a path bound.
func AsPath(b TypeBound) (*Path, bool) {
	if pb, ok := b.(PathBound); ok {
		return &pb.Path, true
	}
	return nil, false
}

// Equal reports structural equality. nil equals only nil.
func Equal(a, b TypeRef) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case NeverType, PlaceholderType, ErrorType:
		return true
	case TupleType:
		return equalList(x.Elems, b.(TupleType).Elems)
	case PathType:
		return x.Path.Equal(b.(PathType).Path)
	case RawPtrType:
		y := b.(RawPtrType)
		return x.Mutability == y.Mutability && Equal(x.Inner, y.Inner)
	case ReferenceType:
		y := b.(ReferenceType)
		return x.Mutability == y.Mutability && Equal(x.Inner, y.Inner)
	case ArrayType:
		return Equal(x.Elem, b.(ArrayType).Elem)
	case SliceType:
		return Equal(x.Elem, b.(SliceType).Elem)
	case FnType:
		return equalList(x.Types, b.(FnType).Types)
	case ImplTraitType:
		return equalBounds(x.Bounds, b.(ImplTraitType).Bounds)
	case DynTraitType:
		return equalBounds(x.Bounds, b.(DynTraitType).Bounds)
	}
	return false
}

// EqualBound reports structural equality of bounds.
func EqualBound(a, b TypeBound) bool {
	switch x := a.(type) {
	case PathBound:
		y, ok := b.(PathBound)
		return ok && x.Path.Equal(y.Path)
	case ErrorBound:
		_, ok := b.(ErrorBound)
		return ok
	}
	return a == nil && b == nil
}

func equalList(a, b []TypeRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalBounds(a, b []TypeBound) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualBound(a[i], b[i]) {
			return false
		}
	}
	return true
}
