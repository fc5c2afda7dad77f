package ast

// ParenType is `(T)`.
type ParenType struct {
	Pos
	Inner Type
}

// TupleType is `()`, `(T,)` or `(A, B, ...)`.
type TupleType struct {
	Pos
	Fields []Type
}

// NeverType is `!`.
type NeverType struct {
	Pos
}

// PathType is a (possibly qualified) path used as a type.
type PathType struct {
	Pos
	Path *Path
}

// PointerType is `*const T` or `*mut T`. Both flags are false for a bare `*T`.
type PointerType struct {
	Pos
	Const   bool
	Mut     bool
	Pointee Type
}

// ArrayType is `[T; N]`.
type ArrayType struct {
	Pos
	Elem Type
	Len  *ConstExpr
}

// SliceType is `[T]`.
type SliceType struct {
	Pos
	Elem Type
}

// ReferenceType is `&'a mut T`; Lifetime and Mut are optional.
type ReferenceType struct {
	Pos
	Lifetime *Lifetime
	Mut      bool
	Referent Type
}

// PlaceholderType is `_`.
type PlaceholderType struct {
	Pos
}

// FnPointerType is `unsafe extern "abi" fn(params) -> Ret`.
type FnPointerType struct {
	Pos
	Unsafe bool
	Extern bool
	ABI    string // без кавычек; пусто, если не указан
	Params *ParamList
	Ret    *RetType
}

// ForType is `for<'a, ...> T`.
type ForType struct {
	Pos
	Generics *GenericParamList
	Inner    Type
}

// ImplTraitType is `impl B1 + B2`.
type ImplTraitType struct {
	Pos
	Bounds *TypeBoundList
}

// DynTraitType is `dyn B1 + B2`.
type DynTraitType struct {
	Pos
	Bounds *TypeBoundList
}

func (*ParenType) Kind() Kind       { return KindParenType }
func (*TupleType) Kind() Kind       { return KindTupleType }
func (*NeverType) Kind() Kind       { return KindNeverType }
func (*PathType) Kind() Kind        { return KindPathType }
func (*PointerType) Kind() Kind     { return KindPointerType }
func (*ArrayType) Kind() Kind       { return KindArrayType }
func (*SliceType) Kind() Kind       { return KindSliceType }
func (*ReferenceType) Kind() Kind   { return KindReferenceType }
func (*PlaceholderType) Kind() Kind { return KindPlaceholderType }
func (*FnPointerType) Kind() Kind   { return KindFnPointerType }
func (*ForType) Kind() Kind         { return KindForType }
func (*ImplTraitType) Kind() Kind   { return KindImplTraitType }
func (*DynTraitType) Kind() Kind    { return KindDynTraitType }

func (*ParenType) typeNode()       {}
func (*TupleType) typeNode()       {}
func (*NeverType) typeNode()       {}
func (*PathType) typeNode()        {}
func (*PointerType) typeNode()     {}
func (*ArrayType) typeNode()       {}
func (*SliceType) typeNode()       {}
func (*ReferenceType) typeNode()   {}
func (*PlaceholderType) typeNode() {}
func (*FnPointerType) typeNode()   {}
func (*ForType) typeNode()         {}
func (*ImplTraitType) typeNode()   {}
func (*DynTraitType) typeNode()    {}

// ParamList is the parenthesised parameter list of a fn pointer or of
// `Fn(A, B)` sugar.
type ParamList struct {
	Pos
	Params []*Param
}

// Param is one parameter. Name is set for `name: T`; Variadic params (`...`)
// carry no type.
type Param struct {
	Pos
	Name     *NameRef
	Type     Type
	Variadic bool
}

// RetType is `-> T`.
type RetType struct {
	Pos
	Type Type
}

// ConstExpr is an array length or const generic argument kept as raw text.
type ConstExpr struct {
	Pos
	Text string
}

// Lifetime is `'name`; Name includes the quote.
type Lifetime struct {
	Pos
	Name string
}
