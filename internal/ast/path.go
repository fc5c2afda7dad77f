package ast

// SegmentKind classifies path segments.
type SegmentKind uint8

const (
	SegmentName  SegmentKind = iota // ident with optional generic args or Fn sugar
	SegmentType                     // <T> or <T as Trait>
	SegmentSelf                     // self
	SegmentSuper                    // super
	SegmentCrate                    // crate
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentName:
		return "Name"
	case SegmentType:
		return "Type"
	case SegmentSelf:
		return "Self"
	case SegmentSuper:
		return "Super"
	case SegmentCrate:
		return "Crate"
	default:
		return "Segment(?)"
	}
}

// Path is `a::b::<T>::c`. Global is set for a leading `::`.
// A nil entry in Segments marks a segment missing after `::`.
type Path struct {
	Pos
	Global   bool
	Segments []*PathSegment
}

// PathSegment is one `::`-separated part of a path.
//
// For SegmentName: Name, then either GenericArgs or the Fn sugar pair
// ParamList/RetType. For SegmentType: QualType and, for `<T as Trait>`,
// QualTrait.
type PathSegment struct {
	Pos
	Kind        SegmentKind
	Name        *NameRef
	GenericArgs *GenericArgList
	ParamList   *ParamList
	RetType     *RetType
	QualType    Type
	QualTrait   *PathType
}

// NameRef is an identifier occurrence.
type NameRef struct {
	Pos
	Text string
}

// GenericArg is one entry of a generic argument list.
type GenericArg interface {
	Node
	genericArg()
}

// GenericArgList is `<...>` or `::<...>`; Args keep source order.
type GenericArgList struct {
	Pos
	Turbofish bool
	Args      []GenericArg
}

type TypeArg struct {
	Pos
	Type Type
}

// AssocTypeArg is `Name = T`.
type AssocTypeArg struct {
	Pos
	Name *NameRef
	Type Type
}

type LifetimeArg struct {
	Pos
	Lifetime *Lifetime
}

type ConstArg struct {
	Pos
	Expr *ConstExpr
}

func (*TypeArg) genericArg()      {}
func (*AssocTypeArg) genericArg() {}
func (*LifetimeArg) genericArg()  {}
func (*ConstArg) genericArg()     {}

// TypeArgs returns the type arguments in source order.
func (l *GenericArgList) TypeArgs() []*TypeArg {
	return filterArgs[*TypeArg](l)
}

// AssocTypeArgs returns the `Name = T` bindings in source order.
func (l *GenericArgList) AssocTypeArgs() []*AssocTypeArg {
	return filterArgs[*AssocTypeArg](l)
}

func (l *GenericArgList) LifetimeArgs() []*LifetimeArg {
	return filterArgs[*LifetimeArg](l)
}

func (l *GenericArgList) ConstArgs() []*ConstArg {
	return filterArgs[*ConstArg](l)
}

func filterArgs[T GenericArg](l *GenericArgList) []T {
	if l == nil {
		return nil
	}
	var out []T
	for _, a := range l.Args {
		if v, ok := a.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
