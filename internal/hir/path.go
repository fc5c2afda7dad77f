package hir

// PathKind is how a path is anchored in the module tree.
type PathKind uint8

const (
	PathPlain PathKind = iota
	PathSuper          // self:: (Depth 0) or super:: (Depth >= 1)
	PathCrate
	PathAbs // leading ::
)

func (k PathKind) String() string {
	switch k {
	case PathPlain:
		return "plain"
	case PathSuper:
		return "super"
	case PathCrate:
		return "crate"
	case PathAbs:
		return "abs"
	default:
		return "PathKind(?)"
	}
}

// Path is an unresolved name path.
type Path struct {
	Kind       PathKind
	Depth      int
	TypeAnchor TypeRef // <T>::..., nil when absent
	Segments   []PathSegment
}

type PathSegment struct {
	Name string
	Args *GenericArgs // nil when the segment has no generic arguments
}

// GenericArgs are the type arguments and associated type bindings of one
// segment. Lifetime and const arguments are not represented.
type GenericArgs struct {
	Args []TypeRef
	// HasSelfType is set when Args[0] is the Self type of a desugared
	// `<T as Trait>` path.
	HasSelfType bool
	Bindings    []AssocTypeBinding
}

// AssocTypeBinding is `Name = Type` inside generic arguments.
type AssocTypeBinding struct {
	Name string
	Type TypeRef
}

// PathFromNames builds a plain path with argument-free segments.
func PathFromNames(names ...string) Path {
	segs := make([]PathSegment, len(names))
	for i, n := range names {
		segs[i] = PathSegment{Name: n}
	}
	return Path{Kind: PathPlain, Segments: segs}
}

// Anchor returns the `<T>` anchor type or nil.
func (p Path) Anchor() TypeRef {
	return p.TypeAnchor
}

// AsIdent returns the name of a plain single-segment path without arguments.
func (p Path) AsIdent() (string, bool) {
	if p.Kind != PathPlain || p.TypeAnchor != nil || len(p.Segments) != 1 || p.Segments[0].Args != nil {
		return "", false
	}
	return p.Segments[0].Name, true
}

// Equal reports structural equality.
func (p Path) Equal(o Path) bool {
	if p.Kind != o.Kind || p.Depth != o.Depth || len(p.Segments) != len(o.Segments) {
		return false
	}
	if !Equal(p.TypeAnchor, o.TypeAnchor) {
		return false
	}
	for i := range p.Segments {
		a, b := p.Segments[i], o.Segments[i]
		if a.Name != b.Name || !a.Args.equal(b.Args) {
			return false
		}
	}
	return true
}

func (g *GenericArgs) equal(o *GenericArgs) bool {
	if g == nil || o == nil {
		return g == nil && o == nil
	}
	if g.HasSelfType != o.HasSelfType || len(g.Bindings) != len(o.Bindings) {
		return false
	}
	if !equalList(g.Args, o.Args) {
		return false
	}
	for i := range g.Bindings {
		if g.Bindings[i].Name != o.Bindings[i].Name || !Equal(g.Bindings[i].Type, o.Bindings[i].Type) {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	return DisplayPath(p)
}
