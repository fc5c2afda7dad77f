package ast

// BoundKind classifies a TypeBound by what it contains.
type BoundKind uint8

const (
	BoundPath     BoundKind = iota // Trait, ?Trait, (Trait)
	BoundFor                       // for<'a> Trait
	BoundLifetime                  // 'a
)

func (k BoundKind) String() string {
	switch k {
	case BoundPath:
		return "Path"
	case BoundFor:
		return "For"
	case BoundLifetime:
		return "Lifetime"
	default:
		return "Bound(?)"
	}
}

// TypeBoundList is `B1 + B2 + ...`.
type TypeBoundList struct {
	Pos
	Bounds []*TypeBound
}

// TypeBound is a single bound. Exactly one of Lifetime and Type is set in a
// well-formed bound; Type is a *PathType or a *ForType.
type TypeBound struct {
	Pos
	Maybe    bool // ?Trait
	Paren    bool // (Trait)
	Lifetime *Lifetime
	Type     Type
}

// Kind reports the bound kind. A bound whose type is missing counts as a
// path bound with no path.
func (b *TypeBound) Kind() BoundKind {
	if b.Lifetime != nil {
		return BoundLifetime
	}
	if _, ok := b.Type.(*ForType); ok {
		return BoundFor
	}
	return BoundPath
}

// PathType returns the bound's trait path type, or nil.
func (b *TypeBound) PathType() *PathType {
	pt, _ := b.Type.(*PathType)
	return pt
}

// GenericParamList is `<'a, T>` on for-types and type aliases.
type GenericParamList struct {
	Pos
	Params []*GenericParam
}

// GenericParam is a lifetime or a type parameter name.
type GenericParam struct {
	Pos
	Lifetime *Lifetime
	Name     *NameRef
}

// Lifetimes returns the lifetime parameters in order.
func (l *GenericParamList) Lifetimes() []*Lifetime {
	if l == nil {
		return nil
	}
	var out []*Lifetime
	for _, p := range l.Params {
		if p.Lifetime != nil {
			out = append(out, p.Lifetime)
		}
	}
	return out
}

// TypeParams returns the names of the type parameters in order.
func (l *GenericParamList) TypeParams() []string {
	if l == nil {
		return nil
	}
	var out []string
	for _, p := range l.Params {
		if p.Name != nil {
			out = append(out, p.Name.Text)
		}
	}
	return out
}
