package hir

// SchemaVersion changes whenever the shape of TypeNode changes.
const SchemaVersion uint16 = 1

// TypeNode is the serialisable form of a TypeRef. Kind holds
// TypeRefKind.String(); only the fields of that kind are set.
type TypeNode struct {
	Kind       string      `json:"kind" yaml:"kind" msgpack:"k"`
	Mutability string      `json:"mutability,omitempty" yaml:"mutability,omitempty" msgpack:"m,omitempty"`
	Path       *PathNode   `json:"path,omitempty" yaml:"path,omitempty" msgpack:"p,omitempty"`
	Elem       *TypeNode   `json:"elem,omitempty" yaml:"elem,omitempty" msgpack:"e,omitempty"`
	Elems      []TypeNode  `json:"elems,omitempty" yaml:"elems,omitempty" msgpack:"es,omitempty"`
	Bounds     []BoundNode `json:"bounds,omitempty" yaml:"bounds,omitempty" msgpack:"b,omitempty"`
}

// BoundNode is a TypeBound; Path is nil for error bounds.
type BoundNode struct {
	Kind string    `json:"kind" yaml:"kind" msgpack:"k"`
	Path *PathNode `json:"path,omitempty" yaml:"path,omitempty" msgpack:"p,omitempty"`
}

type PathNode struct {
	Kind     string        `json:"kind" yaml:"kind" msgpack:"k"`
	Depth    int           `json:"depth,omitempty" yaml:"depth,omitempty" msgpack:"d,omitempty"`
	Anchor   *TypeNode     `json:"anchor,omitempty" yaml:"anchor,omitempty" msgpack:"a,omitempty"`
	Segments []SegmentNode `json:"segments,omitempty" yaml:"segments,omitempty" msgpack:"s,omitempty"`
}

type SegmentNode struct {
	Name string    `json:"name" yaml:"name" msgpack:"n"`
	Args *ArgsNode `json:"args,omitempty" yaml:"args,omitempty" msgpack:"g,omitempty"`
}

type ArgsNode struct {
	Args        []TypeNode    `json:"args,omitempty" yaml:"args,omitempty" msgpack:"a,omitempty"`
	HasSelfType bool          `json:"has_self_type,omitempty" yaml:"has_self_type,omitempty" msgpack:"st,omitempty"`
	Bindings    []BindingNode `json:"bindings,omitempty" yaml:"bindings,omitempty" msgpack:"b,omitempty"`
}

type BindingNode struct {
	Name string   `json:"name" yaml:"name" msgpack:"n"`
	Type TypeNode `json:"type" yaml:"type" msgpack:"t"`
}

const (
	boundKindPath  = "path"
	boundKindError = "error"
)

// Encode converts t into its serialisable form. A nil t encodes as Error.
func Encode(t TypeRef) TypeNode {
	if t == nil {
		return TypeNode{Kind: KindError.String()}
	}
	n := TypeNode{Kind: t.Kind().String()}
	switch x := t.(type) {
	case TupleType:
		n.Elems = encodeList(x.Elems)
	case FnType:
		n.Elems = encodeList(x.Types)
	case PathType:
		n.Path = encodePath(&x.Path)
	case RawPtrType:
		n.Elem = encodePtr(x.Inner)
		n.Mutability = x.Mutability.String()
	case ReferenceType:
		n.Elem = encodePtr(x.Inner)
		n.Mutability = x.Mutability.String()
	case ArrayType:
		n.Elem = encodePtr(x.Elem)
	case SliceType:
		n.Elem = encodePtr(x.Elem)
	case ImplTraitType:
		n.Bounds = encodeBounds(x.Bounds)
	case DynTraitType:
		n.Bounds = encodeBounds(x.Bounds)
	}
	return n
}

func encodePtr(t TypeRef) *TypeNode {
	n := Encode(t)
	return &n
}

func encodeList(ts []TypeRef) []TypeNode {
	if len(ts) == 0 {
		return nil
	}
	out := make([]TypeNode, len(ts))
	for i, t := range ts {
		out[i] = Encode(t)
	}
	return out
}

func encodeBounds(bs []TypeBound) []BoundNode {
	if len(bs) == 0 {
		return nil
	}
	out := make([]BoundNode, len(bs))
	for i, b := range bs {
		if p, ok := AsPath(b); ok {
			out[i] = BoundNode{Kind: boundKindPath, Path: encodePath(p)}
		} else {
			out[i] = BoundNode{Kind: boundKindError}
		}
	}
	return out
}

func encodePath(p *Path) *PathNode {
	n := &PathNode{Kind: p.Kind.String(), Depth: p.Depth}
	if p.TypeAnchor != nil {
		n.Anchor = encodePtr(p.TypeAnchor)
	}
	if len(p.Segments) > 0 {
		n.Segments = make([]SegmentNode, len(p.Segments))
	}
	for i, seg := range p.Segments {
		sn := SegmentNode{Name: seg.Name}
		if seg.Args != nil {
			an := &ArgsNode{Args: encodeList(seg.Args.Args), HasSelfType: seg.Args.HasSelfType}
			for _, b := range seg.Args.Bindings {
				an.Bindings = append(an.Bindings, BindingNode{Name: b.Name, Type: Encode(b.Type)})
			}
			sn.Args = an
		}
		n.Segments[i] = sn
	}
	return n
}

var typeRefKindByName = func() map[string]TypeRefKind {
	m := make(map[string]TypeRefKind, len(typeRefKindNames))
	for k, name := range typeRefKindNames {
		m[name] = TypeRefKind(k)
	}
	return m
}()

// Decode rebuilds a TypeRef. It never fails: unknown kinds decode to
// ErrorType, a missing element decodes to ErrorType in its place, and a
// path bound without a path becomes ErrorBound.
func Decode(n TypeNode) TypeRef {
	kind, ok := typeRefKindByName[n.Kind]
	if !ok {
		return ErrorType{}
	}
	switch kind {
	case KindNever:
		return NeverType{}
	case KindPlaceholder:
		return PlaceholderType{}
	case KindTuple:
		return TupleType{Elems: decodeList(n.Elems)}
	case KindFn:
		types := decodeList(n.Elems)
		if len(types) == 0 {
			types = []TypeRef{ErrorType{}}
		}
		return FnType{Types: types}
	case KindPath:
		if n.Path == nil {
			return ErrorType{}
		}
		return PathType{Path: decodePath(n.Path)}
	case KindRawPtr:
		return RawPtrType{Inner: decodePtr(n.Elem), Mutability: decodeMutability(n.Mutability)}
	case KindReference:
		return ReferenceType{Inner: decodePtr(n.Elem), Mutability: decodeMutability(n.Mutability)}
	case KindArray:
		return ArrayType{Elem: decodePtr(n.Elem)}
	case KindSlice:
		return SliceType{Elem: decodePtr(n.Elem)}
	case KindImplTrait:
		return ImplTraitType{Bounds: decodeBounds(n.Bounds)}
	case KindDynTrait:
		return DynTraitType{Bounds: decodeBounds(n.Bounds)}
	default:
		return ErrorType{}
	}
}

func decodePtr(n *TypeNode) TypeRef {
	if n == nil {
		return ErrorType{}
	}
	return Decode(*n)
}

func decodeList(ns []TypeNode) []TypeRef {
	if len(ns) == 0 {
		return nil
	}
	out := make([]TypeRef, len(ns))
	for i, n := range ns {
		out[i] = Decode(n)
	}
	return out
}

func decodeBounds(ns []BoundNode) []TypeBound {
	out := make([]TypeBound, 0, len(ns))
	for _, n := range ns {
		if n.Kind == boundKindPath && n.Path != nil {
			out = append(out, PathBound{Path: decodePath(n.Path)})
		} else {
			out = append(out, ErrorBound{})
		}
	}
	return out
}

func decodeMutability(s string) Mutability {
	return MutabilityFromMutable(s == Mutable.String())
}

func decodePath(n *PathNode) Path {
	p := Path{Kind: decodePathKind(n.Kind), Depth: max(n.Depth, 0)}
	if p.Kind != PathSuper {
		p.Depth = 0
	}
	if n.Anchor != nil {
		p.TypeAnchor = Decode(*n.Anchor)
	}
	for _, sn := range n.Segments {
		seg := PathSegment{Name: sn.Name}
		if sn.Args != nil {
			args := &GenericArgs{Args: decodeList(sn.Args.Args), HasSelfType: sn.Args.HasSelfType}
			if args.HasSelfType && len(args.Args) == 0 {
				args.HasSelfType = false
			}
			for _, b := range sn.Args.Bindings {
				args.Bindings = append(args.Bindings, AssocTypeBinding{Name: b.Name, Type: Decode(b.Type)})
			}
			seg.Args = args
		}
		p.Segments = append(p.Segments, seg)
	}
	return p
}

func decodePathKind(s string) PathKind {
	for _, k := range []PathKind{PathPlain, PathSuper, PathCrate, PathAbs} {
		if k.String() == s {
			return k
		}
	}
	return PathPlain
}
