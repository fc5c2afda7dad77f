package hir

import "iter"

// Walk calls visit for root and every TypeRef reachable from it, in
// pre-order. Path anchors, generic arguments, binding types and the paths of
// trait bounds are all descended into. A nil root visits nothing.
func Walk(root TypeRef, visit func(TypeRef)) {
	walk(root, func(t TypeRef) bool {
		visit(t)
		return true
	})
}

// All yields the same nodes as Walk. Breaking out of the loop stops the
// traversal.
func All(root TypeRef) iter.Seq[TypeRef] {
	return func(yield func(TypeRef) bool) {
		walk(root, yield)
	}
}

// walk returns false once visit asked to stop.
func walk(t TypeRef, visit func(TypeRef) bool) bool {
	if t == nil {
		return true
	}
	if !visit(t) {
		return false
	}
	switch x := t.(type) {
	case TupleType:
		return walkList(x.Elems, visit)
	case FnType:
		return walkList(x.Types, visit)
	case PathType:
		return walkPath(&x.Path, visit)
	case RawPtrType:
		return walk(x.Inner, visit)
	case ReferenceType:
		return walk(x.Inner, visit)
	case ArrayType:
		return walk(x.Elem, visit)
	case SliceType:
		return walk(x.Elem, visit)
	case ImplTraitType:
		return walkBounds(x.Bounds, visit)
	case DynTraitType:
		return walkBounds(x.Bounds, visit)
	}
	return true
}

func walkList(ts []TypeRef, visit func(TypeRef) bool) bool {
	for _, t := range ts {
		if !walk(t, visit) {
			return false
		}
	}
	return true
}

func walkBounds(bs []TypeBound, visit func(TypeRef) bool) bool {
	for _, b := range bs {
		if p, ok := AsPath(b); ok && !walkPath(p, visit) {
			return false
		}
	}
	return true
}

func walkPath(p *Path, visit func(TypeRef) bool) bool {
	if !walk(p.Anchor(), visit) {
		return false
	}
	for _, seg := range p.Segments {
		if seg.Args == nil {
			continue
		}
		if !walkList(seg.Args.Args, visit) {
			return false
		}
		for _, b := range seg.Args.Bindings {
			if !walk(b.Type, visit) {
				return false
			}
		}
	}
	return true
}
