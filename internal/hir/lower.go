package hir

import "tyir/internal/ast"

// LowerType converts a syntactic type into a TypeRef. A nil node is an
// absent type and lowers to ErrorType. Lowering never fails.
func LowerType(node ast.Type) TypeRef {
	switch n := node.(type) {
	case nil:
		return ErrorType{}
	case *ast.ParenType:
		return LowerType(n.Inner)
	case *ast.TupleType:
		elems := make([]TypeRef, 0, len(n.Fields))
		for _, f := range n.Fields {
			elems = append(elems, LowerType(f))
		}
		return TupleType{Elems: elems}
	case *ast.NeverType:
		return NeverType{}
	case *ast.PathType:
		p, ok := LowerPath(n.Path)
		if !ok {
			return ErrorType{}
		}
		return PathType{Path: p}
	case *ast.PointerType:
		return RawPtrType{Inner: LowerType(n.Pointee), Mutability: MutabilityFromMutable(n.Mut)}
	case *ast.ArrayType:
		return ArrayType{Elem: LowerType(n.Elem)}
	case *ast.SliceType:
		return SliceType{Elem: LowerType(n.Elem)}
	case *ast.ReferenceType:
		return ReferenceType{Inner: LowerType(n.Referent), Mutability: MutabilityFromMutable(n.Mut)}
	case *ast.PlaceholderType:
		return PlaceholderType{}
	case *ast.FnPointerType:
		return lowerFnPointer(n)
	case *ast.ForType:
		// квантор отбрасывается
		return LowerType(n.Inner)
	case *ast.ImplTraitType:
		return ImplTraitType{Bounds: LowerTypeBounds(n.Bounds)}
	case *ast.DynTraitType:
		return DynTraitType{Bounds: LowerTypeBounds(n.Bounds)}
	default:
		return ErrorType{}
	}
}

func lowerFnPointer(n *ast.FnPointerType) TypeRef {
	var params []*ast.Param
	if n.Params != nil {
		params = n.Params.Params
	}
	types := make([]TypeRef, 0, len(params)+1)
	for _, p := range params {
		types = append(types, lowerParam(p))
	}
	ret := Unit()
	if n.Ret != nil && n.Ret.Type != nil {
		ret = LowerType(n.Ret.Type)
	}
	return FnType{Types: append(types, ret)}
}

// lowerParam lowers a parameter's type; `...` and `name:` without a type
// become ErrorType so positions are kept.
func lowerParam(p *ast.Param) TypeRef {
	if p == nil {
		return ErrorType{}
	}
	return LowerType(p.Type)
}

// LowerTypeBounds lowers each bound in order. The result is never nil.
func LowerTypeBounds(list *ast.TypeBoundList) []TypeBound {
	if list == nil {
		return []TypeBound{}
	}
	out := make([]TypeBound, 0, len(list.Bounds))
	for _, b := range list.Bounds {
		out = append(out, LowerTypeBound(b))
	}
	return out
}

// LowerTypeBound lowers a trait bound to PathBound. Lifetime bounds,
// `for<..>` bounds and malformed bounds become ErrorBound.
func LowerTypeBound(b *ast.TypeBound) TypeBound {
	if b == nil || b.Kind() != ast.BoundPath {
		return ErrorBound{}
	}
	pt := b.PathType()
	if pt == nil {
		return ErrorBound{}
	}
	p, ok := LowerPath(pt.Path)
	if !ok {
		return ErrorBound{}
	}
	return PathBound{Path: p}
}
