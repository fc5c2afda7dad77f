package hir

import "tyir/internal/ast"

// LowerPath converts a syntactic path. It reports false when the syntax
// cannot form a path at all; callers turn that into ErrorType/ErrorBound.
func LowerPath(p *ast.Path) (Path, bool) {
	if p == nil || len(p.Segments) == 0 {
		return Path{}, false
	}
	out := Path{Kind: PathPlain}
	if p.Global {
		out.Kind = PathAbs
	}
	// leading is true while only self/super segments have been seen.
	leading := true
	for i, seg := range p.Segments {
		if seg == nil {
			return Path{}, false
		}
		switch seg.Kind {
		case ast.SegmentName:
			if seg.Name == nil {
				return Path{}, false
			}
			out.Segments = append(out.Segments, PathSegment{
				Name: seg.Name.Text,
				Args: lowerSegmentArgs(seg),
			})
			leading = false
		case ast.SegmentType:
			if i != 0 || p.Global || seg.QualType == nil {
				return Path{}, false
			}
			self := LowerType(seg.QualType)
			if seg.QualTrait == nil {
				out.TypeAnchor = self
				leading = false
				continue
			}
			trait, ok := LowerPath(seg.QualTrait.Path)
			if !ok || len(trait.Segments) == 0 {
				return Path{}, false
			}
			out.Kind, out.Depth, out.TypeAnchor = trait.Kind, trait.Depth, trait.TypeAnchor
			out.Segments = append(out.Segments, trait.Segments...)
			last := &out.Segments[len(out.Segments)-1]
			last.Args = withSelfType(last.Args, self)
			leading = false
		case ast.SegmentCrate:
			if i != 0 || p.Global {
				return Path{}, false
			}
			out.Kind = PathCrate
			leading = false
		case ast.SegmentSelf:
			if i != 0 || p.Global {
				return Path{}, false
			}
			out.Kind = PathSuper
		case ast.SegmentSuper:
			if !leading || p.Global {
				return Path{}, false
			}
			out.Kind = PathSuper
			out.Depth++
		default:
			return Path{}, false
		}
	}
	return out, true
}

// withSelfType returns a copy of args with self as the first argument.
func withSelfType(args *GenericArgs, self TypeRef) *GenericArgs {
	res := &GenericArgs{HasSelfType: true}
	res.Args = append(res.Args, self)
	if args != nil {
		res.Args = append(res.Args, args.Args...)
		res.Bindings = append(res.Bindings, args.Bindings...)
	}
	return res
}

func lowerSegmentArgs(seg *ast.PathSegment) *GenericArgs {
	if args := lowerGenericArgs(seg.GenericArgs); args != nil {
		return args
	}
	if seg.ParamList != nil {
		return lowerFnSugar(seg.ParamList, seg.RetType)
	}
	return nil
}

// lowerGenericArgs keeps type arguments and bindings in source order and
// drops lifetimes and const arguments. An empty result is nil.
func lowerGenericArgs(list *ast.GenericArgList) *GenericArgs {
	if list == nil {
		return nil
	}
	var res GenericArgs
	for _, arg := range list.Args {
		switch a := arg.(type) {
		case *ast.TypeArg:
			res.Args = append(res.Args, LowerType(a.Type))
		case *ast.AssocTypeArg:
			if a.Name == nil {
				continue
			}
			res.Bindings = append(res.Bindings, AssocTypeBinding{
				Name: a.Name.Text,
				Type: LowerType(a.Type),
			})
		}
	}
	if len(res.Args) == 0 && len(res.Bindings) == 0 {
		return nil
	}
	return &res
}

// lowerFnSugar turns `Fn(A, B) -> C` into `Fn<(A, B), Output = C>`.
func lowerFnSugar(params *ast.ParamList, ret *ast.RetType) *GenericArgs {
	elems := make([]TypeRef, 0, len(params.Params))
	for _, p := range params.Params {
		elems = append(elems, lowerParam(p))
	}
	output := Unit()
	if ret != nil {
		output = LowerType(ret.Type)
	}
	return &GenericArgs{
		Args:     []TypeRef{TupleType{Elems: elems}},
		Bindings: []AssocTypeBinding{{Name: "Output", Type: output}},
	}
}
