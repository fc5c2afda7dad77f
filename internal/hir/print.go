package hir

import (
	"strconv"
	"strings"
)

// Display renders t as source-like text.
func Display(t TypeRef) string {
	var b strings.Builder
	writeDisplay(&b, t)
	return b.String()
}

// DisplayPath renders p as source-like text.
func DisplayPath(p Path) string {
	var b strings.Builder
	writePath(&b, &p)
	return b.String()
}

// DisplayBound renders a bound; ErrorBound is `{error}`.
func DisplayBound(tb TypeBound) string {
	if p, ok := AsPath(tb); ok {
		return DisplayPath(*p)
	}
	return "{error}"
}

func writeDisplay(b *strings.Builder, t TypeRef) {
	switch x := t.(type) {
	case nil:
		b.WriteString("{missing}")
	case NeverType:
		b.WriteString("!")
	case PlaceholderType:
		b.WriteString("_")
	case TupleType:
		b.WriteByte('(')
		writeDisplayList(b, x.Elems)
		if len(x.Elems) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
	case PathType:
		writePath(b, &x.Path)
	case RawPtrType:
		b.WriteByte('*')
		b.WriteString(x.Mutability.AsKeywordForPtr())
		writeDisplay(b, x.Inner)
	case ReferenceType:
		b.WriteByte('&')
		b.WriteString(x.Mutability.AsKeywordForRef())
		writeDisplay(b, x.Inner)
	case ArrayType:
		b.WriteByte('[')
		writeDisplay(b, x.Elem)
		b.WriteString("; _]")
	case SliceType:
		b.WriteByte('[')
		writeDisplay(b, x.Elem)
		b.WriteByte(']')
	case FnType:
		b.WriteString("fn(")
		writeDisplayList(b, x.Params())
		b.WriteByte(')')
		if ret := x.Ret(); ret != nil && !isUnit(ret) {
			b.WriteString(" -> ")
			writeDisplay(b, ret)
		}
	case ImplTraitType:
		writeBoundsDisplay(b, "impl", x.Bounds)
	case DynTraitType:
		writeBoundsDisplay(b, "dyn", x.Bounds)
	case ErrorType:
		b.WriteString("{error}")
	default:
		b.WriteString("{unknown}")
	}
}

func isUnit(t TypeRef) bool {
	tt, ok := t.(TupleType)
	return ok && len(tt.Elems) == 0
}

func writeDisplayList(b *strings.Builder, ts []TypeRef) {
	for i, t := range ts {
		if i > 0 {
			b.WriteString(", ")
		}
		writeDisplay(b, t)
	}
}

func writeBoundsDisplay(b *strings.Builder, kw string, bounds []TypeBound) {
	b.WriteString(kw)
	for i, tb := range bounds {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(" + ")
		}
		b.WriteString(DisplayBound(tb))
	}
}

func pathPrefix(p *Path) []string {
	switch p.Kind {
	case PathCrate:
		return []string{"crate"}
	case PathSuper:
		if p.Depth == 0 {
			return []string{"self"}
		}
		out := make([]string, p.Depth)
		for i := range out {
			out[i] = "super"
		}
		return out
	default:
		return nil
	}
}

// writePath prints the prefix and segments. A segment carrying the Self
// type of `<T as Trait>` closes the qualified part.
func writePath(b *strings.Builder, p *Path) {
	selfIdx := -1
	for i, seg := range p.Segments {
		if seg.Args != nil && seg.Args.HasSelfType && len(seg.Args.Args) > 0 {
			selfIdx = i
			break
		}
	}

	parts := pathPrefix(p)
	if p.TypeAnchor != nil {
		parts = append(parts, "<"+Display(p.TypeAnchor)+">")
	}
	if selfIdx < 0 {
		if p.Kind == PathAbs {
			b.WriteString("::")
		}
		for _, seg := range p.Segments {
			parts = append(parts, segmentText(seg, false))
		}
		b.WriteString(strings.Join(parts, "::"))
		return
	}

	b.WriteByte('<')
	writeDisplay(b, p.Segments[selfIdx].Args.Args[0])
	b.WriteString(" as ")
	if p.Kind == PathAbs {
		b.WriteString("::")
	}
	for i, seg := range p.Segments[:selfIdx+1] {
		parts = append(parts, segmentText(seg, i == selfIdx))
	}
	b.WriteString(strings.Join(parts, "::"))
	b.WriteByte('>')
	for _, seg := range p.Segments[selfIdx+1:] {
		b.WriteString("::")
		b.WriteString(segmentText(seg, false))
	}
}

func segmentText(seg PathSegment, skipSelf bool) string {
	if seg.Args == nil {
		return seg.Name
	}
	args := seg.Args.Args
	if skipSelf {
		args = args[1:]
	}
	if len(args) == 0 && len(seg.Args.Bindings) == 0 {
		return seg.Name
	}
	var b strings.Builder
	b.WriteString(seg.Name)
	b.WriteByte('<')
	writeDisplayList(&b, args)
	for i, bind := range seg.Args.Bindings {
		if i > 0 || len(args) > 0 {
			b.WriteString(", ")
		}
		b.WriteString(bind.Name)
		b.WriteString(" = ")
		writeDisplay(&b, bind.Type)
	}
	b.WriteByte('>')
	return b.String()
}

// Debug renders the structure of t, e.g. `Reference(Slice(Path("i32")), Mutable)`.
// Paths are shown by their Display text.
func Debug(t TypeRef) string {
	var b strings.Builder
	writeDebug(&b, t)
	return b.String()
}

func writeDebug(b *strings.Builder, t TypeRef) {
	switch x := t.(type) {
	case nil:
		b.WriteString("nil")
	case NeverType, PlaceholderType, ErrorType:
		b.WriteString(t.Kind().String())
	case TupleType:
		writeDebugList(b, "Tuple", x.Elems)
	case FnType:
		writeDebugList(b, "Fn", x.Types)
	case PathType:
		b.WriteString("Path(")
		b.WriteString(strconv.Quote(DisplayPath(x.Path)))
		b.WriteByte(')')
	case RawPtrType:
		writeDebugWrapped(b, "RawPtr", x.Inner, x.Mutability.String())
	case ReferenceType:
		writeDebugWrapped(b, "Reference", x.Inner, x.Mutability.String())
	case ArrayType:
		writeDebugWrapped(b, "Array", x.Elem, "")
	case SliceType:
		writeDebugWrapped(b, "Slice", x.Elem, "")
	case ImplTraitType:
		writeDebugBounds(b, "ImplTrait", x.Bounds)
	case DynTraitType:
		writeDebugBounds(b, "DynTrait", x.Bounds)
	default:
		b.WriteString("Unknown")
	}
}

func writeDebugWrapped(b *strings.Builder, name string, inner TypeRef, extra string) {
	b.WriteString(name)
	b.WriteByte('(')
	writeDebug(b, inner)
	if extra != "" {
		b.WriteString(", ")
		b.WriteString(extra)
	}
	b.WriteByte(')')
}

func writeDebugList(b *strings.Builder, name string, ts []TypeRef) {
	b.WriteString(name)
	b.WriteString("([")
	for i, t := range ts {
		if i > 0 {
			b.WriteString(", ")
		}
		writeDebug(b, t)
	}
	b.WriteString("])")
}

func writeDebugBounds(b *strings.Builder, name string, bounds []TypeBound) {
	b.WriteString(name)
	b.WriteString("([")
	for i, tb := range bounds {
		if i > 0 {
			b.WriteString(", ")
		}
		if p, ok := AsPath(tb); ok {
			b.WriteString("Path(")
			b.WriteString(strconv.Quote(DisplayPath(*p)))
			b.WriteByte(')')
		} else {
			b.WriteString("Error")
		}
	}
	b.WriteString("])")
}
