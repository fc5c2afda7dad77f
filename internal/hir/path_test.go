package hir_test

import (
	"testing"

	"tyir/internal/ast"
	"tyir/internal/hir"
	"tyir/internal/parser"
)

func ident(name string) hir.TypeRef {
	return hir.PathType{Path: hir.PathFromNames(name)}
}

func lowerPathText(t *testing.T, text string) hir.Path {
	t.Helper()
	pt, ok := mustLower(t, text).(hir.PathType)
	if !ok {
		t.Fatalf("%q did not lower to a path", text)
	}
	return pt.Path
}

func TestLowerPathDesugaring(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  hir.Path
	}{
		{
			name:  "qualified trait with args",
			input: "<T as a::Trait<u8>>::X",
			want: hir.Path{Segments: []hir.PathSegment{
				{Name: "a"},
				{Name: "Trait", Args: &hir.GenericArgs{Args: []hir.TypeRef{ident("T"), ident("u8")}, HasSelfType: true}},
				{Name: "X"},
			}},
		},
		{
			name:  "qualified crate trait",
			input: "<T as crate::Tr>::X",
			want: hir.Path{Kind: hir.PathCrate, Segments: []hir.PathSegment{
				{Name: "Tr", Args: &hir.GenericArgs{Args: []hir.TypeRef{ident("T")}, HasSelfType: true}},
				{Name: "X"},
			}},
		},
		{
			name:  "anchor",
			input: "<[u8]>::Item",
			want: hir.Path{
				TypeAnchor: hir.SliceType{Elem: ident("u8")},
				Segments:   []hir.PathSegment{{Name: "Item"}},
			},
		},
		{
			name:  "fn sugar",
			input: "Fn(A, B) -> C",
			want: hir.Path{Segments: []hir.PathSegment{{
				Name: "Fn",
				Args: &hir.GenericArgs{
					Args:     []hir.TypeRef{hir.TupleType{Elems: []hir.TypeRef{ident("A"), ident("B")}}},
					Bindings: []hir.AssocTypeBinding{{Name: "Output", Type: ident("C")}},
				},
			}}},
		},
		{
			name:  "fn sugar without output",
			input: "FnMut()",
			want: hir.Path{Segments: []hir.PathSegment{{
				Name: "FnMut",
				Args: &hir.GenericArgs{
					Args:     []hir.TypeRef{hir.TupleType{}},
					Bindings: []hir.AssocTypeBinding{{Name: "Output", Type: hir.Unit()}},
				},
			}}},
		},
		{
			name:  "bindings after args",
			input: "Iterator<Item = u8, T>",
			want: hir.Path{Segments: []hir.PathSegment{{
				Name: "Iterator",
				Args: &hir.GenericArgs{
					Args:     []hir.TypeRef{ident("T")},
					Bindings: []hir.AssocTypeBinding{{Name: "Item", Type: ident("u8")}},
				},
			}}},
		},
		{
			name:  "only lifetimes",
			input: "Foo<'a>",
			want:  hir.PathFromNames("Foo"),
		},
		{
			name:  "self then super",
			input: "self::super::B",
			want:  hir.Path{Kind: hir.PathSuper, Depth: 1, Segments: []hir.PathSegment{{Name: "B"}}},
		},
		{
			name:  "super twice",
			input: "super::super::a::B",
			want:  hir.Path{Kind: hir.PathSuper, Depth: 2, Segments: []hir.PathSegment{{Name: "a"}, {Name: "B"}}},
		},
		{
			name:  "absolute",
			input: "::core::B",
			want:  hir.Path{Kind: hir.PathAbs, Segments: []hir.PathSegment{{Name: "core"}, {Name: "B"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lowerPathText(t, tt.input)
			if !got.Equal(tt.want) {
				t.Fatalf("lower %q:\n got  %s\n want %s", tt.input, hir.DisplayPath(got), hir.DisplayPath(tt.want))
			}
		})
	}
}

func TestLowerPathRejects(t *testing.T) {
	if _, ok := hir.LowerPath(nil); ok {
		t.Fatalf("nil path accepted")
	}
	if _, ok := hir.LowerPath(&ast.Path{}); ok {
		t.Fatalf("empty path accepted")
	}
	if _, ok := hir.LowerPath(&ast.Path{Segments: []*ast.PathSegment{{Kind: ast.SegmentName}}}); ok {
		t.Fatalf("nameless segment accepted")
	}
	if _, ok := hir.LowerPath(&ast.Path{Segments: []*ast.PathSegment{{Kind: ast.SegmentType}}}); ok {
		t.Fatalf("qualified segment without type accepted")
	}
	qualified := &ast.PathSegment{Kind: ast.SegmentType, QualType: &ast.NeverType{}}
	name := &ast.PathSegment{Kind: ast.SegmentName, Name: &ast.NameRef{Text: "a"}}
	if _, ok := hir.LowerPath(&ast.Path{Segments: []*ast.PathSegment{name, qualified}}); ok {
		t.Fatalf("qualified segment in the middle accepted")
	}
	if _, ok := hir.LowerPath(&ast.Path{Global: true, Segments: []*ast.PathSegment{qualified}}); ok {
		t.Fatalf("global qualified segment accepted")
	}
	badTrait := &ast.PathSegment{
		Kind:      ast.SegmentType,
		QualType:  &ast.NeverType{},
		QualTrait: &ast.PathType{Path: &ast.Path{Segments: []*ast.PathSegment{nil}}},
	}
	if _, ok := hir.LowerPath(&ast.Path{Segments: []*ast.PathSegment{badTrait}}); ok {
		t.Fatalf("broken trait path accepted")
	}
	crateOnly := &ast.PathSegment{
		Kind:      ast.SegmentType,
		QualType:  &ast.NeverType{},
		QualTrait: &ast.PathType{Path: &ast.Path{Segments: []*ast.PathSegment{{Kind: ast.SegmentCrate}}}},
	}
	if _, ok := hir.LowerPath(&ast.Path{Segments: []*ast.PathSegment{crateOnly}}); ok {
		t.Fatalf("trait without segments accepted")
	}
}

func TestPathAccessors(t *testing.T) {
	if id, ok := lowerPathText(t, "u8").AsIdent(); !ok || id != "u8" {
		t.Fatalf("AsIdent(u8) = %q, %v", id, ok)
	}
	for _, input := range []string{"a::b", "Vec<u8>", "crate::A", "<T>::A"} {
		if _, ok := lowerPathText(t, input).AsIdent(); ok {
			t.Fatalf("AsIdent(%q) should fail", input)
		}
	}
	if lowerPathText(t, "<u8>::A").Anchor() == nil {
		t.Fatalf("anchor lost")
	}
	if got := lowerPathText(t, "a::B").String(); got != "a::B" {
		t.Fatalf("String() = %q", got)
	}
}

func TestLowerPathThroughParser(t *testing.T) {
	ty, bag := parser.ParseTypeText("Vec<'a, u8, 4>")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %s", summary(bag))
	}
	p, ok := hir.LowerPath(ty.(*ast.PathType).Path)
	if !ok {
		t.Fatalf("LowerPath failed")
	}
	args := p.Segments[0].Args
	if args == nil || len(args.Args) != 1 || args.HasSelfType || len(args.Bindings) != 0 {
		t.Fatalf("args = %#v", args)
	}
}
