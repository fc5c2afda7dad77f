package hir_test

import (
	"slices"
	"testing"

	"tyir/internal/hir"
)

func walkDisplay(root hir.TypeRef) []string {
	var out []string
	hir.Walk(root, func(t hir.TypeRef) {
		out = append(out, hir.Display(t))
	})
	return out
}

func TestWalkOrder(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"u8", []string{"u8"}},
		{"&(A, [B])", []string{"&(A, [B])", "(A, [B])", "A", "[B]", "B"}},
		{"fn(*const A) -> !", []string{"fn(*const A) -> !", "*const A", "A", "!"}},
		{
			"<Vec<A> as Tr<B>>::X<C, Item = D>",
			[]string{"<Vec<A> as Tr<B>>::X<C, Item = D>", "Vec<A>", "A", "B", "C", "D"},
		},
		{"<[A]>::Item", []string{"<[A]>::Item", "[A]", "A"}},
		{"impl Iterator<Item = u8> + 'a + Send", []string{"impl Iterator<Item = u8> + {error} + Send", "u8"}},
		{"dyn Fn(A) -> B", []string{"dyn Fn<(A,), Output = B>", "(A,)", "A", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := walkDisplay(mustLower(t, tt.input))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("walk %q:\n got  %q\n want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWalkVisitsEveryNodeOnce(t *testing.T) {
	root := mustLower(t, "fn(&u8, [u16; 2]) -> (u32, !)")
	kinds := []hir.TypeRefKind{}
	hir.Walk(root, func(t hir.TypeRef) { kinds = append(kinds, t.Kind()) })
	want := []hir.TypeRefKind{
		hir.KindFn, hir.KindReference, hir.KindPath, hir.KindArray, hir.KindPath,
		hir.KindTuple, hir.KindPath, hir.KindNever,
	}
	if !slices.Equal(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}

	// повторный обход даёт тот же результат
	again := walkDisplay(root)
	if first := walkDisplay(root); !slices.Equal(first, again) {
		t.Fatalf("walk is not restartable: %q vs %q", first, again)
	}
}

func TestWalkLeavesAndNil(t *testing.T) {
	for _, leaf := range []hir.TypeRef{hir.NeverType{}, hir.PlaceholderType{}, hir.ErrorType{}, hir.Unit()} {
		if got := walkDisplay(leaf); len(got) != 1 {
			t.Fatalf("leaf %s visited %d nodes", hir.Debug(leaf), len(got))
		}
	}
	calls := 0
	hir.Walk(nil, func(hir.TypeRef) { calls++ })
	if calls != 0 {
		t.Fatalf("nil root visited %d nodes", calls)
	}
}

func TestAllStopsOnBreak(t *testing.T) {
	root := mustLower(t, "(A, (B, C), D)")
	var seen []string
	for node := range hir.All(root) {
		seen = append(seen, hir.Display(node))
		if hir.Display(node) == "B" {
			break
		}
	}
	want := []string{"(A, (B, C), D)", "A", "(B, C)", "B"}
	if !slices.Equal(seen, want) {
		t.Fatalf("seen = %q, want %q", seen, want)
	}

	count := 0
	for range hir.All(root) {
		count++
	}
	if count != 6 {
		t.Fatalf("full iteration visited %d nodes, want 6", count)
	}
}
