package driver

import (
	"slices"
	"sort"

	"tyir/internal/hir"
)

// Dependency is a path some alias refers to, either as a type or as a trait
// bound. Generic arguments are dropped, so `Vec<u8>` and `Vec<T>` count as
// the same dependency `Vec`.
type Dependency struct {
	Path    string   `json:"path"`
	Count   int      `json:"count"`
	Aliases []string `json:"aliases"`
}

// CollectDeps harvests every referenced path in res, sorted by path text.
// Paths nested in anchors, generic arguments and bindings are included.
func CollectDeps(res *LowerResult) []Dependency {
	if res == nil {
		return nil
	}
	index := make(map[string]*Dependency)
	add := func(alias string, p hir.Path) {
		key := hir.DisplayPath(stripArgs(p))
		d, ok := index[key]
		if !ok {
			d = &Dependency{Path: key}
			index[key] = d
		}
		d.Count++
		if !slices.Contains(d.Aliases, alias) {
			d.Aliases = append(d.Aliases, alias)
		}
	}
	addBounds := func(alias string, bounds []hir.TypeBound) {
		for _, b := range bounds {
			if pb, ok := b.(hir.PathBound); ok {
				add(alias, pb.Path)
			}
		}
	}

	for _, a := range res.Aliases {
		hir.Walk(a.Type, func(t hir.TypeRef) {
			switch x := t.(type) {
			case hir.PathType:
				add(a.Name, x.Path)
			case hir.ImplTraitType:
				addBounds(a.Name, x.Bounds)
			case hir.DynTraitType:
				addBounds(a.Name, x.Bounds)
			}
		})
	}

	out := make([]Dependency, 0, len(index))
	for _, d := range index {
		sort.Strings(d.Aliases)
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func stripArgs(p hir.Path) hir.Path {
	segs := make([]hir.PathSegment, len(p.Segments))
	for i, s := range p.Segments {
		segs[i] = hir.PathSegment{Name: s.Name}
	}
	p.Segments = segs
	return p
}
