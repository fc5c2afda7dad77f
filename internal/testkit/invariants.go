package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tyir/internal/ast"
	"tyir/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed sheet:
// 1) sheet.Span is within file content bounds (empty only for a sheet without items)
// 2) every item span is non-empty, ordered and fully contained in sheet.Span
// 3) each alias type span lies inside its item span
func CheckSpanInvariants(sheet *ast.Sheet, sf *source.File) error {
	if sheet == nil || sf == nil {
		return fmt.Errorf("nil sheet or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) sheet span sanity
	sp := sheet.Span()
	if sp.End < sp.Start {
		return fmt.Errorf("sheet span is inverted: %v", sp)
	}
	if sp.End > lenContent {
		return fmt.Errorf("sheet span end beyond content: %d > %d", sp.End, lenContent)
	}
	if sheet.File != sf.ID {
		return fmt.Errorf("sheet points to different file id: got=%d want=%d", sheet.File, sf.ID)
	}
	if len(sheet.Items) == 0 {
		return nil
	}
	if sp.End == sp.Start {
		return fmt.Errorf("sheet span is empty but has %d items", len(sheet.Items))
	}

	// 2) items inside the sheet, in source order
	var prevEnd uint32
	for i, item := range sheet.Items {
		if item == nil {
			return fmt.Errorf("nil item at %d", i)
		}
		is := item.Span()
		if is.End <= is.Start {
			return fmt.Errorf("empty item span: %v", is)
		}
		if is.File != sf.ID {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", is.File, sf.ID)
		}
		if is.Start < sp.Start || is.End > sp.End {
			return fmt.Errorf("item span %v is outside sheet span %v", is, sp)
		}
		if is.Start < prevEnd {
			return fmt.Errorf("item %d span %v overlaps previous item ending at %d", i, is, prevEnd)
		}
		prevEnd = is.End

		// 3) type inside its item
		if item.Type == nil {
			continue
		}
		ts := item.Type.Span()
		if ts.Start < is.Start || ts.End > is.End {
			return fmt.Errorf("type span %v of %q is outside item span %v", ts, item.AliasName(), is)
		}
	}
	return nil
}
