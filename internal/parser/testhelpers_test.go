package parser

import (
	"fmt"
	"strings"
	"testing"

	"tyir/internal/ast"
	"tyir/internal/diag"
	"tyir/internal/source"
	"tyir/internal/testkit"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseTypeInput(t *testing.T, input string) (ast.Type, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.tys", []byte(input)))
	bag := diag.NewBag(32)
	ty, _ := ParseType(fs, file, Options{Reporter: diag.BagReporter{Bag: bag}})
	return ty, bag
}

func parseSheetInput(t *testing.T, input string) (*ast.Sheet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.tys", []byte(input)))
	bag := diag.NewBag(32)
	sheet, _ := ParseSheet(fs, file, Options{Reporter: diag.BagReporter{Bag: bag}})
	if err := testkit.CheckSpanInvariants(sheet, file); err != nil {
		t.Fatalf("span invariants for %q: %v", input, err)
	}
	return sheet, bag
}

func mustParseType(t *testing.T, input string) ast.Type {
	t.Helper()
	ty, bag := parseTypeInput(t, input)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(bag))
	}
	return ty
}

// sexpr - компактный дамп дерева для сравнения в тестах; nil-ребёнок печатается как "nil".
func sexpr(ty ast.Type) string {
	var b strings.Builder
	writeType(&b, ty)
	return b.String()
}

func writeType(b *strings.Builder, ty ast.Type) {
	switch t := ty.(type) {
	case nil:
		b.WriteString("nil")
	case *ast.ParenType:
		b.WriteString("(paren ")
		writeType(b, t.Inner)
		b.WriteString(")")
	case *ast.TupleType:
		b.WriteString("(tuple")
		for _, f := range t.Fields {
			b.WriteByte(' ')
			writeType(b, f)
		}
		b.WriteString(")")
	case *ast.NeverType:
		b.WriteString("!")
	case *ast.PlaceholderType:
		b.WriteString("_")
	case *ast.PathType:
		writePath(b, t.Path)
	case *ast.PointerType:
		mod := "bare"
		if t.Const {
			mod = "const"
		}
		if t.Mut {
			mod = "mut"
		}
		b.WriteString("(ptr " + mod + " ")
		writeType(b, t.Pointee)
		b.WriteString(")")
	case *ast.ReferenceType:
		b.WriteString("(ref ")
		if t.Lifetime != nil {
			b.WriteString(t.Lifetime.Name + " ")
		}
		if t.Mut {
			b.WriteString("mut ")
		}
		writeType(b, t.Referent)
		b.WriteString(")")
	case *ast.ArrayType:
		b.WriteString("(array ")
		writeType(b, t.Elem)
		if t.Len != nil {
			b.WriteString(" " + t.Len.Text)
		} else {
			b.WriteString(" nil")
		}
		b.WriteString(")")
	case *ast.SliceType:
		b.WriteString("(slice ")
		writeType(b, t.Elem)
		b.WriteString(")")
	case *ast.FnPointerType:
		b.WriteString("(fn")
		if t.Unsafe {
			b.WriteString(" unsafe")
		}
		if t.Extern {
			b.WriteString(" extern=" + t.ABI)
		}
		writeParams(b, t.Params)
		if t.Ret != nil {
			b.WriteString(" -> ")
			writeType(b, t.Ret.Type)
		}
		b.WriteString(")")
	case *ast.ForType:
		b.WriteString("(for")
		for _, lt := range t.Generics.Lifetimes() {
			b.WriteString(" " + lt.Name)
		}
		b.WriteByte(' ')
		writeType(b, t.Inner)
		b.WriteString(")")
	case *ast.ImplTraitType:
		b.WriteString("(impl")
		writeBounds(b, t.Bounds)
		b.WriteString(")")
	case *ast.DynTraitType:
		b.WriteString("(dyn")
		writeBounds(b, t.Bounds)
		b.WriteString(")")
	}
}

func writeParams(b *strings.Builder, params *ast.ParamList) {
	if params == nil {
		b.WriteString(" noparams")
		return
	}
	b.WriteString(" [")
	for i, prm := range params.Params {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case prm.Variadic:
			b.WriteString("...")
		case prm.Name != nil:
			b.WriteString(prm.Name.Text + ":")
			writeType(b, prm.Type)
		default:
			writeType(b, prm.Type)
		}
	}
	b.WriteString("]")
}

func writeBounds(b *strings.Builder, list *ast.TypeBoundList) {
	for _, bound := range list.Bounds {
		b.WriteByte(' ')
		if bound.Maybe {
			b.WriteByte('?')
		}
		if bound.Lifetime != nil {
			b.WriteString(bound.Lifetime.Name)
			continue
		}
		writeType(b, bound.Type)
	}
}

func writePath(b *strings.Builder, path *ast.Path) {
	if path.Global {
		b.WriteString("::")
	}
	for i, seg := range path.Segments {
		if i > 0 {
			b.WriteString("::")
		}
		if seg == nil {
			b.WriteString("<missing>")
			continue
		}
		switch seg.Kind {
		case ast.SegmentSelf:
			b.WriteString("self")
		case ast.SegmentSuper:
			b.WriteString("super")
		case ast.SegmentCrate:
			b.WriteString("crate")
		case ast.SegmentType:
			b.WriteString("<")
			writeType(b, seg.QualType)
			if seg.QualTrait != nil {
				b.WriteString(" as ")
				writePath(b, seg.QualTrait.Path)
			}
			b.WriteString(">")
		case ast.SegmentName:
			b.WriteString(seg.Name.Text)
			if seg.GenericArgs != nil {
				writeArgs(b, seg.GenericArgs)
			}
			if seg.ParamList != nil {
				writeParams(b, seg.ParamList)
				if seg.RetType != nil {
					b.WriteString(" -> ")
					writeType(b, seg.RetType.Type)
				}
			}
		}
	}
}

func writeArgs(b *strings.Builder, list *ast.GenericArgList) {
	b.WriteString("<")
	for i, arg := range list.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		switch a := arg.(type) {
		case *ast.TypeArg:
			writeType(b, a.Type)
		case *ast.AssocTypeArg:
			b.WriteString(a.Name.Text + "=")
			writeType(b, a.Type)
		case *ast.LifetimeArg:
			b.WriteString(a.Lifetime.Name)
		case *ast.ConstArg:
			b.WriteString("const " + a.Expr.Text)
		}
	}
	b.WriteString(">")
}
