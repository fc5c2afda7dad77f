package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"tyir/internal/ast"
	"tyir/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(children ...*treeNode) {
	n.children = append(n.children, children...)
}

// FormatSheetTree печатает синтаксическое дерево листа:
//
//	Sheet a.tys (1:1-2:1)
//	└─ Alias[0] Buf (1:1-1:20)
//	   └─ ReferenceType mut (1:12-1:19)
//	      └─ SliceType (1:17-1:19)
func FormatSheetTree(w io.Writer, sheet *ast.Sheet, fs *source.FileSet) error {
	if sheet == nil {
		return fmt.Errorf("nil sheet")
	}
	header := "Sheet"
	if fs != nil {
		header += " " + formatPath(fs, sheet.File, PathModeAuto)
	}
	root := &treeNode{label: fmt.Sprintf("%s (%s)", header, formatSpan(sheet.Span(), fs))}
	for i, alias := range sheet.Items {
		root.add(aliasNode(alias, i, fs))
	}
	var b strings.Builder
	renderTree(&b, root, "", true, true)
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatTypeTree печатает дерево одного типа.
func FormatTypeTree(w io.Writer, ty ast.Type, fs *source.FileSet) error {
	var b strings.Builder
	renderTree(&b, typeNode(ty, fs), "", true, true)
	_, err := io.WriteString(w, b.String())
	return err
}

func renderTree(b *strings.Builder, n *treeNode, prefix string, last, root bool) {
	childPrefix := prefix
	if root {
		b.WriteString(n.label)
	} else {
		b.WriteString(prefix)
		if last {
			b.WriteString("└─ ")
			childPrefix += "   "
		} else {
			b.WriteString("├─ ")
			childPrefix += "│  "
		}
		b.WriteString(n.label)
	}
	b.WriteByte('\n')
	for i, c := range n.children {
		renderTree(b, c, childPrefix, i == len(n.children)-1, false)
	}
}

func aliasNode(a *ast.TypeAlias, idx int, fs *source.FileSet) *treeNode {
	name := a.AliasName()
	if name == "" {
		name = "<missing>"
	}
	if a.Generics != nil {
		var params []string
		for _, lt := range a.Generics.Lifetimes() {
			params = append(params, lt.Name)
		}
		params = append(params, a.Generics.TypeParams()...)
		name += "<" + strings.Join(params, ", ") + ">"
	}
	n := &treeNode{label: fmt.Sprintf("Alias[%d] %s (%s)", idx, name, formatSpan(a.Span(), fs))}
	n.add(typeNode(a.Type, fs))
	return n
}

func missing() *treeNode { return &treeNode{label: "<missing>"} }

func typeNode(ty ast.Type, fs *source.FileSet) *treeNode {
	if ty == nil {
		return missing()
	}
	n := &treeNode{}
	label := ty.Kind().String()
	switch t := ty.(type) {
	case *ast.ParenType:
		n.add(typeNode(t.Inner, fs))
	case *ast.TupleType:
		for _, f := range t.Fields {
			n.add(typeNode(f, fs))
		}
	case *ast.PathType:
		n.add(pathNodes(t.Path, fs)...)
	case *ast.PointerType:
		switch {
		case t.Mut:
			label += " mut"
		case t.Const:
			label += " const"
		}
		n.add(typeNode(t.Pointee, fs))
	case *ast.ArrayType:
		if t.Len != nil {
			label += " len=" + t.Len.Text
		} else {
			label += " len=<missing>"
		}
		n.add(typeNode(t.Elem, fs))
	case *ast.SliceType:
		n.add(typeNode(t.Elem, fs))
	case *ast.ReferenceType:
		if t.Lifetime != nil {
			label += " " + t.Lifetime.Name
		}
		if t.Mut {
			label += " mut"
		}
		n.add(typeNode(t.Referent, fs))
	case *ast.FnPointerType:
		if t.Unsafe {
			label += " unsafe"
		}
		if t.Extern {
			label += " extern"
			if t.ABI != "" {
				label += fmt.Sprintf(" %q", t.ABI)
			}
		}
		n.add(paramNodes(t.Params, fs)...)
		if t.Ret != nil {
			ret := &treeNode{label: "Ret"}
			ret.add(typeNode(t.Ret.Type, fs))
			n.add(ret)
		}
	case *ast.ForType:
		var lts []string
		for _, lt := range t.Generics.Lifetimes() {
			lts = append(lts, lt.Name)
		}
		label += "<" + strings.Join(lts, ", ") + ">"
		n.add(typeNode(t.Inner, fs))
	case *ast.ImplTraitType:
		n.add(boundNodes(t.Bounds, fs)...)
	case *ast.DynTraitType:
		n.add(boundNodes(t.Bounds, fs)...)
	}
	n.label = fmt.Sprintf("%s (%s)", label, formatSpan(ty.Span(), fs))
	return n
}

func paramNodes(list *ast.ParamList, fs *source.FileSet) []*treeNode {
	if list == nil {
		return nil
	}
	out := make([]*treeNode, 0, len(list.Params))
	for i, p := range list.Params {
		label := fmt.Sprintf("Param[%d]", i)
		switch {
		case p.Variadic:
			out = append(out, &treeNode{label: label + " ..."})
			continue
		case p.Name != nil:
			label += " " + p.Name.Text
		}
		n := &treeNode{label: label}
		n.add(typeNode(p.Type, fs))
		out = append(out, n)
	}
	return out
}

func boundNodes(list *ast.TypeBoundList, fs *source.FileSet) []*treeNode {
	if list == nil {
		return nil
	}
	out := make([]*treeNode, 0, len(list.Bounds))
	for i, b := range list.Bounds {
		label := fmt.Sprintf("Bound[%d] %s", i, b.Kind())
		if b.Maybe {
			label += " ?"
		}
		n := &treeNode{label: label}
		switch {
		case b.Lifetime != nil:
			n.label += " " + b.Lifetime.Name
		default:
			n.add(typeNode(b.Type, fs))
		}
		out = append(out, n)
	}
	return out
}

func pathNodes(p *ast.Path, fs *source.FileSet) []*treeNode {
	if p == nil {
		return []*treeNode{missing()}
	}
	var out []*treeNode
	if p.Global {
		out = append(out, &treeNode{label: "Global"})
	}
	for i, seg := range p.Segments {
		if seg == nil {
			out = append(out, &treeNode{label: fmt.Sprintf("Segment[%d] <missing>", i)})
			continue
		}
		n := &treeNode{label: fmt.Sprintf("Segment[%d] %s", i, seg.Kind)}
		if seg.Name != nil {
			n.label += " " + seg.Name.Text
		}
		if seg.Kind == ast.SegmentType {
			n.add(typeNode(seg.QualType, fs))
			if seg.QualTrait != nil {
				as := &treeNode{label: "As"}
				as.add(typeNode(seg.QualTrait, fs))
				n.add(as)
			}
		}
		if seg.GenericArgs != nil {
			n.add(genericArgNodes(seg.GenericArgs, fs)...)
		}
		if seg.ParamList != nil {
			n.add(paramNodes(seg.ParamList, fs)...)
		}
		if seg.RetType != nil {
			ret := &treeNode{label: "Ret"}
			ret.add(typeNode(seg.RetType.Type, fs))
			n.add(ret)
		}
		out = append(out, n)
	}
	return out
}

func genericArgNodes(list *ast.GenericArgList, fs *source.FileSet) []*treeNode {
	out := make([]*treeNode, 0, len(list.Args))
	for _, arg := range list.Args {
		switch a := arg.(type) {
		case *ast.TypeArg:
			n := &treeNode{label: "TypeArg"}
			n.add(typeNode(a.Type, fs))
			out = append(out, n)
		case *ast.AssocTypeArg:
			name := "<missing>"
			if a.Name != nil {
				name = a.Name.Text
			}
			n := &treeNode{label: "AssocTypeArg " + name}
			n.add(typeNode(a.Type, fs))
			out = append(out, n)
		case *ast.LifetimeArg:
			out = append(out, &treeNode{label: "LifetimeArg " + a.Lifetime.Name})
		case *ast.ConstArg:
			out = append(out, &treeNode{label: "ConstArg " + a.Expr.Text})
		}
	}
	return out
}
