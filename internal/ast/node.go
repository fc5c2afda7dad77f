package ast

import "tyir/internal/source"

// Node is implemented by every syntax node.
type Node interface {
	Span() source.Span
}

// Pos is embedded into every node and carries its source range.
type Pos struct {
	Range source.Span
}

func (p Pos) Span() source.Span { return p.Range }

// Type is a type expression.
type Type interface {
	Node
	Kind() Kind
	typeNode()
}

// Kind discriminates nodes in dumps and tests.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindParenType
	KindTupleType
	KindNeverType
	KindPathType
	KindPointerType
	KindArrayType
	KindSliceType
	KindReferenceType
	KindPlaceholderType
	KindFnPointerType
	KindForType
	KindImplTraitType
	KindDynTraitType
)

var kindNames = [...]string{
	KindInvalid:         "Invalid",
	KindParenType:       "ParenType",
	KindTupleType:       "TupleType",
	KindNeverType:       "NeverType",
	KindPathType:        "PathType",
	KindPointerType:     "PointerType",
	KindArrayType:       "ArrayType",
	KindSliceType:       "SliceType",
	KindReferenceType:   "ReferenceType",
	KindPlaceholderType: "PlaceholderType",
	KindFnPointerType:   "FnPointerType",
	KindForType:         "ForType",
	KindImplTraitType:   "ImplTraitType",
	KindDynTraitType:    "DynTraitType",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
