// Package ast holds the concrete syntax tree for type expressions and type
// sheets.
//
// Nodes are pointers to structs; Type and GenericArg are sealed interfaces
// (unexported marker methods), so a type switch over them is exhaustive
// within this module. The tree mirrors the source closely: parentheses are
// kept as ParenType, lifetimes and array lengths are preserved, and a child
// the parser could not produce is left nil rather than replaced by a
// placeholder node.
//
// The parser builds the tree; nothing mutates it afterwards.
package ast
