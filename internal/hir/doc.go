// Package hir lowers syntactic type expressions into an unresolved type IR.
//
// The IR fixes the shape of a type without resolving any name: a path stays a
// Path, `impl Trait` keeps its bounds as paths, and nothing is looked up.
// Lowering is total. Every syntax tree, including malformed ones with missing
// children, produces a TypeRef; ErrorType and ErrorBound mark the parts that
// could not be given a shape. Lifetimes, array lengths and higher-ranked
// quantifiers are dropped.
//
// TypeRef values are immutable once built and own their children
// exclusively, so they may be shared freely between goroutines. Because tuple
// and fn payloads are slices, TypeRef values must be compared with Equal and
// never with ==.
package hir
