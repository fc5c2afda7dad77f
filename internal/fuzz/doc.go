// Package fuzztests holds go-fuzz style harnesses for the lexer, the parser
// and type lowering. Run with `go test -fuzz=Fuzz... ./internal/fuzz`.
package fuzztests
