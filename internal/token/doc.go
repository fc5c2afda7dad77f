// Package token defines lexical token kinds and trivia for type expressions.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - '<', '>', '&' and '|' are always single-character tokens; the parser never
//     has to split a glued '>>' or '&&'.
//   - Comments are leading Trivia and never appear in the main token stream.
//   - Primitive type names (i32, u8, str, ...) are identifiers; only the name
//     resolver could give them meaning.
package token
