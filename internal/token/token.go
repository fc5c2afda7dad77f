package token

import (
	"tyir/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is an integer or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == IntLit || t.Kind == StringLit
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= LParen && t.Kind <= DotDotDot
}

// IsKeyword reports whether the token is a keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAs && t.Kind <= KwUnsafe
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsPathStart reports whether the token can begin a path segment.
func (t Token) IsPathStart() bool {
	switch t.Kind {
	case Ident, KwCrate, KwSelf, KwSuper, ColonColon, Lt:
		return true
	default:
		return false
	}
}
