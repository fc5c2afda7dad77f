package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Lifetime represents a lifetime name such as 'a or 'static.
	Lifetime

	KwAs     // as
	KwConst  // const
	KwCrate  // crate
	KwDyn    // dyn
	KwExtern // extern
	KwFn     // fn
	KwFor    // for
	KwImpl   // impl
	KwMut    // mut
	KwSelf   // self
	KwSuper  // super
	KwType   // type
	KwUnsafe // unsafe

	// IntLit represents an integer literal (array lengths, const args).
	IntLit
	// StringLit represents a string literal (extern ABI names).
	StringLit

	LParen     // (
	RParen     // )
	LBracket   // [
	RBracket   // ]
	LBrace     // {
	RBrace     // }
	Lt         // <
	Gt         // >
	Comma      // ,
	Semicolon  // ;
	Colon      // :
	ColonColon // ::
	Arrow      // ->
	Assign     // =
	Plus       // +
	Minus      // -
	Question   // ?
	Bang       // !
	Amp        // &
	Star       // *
	Underscore // _
	Hash       // #
	Dot        // .
	DotDotDot  // ...
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	Lifetime:   "Lifetime",
	KwAs:       "KwAs",
	KwConst:    "KwConst",
	KwCrate:    "KwCrate",
	KwDyn:      "KwDyn",
	KwExtern:   "KwExtern",
	KwFn:       "KwFn",
	KwFor:      "KwFor",
	KwImpl:     "KwImpl",
	KwMut:      "KwMut",
	KwSelf:     "KwSelf",
	KwSuper:    "KwSuper",
	KwType:     "KwType",
	KwUnsafe:   "KwUnsafe",
	IntLit:     "IntLit",
	StringLit:  "StringLit",
	LParen:     "LParen",
	RParen:     "RParen",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	Lt:         "Lt",
	Gt:         "Gt",
	Comma:      "Comma",
	Semicolon:  "Semicolon",
	Colon:      "Colon",
	ColonColon: "ColonColon",
	Arrow:      "Arrow",
	Assign:     "Assign",
	Plus:       "Plus",
	Minus:      "Minus",
	Question:   "Question",
	Bang:       "Bang",
	Amp:        "Amp",
	Star:       "Star",
	Underscore: "Underscore",
	Hash:       "Hash",
	Dot:        "Dot",
	DotDotDot:  "DotDotDot",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
