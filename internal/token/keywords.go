package token

var keywords = map[string]Kind{
	"as":     KwAs,
	"const":  KwConst,
	"crate":  KwCrate,
	"dyn":    KwDyn,
	"extern": KwExtern,
	"fn":     KwFn,
	"for":    KwFor,
	"impl":   KwImpl,
	"mut":    KwMut,
	"self":   KwSelf,
	"super":  KwSuper,
	"type":   KwType,
	"unsafe": KwUnsafe,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: `Self` остаётся идентификатором.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
