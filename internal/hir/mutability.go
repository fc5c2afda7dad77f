package hir

// Mutability of a reference or raw pointer.
type Mutability uint8

const (
	Shared Mutability = iota
	Mutable
)

// MutabilityFromMutable maps the presence of a `mut` keyword.
func MutabilityFromMutable(mutable bool) Mutability {
	if mutable {
		return Mutable
	}
	return Shared
}

// AsKeywordForRef is the text written after `&`.
func (m Mutability) AsKeywordForRef() string {
	if m == Mutable {
		return "mut "
	}
	return ""
}

// AsKeywordForPtr is the text written after `*`.
func (m Mutability) AsKeywordForPtr() string {
	if m == Mutable {
		return "mut "
	}
	return "const "
}

func (m Mutability) String() string {
	if m == Mutable {
		return "Mutable"
	}
	return "Shared"
}
