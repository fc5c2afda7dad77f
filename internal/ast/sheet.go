package ast

import "tyir/internal/source"

// Sheet is a parsed type sheet: a file of `type Name<..> = T;` items.
type Sheet struct {
	Pos
	File  source.FileID
	Items []*TypeAlias
}

// TypeAlias is `type Name<Params> = Type;`. Type is nil when missing.
type TypeAlias struct {
	Pos
	Name     *NameRef
	Generics *GenericParamList
	Type     Type
}

// AliasName returns the alias name or "" when it is missing.
func (a *TypeAlias) AliasName() string {
	if a == nil || a.Name == nil {
		return ""
	}
	return a.Name.Text
}
