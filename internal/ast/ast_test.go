package ast

import "testing"

func TestGenericArgFilters(t *testing.T) {
	list := &GenericArgList{Args: []GenericArg{
		&LifetimeArg{Lifetime: &Lifetime{Name: "'a"}},
		&TypeArg{Type: &NeverType{}},
		&AssocTypeArg{Name: &NameRef{Text: "Item"}, Type: &PlaceholderType{}},
		&ConstArg{Expr: &ConstExpr{Text: "4"}},
		&TypeArg{Type: &PlaceholderType{}},
	}}

	if got := len(list.TypeArgs()); got != 2 {
		t.Fatalf("TypeArgs = %d, want 2", got)
	}
	if _, ok := list.TypeArgs()[1].Type.(*PlaceholderType); !ok {
		t.Fatalf("type args out of order")
	}
	if got := list.AssocTypeArgs(); len(got) != 1 || got[0].Name.Text != "Item" {
		t.Fatalf("AssocTypeArgs = %v", got)
	}
	if len(list.LifetimeArgs()) != 1 || len(list.ConstArgs()) != 1 {
		t.Fatalf("lifetime/const filters")
	}

	var nilList *GenericArgList
	if nilList.TypeArgs() != nil {
		t.Fatalf("nil list must yield nil")
	}
}

func TestBoundKind(t *testing.T) {
	tests := []struct {
		name  string
		bound *TypeBound
		want  BoundKind
	}{
		{"path", &TypeBound{Type: &PathType{}}, BoundPath},
		{"missing", &TypeBound{}, BoundPath},
		{"for", &TypeBound{Type: &ForType{Inner: &PathType{}}}, BoundFor},
		{"lifetime", &TypeBound{Lifetime: &Lifetime{Name: "'a"}}, BoundLifetime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bound.Kind(); got != tt.want {
				t.Fatalf("Kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindNames(t *testing.T) {
	types := []Type{
		&ParenType{}, &TupleType{}, &NeverType{}, &PathType{}, &PointerType{},
		&ArrayType{}, &SliceType{}, &ReferenceType{}, &PlaceholderType{},
		&FnPointerType{}, &ForType{}, &ImplTraitType{}, &DynTraitType{},
	}
	seen := make(map[string]bool)
	for _, ty := range types {
		name := ty.Kind().String()
		if name == "Invalid" || seen[name] {
			t.Fatalf("bad or duplicate kind name %q", name)
		}
		seen[name] = true
	}
}
