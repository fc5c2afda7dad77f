package hir_test

import (
	"fmt"
	"strings"
	"testing"

	"tyir/internal/diag"
	"tyir/internal/hir"
	"tyir/internal/parser"
)

func summary(bag *diag.Bag) string {
	var parts []string
	for _, d := range bag.Items() {
		parts = append(parts, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(parts, "; ")
}

// mustLower parses and lowers text that is expected to be well-formed.
func mustLower(t *testing.T, text string) hir.TypeRef {
	t.Helper()
	ty, bag := parser.ParseTypeText(text)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", text, summary(bag))
	}
	return hir.LowerType(ty)
}

// lowerBroken parses text that must produce at least one error and lowers
// whatever tree recovery left behind.
func lowerBroken(t *testing.T, text string) hir.TypeRef {
	t.Helper()
	ty, bag := parser.ParseTypeText(text)
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics for %q", text)
	}
	return hir.LowerType(ty)
}
