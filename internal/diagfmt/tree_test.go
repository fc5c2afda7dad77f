package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"tyir/internal/diag"
	"tyir/internal/lexer"
	"tyir/internal/parser"
	"tyir/internal/source"
	"tyir/internal/token"
)

func TestFormatSheetTree(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("s.tys", []byte("type Buf = &mut [u8];\ntype P<'a, T> = *const;\n")))
	bag := diag.NewBag(10)
	sheet, _ := parser.ParseSheet(fs, file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})

	var buf bytes.Buffer
	if err := FormatSheetTree(&buf, sheet, fs); err != nil {
		t.Fatalf("FormatSheetTree: %v", err)
	}
	want := strings.Join([]string{
		"Sheet s.tys (1:1-2:24)",
		"├─ Alias[0] Buf (1:1-1:22)",
		"│  └─ ReferenceType mut (1:12-1:21)",
		"│     └─ SliceType (1:17-1:21)",
		"│        └─ PathType (1:18-1:20)",
		"│           └─ Segment[0] Name u8",
		"└─ Alias[1] P<'a, T> (2:1-2:24)",
		"   └─ PointerType const (2:17-2:23)",
		"      └─ <missing>",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatTypeTreeFnAndBounds(t *testing.T) {
	ty, bag := parser.ParseTypeText("fn(x: u8, ...) -> impl ?Sized + 'a")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %d", bag.Len())
	}
	var buf bytes.Buffer
	if err := FormatTypeTree(&buf, ty, nil); err != nil {
		t.Fatalf("FormatTypeTree: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"FnPointerType (span(0-34))",
		"├─ Param[0] x",
		"├─ Param[1] ...",
		"└─ Ret",
		"Bound[0] Path ?",
		"Bound[1] Lifetime 'a",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func lexAll(t *testing.T, fs *source.FileSet, text string) []token.Token {
	t.Helper()
	file := fs.Get(fs.AddVirtual("t.tys", []byte(text)))
	lx := lexer.New(file, lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	toks := lexAll(t, fs, "&'a T")

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(pretty.String()), "\n")
	if len(lines) != 4 || !strings.Contains(lines[2], `"T" at 1:5-1:6 (leading: Space)`) {
		t.Fatalf("pretty tokens:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 4 || out[1].Text != "'a" || out[3].Kind != token.EOF.String() {
		t.Fatalf("json tokens = %+v", out)
	}
}
