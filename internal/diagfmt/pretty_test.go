package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"tyir/internal/diag"
	"tyir/internal/source"
)

func TestPrettyPathModes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("/home/user/project/types/net.tys", []byte("type A = *u8;\n"))
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.SynPointerMissingMut, source.Span{File: id, Start: 9, End: 10}, "expected 'const' or 'mut' after '*'"))

	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAbsolute, "/home/user/project/types/net.tys:1:10: ERROR SYN2009"},
		{PathModeRelative, "types/net.tys:1:10: ERROR SYN2009"},
		{PathModeBasename, "net.tys:1:10: ERROR SYN2009"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Fatalf("output:\n%s\nwant prefix %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.tys", []byte("type A = u8;\ntype B = Vec<u8;\n"))
	bag := diag.NewBag(10)
	d := diag.New(diag.SevError, diag.SynUnclosedAngleBracket, source.Span{File: id, Start: 28, End: 29}, "expected '>'")
	d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: id, Start: 25, End: 26}, Msg: "unclosed delimiter opened here"})
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true})
	want := "a.tys:2:16: ERROR SYN2004: expected '>'\n" +
		"1 | type A = u8;\n" +
		"2 | type B = Vec<u8;\n" +
		"  |" + strings.Repeat(" ", 16) + "^\n" +
		"  note: a.tys:2:13: unclosed delimiter opened here\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyUnderlineWidth(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("w.tys", []byte("type 世 = Foo;\n"))
	bag := diag.NewBag(10)
	// "世" is three bytes wide in the file and two columns on screen.
	bag.Add(diag.New(diag.SevWarning, diag.SynUnexpectedToken, source.Span{File: id, Start: 11, End: 14}, "odd"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 || lines[2] != "  |"+strings.Repeat(" ", 11)+"^~~" {
		t.Fatalf("output = %q", buf.String())
	}
}
