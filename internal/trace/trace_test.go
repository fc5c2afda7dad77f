package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeAlias, false},
		{LevelDebug, ScopeAlias, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
	if !LevelError.Accepts(&Event{Kind: KindFailure, Scope: ScopeAlias}) {
		t.Fatalf("failures must pass LevelError")
	}
	if LevelOff.Accepts(&Event{Kind: KindFailure}) {
		t.Fatalf("LevelOff accepted a failure")
	}
}

func TestParseLevelAndMode(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("ParseLevel accepted junk")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode(both) = %v, %v", m, err)
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}

func TestRingKeepsNewest(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopePass, Name: name})
	}
	var names []string
	for _, ev := range r.Snapshot() {
		names = append(names, ev.Name)
	}
	if strings.Join(names, ",") != "c,d,e" {
		t.Fatalf("snapshot = %v", names)
	}
}

func TestSpanEmitsBeginAndEnd(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	ctx := WithRun(WithTracer(context.Background(), tr), "run-1")

	root := BeginCtx(ctx, ScopeDriver, "lower")
	child := BeginCtx(WithParent(ctx, root), ScopePass, "parse")
	child.WithExtra("aliases", "3").End("ok")
	BeginCtx(ctx, ScopeFile, "file:a.tys").End("") // отфильтрован уровнем
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d events:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Kind != "end" || ev.Name != "parse" || ev.Detail != "ok" || ev.RunID != "run-1" {
		t.Fatalf("event = %+v", ev)
	}
	if ev.ParentID != root.ID() || ev.Extra["aliases"] != "3" {
		t.Fatalf("parent/extra = %d %v", ev.ParentID, ev.Extra)
	}
}

func TestInertSpan(t *testing.T) {
	sp := Begin(Nop, ScopeDriver, "x", 0)
	if sp.ID() != 0 || sp.WithExtra("k", "v").End("") != 0 {
		t.Fatalf("nop span should be inert")
	}
	var nilSpan *Span
	if nilSpan.ID() != 0 || nilSpan.End("") != 0 {
		t.Fatalf("nil span should be inert")
	}
}

func TestFailureAndTextFormat(t *testing.T) {
	r := NewRingTracer(8, LevelError)
	m := NewMultiTracer(LevelError, r)
	ctx := WithTracer(context.Background(), m)
	Point(ctx, ScopePass, "cache", "hit")
	Failure(ctx, ScopeFile, "read", errors.New("boom"))
	Failure(ctx, ScopeFile, "read", nil)

	if m.Ring() != r {
		t.Fatalf("Ring() did not find the ring tracer")
	}
	var out bytes.Buffer
	if err := r.Dump(&out, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	got := out.String()
	if strings.Count(got, "\n") != 1 || !strings.Contains(got, "file ✗ read (boom)") {
		t.Fatalf("dump = %q", got)
	}
}

func TestTextExtrasSorted(t *testing.T) {
	line := string(formatText(&Event{Seq: 7, Kind: KindSpanEnd, Scope: ScopePass, Name: "lower", Extra: map[string]string{"b": "2", "a": "1"}}))
	if line != "#7 pass ← lower {a=1, b=2}\n" {
		t.Fatalf("line = %q", line)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New(both): %v", err)
	}
	if _, ok := tr.(*MultiTracer); !ok {
		t.Fatalf("ModeBoth should build a MultiTracer, got %T", tr)
	}
	if len(NewRunID()) != 36 {
		t.Fatalf("run id is not a uuid")
	}
}
