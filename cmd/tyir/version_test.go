package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderVersionPretty(t *testing.T) {
	info := versionInfo{Version: "1.2.3", GitCommit: "abc123"}
	var out bytes.Buffer
	renderVersionPretty(&out, "1.2.3", info, versionOptions{showHash: true, showDate: true})
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{
		"tyir 1.2.3: " + versionTagline,
		"ir schema: 1",
		"commit: abc123",
		"built:  unknown",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderVersionJSON(t *testing.T) {
	var out bytes.Buffer
	if err := renderVersionJSON(&out, versionInfo{Version: "1.2.3"}, versionOptions{showDate: true}); err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Tool != "tyir" || payload.Version != "1.2.3" || payload.SchemaVersion != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.GitCommit != "" || payload.BuildDate != "unknown" {
		t.Fatalf("unexpected optional fields: %+v", payload)
	}
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("expected error")
	}
	if shouldUseTUI(uiModeOff, 10) || !shouldUseTUI(uiModeOn, 1) {
		t.Fatal("explicit modes must win")
	}
}
