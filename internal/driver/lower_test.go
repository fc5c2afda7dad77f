package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"tyir/internal/diag"
	"tyir/internal/hir"
	"tyir/internal/observ"
	"tyir/internal/trace"
)

const sampleSheet = `type Buf = &mut [u8];
type Pair<T> = (T, T);
type Sink = Box<dyn Write + Send>;
`

func writeSheet(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func displays(res *LowerResult) []string {
	out := make([]string, len(res.Aliases))
	for i, a := range res.Aliases {
		out[i] = a.Name + " = " + hir.Display(a.Type)
	}
	return out
}

func TestLowerSheetFile(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "a.tys", sampleSheet)

	res, err := Lower(context.Background(), path, LowerOptions{})
	require.NoError(t, err)
	require.False(t, res.Cached)
	require.Equal(t, 0, res.Bag.Len())
	require.NotNil(t, res.Sheet)

	assert.Equal(t, []string{
		"Buf = &mut [u8]",
		"Pair = (T, T)",
		"Sink = Box<dyn Write + Send>",
	}, displays(res))

	for _, a := range res.Aliases {
		assert.NotNil(t, a.Syntax, a.Name)
		assert.Equal(t, res.File.ID, a.Span.File)
	}
	start, end := res.FileSet.Resolve(res.Aliases[1].Span)
	assert.Equal(t, uint32(2), start.Line)
	assert.Equal(t, uint32(1), start.Col)
	assert.Equal(t, uint32(2), end.Line)
}

func TestLowerKeepsBrokenAliases(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "bad.tys", "type P = *const;\ntype Ok = u8;\n")

	res, err := Lower(context.Background(), path, LowerOptions{})
	require.NoError(t, err)
	require.True(t, res.Bag.HasErrors())
	require.Len(t, res.Aliases, 2)

	ptr, ok := res.Aliases[0].Type.(hir.RawPtrType)
	require.True(t, ok, "got %s", hir.Debug(res.Aliases[0].Type))
	assert.Equal(t, hir.KindError, ptr.Inner.Kind())
	assert.Equal(t, "u8", hir.Display(res.Aliases[1].Type))
}

func TestLowerMissingFile(t *testing.T) {
	_, err := Lower(context.Background(), filepath.Join(t.TempDir(), "nope.tys"), LowerOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLowerCanceled(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "a.tys", sampleSheet)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Lower(ctx, path, LowerOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLowerExpr(t *testing.T) {
	res, err := LowerExpr(context.Background(), "<Vec<T> as IntoIterator>::Item", LowerOptions{})
	require.NoError(t, err)
	require.Len(t, res.Aliases, 1)
	assert.Equal(t, "_", res.Aliases[0].Name)
	assert.Equal(t, "<Vec<T> as IntoIterator>::Item", hir.Display(res.Aliases[0].Type))
	assert.Equal(t, 0, res.Bag.Len())

	res, err = LowerExpr(context.Background(), "&", LowerOptions{})
	require.NoError(t, err)
	assert.True(t, res.Bag.HasErrors())
	assert.Equal(t, "&{error}", hir.Display(res.Aliases[0].Type))
}

func TestLowerUsesDiskCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewDiskCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	path := writeSheet(t, dir, "a.tys", sampleSheet)
	opts := LowerOptions{Cache: cache}

	first, err := Lower(context.Background(), path, opts)
	require.NoError(t, err)
	require.False(t, first.Cached)

	second, err := Lower(context.Background(), path, opts)
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Nil(t, second.Sheet)
	require.Len(t, second.Aliases, len(first.Aliases))
	for i := range first.Aliases {
		a, b := first.Aliases[i], second.Aliases[i]
		assert.Equal(t, a.Name, b.Name)
		assert.Equal(t, a.Span, b.Span)
		assert.Nil(t, b.Syntax)
		assert.True(t, hir.Equal(a.Type, b.Type), "%s: %s vs %s", a.Name, hir.Debug(a.Type), hir.Debug(b.Type))
	}

	// Другое содержимое, другой ключ.
	require.NoError(t, os.WriteFile(path, []byte("type X = !;\n"), 0o600))
	third, err := Lower(context.Background(), path, opts)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Equal(t, []string{"X = !"}, displays(third))
}

func TestLowerDoesNotCacheBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewDiskCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	content := "type P = *const;\n"
	path := writeSheet(t, dir, "bad.tys", content)

	_, err = Lower(context.Background(), path, LowerOptions{Cache: cache})
	require.NoError(t, err)

	var payload DiskPayload
	hit, err := cache.Get(CacheKeyFor([]byte(content)), &payload)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestDiskCacheRejectsIncompatibleEntries(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)
	key := CacheKeyFor([]byte("type A = u8;\n"))

	stale := &DiskPayload{Schema: diskCacheSchemaVersion, ToolVersion: "99.0.0", Path: "a.tys"}
	require.NoError(t, cache.Put(key, stale))
	var out DiskPayload
	hit, err := cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, hit, "other major version")

	stale.ToolVersion = "0.1.0-dev"
	stale.Schema = diskCacheSchemaVersion + 1
	require.NoError(t, cache.Put(key, stale))
	hit, err = cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, hit, "other schema")
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)
	key := CacheKeyFor([]byte("k"))

	var out DiskPayload
	hit, err := cache.Get(key, &out)
	require.NoError(t, err)
	require.False(t, hit)

	in := aliasesToPayload("k.tys", []LoweredAlias{{Name: "U", Type: hir.Unit()}})
	require.NoError(t, cache.Put(key, in))
	hit, err = cache.Get(key, &out)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "k.tys", out.Path)
	require.Len(t, out.Aliases, 1)
	assert.True(t, hir.Equal(hir.Unit(), hir.Decode(out.Aliases[0].Type)))

	require.NoError(t, cache.DropAll())
	hit, err = cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCorruptCacheEntryFallsBackToParsing(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewDiskCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	path := writeSheet(t, dir, "a.tys", sampleSheet)

	entry := cache.pathFor(CacheKeyFor([]byte(sampleSheet)))
	require.NoError(t, os.MkdirAll(filepath.Dir(entry), 0o755))
	garbage, err := msgpack.Marshal("not a payload")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(entry, garbage, 0o600))

	res, err := Lower(context.Background(), path, LowerOptions{Cache: cache})
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Len(t, res.Aliases, 3)
	require.Equal(t, 1, res.Bag.Len())
	assert.Equal(t, diag.IOCacheCorrupt, res.Bag.Items()[0].Code)
	assert.Equal(t, diag.SevWarning, res.Bag.Items()[0].Severity)

	// Перезаписано корректной записью.
	again, err := Lower(context.Background(), path, LowerOptions{Cache: cache})
	require.NoError(t, err)
	assert.True(t, again.Cached)
}

func TestLowerRecordsPhases(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "a.tys", sampleSheet)
	timer := observ.NewTimer()
	var events []PhaseEvent
	opts := LowerOptions{
		Timer:             timer,
		OnPhase:           func(ev PhaseEvent) { events = append(events, ev) },
		TimingDiagnostics: true,
	}

	res, err := Lower(context.Background(), path, opts)
	require.NoError(t, err)

	var names []string
	for _, p := range timer.Phases() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"parse", "lower"}, names)
	require.Len(t, events, 4)
	assert.Equal(t, PhaseStart, events[0].Status)
	assert.Equal(t, PhaseEnd, events[3].Status)
	assert.Equal(t, "lower", events[3].Name)

	require.Equal(t, 1, res.Bag.Len())
	timing := res.Bag.Items()[0]
	assert.Equal(t, diag.ObsTimings, timing.Code)
	require.Len(t, timing.Notes, 1)
	assert.Contains(t, timing.Notes[0].Msg, `"name":"parse"`)
	assert.False(t, res.Bag.HasErrors())
}

func TestLowerEmitsTraceSpans(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "a.tys", sampleSheet)
	ring := trace.NewRingTracer(256, trace.LevelDebug)
	ctx := trace.WithRun(trace.WithTracer(context.Background(), ring), "run-1")

	_, err := Lower(ctx, path, LowerOptions{})
	require.NoError(t, err)

	begun := map[string]bool{}
	for _, ev := range ring.Snapshot() {
		assert.Equal(t, "run-1", ev.RunID)
		if ev.Kind == trace.KindSpanBegin {
			begun[ev.Name] = true
		}
	}
	assert.True(t, begun["parse"])
	assert.True(t, begun["lower"])
	assert.True(t, begun["Buf"], "alias spans at debug level")
	found := false
	for name := range begun {
		if strings.HasPrefix(name, "file:") {
			found = true
		}
	}
	assert.True(t, found, "file span")
}
