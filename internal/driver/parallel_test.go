package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tyir/internal/hir"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) final() map[string]Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Status)
	for _, ev := range s.events {
		if ev.Status == StatusDone || ev.Status == StatusError {
			out[ev.File] = ev.Status
		}
	}
	return out
}

func TestLowerFilesKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"c.tys", "a.tys", "b.tys"} {
		paths = append(paths, writeSheet(t, dir, name, "type "+name[:1]+" = [u8; 4];\n"))
	}
	missing := filepath.Join(dir, "missing.tys")
	paths = append(paths, missing)
	broken := writeSheet(t, dir, "broken.tys", "type B = fn(x:);\n")
	paths = append(paths, broken)

	sink := &recordingSink{}
	results, err := LowerFiles(context.Background(), paths, LowerOptions{Jobs: 2, Progress: sink})
	require.NoError(t, err)
	require.Len(t, results, len(paths))

	for i, name := range []string{"c", "a", "b"} {
		require.NoError(t, results[i].Err)
		assert.Equal(t, paths[i], results[i].Path)
		require.Len(t, results[i].Result.Aliases, 1)
		assert.Equal(t, name, results[i].Result.Aliases[0].Name)
		assert.Equal(t, "[u8; _]", hir.Display(results[i].Result.Aliases[0].Type))
	}
	assert.ErrorIs(t, results[3].Err, os.ErrNotExist)
	assert.Nil(t, results[3].Result)
	require.NoError(t, results[4].Err)
	assert.True(t, results[4].Result.Bag.HasErrors())

	final := sink.final()
	assert.Equal(t, StatusDone, final[paths[0]])
	assert.Equal(t, StatusError, final[missing])
	assert.Equal(t, StatusError, final[broken])
}

func TestLowerFilesEmpty(t *testing.T) {
	results, err := LowerFiles(context.Background(), nil, LowerOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLowerFilesCanceled(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "a.tys", sampleSheet)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LowerFiles(ctx, []string{path, path}, LowerOptions{Jobs: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChannelSinkForwardsEvents(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "a.tys", sampleSheet)
	ch := make(chan Event, 16)
	_, err := LowerFiles(context.Background(), []string{path}, LowerOptions{Progress: ChannelSink{Ch: ch}})
	require.NoError(t, err)
	close(ch)

	var statuses []Status
	for ev := range ch {
		statuses = append(statuses, ev.Status)
	}
	assert.Equal(t, []Status{StatusQueued, StatusWorking, StatusWorking, StatusDone}, statuses)

	ChannelSink{}.OnEvent(Event{}) // nil channel is ignored
}

func TestListSheets(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "b.tys", "")
	writeSheet(t, dir, "a.tys", "")
	writeSheet(t, dir, "notes.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writeSheet(t, filepath.Join(dir, "sub"), "c.tys", "")

	files, err := ListSheets(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.tys"),
		filepath.Join(dir, "b.tys"),
		filepath.Join(dir, "sub", "c.tys"),
	}, files)
}
