package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, "w.tys", "type A = u8;\n")
	other := filepath.Join(dir, "other.tys")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	changed := make(chan struct{}, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(ctx, path, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Watch может ещё не подписаться: пишем, пока не увидим событие.
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	seen := false
	for !seen {
		select {
		case <-changed:
			seen = true
		case <-tick.C:
			require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
			require.NoError(t, os.WriteFile(path, []byte("type A = u16;\n"), 0o600))
		case <-ctx.Done():
			t.Fatal("no change reported")
		}
	}

	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "a.tys"), func() {})
	require.Error(t, err)
}
