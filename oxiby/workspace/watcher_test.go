package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, events <-chan Event, path string, kind EventKind) Event {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "events closed before %s %s", kind, path)
			if ev.Path == path && ev.Kind == kind {
				return ev
			}
		case <-timeout:
			t.Fatalf("no %s event for %s", kind, path)
		}
	}
}

func TestWatcher(t *testing.T) {
	root := t.TempDir()
	ws := New(root, nil)
	w, err := NewWatcher(ws)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	path := filepath.Join(root, "a.oxi")
	require.NoError(t, os.WriteFile(path, []byte("fn"), 0o644))
	ev := waitFor(t, w.Events(), path, EventParsed)
	require.NotNil(t, ev.File)

	require.NoError(t, os.WriteFile(path, []byte("fn a() {}"), 0o644))
	require.Eventually(t, func() bool {
		f := ws.GetFile(path)
		return f != nil && f.Tree != nil
	}, 5*time.Second, 10*time.Millisecond)

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	nested := filepath.Join(sub, "b.oxi")
	require.Eventually(t, func() bool {
		// the directory watch is added asynchronously
		if err := os.WriteFile(nested, []byte("fn b() {}"), 0o644); err != nil {
			return false
		}
		return ws.GetFile(nested) != nil
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, os.Remove(path))
	waitFor(t, w.Events(), path, EventRemoved)
	require.Nil(t, ws.GetFile(path))

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	ws := New(root, nil)
	w, err := NewWatcher(ws)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))
	path := filepath.Join(root, "c.oxi")
	require.NoError(t, os.WriteFile(path, []byte("fn c() {}"), 0o644))

	ev := waitFor(t, w.Events(), path, EventParsed)
	require.Equal(t, path, ev.Path)
	require.Nil(t, ws.GetFile(filepath.Join(root, "notes.txt")))
}
