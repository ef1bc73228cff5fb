package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/sketchflow/errors"
)

func start(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
}

func sketchFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sketch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))
	return path
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	path := sketchFile(t)
	w, err := New(path, WithDebounce(100*time.Millisecond))
	require.NoError(t, err)

	changes := make(chan string, 8)
	w.OnChange(func(_ context.Context, p string) error {
		changes <- p
		return nil
	})
	start(t, w)

	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0644))
	require.NoError(t, os.WriteFile(path, []byte(`{"a":2}`), 0644))

	select {
	case got := <-changes:
		assert.Equal(t, w.Path(), got)
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}

	select {
	case <-changes:
		t.Fatal("burst of writes produced more than one notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	path := sketchFile(t)
	w, err := New(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	var calls atomic.Int32
	w.OnChange(func(context.Context, string) error {
		calls.Add(1)
		return nil
	})
	start(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.json"), []byte(`{}`), 0644))
	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestWatcher_CallbackErrorsAreLogged(t *testing.T) {
	path := sketchFile(t)
	core, logs := observer.New(zapcore.DebugLevel)
	w, err := New(path, WithDebounce(0), WithLogger(zap.New(core).Sugar()))
	require.NoError(t, err)

	second := make(chan struct{}, 8)
	w.OnChange(func(context.Context, string) error { return errors.New("regenerate failed") })
	w.OnChange(func(context.Context, string) error {
		second <- struct{}{}
		return nil
	})
	start(t, w)

	require.NoError(t, os.WriteFile(path, []byte(`{"b":1}`), 0644))
	select {
	case <-second:
	case <-time.After(3 * time.Second):
		t.Fatal("second callback did not run")
	}
	assert.NotEmpty(t, logs.FilterMessage("Change callback failed").All())
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	w, err := New(sketchFile(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, w.Run(ctx))
}
