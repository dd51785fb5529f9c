package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartStop_NoPanicOnMissingDirs(t *testing.T) {
	dir := t.TempDir()
	w := New(filepath.Join(dir, "does-not-exist"), dir)
	require.NoError(t, w.Start())
	w.Stop()
}

func TestSignal_CoalescesBurstsWithinDebounceWindow(t *testing.T) {
	w := New(t.TempDir(), "")
	w.ticks = make(chan struct{}, 1)

	w.signal()
	w.signal()
	w.signal()

	select {
	case <-w.ticks:
	default:
		t.Fatal("expected one coalesced tick")
	}
	select {
	case <-w.ticks:
		t.Fatal("expected no second tick within debounce window")
	default:
	}
}

func TestTicks_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	gitDir := filepath.Join(dir, ".git")
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "refs"), 0o755))

	w := New(gitDir, dir)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x"), 0o644))

	select {
	case <-w.Ticks():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a tick after workdir write")
	}
}
