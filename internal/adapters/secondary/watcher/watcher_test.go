package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanReloader chan struct{}

func (c chanReloader) Reload(ctx context.Context) error {
	c <- struct{}{}
	return nil
}

func TestDatasetWatcher_ReloadsOnParquetChange(t *testing.T) {
	dir := t.TempDir()
	reloads := make(chanReloader, 4)

	dw, err := New(dir, reloads, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go dw.Run(ctx)

	// A burst of writes collapses into one reload.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "part-0.parquet"), []byte{byte(i)}, 0o644))
	}

	select {
	case <-reloads:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a reload after parquet change")
	}

	cancel()
	select {
	case <-dw.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestDatasetWatcher_Relevant(t *testing.T) {
	dirWatcher := &DatasetWatcher{}
	assert.True(t, dirWatcher.relevant(fsnotify.Event{Name: "/data/a.PARQUET", Op: fsnotify.Create}))
	assert.False(t, dirWatcher.relevant(fsnotify.Event{Name: "/data/_SUCCESS", Op: fsnotify.Create}))
	assert.False(t, dirWatcher.relevant(fsnotify.Event{Name: "/data/a.parquet", Op: fsnotify.Chmod}))

	fileWatcher := &DatasetWatcher{file: "gold.csv"}
	assert.True(t, fileWatcher.relevant(fsnotify.Event{Name: "/data/gold.csv", Op: fsnotify.Write}))
	assert.False(t, fileWatcher.relevant(fsnotify.Event{Name: "/data/other.csv", Op: fsnotify.Write}))
}

func TestNew_MissingPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), make(chanReloader), time.Second)
	assert.Error(t, err)
}
