package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pdf"))
	writeFile(t, filepath.Join(root, "sub", "b.PDF"))
	writeFile(t, filepath.Join(root, "sub", "notes.txt"))
	writeFile(t, filepath.Join(root, ".hidden", "c.pdf"))
	writeFile(t, filepath.Join(root, ".secret.pdf"))

	paths, stats, err := ScanDirectory(root, true)
	require.NoError(t, err)

	sort.Strings(paths)
	assert.Equal(t, []string{
		filepath.Join(root, "a.pdf"),
		filepath.Join(root, "sub", "b.PDF"),
	}, paths)
	assert.Equal(t, uint32(2), stats.Matched)
}

func TestScanDirectoryIncludesHiddenWhenAsked(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".hidden", "c.pdf"))

	paths, _, err := ScanDirectory(root, false)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestScanDirectoryEmptyRoot(t *testing.T) {
	_, _, err := ScanDirectory("  ", true)
	assert.Error(t, err)
}

func TestRunnerProcessesEveryPath(t *testing.T) {
	var calls atomic.Uint32
	r := NewRunner(3, nil, func(_ context.Context, path string) error {
		calls.Add(1)
		if filepath.Base(path) == "bad.pdf" {
			return errors.New("no text layer")
		}
		return nil
	})

	paths := []string{"a.pdf", "b.pdf", "bad.pdf", "c.pdf"}
	results, stats := r.Run(context.Background(), paths)

	assert.Equal(t, uint32(4), calls.Load())
	assert.Len(t, results, 4)
	assert.Equal(t, uint32(3), stats.Succeeded)
	assert.Equal(t, uint32(1), stats.Failed)

	for _, res := range results {
		if filepath.Base(res.Path) == "bad.pdf" {
			assert.Contains(t, res.Err, "no text layer")
		} else {
			assert.Empty(t, res.Err)
		}
	}
}

func TestRunnerStopsFeedingOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Uint32
	r := NewRunner(2, nil, func(_ context.Context, _ string) error {
		calls.Add(1)
		return nil
	})

	results, _ := r.Run(ctx, []string{"a.pdf", "b.pdf", "c.pdf"})
	assert.LessOrEqual(t, len(results), 3)
	assert.LessOrEqual(t, calls.Load(), uint32(3))
}
