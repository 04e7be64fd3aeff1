package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file with content of the given size.
func writeFile(t *testing.T, path string, size int, perm os.FileMode) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, make([]byte, size), perm))
	// WriteFile perm is masked by umask; force the exact bits.
	require.NoError(t, os.Chmod(path, perm))
}

func TestAnalyzerOversizedScenario(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "big.txt"), 5000, 0o644)
	writeFile(t, filepath.Join(root, "small.txt"), 10, 0o644)

	sizeVisitor := NewFileSizeVisitor(1000)

	a, err := New(Options{Root: root}, sizeVisitor)
	require.NoError(t, err)

	report, err := a.Run(context.Background(), nil)
	require.NoError(t, err)

	result := sizeVisitor.Report()

	assert.Equal(t, int64(2), result.FilesScanned)
	require.Len(t, result.Oversized, 1)
	assert.Equal(t, filepath.Join(root, "big.txt"), result.Oversized[0].Path)
	assert.Equal(t, int64(5000), result.Oversized[0].Size)

	assert.Empty(t, report.Errors)
	assert.Equal(t, int64(2), report.FilesVisited)
	assert.Equal(t, int64(5010), report.TotalBytes)
}

func TestAnalyzerWritableScenario(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "secret.txt"), 1, 0o200)
	writeFile(t, filepath.Join(root, "readonly.txt"), 1, 0o444)

	permVisitor := NewPermissionVisitor()

	a, err := New(Options{Root: root}, permVisitor)
	require.NoError(t, err)

	_, err = a.Run(context.Background(), nil)
	require.NoError(t, err)

	writable := permVisitor.Report().Writable

	assert.Contains(t, writable, filepath.Join(root, "secret.txt"))
	assert.NotContains(t, writable, filepath.Join(root, "readonly.txt"))

	// Exactly once.
	count := 0

	for _, p := range writable {
		if p == filepath.Join(root, "secret.txt") {
			count++
		}
	}

	assert.Equal(t, 1, count)
}

func TestAnalyzerCategoryScenario(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), 1, 0o644)
	writeFile(t, filepath.Join(root, "b.jpg"), 1, 0o644)
	writeFile(t, filepath.Join(root, "c.txt"), 1, 0o644)

	categoryVisitor := NewFileCategoryVisitor()

	a, err := New(Options{
		Root:        root,
		Categorizer: extCategorizer{"jpg": "image", "txt": "text"},
	}, categoryVisitor)
	require.NoError(t, err)

	report, err := a.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"image": 2, "text": 1}, categoryVisitor.Report().Counts)

	// Sum of counts equals files successfully visited.
	var total int64
	for _, n := range categoryVisitor.Report().Counts {
		total += n
	}

	assert.Equal(t, report.FilesVisited, total)
}

func TestAnalyzerDispatchesAllVisitorsPerElement(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "f.txt"), 1, 0o644)

	first := &recordingVisitor{}
	second := NewFileSizeVisitor(0)

	a, err := New(Options{Root: root}, first, second)
	require.NoError(t, err)

	report, err := a.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "f.txt")}, first.files)
	assert.Equal(t, []string{root}, first.dirs)
	assert.Equal(t, int64(1), second.Report().FilesScanned)

	require.Contains(t, report.Results, "recording")
	require.Contains(t, report.Results, "size")
}

func TestAnalyzerIdempotentOverUnchangedTree(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))
	writeFile(t, filepath.Join(root, "a", "one.txt"), 2000, 0o644)
	writeFile(t, filepath.Join(root, "a", "b", "two.jpg"), 3000, 0o644)
	writeFile(t, filepath.Join(root, "three.txt"), 10, 0o644)

	categorizer := extCategorizer{"jpg": "image", "txt": "text"}

	runOnce := func() (SizeResult, CategoryResult, *Report) {
		sizeVisitor := NewFileSizeVisitor(1000)
		categoryVisitor := NewFileCategoryVisitor()

		a, err := New(Options{Root: root, Categorizer: categorizer}, sizeVisitor, categoryVisitor)
		require.NoError(t, err)

		report, err := a.Run(context.Background(), nil)
		require.NoError(t, err)

		return sizeVisitor.Report(), categoryVisitor.Report(), report
	}

	size1, categories1, report1 := runOnce()
	size2, categories2, report2 := runOnce()

	assert.Equal(t, size1.FilesScanned, size2.FilesScanned)
	assert.Equal(t, size1.TotalBytes, size2.TotalBytes)
	assert.ElementsMatch(t, size1.Oversized, size2.Oversized)
	assert.Equal(t, categories1.Counts, categories2.Counts)
	assert.Equal(t, report1.FilesVisited, report2.FilesVisited)
	assert.Equal(t, report1.DirsVisited, report2.DirsVisited)
	assert.Len(t, report1.Errors, 0)
	assert.Len(t, report2.Errors, 0)
}

func TestAnalyzerPartialFailureContainment(t *testing.T) {
	fsys := newFakeFS()
	fsys.addDir("root", 0o755)
	fsys.addDir("root/bad", 0o755)
	fsys.addDir("root/good", 0o755)
	fsys.addFile("root/good/a.jpg", 10, 0o644)
	fsys.addFile("root/good/b.jpg", 10, 0o644)
	fsys.addFile("root/c.txt", 10, 0o644)
	fsys.failList["root/bad"] = os.ErrPermission

	sizeVisitor := NewFileSizeVisitor(1)
	categoryVisitor := NewFileCategoryVisitor()

	a, err := New(Options{
		Root:        "root",
		FS:          fsys,
		Categorizer: extCategorizer{"jpg": "image", "txt": "text"},
	}, sizeVisitor, categoryVisitor)
	require.NoError(t, err)

	report, err := a.Run(context.Background(), nil)
	require.NoError(t, err)

	// Exactly one error entry for the failing directory; siblings fully
	// analyzed.
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "root/bad", report.Errors[0].Path)

	assert.Equal(t, int64(3), sizeVisitor.Report().FilesScanned)
	assert.Equal(t, map[string]int64{"image": 2, "text": 1}, categoryVisitor.Report().Counts)
}

func TestAnalyzerConfigurationErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		_, err := New(Options{Root: filepath.Join(t.TempDir(), "absent")})
		require.Error(t, err)
	})

	t.Run("root is a file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "f.txt"), 1, 0o644)

		_, err := New(Options{Root: filepath.Join(root, "f.txt")})
		require.ErrorIs(t, err, ErrNotDirectory)
	})

	t.Run("bad exclude pattern", func(t *testing.T) {
		_, err := New(Options{Root: t.TempDir(), Excludes: []string{"("}})
		require.Error(t, err)
	})

	t.Run("duplicate visitor names", func(t *testing.T) {
		_, err := New(Options{Root: t.TempDir()}, NewPermissionVisitor(), NewPermissionVisitor())
		require.ErrorIs(t, err, ErrDuplicateVisitor)
	})
}

func TestAnalyzerCancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "f.txt"), 1, 0o644)

	a, err := New(Options{Root: root}, NewFileSizeVisitor(0))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = a.Run(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzerExcludedSubtreeSilent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "dep"), 0o755))
	writeFile(t, filepath.Join(root, "node_modules", "dep", "x.js"), 1, 0o644)
	writeFile(t, filepath.Join(root, "keep.js"), 1, 0o644)

	sizeVisitor := NewFileSizeVisitor(0)

	a, err := New(Options{Root: root, Excludes: []string{`.*node_modules/.*`}}, sizeVisitor)
	require.NoError(t, err)

	report, err := a.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, report.Errors)
	assert.Equal(t, int64(1), sizeVisitor.Report().FilesScanned)
}
