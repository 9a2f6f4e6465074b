package mirror

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestPair lays out src and dst roots with matching basenames so the
// name guard passes by default.
func newTestPair(t *testing.T) (string, string) {
	t.Helper()
	base := t.TempDir()
	src := filepath.Join(base, "from", "data")
	dst := filepath.Join(base, "to", "data")
	require.NoError(t, os.MkdirAll(src, 0755))
	return src, dst
}

func newTestMirror(t *testing.T, src, dst string) *Mirror {
	t.Helper()
	m, err := New(src, dst, DefaultTrashPatterns)
	require.NoError(t, err)
	return m
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func writeFileAt(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	writeFile(t, path, content)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func modTime(t *testing.T, path string) time.Time {
	t.Helper()
	info, err := os.Lstat(path)
	require.NoError(t, err)
	return info.ModTime()
}

func isDir(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.IsDir()
}

func isRegular(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode().IsRegular()
}

func isSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// treeState flattens a tree into comparable lines (relative path, kind,
// mtime/content/target) so tests can assert that a second run changed
// nothing.
func treeState(t *testing.T, root string) []string {
	t.Helper()

	var state []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		require.NoError(t, err)
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)

		switch {
		case d.Type()&os.ModeSymlink != 0:
			target, err := os.Readlink(path)
			require.NoError(t, err)
			state = append(state, rel+" -> "+target)
		case d.IsDir():
			state = append(state, rel+"/")
		default:
			info, err := d.Info()
			require.NoError(t, err)
			state = append(state, strings.Join([]string{
				rel,
				info.ModTime().UTC().Format(time.RFC3339Nano),
				readFile(t, path),
			}, "|"))
		}
		return nil
	})
	require.NoError(t, err)

	sort.Strings(state)
	return state
}
