package mirror

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPipeline(t *testing.T) {
	t.Run("fresh copy mirrors the whole tree", func(t *testing.T) {
		src, dst := newTestPair(t)

		writeFileAt(t, filepath.Join(src, "a", "x.txt"), "x", t100)
		writeFileAt(t, filepath.Join(src, "a", "b", "y.txt"), "y", t100)

		m := newTestMirror(t, src, dst)
		rep := m.Run()

		require.True(t, rep.OK)
		require.Len(t, rep.Phases, 4)
		for _, p := range rep.Phases {
			assert.True(t, p.OK)
		}

		assert.True(t, isDir(filepath.Join(dst, "a", "b")))
		assert.True(t, modTime(t, filepath.Join(dst, "a", "x.txt")).Equal(t100))
		assert.True(t, modTime(t, filepath.Join(dst, "a", "b", "y.txt")).Equal(t100))
	})

	t.Run("name guard mismatch aborts before any mutation", func(t *testing.T) {
		base := t.TempDir()
		src := filepath.Join(base, "data")
		dst := filepath.Join(base, "backup")
		require.NoError(t, os.MkdirAll(src, 0755))
		writeFile(t, filepath.Join(src, "x.txt"), "x")

		m := newTestMirror(t, src, dst)
		rep := m.Run()

		assert.False(t, rep.OK)
		require.Len(t, rep.Phases, 1)
		assert.False(t, rep.Phases[0].OK)
		assert.False(t, exists(dst))
	})

	t.Run("second run changes nothing", func(t *testing.T) {
		src, dst := newTestPair(t)

		writeFileAt(t, filepath.Join(src, "a", "x.txt"), "x", t100)
		writeFileAt(t, filepath.Join(src, "a", "b", "y.txt"), "y", t200)
		require.NoError(t, os.MkdirAll(filepath.Join(src, "empty"), 0755))
		require.NoError(t, os.Symlink("a/x.txt", filepath.Join(src, "link")))

		m := newTestMirror(t, src, dst)
		require.True(t, m.Run().OK)

		first := treeState(t, dst)
		require.True(t, m.Run().OK)

		assert.Equal(t, first, treeState(t, dst))
	})

	t.Run("trash isolation", func(t *testing.T) {
		src, dst := newTestPair(t)

		writeFileAt(t, filepath.Join(src, "build", "keep.txt"), "keep", t100)
		writeFileAt(t, filepath.Join(dst, "build", "keep.txt"), "keep", t100)
		writeFileAt(t, filepath.Join(dst, "build", "Thumbs.db"), "junk", t100)

		m := newTestMirror(t, src, dst)
		require.True(t, m.Run().OK)

		assert.False(t, exists(filepath.Join(dst, "build", "Thumbs.db")))
		assert.Equal(t, "keep", readFile(t, filepath.Join(dst, "build", "keep.txt")))
	})

	t.Run("trash-named source directories are still mirrored", func(t *testing.T) {
		src, dst := newTestPair(t)

		writeFileAt(t, filepath.Join(src, "trash", "wanted.txt"), "wanted", t100)

		m := newTestMirror(t, src, dst)
		require.True(t, m.Run().OK)

		assert.Equal(t, "wanted", readFile(t, filepath.Join(dst, "trash", "wanted.txt")))
	})

	t.Run("converges a messy destination in one run", func(t *testing.T) {
		src, dst := newTestPair(t)

		writeFileAt(t, filepath.Join(src, "a", "x.txt"), "new", t200)
		require.NoError(t, os.Symlink("a/x.txt", filepath.Join(src, "link")))

		writeFileAt(t, filepath.Join(dst, "a", "x.txt"), "stale", t100)
		writeFileAt(t, filepath.Join(dst, "a", "orphan.txt"), "orphan", t100)
		writeFileAt(t, filepath.Join(dst, "gone", "deep.txt"), "orphan dir", t100)
		writeFileAt(t, filepath.Join(dst, "link"), "should be a symlink", t100)
		writeFileAt(t, filepath.Join(dst, "cache.tmp"), "junk", t100)

		m := newTestMirror(t, src, dst)
		rep := m.Run()
		require.True(t, rep.OK)

		assert.Equal(t, "new", readFile(t, filepath.Join(dst, "a", "x.txt")))
		assert.False(t, exists(filepath.Join(dst, "a", "orphan.txt")))
		assert.False(t, exists(filepath.Join(dst, "gone")))
		assert.False(t, exists(filepath.Join(dst, "cache.tmp")))
		assert.True(t, isSymlink(filepath.Join(dst, "link")))
	})
}

func TestPhaseResultString(t *testing.T) {
	line := PhaseResult{Ordinal: 1, Name: "check folder names src == dst", OK: true}.String()
	parts := strings.Split(line, " | ")
	require.Len(t, parts, 3)
	assert.Equal(t, "1", parts[0])
	assert.Len(t, parts[1], 35)
	assert.Equal(t, "check folder names src == dst", strings.TrimRight(parts[1], " "))
	assert.Equal(t, "ok", parts[2])

	bad := PhaseResult{Ordinal: 3, Name: "match folder trees of src and dst", OK: false}
	assert.True(t, strings.HasSuffix(bad.String(), "| bad"))
	assert.True(t, strings.HasPrefix(bad.String(), "3 | "))
}

func TestRunReportFields(t *testing.T) {
	src, dst := newTestPair(t)
	writeFileAt(t, filepath.Join(src, "x.txt"), "x", t100)

	m := newTestMirror(t, src, dst)
	rep := m.Run()

	require.True(t, rep.OK)
	assert.Equal(t, m.src, rep.SrcPath)
	assert.Equal(t, m.dst, rep.DstPath)
	assert.False(t, rep.StartedAt.IsZero())
	assert.Zero(t, rep.Warnings)

	ordinals := make([]int, 0, len(rep.Phases))
	for _, p := range rep.Phases {
		ordinals = append(ordinals, p.Ordinal)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, ordinals)
}
