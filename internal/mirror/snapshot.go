package mirror

import (
	"os"
	"path/filepath"
	"time"
)

// treeSnapshot is the in-memory view of one tree at one point in time,
// keyed by path relative to the walked root. Directories form a set, regular
// files carry their modification time and symlinks their raw (unresolved)
// target.
type treeSnapshot struct {
	dirs     map[string]struct{}
	files    map[string]time.Time
	symlinks map[string]string
}

func newTreeSnapshot() *treeSnapshot {
	return &treeSnapshot{
		dirs:     make(map[string]struct{}),
		files:    make(map[string]time.Time),
		symlinks: make(map[string]string),
	}
}

// snapshot walks root and classifies every entry. A missing root yields an
// empty snapshot. Entries whose metadata cannot be read are logged and
// excluded rather than aborting the walk; only a failure on the root itself
// is returned as an error.
func (m *Mirror) snapshot(root string) (*treeSnapshot, error) {
	snap := newTreeSnapshot()

	if _, err := os.Lstat(root); err != nil {
		if os.IsNotExist(err) {
			return snap, nil
		}
		return nil, err
	}

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			m.warn("failed to walk entry", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			m.warn("failed to resolve relative path", path, err)
			return nil
		}

		switch {
		case d.Type()&os.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				m.warn("failed to read symlink target", path, err)
				return nil
			}
			snap.symlinks[rel] = target

		case d.IsDir():
			snap.dirs[rel] = struct{}{}

		default:
			info, err := d.Info()
			if err != nil {
				m.warn("failed to stat file", path, err)
				return nil
			}
			snap.files[rel] = info.ModTime()
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}
