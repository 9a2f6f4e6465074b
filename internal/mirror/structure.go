package mirror

import (
	"os"
	"path/filepath"
)

// ReconcileStructure makes the destination's directory set equal to the
// source's: missing directories are created, directories absent from the
// source are removed with their contents, and a destination file occupying
// a source directory path is deleted first. Creation tolerates a directory
// appearing between the snapshot and the create call; deletion tolerates
// missing and permission-denied entries as per-item skips.
func (m *Mirror) ReconcileStructure() bool {
	if err := os.MkdirAll(m.dst, 0755); err != nil {
		return m.fail("failed to create dst root", err)
	}

	srcSnap, err := m.snapshot(m.src)
	if err != nil {
		return m.fail("failed to snapshot src tree", err)
	}

	dstSnap, err := m.snapshot(m.dst)
	if err != nil {
		return m.fail("failed to snapshot dst tree", err)
	}

	// A file or symlink in dst colliding with a source directory path has
	// to go before the directory can be created.
	for rel := range srcSnap.dirs {
		_, isFile := dstSnap.files[rel]
		_, isLink := dstSnap.symlinks[rel]
		if !isFile && !isLink {
			continue
		}

		path := filepath.Join(m.dst, rel)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			m.warn("failed to remove entry conflicting with directory", path, err)
		}
	}

	for rel := range srcSnap.dirs {
		path := filepath.Join(m.dst, rel)
		if err := os.MkdirAll(path, 0755); err != nil {
			// MkdirAll only fails on an existing path when a non-directory
			// sits there; clear it and retry once.
			if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
				m.warn("failed to create directory", path, err)
				continue
			}
			if err := os.MkdirAll(path, 0755); err != nil {
				m.warn("failed to create directory", path, err)
			}
		}
	}

	for rel := range dstSnap.dirs {
		if _, ok := srcSnap.dirs[rel]; ok {
			continue
		}

		// RemoveAll is a no-op for paths already gone, which covers
		// subdirectories of a directory removed earlier in this loop.
		path := filepath.Join(m.dst, rel)
		if err := os.RemoveAll(path); err != nil {
			m.warn("failed to remove stale directory", path, err)
		}
	}

	return true
}
