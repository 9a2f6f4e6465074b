package mirror

import (
	"io"
	"os"
	"path/filepath"
	"time"
)

// ReconcileContent makes the destination's regular files and symlinks match
// the source's. Three passes over fresh snapshots of both trees:
//
//  1. delete destination files and symlinks whose relative path is absent
//     from both the source file set and the source symlink set;
//  2. copy source files that are missing in the destination or strictly
//     older there, preserving the modification time (equal times skip, a
//     newer destination is left untouched);
//  3. recreate every source symlink from its raw target, unconditionally.
//
// Both write passes clear any destination entry of a mismatched kind at the
// leaf before writing, so a path that switched kind in the source converges
// in a single run.
func (m *Mirror) ReconcileContent() bool {
	srcSnap, err := m.snapshot(m.src)
	if err != nil {
		return m.fail("failed to snapshot src tree", err)
	}

	dstSnap, err := m.snapshot(m.dst)
	if err != nil {
		return m.fail("failed to snapshot dst tree", err)
	}

	m.deleteOrphans(srcSnap, dstSnap)
	m.copyFiles(srcSnap, dstSnap)
	m.createSymlinks(srcSnap)

	return true
}

func (m *Mirror) deleteOrphans(srcSnap, dstSnap *treeSnapshot) {
	for rel := range dstSnap.files {
		if _, ok := srcSnap.files[rel]; ok {
			continue
		}
		if _, ok := srcSnap.symlinks[rel]; ok {
			continue
		}

		path := filepath.Join(m.dst, rel)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			m.warn("failed to remove stale file", path, err)
		}
	}

	for rel := range dstSnap.symlinks {
		if _, ok := srcSnap.files[rel]; ok {
			continue
		}
		if _, ok := srcSnap.symlinks[rel]; ok {
			continue
		}

		path := filepath.Join(m.dst, rel)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			m.warn("failed to remove stale symlink", path, err)
		}
	}
}

func (m *Mirror) copyFiles(srcSnap, dstSnap *treeSnapshot) {
	for rel, srcTime := range srcSnap.files {
		srcPath := filepath.Join(m.src, rel)
		dstPath := filepath.Join(m.dst, rel)

		if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
			m.warn("failed to create parent dir", dstPath, err)
			continue
		}

		if dstTime, ok := dstSnap.files[rel]; ok && !srcTime.After(dstTime) {
			continue
		}

		if err := m.clearMismatched(dstPath, func(info os.FileInfo) bool {
			return info.Mode().IsRegular()
		}); err != nil {
			m.warn("failed to clear entry blocking file copy", dstPath, err)
			continue
		}

		if err := m.copyFile(srcPath, dstPath, srcTime); err != nil {
			m.warn("failed to copy file", srcPath, err)
		}
	}
}

func (m *Mirror) createSymlinks(srcSnap *treeSnapshot) {
	for rel, target := range srcSnap.symlinks {
		dstPath := filepath.Join(m.dst, rel)

		if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
			m.warn("failed to create parent dir", dstPath, err)
			continue
		}

		// Symlinks are always recreated, so whatever sits at the path goes,
		// identical symlinks included.
		if err := m.clearMismatched(dstPath, func(os.FileInfo) bool {
			return false
		}); err != nil {
			m.warn("failed to remove entry blocking symlink", dstPath, err)
			continue
		}

		if err := os.Symlink(target, dstPath); err != nil {
			m.warn("failed to create symlink", dstPath, err)
		}
	}
}

// clearMismatched removes whatever exists at path unless keep accepts it.
// Directories are removed with their contents.
func (m *Mirror) clearMismatched(path string, keep func(os.FileInfo) bool) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if keep(info) {
		return nil
	}
	return os.RemoveAll(path)
}

// copyFile copies bytes through a temp file in the destination directory and
// renames it into place, then restores the source's modification time. A
// failure to apply metadata never undoes a completed byte copy; it is logged
// and the file keeps its write-time stamp.
func (m *Mirror) copyFile(src, dst string, modTime time.Time) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer func(srcFile *os.File) {
		_ = srcFile.Close()
	}(srcFile)

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	tmpPath := dst + ".mirra.tmp"
	dstFile, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		// Source permission bits may not be representable here; retry with
		// a plain mode rather than giving up on the byte copy.
		dstFile, err = os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	if err := dstFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Chtimes(dst, time.Now(), modTime); err != nil {
		m.warn("failed to preserve modification time", dst, err)
	}

	return nil
}
