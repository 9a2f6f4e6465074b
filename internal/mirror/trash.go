package mirror

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// DefaultTrashPatterns identifies junk entries by name: trash folders,
// editor/temp leftovers and OS metadata files. Matching is case-insensitive.
var DefaultTrashPatterns = []string{
	`^trash$`, `^\.trash$`,
	`.*~$`, `.*\.tmp$`, `.*\.temp$`,
	`^\.DS_Store$`, `^Thumbs\.db$`,
}

// Sweeper removes junk entries from a destination tree. The pattern list is
// injected so callers can configure it and tests can exercise it in
// isolation.
type Sweeper struct {
	patterns []*regexp.Regexp
}

func NewSweeper(patterns []string) (*Sweeper, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("invalid trash pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}

	return &Sweeper{patterns: compiled}, nil
}

func (s *Sweeper) Match(name string) bool {
	for _, re := range s.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// SweepTrash removes trash-named files and directories from the destination
// tree only; the source is never traversed for deletion. Directories are
// visited bottom-up, and a matching directory is removed with its whole
// subtree. Per-item failures are logged and skipped; only an inaccessible
// destination root fails the phase.
//
// Note that structure reconciliation later recreates every directory present
// in the source regardless of name, so a trash-named directory in the source
// is still mirrored: sweeping applies to destination-side cleanup only.
func (m *Mirror) SweepTrash() bool {
	if _, err := os.Lstat(m.dst); err != nil {
		if os.IsNotExist(err) {
			return true
		}
		return m.fail("failed to access dst for sweeping", err)
	}

	if err := m.sweepDir(m.dst); err != nil {
		return m.fail("failed to sweep trash", err)
	}
	return true
}

func (m *Mirror) sweepDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	// Descend first so descendants are handled before the directory itself.
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := m.sweepDir(path); err != nil {
			m.warn("failed to sweep directory", path, err)
		}
	}

	for _, e := range entries {
		if !m.sweeper.Match(e.Name()) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if err := os.RemoveAll(path); err != nil {
				m.warn("failed to remove trash directory", path, err)
			}
		} else {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				m.warn("failed to remove trash file", path, err)
			}
		}
	}

	return nil
}
