package mirror

import "path/filepath"

// ValidateNames checks that the final path components of src and dst match.
// It has no side effects; the orchestrator aborts the whole run on a
// mismatch, before any mutation of the destination.
func (m *Mirror) ValidateNames() bool {
	return filepath.Base(m.src) == filepath.Base(m.dst)
}
