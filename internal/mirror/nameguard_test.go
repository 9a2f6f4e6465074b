package mirror

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNames(t *testing.T) {
	base := t.TempDir()

	t.Run("matching basenames pass", func(t *testing.T) {
		m := newTestMirror(t,
			filepath.Join(base, "a", "photos"),
			filepath.Join(base, "b", "photos"))
		assert.True(t, m.ValidateNames())
	})

	t.Run("different basenames fail", func(t *testing.T) {
		m := newTestMirror(t,
			filepath.Join(base, "a", "photos"),
			filepath.Join(base, "b", "backup"))
		assert.False(t, m.ValidateNames())
	})

	t.Run("comparison is case-sensitive", func(t *testing.T) {
		m := newTestMirror(t,
			filepath.Join(base, "a", "photos"),
			filepath.Join(base, "b", "Photos"))
		assert.False(t, m.ValidateNames())
	})
}
