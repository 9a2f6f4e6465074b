// Package mirror implements one-way directory mirroring: it makes a
// destination tree match a source tree through four ordered phases, never
// writing under the source root.
package mirror

import (
	"fmt"
	"path/filepath"
	"time"

	"mirra/internal/logger"

	"go.uber.org/zap"
)

// Mirror reconciles dst against src. It is single-threaded: phases run
// strictly in sequence and each phase re-walks both trees, since earlier
// phases mutate the destination.
type Mirror struct {
	src     string
	dst     string
	sweeper *Sweeper

	warnings int
}

func New(src, dst string, trashPatterns []string) (*Mirror, error) {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return nil, fmt.Errorf("invalid src path: %w", err)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return nil, fmt.Errorf("invalid dst path: %w", err)
	}

	sweeper, err := NewSweeper(trashPatterns)
	if err != nil {
		return nil, err
	}

	return &Mirror{
		src:     absSrc,
		dst:     absDst,
		sweeper: sweeper,
	}, nil
}

type PhaseResult struct {
	Ordinal  int
	Name     string
	OK       bool
	Warnings int
}

// String renders a result line in the fixed-width step table format.
func (r PhaseResult) String() string {
	status := "ok"
	if !r.OK {
		status = "bad"
	}
	return fmt.Sprintf("%d | %-35s | %s", r.Ordinal, r.Name, status)
}

type Report struct {
	SrcPath   string
	DstPath   string
	StartedAt time.Time
	Duration  time.Duration
	Phases    []PhaseResult
	OK        bool
	Warnings  int
}

// Run executes the full pipeline: name guard, trash sweep, structure
// reconciliation, content reconciliation. It is fail-fast: a phase-level
// failure stops the run before the next phase. Per-item errors inside a
// phase are absorbed as warnings and never fail the phase.
func (m *Mirror) Run() Report {
	m.warnings = 0

	phases := []struct {
		name string
		fn   func() bool
	}{
		{"check folder names src == dst", m.ValidateNames},
		{"remove trash from dst", m.SweepTrash},
		{"match folder trees of src and dst", m.ReconcileStructure},
		{"match files from src and dst", m.ReconcileContent},
	}

	rep := Report{
		SrcPath:   m.src,
		DstPath:   m.dst,
		StartedAt: time.Now(),
		OK:        true,
	}

	for i, p := range phases {
		before := m.warnings
		ok := p.fn()

		rep.Phases = append(rep.Phases, PhaseResult{
			Ordinal:  i + 1,
			Name:     p.name,
			OK:       ok,
			Warnings: m.warnings - before,
		})

		if !ok {
			rep.OK = false
			break
		}
	}

	rep.Warnings = m.warnings
	rep.Duration = time.Since(rep.StartedAt)
	return rep
}

// warn records a per-item failure: logged with the offending path, counted,
// and otherwise absorbed so the phase keeps going.
func (m *Mirror) warn(msg, path string, err error) {
	m.warnings++
	logger.Log.Warn(msg,
		zap.String("path", path),
		zap.Error(err))
}

func (m *Mirror) fail(msg string, err error) bool {
	logger.Log.Error(msg,
		zap.Error(err))
	return false
}
