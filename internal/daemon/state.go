package daemon

import (
	"sync"
	"time"

	"mirra/internal/mirror"
	"mirra/internal/model"
)

// State tracks the watched pair across pipeline runs. It is the only piece
// of the daemon shared between the run loop and the HTTP server.
type State struct {
	mu        sync.RWMutex
	src       string
	dst       string
	status    model.WatchStatus
	startedAt time.Time
	runs      int
	failed    int
	lastRun   *time.Time
}

func NewState(src, dst string) *State {
	return &State{
		src:       src,
		dst:       dst,
		status:    model.WatchStatusIdle,
		startedAt: time.Now(),
	}
}

func (s *State) RecordRun(rep mirror.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.lastRun = &now
	s.runs++
	if !rep.OK {
		s.failed++
	}
}

func (s *State) SetStatus(status model.WatchStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *State) Snapshot() model.DaemonSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.DaemonSnapshot{
		Src:       s.src,
		Dst:       s.dst,
		Status:    s.status,
		StartedAt: s.startedAt,
		Runs:      s.runs,
		Failed:    s.failed,
		LastRun:   s.lastRun,
	}
}
