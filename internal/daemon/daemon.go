package daemon

import (
	"fmt"
	"time"

	"mirra/internal/config"
	"mirra/internal/logger"
	"mirra/internal/mirror"
	"mirra/internal/model"
	"mirra/internal/repository"

	"go.uber.org/zap"
)

// Daemon keeps one source/destination pair mirrored: an initial full run at
// startup, then a full pipeline re-run whenever the watcher reports activity
// under the source, debounced so bursts collapse into a single run.
type Daemon struct {
	m        *mirror.Mirror
	watcher  *Watcher
	state    *State
	repo     *repository.RunRepository
	debounce time.Duration

	src    string
	runCh  chan model.RunTrigger
	doneCh chan struct{}
}

func New(src, dst string, cfg *config.Config) (*Daemon, error) {
	m, err := mirror.New(src, dst, cfg.TrashPatterns)
	if err != nil {
		return nil, err
	}

	watcher, err := NewWatcher(cfg.BufferSize)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		m:        m,
		watcher:  watcher,
		state:    NewState(src, dst),
		repo:     repository.NewRunRepository(),
		debounce: time.Duration(cfg.DebounceMs) * time.Millisecond,
		src:      src,
		runCh:    make(chan model.RunTrigger, 1),
		doneCh:   make(chan struct{}),
	}, nil
}

func (d *Daemon) Start() error {
	if rep := d.runOnce(model.TriggerWatch); !rep.OK {
		return fmt.Errorf("initial mirror run failed")
	}

	if err := d.watcher.Watch(d.src); err != nil {
		return err
	}

	go d.loop()
	return nil
}

func (d *Daemon) loop() {
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-d.doneCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case <-d.watcher.Triggers():
			if timer == nil {
				timer = time.NewTimer(d.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(d.debounce)
			}
			timerCh = timer.C

		case trigger := <-d.runCh:
			d.runOnce(trigger)

		case <-timerCh:
			timerCh = nil
			d.runOnce(model.TriggerWatch)
		}
	}
}

// Trigger requests a pipeline run outside the watch path, e.g. from the
// control API. It never blocks; a pending request is enough.
func (d *Daemon) Trigger(trigger model.RunTrigger) {
	select {
	case d.runCh <- trigger:
	default:
	}
}

func (d *Daemon) runOnce(trigger model.RunTrigger) mirror.Report {
	d.state.SetStatus(model.WatchStatusRunning)
	rep := d.m.Run()
	d.state.RecordRun(rep)
	d.state.SetStatus(model.WatchStatusIdle)

	if err := d.repo.SaveReport(rep, trigger); err != nil {
		logger.Log.Warn("failed to save run history",
			zap.Error(err))
	}

	if rep.OK {
		logger.Log.Info("mirror run finished",
			zap.String("trigger", string(trigger)),
			zap.Int("warnings", rep.Warnings),
			zap.Duration("took", rep.Duration))
	} else {
		logger.Log.Error("mirror run failed",
			zap.String("trigger", string(trigger)))
	}

	return rep
}

func (d *Daemon) State() *State {
	return d.state
}

func (d *Daemon) Stop() {
	d.state.SetStatus(model.WatchStatusStopped)
	close(d.doneCh)
	d.watcher.Stop()
}
