package model

import "time"

type WatchStatus string

const (
	WatchStatusIdle    WatchStatus = "IDLE"
	WatchStatusRunning WatchStatus = "RUNNING"
	WatchStatusStopped WatchStatus = "STOPPED"
)

type DaemonSnapshot struct {
	Src       string      `json:"src"`
	Dst       string      `json:"dst"`
	Status    WatchStatus `json:"status"`
	StartedAt time.Time   `json:"started_at"`
	Runs      int         `json:"runs"`
	Failed    int         `json:"failed"`
	LastRun   *time.Time  `json:"last_run"`
}
