package model

import (
	"time"

	"gorm.io/gorm"
)

type RunStatus string

const (
	RunStatusSuccess RunStatus = "SUCCESS"
	RunStatusFailed  RunStatus = "FAILED"
)

type RunTrigger string

const (
	TriggerManual RunTrigger = "MANUAL"
	TriggerWatch  RunTrigger = "WATCH"
	TriggerAPI    RunTrigger = "API"
)

// Run is one full execution of the four-phase mirror pipeline.
type Run struct {
	gorm.Model
	SrcPath    string     `gorm:"not null"`
	DstPath    string     `gorm:"not null"`
	Status     RunStatus  `gorm:"not null"`
	Trigger    RunTrigger `gorm:"not null"`
	Warnings   int        `gorm:"not null"`
	DurationMs int64      `gorm:"not null"`
	StartedAt  time.Time  `gorm:"not null"`
}

// PhaseRecord is the persisted result of a single pipeline phase.
type PhaseRecord struct {
	gorm.Model
	RunID    uint   `gorm:"not null;index"`
	Ordinal  int    `gorm:"not null"`
	Name     string `gorm:"not null"`
	OK       bool   `gorm:"not null"`
	Warnings int    `gorm:"not null"`
}
