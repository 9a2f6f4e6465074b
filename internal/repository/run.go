package repository

import (
	"mirra/internal/db"
	"mirra/internal/mirror"
	"mirra/internal/model"
)

type RunRepository struct{}

func NewRunRepository() *RunRepository {
	return &RunRepository{}
}

// SaveReport persists one pipeline run together with its per-phase results.
func (r *RunRepository) SaveReport(rep mirror.Report, trigger model.RunTrigger) error {
	status := model.RunStatusSuccess
	if !rep.OK {
		status = model.RunStatusFailed
	}

	run := model.Run{
		SrcPath:    rep.SrcPath,
		DstPath:    rep.DstPath,
		Status:     status,
		Trigger:    trigger,
		Warnings:   rep.Warnings,
		DurationMs: rep.Duration.Milliseconds(),
		StartedAt:  rep.StartedAt,
	}

	if err := db.DB.Create(&run).Error; err != nil {
		return err
	}

	for _, p := range rep.Phases {
		record := model.PhaseRecord{
			RunID:    run.ID,
			Ordinal:  p.Ordinal,
			Name:     p.Name,
			OK:       p.OK,
			Warnings: p.Warnings,
		}
		if err := db.DB.Create(&record).Error; err != nil {
			return err
		}
	}

	return nil
}

type Stats struct {
	Total   int64
	Success int64
	Failed  int64
}

func (r *RunRepository) GetStats() (Stats, error) {
	var stats Stats
	if err := db.DB.Model(&model.Run{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	if err := db.DB.Model(&model.Run{}).
		Where("status = ?", model.RunStatusSuccess).
		Count(&stats.Success).Error; err != nil {
		return stats, err
	}

	stats.Failed = stats.Total - stats.Success
	return stats, nil
}

func (r *RunRepository) GetRecent(limit int) ([]model.Run, error) {
	var runs []model.Run
	result := db.DB.
		Order("started_at desc").
		Limit(limit).
		Find(&runs)

	return runs, result.Error
}

func (r *RunRepository) GetPhases(runID uint) ([]model.PhaseRecord, error) {
	var phases []model.PhaseRecord
	result := db.DB.
		Where("run_id = ?", runID).
		Order("ordinal asc").
		Find(&phases)

	return phases, result.Error
}
