package repository

import (
	"context"

	"newspulse-backend/internal/breakingnews"
	"newspulse-backend/internal/breakingnews/domain"

	"gorm.io/gorm"
)

// RunRepository stores breaking news run history
type RunRepository interface {
	Save(ctx context.Context, report *breakingnews.JobReport) error
	// ListRecent returns the newest runs first
	ListRecent(ctx context.Context, limit int) ([]*domain.JobRun, error)
}

type gormRunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) RunRepository {
	return &gormRunRepository{db: db}
}

func (r *gormRunRepository) Save(ctx context.Context, report *breakingnews.JobReport) error {
	return r.db.WithContext(ctx).Create(FromReport(report)).Error
}

func (r *gormRunRepository) ListRecent(ctx context.Context, limit int) ([]*domain.JobRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var runs []*domain.JobRun
	err := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// FromReport flattens a report into its history row; per-recipient results are not stored.
func FromReport(report *breakingnews.JobReport) *domain.JobRun {
	return &domain.JobRun{
		ID:           report.RunID,
		Trigger:      report.Trigger,
		StartedAt:    report.StartedAt,
		FinishedAt:   report.FinishedAt,
		Recipients:   report.Recipients,
		Delivered:    report.Delivered,
		Skipped:      report.Skipped,
		TokenCleared: report.TokenCleared,
		Failed:       report.Failed,
		Error:        report.Error,
	}
}
