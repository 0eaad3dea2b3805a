package domain

import "time"

// JobRun is one persisted breaking news run
type JobRun struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Trigger      string    `json:"trigger" gorm:"type:varchar(16);index"`
	StartedAt    time.Time `json:"started_at" gorm:"index"`
	FinishedAt   time.Time `json:"finished_at"`
	Recipients   int       `json:"recipients"`
	Delivered    int       `json:"delivered"`
	Skipped      int       `json:"skipped"`
	TokenCleared int       `json:"token_cleared"`
	Failed       int       `json:"failed"`
	Error        string    `json:"error,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}

func (JobRun) TableName() string {
	return "job_runs"
}
