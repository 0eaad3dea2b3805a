package breakingnews

import (
	"fmt"
	"time"
)

// JobReport aggregates one run.
type JobReport struct {
	RunID        string            `json:"run_id"`
	Trigger      string            `json:"trigger,omitempty"`
	StartedAt    time.Time         `json:"started_at"`
	FinishedAt   time.Time         `json:"finished_at"`
	Recipients   int               `json:"recipients"`
	Delivered    int               `json:"delivered"`
	Skipped      int               `json:"skipped"`
	TokenCleared int               `json:"token_cleared"`
	Failed       int               `json:"failed"`
	Error        string            `json:"error,omitempty"`
	Results      []RecipientResult `json:"results"`
}

func (r *JobReport) finish(results []RecipientResult, runErr error) {
	r.FinishedAt = time.Now()
	r.Results = results
	r.Recipients = len(results)
	r.Delivered, r.Skipped, r.TokenCleared, r.Failed = 0, 0, 0, 0
	for _, res := range results {
		switch res.Outcome {
		case OutcomeDelivered:
			r.Delivered++
		case OutcomeSkipped:
			r.Skipped++
		case OutcomeTokenCleared:
			r.TokenCleared++
		case OutcomeFailed:
			r.Failed++
		}
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
}

func (r *JobReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Succeeded is false only for run-fatal errors; per-recipient failures do not count.
func (r *JobReport) Succeeded() bool {
	return r.Error == ""
}

// Summary is the one-line form printed by the CLI and logged after every run.
func (r *JobReport) Summary() string {
	if !r.Succeeded() {
		return fmt.Sprintf("run %s failed after %s: %s", r.RunID, r.Duration().Round(time.Millisecond), r.Error)
	}
	return fmt.Sprintf("run %s: %d recipient(s), %d delivered, %d skipped, %d token(s) cleared, %d failed in %s",
		r.RunID, r.Recipients, r.Delivered, r.Skipped, r.TokenCleared, r.Failed, r.Duration().Round(time.Millisecond))
}

// ResultFor returns the result for one recipient, if it was part of the run.
func (r *JobReport) ResultFor(recipientID string) (RecipientResult, bool) {
	for _, res := range r.Results {
		if res.RecipientID == recipientID {
			return res, true
		}
	}
	return RecipientResult{}, false
}
