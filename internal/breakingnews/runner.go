package breakingnews

import (
	"context"
	"log"
	"sync"
	"time"
)

// LockKey guards a run across every process that can trigger one.
const LockKey = "breakingnews:run-lock"

// Trigger sources recorded on the report.
const (
	TriggerCron   = "cron"
	TriggerPubSub = "pubsub"
	TriggerManual = "manual"
	TriggerCLI    = "cli"
)

// Locker is a distributed try-lock. release must be safe to call once after a
// successful acquire.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error)
}

// RunRecorder persists run history.
type RunRecorder interface {
	Save(ctx context.Context, report *JobReport) error
}

// Runner serializes runs and records them. Both runs and locker may be nil.
type Runner struct {
	job     *Job
	runs    RunRecorder
	locker  Locker
	lockTTL time.Duration
	mu      sync.Mutex
}

func NewRunner(job *Job, runs RunRecorder, locker Locker, lockTTL time.Duration) *Runner {
	if lockTTL <= 0 {
		lockTTL = 15 * time.Minute
	}
	return &Runner{job: job, runs: runs, locker: locker, lockTTL: lockTTL}
}

// Run executes one job run unless another is in flight, in which case it
// returns ErrRunInProgress without touching any recipient.
func (r *Runner) Run(ctx context.Context, trigger string) (*JobReport, error) {
	if !r.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer r.mu.Unlock()

	if r.locker != nil {
		release, acquired, err := r.locker.TryLock(ctx, LockKey, r.lockTTL)
		switch {
		case err != nil:
			// Redis down: run unlocked rather than not at all.
			log.Printf("[BreakingNews] Run lock unavailable, continuing without it: %v", err)
		case !acquired:
			log.Printf("[BreakingNews] Skipping %s trigger, another run holds the lock", trigger)
			return nil, ErrRunInProgress
		default:
			defer release()
		}
	}

	report, err := r.job.Run(ctx)
	if report != nil {
		report.Trigger = trigger
		r.record(report)
	}
	return report, err
}

func (r *Runner) record(report *JobReport) {
	if r.runs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.runs.Save(ctx, report); err != nil {
		log.Printf("[BreakingNews] Failed to record run %s: %v", report.RunID, err)
	}
}
