// Package scheduler fires breaking news runs on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"newspulse-backend/internal/breakingnews"

	"github.com/robfig/cron/v3"
)

// Runner is the part of breakingnews.Runner the scheduler needs.
type Runner interface {
	Run(ctx context.Context, trigger string) (*breakingnews.JobReport, error)
}

// Scheduler wraps robfig/cron and owns the breaking news schedule.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	spec   string
}

// New creates a Scheduler for spec, e.g. "@every 1h" or "0 */2 * * *".
func New(runner Runner, spec string) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		runner: runner,
		spec:   spec,
	}
}

// Start registers the job and starts the scheduler. The first run happens on
// the first tick, not at startup.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.tick(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc(%q): %w", s.spec, err)
	}

	s.cron.Start()
	log.Printf("[Scheduler] Breaking news cron started, spec: %s", s.spec)
	return nil
}

// Stop waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[Scheduler] Breaking news cron stopped")
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	_, err := s.runner.Run(ctx, breakingnews.TriggerCron)
	switch {
	case errors.Is(err, breakingnews.ErrRunInProgress):
		log.Println("[Scheduler] Previous run still in progress, tick skipped")
	case err != nil:
		log.Printf("[Scheduler] Breaking news run failed: %v", err)
	}
}
