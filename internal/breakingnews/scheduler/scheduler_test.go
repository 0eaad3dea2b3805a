package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"newspulse-backend/internal/breakingnews"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	mu       sync.Mutex
	triggers []string
	err      error
}

func (r *countingRunner) Run(ctx context.Context, trigger string) (*breakingnews.JobReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggers = append(r.triggers, trigger)
	return &breakingnews.JobReport{Trigger: trigger}, r.err
}

func TestStart_RejectsInvalidSpec(t *testing.T) {
	s := New(&countingRunner{}, "every now and then")

	err := s.Start(context.Background())

	assert.Error(t, err)
}

func TestStart_DoesNotRunImmediately(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, "@every 1h")

	require.NoError(t, s.Start(context.Background()))
	s.Stop()

	assert.Empty(t, runner.triggers)
}

func TestTick_UsesCronTrigger(t *testing.T) {
	runner := &countingRunner{err: breakingnews.ErrRunInProgress}
	s := New(runner, "@every 1h")

	s.tick(context.Background())

	assert.Equal(t, []string{breakingnews.TriggerCron}, runner.triggers)
}

func TestTick_SkipsWhenContextDone(t *testing.T) {
	runner := &countingRunner{err: errors.New("unused")}
	s := New(runner, "@every 1h")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.tick(ctx)

	assert.Empty(t, runner.triggers)
}
