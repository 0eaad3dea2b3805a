package breakingnews

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	recipientdomain "newspulse-backend/internal/recipient/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocker struct {
	held     bool
	err      error
	released int
}

func (l *fakeLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	if l.err != nil {
		return nil, false, l.err
	}
	if l.held {
		return nil, false, nil
	}
	l.held = true
	return func() {
		l.held = false
		l.released++
	}, true, nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	reports []*JobReport
	err     error
}

func (r *fakeRecorder) Save(ctx context.Context, report *JobReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return r.err
}

func simpleJob() (*Job, *fakeGateway) {
	dir := &fakeDirectory{recipients: []*recipientdomain.Recipient{recipient("u1", "sports", "", "t1")}}
	src := &fakeSource{byCategory: map[string][]Headline{"sports|": {{Title: "Goal"}}}}
	gw := &fakeGateway{}
	return newTestJob(dir, src, gw, 1), gw
}

func TestRunner_RecordsTriggerAndReport(t *testing.T) {
	job, gw := simpleJob()
	rec := &fakeRecorder{}
	locker := &fakeLocker{}

	report, err := NewRunner(job, rec, locker, time.Minute).Run(context.Background(), TriggerManual)

	require.NoError(t, err)
	assert.Equal(t, TriggerManual, report.Trigger)
	assert.Len(t, gw.sent, 1)
	require.Len(t, rec.reports, 1)
	assert.Equal(t, report.RunID, rec.reports[0].RunID)
	assert.Equal(t, 1, locker.released)
	assert.False(t, locker.held)
}

func TestRunner_LockHeldSkipsRun(t *testing.T) {
	job, gw := simpleJob()
	rec := &fakeRecorder{}
	locker := &fakeLocker{held: true}

	report, err := NewRunner(job, rec, locker, time.Minute).Run(context.Background(), TriggerCron)

	assert.True(t, errors.Is(err, ErrRunInProgress))
	assert.Nil(t, report)
	assert.Empty(t, gw.sent)
	assert.Empty(t, rec.reports)
}

func TestRunner_LockErrorStillRuns(t *testing.T) {
	job, gw := simpleJob()

	report, err := NewRunner(job, nil, &fakeLocker{err: errors.New("redis: connection refused")}, time.Minute).
		Run(context.Background(), TriggerPubSub)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Delivered)
	assert.Len(t, gw.sent, 1)
}

func TestRunner_RecorderFailureDoesNotFailRun(t *testing.T) {
	job, _ := simpleJob()
	rec := &fakeRecorder{err: errors.New("db down")}

	report, err := NewRunner(job, rec, nil, 0).Run(context.Background(), TriggerCLI)

	require.NoError(t, err)
	assert.True(t, report.Succeeded())
	assert.Len(t, rec.reports, 1)
}

func TestRunner_DirectoryFailureIsRecorded(t *testing.T) {
	job := newTestJob(&fakeDirectory{listErr: errors.New("boom")}, &fakeSource{}, &fakeGateway{}, 1)
	rec := &fakeRecorder{}

	report, err := NewRunner(job, rec, nil, 0).Run(context.Background(), TriggerCron)

	assert.True(t, errors.Is(err, ErrDirectoryUnavailable))
	require.Len(t, rec.reports, 1)
	assert.Equal(t, report, rec.reports[0])
	assert.Contains(t, rec.reports[0].Error, "boom")
}
