package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	tenancyapp "github.com/propman/backend/internal/application/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func testConfig() Config {
	return Config{
		JobTimeout:    time.Second,
		RetryAttempts: 2,
		RetryDelay:    5 * time.Millisecond,
	}
}

func stop(t *testing.T, s *Scheduler) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5*time.Minute, cfg.JobTimeout)
	assert.Equal(t, 2, cfg.RetryAttempts)
	assert.Equal(t, 30*time.Second, cfg.RetryDelay)
}

func TestScheduler_Add(t *testing.T) {
	s := New(testConfig(), zaptest.NewLogger(t))
	task := func(context.Context) error { return nil }

	tests := []struct {
		name string
		job  Job
		want error
	}{
		{"missing name", Job{Interval: time.Second, Task: task}, ErrInvalidJob},
		{"missing task", Job{Name: "a", Interval: time.Second}, ErrInvalidJob},
		{"zero interval", Job{Name: "a", Task: task}, ErrInvalidJob},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, s.Add(tt.job), tt.want)
		})
	}

	require.NoError(t, s.Add(Job{Name: "a", Interval: time.Second, Task: task}))
	assert.ErrorIs(t, s.Add(Job{Name: "a", Interval: time.Second, Task: task}), ErrDuplicateJob)

	run, err := s.LastRun("a")
	require.NoError(t, err)
	assert.Equal(t, JobStatusPending, run.Status)

	_, err = s.LastRun("b")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestScheduler_AddAfterStart(t *testing.T) {
	s := New(testConfig(), nil)
	require.NoError(t, s.Start(context.Background()))
	defer stop(t, s)

	err := s.Add(Job{Name: "late", Interval: time.Second, Task: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrSchedulerRunning)
}

func TestScheduler_RunsOnInterval(t *testing.T) {
	s := New(testConfig(), zaptest.NewLogger(t))
	var calls atomic.Int32
	require.NoError(t, s.Add(Job{
		Name:     "tick",
		Interval: 10 * time.Millisecond,
		Task: func(context.Context) error {
			calls.Add(1)
			return nil
		},
	}))

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	stop(t, s)

	run, err := s.LastRun("tick")
	require.NoError(t, err)
	assert.Equal(t, JobStatusSuccess, run.Status)
	assert.Equal(t, 1, run.Attempts)
	assert.NotNil(t, run.CompletedAt)
}

func TestScheduler_RunAtStart(t *testing.T) {
	s := New(testConfig(), zaptest.NewLogger(t))
	ran := make(chan struct{}, 1)
	require.NoError(t, s.Add(Job{
		Name:       "startup",
		Interval:   time.Hour,
		RunAtStart: true,
		Task: func(context.Context) error {
			ran <- struct{}{}
			return nil
		},
	}))

	require.NoError(t, s.Start(context.Background()))
	defer stop(t, s)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run at start")
	}
}

func TestScheduler_RetriesThenFails(t *testing.T) {
	s := New(testConfig(), zaptest.NewLogger(t))
	var calls atomic.Int32
	require.NoError(t, s.Add(Job{
		Name:       "flaky",
		Interval:   time.Hour,
		RunAtStart: true,
		Task: func(context.Context) error {
			calls.Add(1)
			return errors.New("database unavailable")
		},
	}))

	require.NoError(t, s.Start(context.Background()))
	defer stop(t, s)

	assert.Eventually(t, func() bool {
		run, _ := s.LastRun("flaky")
		return run.Status == JobStatusFailed
	}, time.Second, 5*time.Millisecond)

	run, err := s.LastRun("flaky")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 3, run.Attempts)
	assert.Equal(t, "database unavailable", run.Error)
}

func TestScheduler_RecoversFromRetry(t *testing.T) {
	s := New(testConfig(), zaptest.NewLogger(t))
	var calls atomic.Int32
	require.NoError(t, s.Add(Job{
		Name:       "second-time-lucky",
		Interval:   time.Hour,
		RunAtStart: true,
		Task: func(context.Context) error {
			if calls.Add(1) == 1 {
				return errors.New("timeout")
			}
			return nil
		},
	}))

	require.NoError(t, s.Start(context.Background()))
	defer stop(t, s)

	assert.Eventually(t, func() bool {
		run, _ := s.LastRun("second-time-lucky")
		return run.Status == JobStatusSuccess
	}, time.Second, 5*time.Millisecond)
	run, _ := s.LastRun("second-time-lucky")
	assert.Equal(t, 2, run.Attempts)
	assert.Empty(t, run.Error)
}

func TestScheduler_PanicIsAFailure(t *testing.T) {
	cfg := testConfig()
	cfg.RetryAttempts = 0
	s := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, s.Add(Job{
		Name:       "panics",
		Interval:   time.Hour,
		RunAtStart: true,
		Task:       func(context.Context) error { panic("boom") },
	}))

	require.NoError(t, s.Start(context.Background()))
	defer stop(t, s)

	assert.Eventually(t, func() bool {
		run, _ := s.LastRun("panics")
		return run.Status == JobStatusFailed
	}, time.Second, 5*time.Millisecond)
	run, _ := s.LastRun("panics")
	assert.Contains(t, run.Error, "boom")
}

func TestScheduler_StopCancelsRunningJob(t *testing.T) {
	s := New(Config{}, zaptest.NewLogger(t))
	started := make(chan struct{})
	require.NoError(t, s.Add(Job{
		Name:       "slow",
		Interval:   time.Hour,
		RunAtStart: true,
		Task: func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		},
	}))

	require.NoError(t, s.Start(context.Background()))
	<-started
	stop(t, s)

	// Stopping twice is a no-op
	require.NoError(t, s.Stop(context.Background()))
}

type fakeExpirer struct {
	count int
	err   error
	calls atomic.Int32
}

func (f *fakeExpirer) ExpireEnded(_ context.Context, cmd tenancyapp.ExpireEndedLeasesCommand) (int, error) {
	f.calls.Add(1)
	if !cmd.AsOf.IsZero() {
		return 0, errors.New("expected the sweep to use the service clock")
	}
	return f.count, f.err
}

func TestLeaseExpiryJob(t *testing.T) {
	expirer := &fakeExpirer{count: 2}
	job := LeaseExpiryJob(expirer, time.Hour, zap.NewNop())

	assert.Equal(t, LeaseExpiryJobName, job.Name)
	assert.Equal(t, time.Hour, job.Interval)
	assert.True(t, job.RunAtStart)

	require.NoError(t, job.Task(context.Background()))
	assert.Equal(t, int32(1), expirer.calls.Load())
}

func TestLeaseExpiryJob_PropagatesErrors(t *testing.T) {
	expirer := &fakeExpirer{err: errors.New("connection refused")}
	job := LeaseExpiryJob(expirer, time.Hour, nil)

	assert.EqualError(t, job.Task(context.Background()), "connection refused")
}
