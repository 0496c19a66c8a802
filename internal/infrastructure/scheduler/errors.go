package scheduler

import "errors"

var (
	// ErrSchedulerRunning is returned when adding a job to a started scheduler
	ErrSchedulerRunning = errors.New("scheduler is already running")

	// ErrInvalidJob is returned for a job without a name, task or positive interval
	ErrInvalidJob = errors.New("invalid scheduler job")

	// ErrDuplicateJob is returned when two jobs share a name
	ErrDuplicateJob = errors.New("duplicate scheduler job")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")
)
