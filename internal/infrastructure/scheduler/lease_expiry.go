package scheduler

import (
	"context"
	"time"

	tenancyapp "github.com/propman/backend/internal/application/tenancy"
	"go.uber.org/zap"
)

// LeaseExpiryJobName identifies the lease expiry sweep
const LeaseExpiryJobName = "lease-expiry"

// LeaseExpirer expires leases past their end date
type LeaseExpirer interface {
	ExpireEnded(ctx context.Context, cmd tenancyapp.ExpireEndedLeasesCommand) (int, error)
}

// LeaseExpiryJob moves active leases whose end date has passed to Expired.
// It runs once at start so a restart does not delay the sweep by a full interval.
func LeaseExpiryJob(leases LeaseExpirer, interval time.Duration, logger *zap.Logger) Job {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Job{
		Name:       LeaseExpiryJobName,
		Interval:   interval,
		RunAtStart: true,
		Task: func(ctx context.Context) error {
			n, err := leases.ExpireEnded(ctx, tenancyapp.ExpireEndedLeasesCommand{})
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("Expired ended leases", zap.Int("count", n))
			}
			return nil
		},
	}
}
