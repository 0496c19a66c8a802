package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/propman/backend/internal/application/validation"
	"github.com/propman/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LoggerFunc resolves the logger for a request context
type LoggerFunc func(ctx context.Context) *zap.Logger

// StaticLogger ignores the context and always returns l
func StaticLogger(l *zap.Logger) LoggerFunc {
	if l == nil {
		l = zap.NewNop()
	}
	return func(context.Context) *zap.Logger { return l }
}

// Transactor runs a function inside a read-committed database transaction.
// Repositories called with the context handed to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Recorder receives one observation per handled request
type Recorder interface {
	ObserveRequest(name string, kind Kind, outcome Outcome, elapsed time.Duration)
}

// Outcome classifies how a request ended
type Outcome string

const (
	OutcomeSuccess    Outcome = "success"
	OutcomeValidation Outcome = "validation_failed"
	OutcomeNotFound   Outcome = "not_found"
	OutcomeRejected   Outcome = "rejected"
	OutcomeError      Outcome = "error"
)

// Classify maps an error to an Outcome
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	var ve *shared.ValidationError
	if errors.As(err, &ve) {
		return OutcomeValidation
	}
	if errors.Is(err, shared.ErrNotFound) {
		return OutcomeNotFound
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return OutcomeRejected
	}
	return OutcomeError
}

// Validation aborts the request with a *shared.ValidationError when its
// registered rules fail. Requests without rules pass straight through.
func Validation(registry *validation.Registry, logger LoggerFunc) Behavior {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req Request) error {
			if !registry.HasRules(req) {
				return next(ctx, req)
			}
			if err := registry.Validate(req); err != nil {
				var ve *shared.ValidationError
				if errors.As(err, &ve) {
					logger(ctx).Warn("Request validation failed",
						zap.String("request", req.RequestName()),
						zap.Any("errors", ve.Fields),
					)
				}
				return err
			}
			return next(ctx, req)
		}
	}
}

// Logging records the attempt and outcome of every request, timed with
// clock. It never changes the result.
func Logging(logger LoggerFunc, recorder Recorder, clock shared.Clock) Behavior {
	if clock == nil {
		clock = shared.SystemClock
	}
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req Request) error {
			log := logger(ctx).With(
				zap.String("request", req.RequestName()),
				zap.String("kind", req.RequestKind().String()),
			)
			log.Debug("Handling request")

			start := clock.Now()
			err := next(ctx, req)
			elapsed := clock.Now().Sub(start)
			outcome := Classify(err)

			if recorder != nil {
				recorder.ObserveRequest(req.RequestName(), req.RequestKind(), outcome, elapsed)
			}

			switch outcome {
			case OutcomeSuccess:
				log.Info("Handled request", zap.Duration("elapsed", elapsed))
			case OutcomeError:
				log.Error("Request failed", zap.Duration("elapsed", elapsed), zap.Error(err))
			default:
				log.Info("Request rejected",
					zap.String("outcome", string(outcome)),
					zap.Duration("elapsed", elapsed),
					zap.Error(err),
				)
			}
			return err
		}
	}
}

// Transaction wraps commands in a transaction; queries pass through.
// The transaction commits when the handler returns nil and rolls back on
// an error or a panic.
func Transaction(tx Transactor, logger LoggerFunc) Behavior {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req Request) (err error) {
			if req.RequestKind() != KindCommand {
				return next(ctx, req)
			}

			defer func() {
				if r := recover(); r != nil {
					logger(ctx).Error("Transaction rolled back after panic",
						zap.String("request", req.RequestName()),
						zap.Any("panic", r),
					)
					panic(r)
				}
			}()

			err = tx.WithinTransaction(ctx, func(txCtx context.Context) error {
				return next(txCtx, req)
			})
			if err != nil {
				logger(ctx).Debug("Transaction rolled back",
					zap.String("request", req.RequestName()),
					zap.Error(err),
				)
				return err
			}
			return nil
		}
	}
}

// Standard builds the pipeline every application service uses:
// validation, then logging, then the command transaction.
func Standard(registry *validation.Registry, tx Transactor, logger LoggerFunc, recorder Recorder, clock shared.Clock) *Pipeline {
	if logger == nil {
		logger = StaticLogger(nil)
	}
	return New(
		Validation(registry, logger),
		Logging(logger, recorder, clock),
		Transaction(tx, logger),
	)
}
