package checker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Invoker is a thin adapter around the external weather check. It adds a
// run ID for log correlation and duration logging. No retry, no state: a
// failed run is reported and forgotten, and the next scheduled run tries
// again unconditionally.
type Invoker struct {
	checker Checker
	logger  *slog.Logger
}

// NewInvoker creates an invoker for the given checker.
func NewInvoker(c Checker) *Invoker {
	return &Invoker{
		checker: c,
		logger:  slog.Default().With("component", "checker"),
	}
}

// Invoke runs the external check once and returns its error, if any.
func (i *Invoker) Invoke(ctx context.Context) error {
	runID := uuid.New().String()
	start := time.Now()

	i.logger.Info("weather check started", "run_id", runID)

	err := i.checker.Check(ctx)
	duration := time.Since(start)

	if err != nil {
		i.logger.Error("weather check failed", "run_id", runID, "duration", duration, "error", err)
		return err
	}

	i.logger.Info("weather check completed", "run_id", runID, "duration", duration)
	return nil
}
