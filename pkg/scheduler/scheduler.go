package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/robfig/cron/v3"

	"wxwatch/custodian/pkg/telemetry/metrics"
)

// DefaultTick is the polling granularity of the run loop.
const DefaultTick = time.Second

// JobFunc is the work executed when a job comes due.
type JobFunc func(ctx context.Context) error

// schedule computes a job's next due time. The set of implementations is
// closed: fixed intervals and fixed wall-clock times of day.
type schedule interface {
	next(from time.Time) time.Time
}

// intervalSchedule runs a fixed duration after the previous completion.
type intervalSchedule struct {
	every time.Duration
}

func (s intervalSchedule) next(from time.Time) time.Time {
	return from.Add(s.every)
}

// dailySchedule runs at a fixed local wall-clock time each day. The next
// matching instant is computed with standard cron schedule math, which
// handles DST transitions.
type dailySchedule struct {
	spec cron.Schedule
}

func (s dailySchedule) next(from time.Time) time.Time {
	return s.spec.Next(from)
}

// job is one registered recurring job with its due-time computation rule.
type job struct {
	name      string
	run       JobFunc
	sched     schedule
	immediate bool
	nextDue   time.Time
}

// Scheduler owns the daemon's main loop. Registered jobs are evaluated on a
// fixed short tick and executed synchronously, one at a time, in
// registration order. A job failure is confined to that execution: it is
// logged with a stack trace and affects neither the loop nor any other
// job's schedule.
//
// A slow or hung job blocks every other due job until it returns; there is
// no timeout enforcement. Cancellation is observed only between ticks,
// never inside a running job.
type Scheduler struct {
	// OnStart, when set, runs once before the loop starts. A failure
	// aborts Run before any job executes.
	OnStart func(ctx context.Context) error

	jobs    []*job
	logger  *slog.Logger
	metrics *metrics.Collector

	tick time.Duration
	now  func() time.Time
}

// New creates a scheduler; metrics may be nil.
func New(collector *metrics.Collector) *Scheduler {
	return &Scheduler{
		logger:  slog.Default().With("component", "scheduler"),
		metrics: collector,
		tick:    DefaultTick,
		now:     time.Now,
	}
}

// Every registers a job due every interval. When immediate is set, the job
// also runs once as soon as the loop starts, so a cold start does not wait
// a full interval for the first execution.
func (s *Scheduler) Every(name string, interval time.Duration, immediate bool, fn JobFunc) error {
	if interval <= 0 {
		return fmt.Errorf("job %q: interval must be positive, got %s", name, interval)
	}
	s.jobs = append(s.jobs, &job{
		name:      name,
		run:       fn,
		sched:     intervalSchedule{every: interval},
		immediate: immediate,
	})
	return nil
}

// Daily registers a job due once per day at the given local wall-clock time.
func (s *Scheduler) Daily(name string, hour, minute int, fn JobFunc) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("job %q: invalid time of day %02d:%02d", name, hour, minute)
	}
	spec, err := cron.ParseStandard(fmt.Sprintf("%d %d * * *", minute, hour))
	if err != nil {
		return fmt.Errorf("job %q: %w", name, err)
	}
	s.jobs = append(s.jobs, &job{
		name:  name,
		run:   fn,
		sched: dailySchedule{spec: spec},
	})
	return nil
}

// Run executes the scheduler loop until ctx is cancelled.
//
// On entry it runs the OnStart hook (an error is fatal and returned before
// any job executes), then runs immediate jobs once, then polls every tick
// and executes each due job in registration order, recomputing that job's
// next due time from the moment it finishes. Returns nil on cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.start(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped", "stopped_at", s.now())
			return nil
		case <-ticker.C:
			s.runPending(ctx)
		}
	}
}

// start runs one-time initialization, executes immediate jobs, and computes
// every job's first due time.
func (s *Scheduler) start(ctx context.Context) error {
	if s.OnStart != nil {
		if err := s.OnStart(ctx); err != nil {
			return fmt.Errorf("scheduler initialization failed: %w", err)
		}
	}

	s.logger.Info("scheduler started", "started_at", s.now(), "jobs", len(s.jobs))

	for _, j := range s.jobs {
		if j.immediate {
			s.execute(ctx, j)
		}
		j.nextDue = j.sched.next(s.now())
		s.logger.Info("job scheduled", "job", j.name, "next_due", j.nextDue)
	}

	return nil
}

// runPending executes every job whose due time has passed, in registration
// order.
func (s *Scheduler) runPending(ctx context.Context) {
	now := s.now()
	for _, j := range s.jobs {
		if now.Before(j.nextDue) {
			continue
		}
		s.execute(ctx, j)
		j.nextDue = j.sched.next(s.now())
	}
}

// execute runs one job synchronously, confining any returned error or panic
// to this execution. The job runs under a context detached from the loop's
// cancellation: a running job is never interrupted, and shutdown is observed
// only between ticks.
func (s *Scheduler) execute(ctx context.Context, j *job) {
	start := s.now()
	s.logger.Info("job started", "job", j.name, "started_at", start)

	err := s.runIsolated(context.WithoutCancel(ctx), j)
	duration := s.now().Sub(start)

	if err != nil {
		s.logger.Error("job failed", "job", j.name, "duration", duration, "error", err)
		s.metrics.RecordJobRun(j.name, "error", duration)
		return
	}

	s.logger.Info("job completed", "job", j.name, "duration", duration)
	s.metrics.RecordJobRun(j.name, "success", duration)
}

// runIsolated invokes the job callback, converting a panic into an error
// carrying the stack trace.
func (s *Scheduler) runIsolated(ctx context.Context, j *job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v\n%s", r, debug.Stack())
		}
	}()
	return j.run(ctx)
}
