// Package scheduler provides the single-threaded tick loop that drives the
// maintenance daemon.
//
// # Model
//
// Jobs are registered as a closed set of descriptors: interval jobs (due
// every fixed duration, optionally run once immediately at startup) and
// daily jobs (due at a fixed local wall-clock time). The loop polls at a
// one-second tick; each tick pass runs every due job synchronously in
// registration order and then recomputes that job's next due time from the
// moment it finished.
//
// # Failure Isolation
//
// Each execution is wrapped at the loop boundary: a returned error or a
// panic is caught and logged with its stack trace, and neither the loop nor
// any other job's schedule is affected. There is deliberately no isolation
// inside a job: whatever a job does before its first error is its own
// business, and whatever it had not yet started stays undone until the next
// scheduled run.
//
// # Known Limitation
//
// Execution is fully synchronous, so a hung job stalls the entire daemon:
// no timeout is enforced on jobs. Cancellation is checked only between
// ticks; a job already running executes under a detached context and is
// never interrupted mid-flight.
package scheduler
