// Package retention enforces the data-retention policy for ingested weather
// warnings.
//
// # Retention Policy
//
// Records and artifact files survive until permanently removable:
//
//   - CityReport and VPWW54 rows: removable only when their soft-delete
//     flag is set AND updated_at is strictly older than the retention cutoff
//   - Artifact files in the deleted directory: removable on age alone
//     (files carry no delete flag)
//
// The cutoff is computed once per cleanup invocation; an entity exactly at
// the boundary age is not yet eligible.
//
// # Sweeps
//
// RunCleanup performs three sweeps in fixed order: city report rows, VPWW54
// rows, then artifact files. Record sweeps are transactional (all-or-nothing
// per sweep); the artifact sweep deletes file by file and is idempotent
// across partial completion. Sweeps are not isolated from each other: the
// first failure aborts the rest of the invocation and propagates to the
// caller, which is the scheduler's job boundary.
//
// Every deletion decision is logged, so operators can audit retention from
// process logs alone.
package retention
