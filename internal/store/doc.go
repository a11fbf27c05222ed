// Package store provides the SQLite-backed run journal.
//
// Every run journaled with --journal appends:
//   - Runs: one row per invocation of turnt (id, flags, start time)
//   - Results: one row per reported test (index, path, environment, verdict)
//
// The journal answers one question for later runs: which test-units failed
// the last time they ran (LastFailures), which --only-failed uses to narrow
// the paths given on the command line.
//
// # Ordering
//
// Runs are ordered by their seq column (INTEGER PRIMARY KEY), never by the
// wall-clock start time, so clock adjustments cannot reorder history.
//
// # Path identity
//
// Test paths are stored absolute and NFC-normalized (PathKey), so the same
// file matches across working directories and Unicode normal forms.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
