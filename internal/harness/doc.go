// Package harness executes resolved tests and judges their outcome.
//
// Run launches a test's command through the shell in its configuration
// directory, captures stdout and stderr into private temporary sinks and
// hands the result to Check, which compares every actual capture against its
// expected artifact:
//
//	exit code != expected  -> fail, forward stderr, no comparison
//	bytes differ           -> differing (and missing, if nothing is saved)
//	save and differing     -> every actual is copied over its expected
//	todo                   -> failures are recorded but pass
//
// Dump runs a command with the caller's streams and no comparison at all.
//
// Non-zero exit codes are data. Only failures of the harness itself (the
// shell cannot start, a capture cannot be read, an artifact cannot be
// written) become Result.Err.
package harness
