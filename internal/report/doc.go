// Package report renders test results in a TAP-like protocol.
//
// A run prints a plan line, then one result line per test, in input order:
//
//	1..3
//	ok 1 - a.t # skip: updated a.out
//	not ok 2 - b.t fast # differing: b.out
//	not ok 3 - c.t # exit code: 1, expected: 2
//
// Text after " # " is a list of annotations joined with "; ".
package report
