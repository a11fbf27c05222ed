// Package engine schedules resolved tests and reports their results.
//
// Tests are resolved up front; the engine only distributes the
// execute-and-compare step. In sequential mode each test runs to completion
// before the next starts. In parallel mode a fixed number of workers run
// tests concurrently, but results are still emitted in input order: each
// worker's result is handed back through an ordered callback, so a slow
// first test holds back the report lines of faster later ones.
//
// The run passes when every test passes. Todo tests whose outputs differ
// count as passing.
//
// There are no timeouts. A command that never exits blocks its worker.
package engine
