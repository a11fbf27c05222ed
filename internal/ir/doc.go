// Package ir provides the value types shared by every stage of a turnt run.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal.
//
// Key design constraints:
//   - EnvironmentSpec is a read-only template. Overrides go through the
//     With* methods, which return modified copies and never share slices.
//   - Output mappings are ordered slices, not maps, so reports and saves
//     follow configuration order.
//   - A Test is fully resolved before any process is launched.
package ir
