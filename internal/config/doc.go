// Package config discovers and interprets turnt configuration files.
//
// A test-unit's configuration is the nearest file named by the run's
// --config flag found while walking up from the test-unit's parent
// directory. The walk stops at the first match or after a mount point.
// The directory holding the configuration is where commands run and the
// base for relative paths.
//
// # Configuration Shapes
//
// Single environment (the whole document is the environment):
//
//	command = "python3 {filename} {args}"
//	return_code = 0
//	output.out = "-"
//	output.err = "2"
//
// Multiple named environments under the reserved "envs" key:
//
//	[envs.interp]
//	command = "interp {filename}"
//
//	[envs.compiled]
//	command = "compile {filename} && ./{base}"
//	default = false
//
// Environments keep the order they appear in the document.
package config
