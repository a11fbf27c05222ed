package ir

import "runtime"

// DefaultConfigName is the configuration file searched for by default.
const DefaultConfigName = "turnt.toml"

// RunConfig holds the process-wide settings for a run. It is built once
// from the command line and never modified afterwards.
type RunConfig struct {
	ConfigName    string `json:"config"`
	Save          bool   `json:"save,omitempty"`
	ShowDiff      bool   `json:"diff,omitempty"`
	DumpOnly      bool   `json:"print,omitempty"`
	VerboseStderr bool   `json:"verbose,omitempty"`
	Parallel      bool   `json:"parallel,omitempty"`

	// ArgsOverride replaces every test's arguments when non-nil.
	ArgsOverride *string `json:"args,omitempty"`

	// EnvNames selects environments by name. Empty selects defaults.
	EnvNames []string `json:"envs,omitempty"`

	// Workers bounds the pool used when Parallel is set.
	Workers int `json:"workers,omitempty"`

	JournalPath string `json:"-"`
	OnlyFailed  bool   `json:"only_failed,omitempty"`
}

// DefaultWorkers sizes the worker pool: the CPU count plus four, capped
// at 32.
func DefaultWorkers() int {
	return min(32, runtime.NumCPU()+4)
}
