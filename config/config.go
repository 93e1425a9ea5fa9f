// Package config holds the CLI's tunable knobs, mirroring meta/config.go's
// Config/DefaultConfig/Validate pattern in the teacher. Where the original
// exposed a knob only as an environment variable (the four RUSTRE_* debug
// switches), Config gives it a typed field read from the environment once
// at startup by cmd/fsagrep, rather than scattering os.Getenv calls through
// library code.
package config

import (
	"os"
	"strconv"
)

// Config controls the optimization pipeline's state-count ceilings and
// the CLI's debug-dump behavior.
type Config struct {
	// DumpOptFSA, if true, writes the optimized FSA to stderr in TSV
	// format before running it (RUSTRE_DUMP_OPTFSA).
	DumpOptFSA bool

	// JITNoOpt disables the literal prefilter fast path even when one
	// could be built, forcing every line through the runner
	// (RUSTRE_JIT_NOOPT — named for parity with the original env var,
	// which guarded an analogous IR-optimization bypass).
	JITNoOpt bool

	// JITDumpIR, if true, logs the optimized FSA's state count before
	// execution (RUSTRE_JIT_DUMPIR).
	JITDumpIR bool

	// JITDumpASM, if non-empty, names a path to which the selected
	// runner's table layout (runner kind and state count) is written instead
	// of real assembly (RUSTRE_JIT_DUMPASM=<path> — there is no
	// assembler to dump, see DESIGN.md; this surfaces the equivalent
	// table-layout info at the same env var and contract shape).
	JITDumpASM string

	// MaxDeterminizeStates caps the number of states determinize may
	// produce before Optimize aborts with an error. The count is checked
	// after the determinized FSA has been fully materialized, so it does
	// not bound the memory that materialization itself uses.
	// Default: 100000
	MaxDeterminizeStates int

	// MaxMinimizeStates caps the number of states minimize may produce
	// before Optimize aborts with an error.
	// Default: 100000
	MaxMinimizeStates int
}

// DefaultConfig returns a Config with the four RUSTRE_* env vars read
// from the process environment and state ceilings set to sensible
// defaults.
func DefaultConfig() Config {
	return Config{
		DumpOptFSA:           boolEnv("RUSTRE_DUMP_OPTFSA"),
		JITNoOpt:             boolEnv("RUSTRE_JIT_NOOPT"),
		JITDumpIR:            boolEnv("RUSTRE_JIT_DUMPIR"),
		JITDumpASM:           os.Getenv("RUSTRE_JIT_DUMPASM"),
		MaxDeterminizeStates: 100000,
		MaxMinimizeStates:    100000,
	}
}

func boolEnv(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return v != ""
	}
	return b
}

// Validate checks that the state ceilings are positive.
func (c Config) Validate() error {
	if c.MaxDeterminizeStates < 1 {
		return &ConfigError{Field: "MaxDeterminizeStates", Message: "must be positive"}
	}
	if c.MaxMinimizeStates < 1 {
		return &ConfigError{Field: "MaxMinimizeStates", Message: "must be positive"}
	}
	return nil
}

// ConfigError reports an invalid configuration field, matching
// meta.ConfigError's shape.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "fsagrep: invalid config: " + e.Field + ": " + e.Message
}
