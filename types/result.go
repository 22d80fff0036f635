package types

import "time"

// RunStatus represents the possible outcomes of a test run
type RunStatus string

const (
	RunStatusPass RunStatus = "pass"
	RunStatusFail RunStatus = "fail"
)

// RunResult captures the outcome of a single attempted test run. It is
// created exactly once, after the run has completed (successfully or with a
// captured failure), and is never mutated afterwards.
type RunResult struct {
	Run      SuiteTestRun
	Config   EnvironmentConfig
	Duration time.Duration
	Err      error // failure cause; nil on success
}

// Passed reports whether the run completed without a failure cause.
func (r RunResult) Passed() bool {
	return r.Err == nil
}

// Failed reports whether the run recorded a failure cause.
func (r RunResult) Failed() bool {
	return r.Err != nil
}

// Status returns the run outcome as a RunStatus.
func (r RunResult) Status() RunStatus {
	if r.Err != nil {
		return RunStatusFail
	}
	return RunStatusPass
}
