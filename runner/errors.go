package runner

import (
	"errors"
	"fmt"

	"github.com/testinfra/suite-launcher/types"
)

// SetupError represents a failure to resolve the suite or environment config
// before any test run was attempted. It is the only error class that escapes
// the suite runner; no results exist when it is returned.
type SetupError struct {
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *SetupError) Unwrap() error {
	return e.Err
}

// NewSetupError creates a new SetupError
func NewSetupError(err error) *SetupError {
	return &SetupError{Err: err}
}

// IsSetupError checks if the error is or wraps a SetupError
func IsSetupError(err error) bool {
	var setupErr *SetupError
	return err != nil && errors.As(err, &setupErr)
}

// RunError is the failure cause recorded on a RunResult when the executor
// fails for a single test run. It never propagates past the per-run boundary;
// it only travels inside the result sequence.
type RunError struct {
	Run types.SuiteTestRun
	Err error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("test run for environment %q failed: %v", e.Run.EnvironmentName, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RunError) Unwrap() error {
	return e.Err
}

// NewRunError creates a new RunError
func NewRunError(run types.SuiteTestRun, err error) *RunError {
	return &RunError{Run: run, Err: err}
}

// IsRunError checks if the error is or wraps a RunError
func IsRunError(err error) bool {
	var runErr *RunError
	return err != nil && errors.As(err, &runErr)
}
