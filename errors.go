package launcher

import (
	"errors"
	"fmt"
)

// SuiteFailureError indicates that the suite completed but at least one test
// run failed (exit code 1). Setup failures are a different channel; see
// runner.SetupError.
type SuiteFailureError struct {
	Message string
}

func (e *SuiteFailureError) Error() string {
	return fmt.Sprintf("suite failure: %s", e.Message)
}

// NewSuiteFailureError creates a new SuiteFailureError
func NewSuiteFailureError(message string) *SuiteFailureError {
	return &SuiteFailureError{Message: message}
}

// IsSuiteFailureError checks if the error is or wraps a SuiteFailureError
func IsSuiteFailureError(err error) bool {
	var suiteErr *SuiteFailureError
	return err != nil && errors.As(err, &suiteErr)
}
