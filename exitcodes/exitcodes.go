// Package exitcodes defines the standard exit codes used by suite-launcher.
package exitcodes

// Exit code constants used by suite-launcher
// These constants define the exit codes that the application uses to indicate
// various states when it exits:
//
// * Success (0): Used when every test run in the suite passes
// * TestFailure (1): Used when one or more test runs fail
// * RuntimeErr (2): Used for setup errors such as unknown suites or configs
const (
	Success     = 0 // All test runs pass
	TestFailure = 1 // At least one test run failed
	RuntimeErr  = 2 // Setup or runtime errors
)

// ForVerdict maps the aggregate suite verdict to a process exit code. It is a
// pure function so that orchestration logic can be tested without terminating
// the hosting process.
func ForVerdict(passed bool) int {
	if passed {
		return Success
	}
	return TestFailure
}
