package types

// Suite is a named, ordered collection of test-run templates. Given an
// environment config it deterministically produces the test runs to execute;
// template order is preserved end-to-end so that execution order equals
// reporting order.
type Suite struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	TestRuns    []SuiteTestRun `yaml:"test_runs"`
}

// TestRunsFor resolves the suite's test runs for the given environment
// config. Runs that exclude the config are skipped; the config's global
// exclusions are merged into every remaining run.
func (s *Suite) TestRunsFor(cfg EnvironmentConfig) []SuiteTestRun {
	runs := make([]SuiteTestRun, 0, len(s.TestRuns))
	for _, run := range s.TestRuns {
		if run.SkipsConfig(cfg.Name) {
			continue
		}
		runs = append(runs, run.WithConfigApplied(cfg))
	}
	return runs
}
