package types

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// SuiteTestRun describes one unit of work within a suite: a target execution
// environment plus inclusion/exclusion filters for test groups and individual
// tests. Instances are immutable once produced by a Suite; WithConfigApplied
// returns a derived copy rather than mutating the receiver.
type SuiteTestRun struct {
	EnvironmentName string   `yaml:"environment"`
	Groups          []string `yaml:"groups,omitempty"`
	ExcludedGroups  []string `yaml:"excluded_groups,omitempty"`
	Tests           []string `yaml:"tests,omitempty"`
	ExcludedTests   []string `yaml:"excluded_tests,omitempty"`
	ExcludedConfigs []string `yaml:"excluded_configs,omitempty"`
}

// RunOptions carries everything the test-run executor needs to perform one
// run: the target environment, the config name, the derived runner arguments
// and the directory where the run should place its reports.
type RunOptions struct {
	Environment string
	Config      string
	Arguments   []string
	ReportsDir  string
}

// SkipsConfig reports whether this test run is excluded for the given
// environment config name.
func (r SuiteTestRun) SkipsConfig(configName string) bool {
	return slices.Contains(r.ExcludedConfigs, configName)
}

// WithConfigApplied merges the config's globally excluded groups and tests
// into the run's own exclusions, deduplicated, preserving the run's order
// first. The receiver is not modified.
func (r SuiteTestRun) WithConfigApplied(cfg EnvironmentConfig) SuiteTestRun {
	out := r
	out.ExcludedGroups = mergeUnique(r.ExcludedGroups, cfg.ExcludedGroups)
	out.ExcludedTests = mergeUnique(r.ExcludedTests, cfg.ExcludedTests)
	return out
}

// RunOptions derives the executor options for this run under the given suite
// and environment config. Reports land in <suite>/<config>/<environment>.
func (r SuiteTestRun) RunOptions(suiteName string, cfg EnvironmentConfig) RunOptions {
	return RunOptions{
		Environment: r.EnvironmentName,
		Config:      cfg.Name,
		Arguments:   r.Arguments(),
		ReportsDir:  filepath.Join(suiteName, cfg.Name, r.EnvironmentName),
	}
}

// Arguments renders the group/test filters as runner arguments:
// -g groups, -x excluded groups, -t tests, -e excluded tests.
func (r SuiteTestRun) Arguments() []string {
	var args []string
	if len(r.Groups) > 0 {
		args = append(args, "-g", strings.Join(r.Groups, ","))
	}
	if len(r.ExcludedGroups) > 0 {
		args = append(args, "-x", strings.Join(r.ExcludedGroups, ","))
	}
	if len(r.Tests) > 0 {
		args = append(args, "-t", strings.Join(r.Tests, ","))
	}
	if len(r.ExcludedTests) > 0 {
		args = append(args, "-e", strings.Join(r.ExcludedTests, ","))
	}
	return args
}

func (r SuiteTestRun) String() string {
	return fmt.Sprintf("environment %q groups %v excluded groups %v tests %v excluded tests %v",
		r.EnvironmentName, r.Groups, r.ExcludedGroups, r.Tests, r.ExcludedTests)
}

func mergeUnique(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, v := range a {
		if !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	for _, v := range b {
		if !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	return out
}
