package types

// EnvironmentConfig identifies the target execution environment for a suite
// run. Beyond its name and the globally excluded groups/tests that it carries,
// the contents are opaque to the orchestrator.
type EnvironmentConfig struct {
	Name           string            `yaml:"name"`
	ExcludedGroups []string          `yaml:"excluded_groups,omitempty"`
	ExcludedTests  []string          `yaml:"excluded_tests,omitempty"`
	Attributes     map[string]string `yaml:"attributes,omitempty"`
}
