package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "SUITE_LAUNCHER"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	Registry = &cli.StringFlag{
		Name:     "registry",
		Value:    "",
		Required: true,
		EnvVars:  prefixEnvVars("REGISTRY"),
		Usage:    "Path to registry file defining suites and configs (eg. 'registry.yaml')",
	}
	Suite = &cli.StringFlag{
		Name:     "suite",
		Value:    "",
		Required: true,
		EnvVars:  prefixEnvVars("SUITE"),
		Usage:    "Name of the suite to run (eg. 'smoke')",
	}
	EnvironmentConfig = &cli.StringFlag{
		Name:    "config",
		Value:   "default",
		EnvVars: prefixEnvVars("CONFIG"),
		Usage:   "Name of the environment config to run the suite against",
	}
	RunnerBinary = &cli.StringFlag{
		Name:    "runner-binary",
		Value:   "test-runner",
		EnvVars: prefixEnvVars("RUNNER_BINARY"),
		Usage:   "Path to the test-runner binary used to execute test runs",
	}
	WorkDir = &cli.StringFlag{
		Name:    "workdir",
		Value:   ".",
		EnvVars: prefixEnvVars("WORKDIR"),
		Usage:   "Working directory for test-runner invocations",
	}
	RunInterval = &cli.DurationFlag{
		Name:    "run-interval",
		Value:   0,
		EnvVars: prefixEnvVars("RUN_INTERVAL"),
		Usage:   "Interval between suite runs (e.g. '1h', '30m'). Set to 0 or omit for run-once mode.",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "Log level (trace, debug, info, warn, error, crit)",
	}
)

var requiredFlags = []cli.Flag{
	Registry,
	Suite,
}

var optionalFlags = []cli.Flag{
	EnvironmentConfig,
	RunnerBinary,
	WorkDir,
	RunInterval,
	LogLevel,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
