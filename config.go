package launcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/testinfra/suite-launcher/flags"
)

// Config holds the application configuration
type Config struct {
	RegistryFile      string
	Suite             string        // Name of the suite to run
	EnvironmentConfig string        // Name of the environment config to run against
	RunnerBinary      string        // Path to the test-runner binary
	WorkDir           string        // Working directory for test-runner invocations
	RunInterval       time.Duration // Interval between suite runs
	RunOnce           bool          // Indicates if the service should exit after one suite run
	Log               log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log log.Logger) (*Config, error) {
	// Parse flags
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	registryFile := ctx.String(flags.Registry.Name)
	if registryFile == "" {
		return nil, errors.New("registry file is required")
	}
	absRegistryFile, err := filepath.Abs(registryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for registry file '%s': %w", registryFile, err)
	}

	suite := ctx.String(flags.Suite.Name)
	if suite == "" {
		return nil, errors.New("suite is required")
	}

	configName := ctx.String(flags.EnvironmentConfig.Name)
	if configName == "" {
		return nil, errors.New("environment config is required")
	}

	workDir := ctx.String(flags.WorkDir.Name)
	if workDir == "" {
		workDir = "."
	}
	absWorkDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for work directory '%s': %w", workDir, err)
	}

	runInterval := ctx.Duration(flags.RunInterval.Name)
	runOnce := runInterval == 0

	return &Config{
		RegistryFile:      absRegistryFile,
		Suite:             suite,
		EnvironmentConfig: configName,
		RunnerBinary:      ctx.String(flags.RunnerBinary.Name),
		WorkDir:           absWorkDir,
		RunInterval:       runInterval,
		RunOnce:           runOnce,
		Log:               log,
	}, nil
}
