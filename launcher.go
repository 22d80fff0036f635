package launcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/testinfra/suite-launcher/exitcodes"
	"github.com/testinfra/suite-launcher/registry"
	"github.com/testinfra/suite-launcher/runner"
)

// Launcher runs a named suite against an environment config, either once or
// periodically, and reports the outcome.
type Launcher struct {
	ctx       context.Context
	config    *Config
	version   string
	registry  *registry.Registry
	runner    runner.SuiteRunner
	scheduler SuiteScheduler
	formatter ResultFormatter
	reporter  MetricsReporter
	result    *runner.SuiteResult

	shutdownCallback func(error) // Callback to signal application shutdown
}

func New(ctx context.Context, config *Config, version string, shutdownCallback func(error)) (*Launcher, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	config.Log.Debug("Creating launcher with config",
		"registryFile", config.RegistryFile,
		"suite", config.Suite,
		"environmentConfig", config.EnvironmentConfig,
		"runInterval", config.RunInterval,
		"runOnce", config.RunOnce)

	reg, err := registry.NewRegistry(registry.Config{
		Log:          config.Log,
		RegistryFile: config.RegistryFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	executor := runner.NewExecExecutor(config.RunnerBinary, config.WorkDir, config.Log)

	// Create runner with registry as both resolvers
	suiteRunner, err := runner.NewSuiteRunner(runner.Config{
		Suites:   reg,
		Configs:  reg,
		Executor: executor,
		Log:      config.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create suite runner: %w", err)
	}
	config.Log.Info("launcher.New: created registry and suite runner", "suites", reg.SuiteNames())

	return &Launcher{
		ctx:              ctx,
		config:           config,
		version:          version,
		registry:         reg,
		runner:           suiteRunner,
		scheduler:        NewDefaultSuiteScheduler(config.RunInterval, config.RunOnce, config.Log),
		formatter:        NewConsoleResultFormatter(config.Log),
		reporter:         NewDefaultMetricsReporter(),
		shutdownCallback: shutdownCallback,
	}, nil
}

// Start runs the suite immediately and, unless in run-once mode, keeps
// running it at the configured interval.
func (l *Launcher) Start(ctx context.Context) error {
	l.ctx = ctx

	if l.config.RunOnce {
		l.config.Log.Info("Starting suite-launcher in run-once mode")
	} else {
		l.config.Log.Info("Starting suite-launcher in continuous mode", "interval", l.config.RunInterval)
	}

	l.scheduler.RegisterCallback(l.runSuite)
	if err := l.scheduler.Start(ctx); err != nil {
		// Setup errors propagate unchanged so the caller can map them to a
		// distinct exit code.
		return err
	}

	// If in run-once mode, trigger shutdown and return
	if l.config.RunOnce {
		l.config.Log.Info("Suite completed, exiting (run-once mode)")

		if l.result != nil && !l.result.Passed() {
			l.config.Log.Warn("Run-once suite completed with failures, returning exit code 1")
			return NewSuiteFailureError(l.result.String())
		}

		// Only need to call this when we're in run-once mode and the suite passed
		go func() {
			l.shutdownCallback(nil)
		}()
		return nil // Success (exit code 0)
	}

	l.config.Log.Debug("suite-launcher started successfully")
	return nil
}

// runSuite executes the configured suite once and processes the results.
func (l *Launcher) runSuite() error {
	result, err := l.runner.RunSuite(l.ctx, l.config.Suite, l.config.EnvironmentConfig)
	if err != nil {
		// Resolution failed; no results exist to report.
		l.config.Log.Error("Setup error running suite", "error", err)
		return err
	}
	l.result = result

	if err := l.formatter.FormatResults(result); err != nil {
		l.config.Log.Error("Error formatting results", "error", err)
	}
	l.reporter.ReportResults(result)

	l.config.Log.Info("Suite run completed",
		"run_id", result.RunID,
		"status", result.Status,
		"exit_code", exitcodes.ForVerdict(result.Passed()))
	return nil
}

// Result returns the most recent suite result, or nil if no run completed.
func (l *Launcher) Result() *runner.SuiteResult {
	return l.result
}

// Stop stops the suite-launcher service.
func (l *Launcher) Stop(ctx context.Context) error {
	l.config.Log.Info("Stopping suite-launcher")

	if l.scheduler.Stopped() {
		l.config.Log.Debug("Service already stopped, nothing to do")
		return nil
	}

	if err := l.scheduler.Stop(); err != nil {
		return err
	}

	l.config.Log.Info("suite-launcher stopped successfully")
	return nil
}

// Stopped returns true if the suite-launcher service is stopped.
func (l *Launcher) Stopped() bool {
	return l.scheduler.Stopped()
}

// WaitForShutdown blocks until all goroutines have terminated.
// This is useful in tests to ensure complete cleanup before moving to the next test.
func (l *Launcher) WaitForShutdown(ctx context.Context) error {
	return l.scheduler.WaitForShutdown(ctx)
}
