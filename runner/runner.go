package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/testinfra/suite-launcher/metrics"
	"github.com/testinfra/suite-launcher/types"
)

// SuiteResolver maps a suite name to its definition.
type SuiteResolver interface {
	GetSuite(name string) (*types.Suite, error)
}

// ConfigResolver maps an environment config name to its definition.
type ConfigResolver interface {
	GetEnvironmentConfig(name string) (types.EnvironmentConfig, error)
}

// SuiteResult captures the complete outcome of one suite execution. Results
// appear in the exact order the suite produced its test runs.
type SuiteResult struct {
	RunID    string
	Suite    string
	Config   types.EnvironmentConfig
	Results  []types.RunResult
	Status   types.RunStatus
	Duration time.Duration
	Stats    ResultStats
}

// ResultStats tracks test-run statistics for a suite execution
type ResultStats struct {
	Total     int
	Passed    int
	Failed    int
	StartTime time.Time
	EndTime   time.Time
}

// Passed is the aggregate verdict: true iff no result carries a failure
// cause. Vacuously true for an empty suite.
func (r *SuiteResult) Passed() bool {
	return r.Status == types.RunStatusPass
}

func (r *SuiteResult) String() string {
	return fmt.Sprintf("suite %q with config %q: %d passed, %d failed in %.1fs",
		r.Suite, r.Config.Name, r.Stats.Passed, r.Stats.Failed, r.Duration.Seconds())
}

// SuiteRunner defines the interface for executing a named suite against an
// environment config.
type SuiteRunner interface {
	RunSuite(ctx context.Context, suiteName string, configName string) (*SuiteResult, error)
}

// runner struct implements SuiteRunner interface
type runner struct {
	suites   SuiteResolver
	configs  ConfigResolver
	executor TestRunExecutor
	log      log.Logger
	tracer   trace.Tracer
}

// Config holds configuration for creating a new runner
type Config struct {
	Suites   SuiteResolver
	Configs  ConfigResolver
	Executor TestRunExecutor
	Log      log.Logger
}

// NewSuiteRunner creates a new suite runner instance
func NewSuiteRunner(cfg Config) (SuiteRunner, error) {
	if cfg.Suites == nil {
		return nil, fmt.Errorf("suite resolver is required")
	}
	if cfg.Configs == nil {
		return nil, fmt.Errorf("config resolver is required")
	}
	if cfg.Executor == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}

	return &runner{
		suites:   cfg.Suites,
		configs:  cfg.Configs,
		executor: cfg.Executor,
		log:      cfg.Log,
		tracer:   otel.Tracer("suite runner"),
	}, nil
}

// RunSuite resolves the named suite against the named environment config and
// executes its test runs strictly in order, one at a time. Resolution
// failures return a SetupError and no results. After resolution, a failing
// run never aborts the loop: its cause is captured on the RunResult and the
// next run is still attempted.
func (r *runner) RunSuite(ctx context.Context, suiteName string, configName string) (*SuiteResult, error) {
	suite, err := r.suites.GetSuite(suiteName)
	if err != nil {
		metrics.RecordErrorDetails("suite resolution failed", err)
		return nil, NewSetupError(fmt.Errorf("resolving suite %q: %w", suiteName, err))
	}

	cfg, err := r.configs.GetEnvironmentConfig(configName)
	if err != nil {
		metrics.RecordErrorDetails("config resolution failed", err)
		return nil, NewSetupError(fmt.Errorf("resolving environment config %q: %w", configName, err))
	}

	testRuns := suite.TestRunsFor(cfg)
	runID := uuid.New().String()

	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("suite %s", suiteName))
	defer span.End()

	r.log.Info("Starting suite", "suite", suiteName, "config", cfg.Name, "runs", len(testRuns), "run_id", runID)
	for _, run := range testRuns {
		r.log.Info(" * test run",
			"environment", run.EnvironmentName,
			"groups", run.Groups,
			"excluded_groups", run.ExcludedGroups,
			"tests", run.Tests,
			"excluded_tests", run.ExcludedTests)
	}

	start := time.Now()
	result := &SuiteResult{
		RunID:   runID,
		Suite:   suiteName,
		Config:  cfg,
		Results: make([]types.RunResult, 0, len(testRuns)),
		Stats:   ResultStats{StartTime: start},
	}

	// Sequential by contract: environments may be shared between consecutive
	// runs, so a run must fully complete and have its result recorded before
	// the next one starts.
	for _, run := range testRuns {
		result.Results = append(result.Results, r.executeTestRun(ctx, suiteName, runID, run, cfg))
	}

	result.Duration = time.Since(start)
	result.Stats.EndTime = time.Now()
	for _, res := range result.Results {
		result.Stats.Total++
		if res.Passed() {
			result.Stats.Passed++
		} else {
			result.Stats.Failed++
		}
	}
	result.Status = determineSuiteStatus(result.Results)

	return result, nil
}

// executeTestRun performs a single test run and materializes its RunResult.
// Any failure raised by the executor, including a panic, is captured here and
// never re-raised.
func (r *runner) executeTestRun(ctx context.Context, suiteName string, runID string, run types.SuiteTestRun, cfg types.EnvironmentConfig) types.RunResult {
	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("test run %s", run.EnvironmentName))
	defer span.End()

	r.log.Info("Starting test run", "environment", run.EnvironmentName, "config", cfg.Name)
	start := time.Now()

	err := r.invokeExecutor(ctx, suiteName, run, cfg)
	duration := time.Since(start)

	result := types.RunResult{
		Run:      run,
		Config:   cfg,
		Duration: duration,
	}
	if err != nil {
		result.Err = NewRunError(run, err)
		r.log.Error("Test run failed", "environment", run.EnvironmentName, "duration", duration, "error", err)
	} else {
		r.log.Info("Test run passed", "environment", run.EnvironmentName, "duration", duration)
	}

	metrics.RecordTestRun(suiteName, runID, run.EnvironmentName, result.Status())
	return result
}

// invokeExecutor calls the executor for one run, converting a panic into an
// ordinary error so that it stays inside the per-run boundary.
func (r *runner) invokeExecutor(ctx context.Context, suiteName string, run types.SuiteTestRun, cfg types.EnvironmentConfig) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("executor panicked: %v", rec)
		}
	}()

	opts := run.RunOptions(suiteName, cfg)
	r.log.Debug("Derived run options",
		"environment", opts.Environment,
		"config", opts.Config,
		"arguments", opts.Arguments,
		"reports_dir", opts.ReportsDir)

	return r.executor.Run(ctx, opts)
}

// determineSuiteStatus computes the aggregate verdict over all results.
// An empty result sequence passes vacuously.
func determineSuiteStatus(results []types.RunResult) types.RunStatus {
	for _, res := range results {
		if res.Failed() {
			return types.RunStatusFail
		}
	}
	return types.RunStatusPass
}
