package launcher

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testinfra/suite-launcher/runner"
	"github.com/testinfra/suite-launcher/types"
)

// fakeSuiteRunner implements runner.SuiteRunner and records invocations.
type fakeSuiteRunner struct {
	result *runner.SuiteResult
	err    error
	calls  atomic.Int32
}

func (f *fakeSuiteRunner) RunSuite(_ context.Context, _ string, _ string) (*runner.SuiteResult, error) {
	f.calls.Add(1)
	return f.result, f.err
}

func setupTest(t *testing.T, fake *fakeSuiteRunner, runOnce bool) (*Launcher, chan error) {
	t.Helper()

	logger := log.New()
	cfg := &Config{
		Suite:             "smoke",
		EnvironmentConfig: "default",
		RunInterval:       25 * time.Millisecond,
		RunOnce:           runOnce,
		Log:               logger,
	}

	shutdownCh := make(chan error, 1)
	l := &Launcher{
		ctx:       context.Background(),
		config:    cfg,
		runner:    fake,
		scheduler: NewDefaultSuiteScheduler(cfg.RunInterval, cfg.RunOnce, logger),
		formatter: &ConsoleResultFormatter{out: &bytes.Buffer{}, logger: logger},
		reporter:  NewDefaultMetricsReporter(),
		shutdownCallback: func(err error) {
			shutdownCh <- err
		},
	}
	return l, shutdownCh
}

func passResult() *runner.SuiteResult {
	return &runner.SuiteResult{
		RunID:  "run-1",
		Suite:  "smoke",
		Config: types.EnvironmentConfig{Name: "default"},
		Results: []types.RunResult{
			{Run: types.SuiteTestRun{EnvironmentName: "a"}, Duration: time.Second},
		},
		Status: types.RunStatusPass,
		Stats:  runner.ResultStats{Total: 1, Passed: 1},
	}
}

func failResult() *runner.SuiteResult {
	return &runner.SuiteResult{
		RunID:  "run-2",
		Suite:  "smoke",
		Config: types.EnvironmentConfig{Name: "default"},
		Results: []types.RunResult{
			{Run: types.SuiteTestRun{EnvironmentName: "a"}, Duration: time.Second, Err: assert.AnError},
		},
		Status: types.RunStatusFail,
		Stats:  runner.ResultStats{Total: 1, Failed: 1},
	}
}

func TestLauncher_RunOnce_Pass(t *testing.T) {
	fake := &fakeSuiteRunner{result: passResult()}
	l, shutdownCh := setupTest(t, fake, true)

	err := l.Start(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), fake.calls.Load())
	require.NotNil(t, l.Result())
	assert.True(t, l.Result().Passed())

	// shutdown is triggered asynchronously after a passing run
	select {
	case err := <-shutdownCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("shutdown callback was not invoked")
	}
}

func TestLauncher_RunOnce_Failure(t *testing.T) {
	fake := &fakeSuiteRunner{result: failResult()}
	l, _ := setupTest(t, fake, true)

	err := l.Start(context.Background())
	require.Error(t, err)
	require.True(t, IsSuiteFailureError(err))
	require.Equal(t, int32(1), fake.calls.Load())
}

func TestLauncher_RunOnce_SetupError(t *testing.T) {
	setupErr := runner.NewSetupError(assert.AnError)
	fake := &fakeSuiteRunner{err: setupErr}
	l, _ := setupTest(t, fake, true)

	err := l.Start(context.Background())
	require.Error(t, err)
	require.True(t, runner.IsSetupError(err))
	assert.Nil(t, l.Result(), "no results exist when resolution fails")
}

func TestLauncher_Periodic(t *testing.T) {
	fake := &fakeSuiteRunner{result: passResult()}
	l, _ := setupTest(t, fake, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := l.Start(ctx)
	require.NoError(t, err)

	// wait for at least three runs
	require.Eventually(t, func() bool {
		return fake.calls.Load() >= 3
	}, 2*time.Second, 10*time.Millisecond, "suite should run periodically")

	require.NoError(t, l.Stop(context.Background()))
	assert.True(t, l.Stopped())

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancelShutdown()
	require.NoError(t, l.WaitForShutdown(shutdownCtx))
}

func TestLauncher_New_RequiresConfig(t *testing.T) {
	_, err := New(context.Background(), nil, "v0.0.0", func(error) {})
	require.Error(t, err)
}
