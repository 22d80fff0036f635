package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/testinfra/suite-launcher/types"
)

// TestRunExecutor runs one resolved test run to completion. It returns nil
// on success and an error on any failure inside that single run (setup,
// execution, or reporting). Implementations are expected to block until the
// run has finished and to enforce their own timeouts if bounded execution
// time is required.
type TestRunExecutor interface {
	Run(ctx context.Context, opts types.RunOptions) error
}

// ExecExecutor shells out to an external test-runner binary, passing the
// derived run options on the command line. A non-zero exit is surfaced as an
// ordinary error together with the captured runner output.
type ExecExecutor struct {
	binary  string
	workDir string
	log     log.Logger
}

// NewExecExecutor creates an executor that invokes the given runner binary
// from workDir.
func NewExecExecutor(binary string, workDir string, logger log.Logger) *ExecExecutor {
	if binary == "" {
		binary = "test-runner"
	}
	if logger == nil {
		logger = log.New()
	}
	return &ExecExecutor{
		binary:  binary,
		workDir: workDir,
		log:     logger,
	}
}

// Run implements the TestRunExecutor interface.
func (e *ExecExecutor) Run(ctx context.Context, opts types.RunOptions) error {
	args := commandArgs(opts)
	e.log.Info("Running test runner", "binary", e.binary, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Dir = e.workDir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		if out := strings.TrimSpace(output.String()); out != "" {
			return fmt.Errorf("%w\n%s", err, out)
		}
		return err
	}

	e.log.Debug("Test runner finished", "environment", opts.Environment)
	return nil
}

// commandArgs renders run options as test-runner command line arguments.
func commandArgs(opts types.RunOptions) []string {
	args := []string{
		"--environment", opts.Environment,
		"--config", opts.Config,
		"--reports-dir", opts.ReportsDir,
	}
	return append(args, opts.Arguments...)
}
