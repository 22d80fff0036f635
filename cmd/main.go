package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	launcher "github.com/testinfra/suite-launcher"
	"github.com/testinfra/suite-launcher/exitcodes"
	"github.com/testinfra/suite-launcher/flags"
	"github.com/testinfra/suite-launcher/runner"
	"github.com/testinfra/suite-launcher/service"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "suite-launcher"
	app.Usage = "Test Suite Launcher Service"
	app.Description = "suite-launcher runs product-test suites against configured environments"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			// Use the exit code from the ExitCoder
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			// Check for typed errors
			if runner.IsSetupError(err) {
				// Setup errors abort before any run was attempted
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			} else if launcher.IsSuiteFailureError(err) {
				// At least one test run failed
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.TestFailure))
			} else {
				// For other unspecified errors, default to exit code 1
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.TestFailure))
			}
		}
	}

	// Start telemetry
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		log.Crit("Failed to setup open telemetry", "message", err)
	}
	defer otelShutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server
	svc := service.New()
	svc.Start(ctx)
	defer svc.Shutdown()

	// Start CLI
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Crit("Application failed", "message", err)
	}
}

func run(ctx *cli.Context) error {
	lvl, err := log.FromLevelString(ctx.String(flags.LogLevel.Name))
	if err != nil {
		return runner.NewSetupError(fmt.Errorf("invalid log level: %w", err))
	}
	logger := log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, true))
	log.SetDefault(logger)

	cfg, err := launcher.NewConfig(ctx, logger)
	if err != nil {
		// Wrap in SetupError to signal this should exit with code 2
		return runner.NewSetupError(fmt.Errorf("failed to create config: %w", err))
	}

	cfg.Log.Debug("Config", "config", cfg)

	runCtx, cancel := context.WithCancelCause(ctx.Context)
	defer cancel(nil)

	l, err := launcher.New(runCtx, cfg, Version, cancel)
	if err != nil {
		// Wrap in SetupError to signal this should exit with code 2
		return runner.NewSetupError(fmt.Errorf("failed to create launcher: %w", err))
	}

	if err := l.Start(runCtx); err != nil {
		return err
	}
	if cfg.RunOnce {
		return nil
	}

	// Continuous mode: block until interrupted, then stop cleanly.
	<-runCtx.Done()
	if err := l.Stop(context.Background()); err != nil {
		logger.Error("Error stopping launcher", "error", err)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return l.WaitForShutdown(shutdownCtx)
}
