package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/nats-io/nats.go"
	"github.com/urfave/cli/v3"

	"github.com/codequiz/runner/internal/behave"
	"github.com/codequiz/runner/internal/environment"
	"github.com/codequiz/runner/internal/events"
	"github.com/codequiz/runner/internal/executor"
	"github.com/codequiz/runner/internal/metrics"
	"github.com/codequiz/runner/internal/sandbox"
	"github.com/codequiz/runner/internal/server"
)

func main() {
	cmd := &cli.Command{
		Name:  "runner",
		Usage: "code execution and grading service for the quiz platform",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP service",
				Action: serveAction,
			},
			{
				Name:      "behave",
				Usage:     "run a TOML behaviour suite against the local executor",
				ArgsUsage: "<suite.toml>",
				Action:    behaveAction,
			},
			{
				Name:   "check",
				Usage:  "verify the language runtimes on this machine",
				Action: checkAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: lvl})))
}

func newExecutor(cfg *environment.Config, reg *metrics.Registry, pub events.Publisher) *executor.Executor {
	return executor.New(sandbox.NewProcessRunner(), reg, pub, executor.Config{
		MaxConcurrent: cfg.MaxConcurrent,
		Constraints: sandbox.Constraints{
			WallTime: time.Duration(cfg.ExecTimeoutSec) * time.Second,
		},
	})
}

func newPublisher(ctx context.Context, cfg *environment.Config) (events.Publisher, error) {
	switch cfg.EventSink {
	case "nats":
		nc, err := nats.Connect(cfg.NatsUrl)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NatsUrl, err)
		}
		return events.NewNatsPublisher(nc, cfg.NatsSubject), nil
	case "sqs":
		return events.NewSqsPublisher(ctx, cfg.AwsRegion, cfg.SqsQueueUrl)
	case "":
		return events.Noop(), nil
	}
	return nil, fmt.Errorf("unknown event sink %q", cfg.EventSink)
}

func serveAction(ctx context.Context, _ *cli.Command) error {
	cfg := environment.ReadEnvConfig()
	setupLogging(cfg.LogLevel)

	pub, err := newPublisher(ctx, cfg)
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	exec := newExecutor(cfg, reg, pub)
	srv := server.New(exec, reg, cfg.HTTPAddr)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func behaveAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one behaviour file argument")
	}

	cfg := environment.ReadEnvConfig()
	setupLogging(cfg.LogLevel)

	cases, err := behave.Parse(cmd.Args().First())
	if err != nil {
		return err
	}

	exec := newExecutor(cfg, metrics.NewRegistry(), events.Noop())
	if !behave.Run(ctx, exec, cases) {
		return fmt.Errorf("behaviour suite failed")
	}
	return nil
}

var helloWorldPrograms = map[string]string{
	sandbox.Python.Name:     `print("Hello, World!")`,
	sandbox.JavaScript.Name: `console.log("Hello, World!");`,
}

func checkAction(ctx context.Context, _ *cli.Command) error {
	setupLogging("warn")

	okMark := color.New(color.FgHiGreen).SprintFunc()
	errMark := color.New(color.FgHiRed).SprintFunc()

	runner := sandbox.NewProcessRunner()
	failed := false
	for _, lang := range []sandbox.Lang{sandbox.Python, sandbox.JavaScript} {
		interpreter, err := lang.LookupInterpreter()
		if err != nil {
			fmt.Printf("%s %s: %v\n", errMark("ERROR"), lang.DisplayName, err)
			failed = true
			continue
		}

		res, err := runner.Run(ctx, lang, helloWorldPrograms[lang.Name], sandbox.DefaultConstraints())
		if err != nil || res.ExitCode != 0 || res.TimedOut {
			fmt.Printf("%s %s (%s): hello world failed\n", errMark("ERROR"), lang.DisplayName, interpreter)
			failed = true
			continue
		}
		fmt.Printf("%s %s (%s)\n", okMark("OKAY"), lang.DisplayName, interpreter)
	}
	if failed {
		return fmt.Errorf("environment check failed")
	}
	return nil
}
