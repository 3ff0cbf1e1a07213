package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/programme-lv/judge/internal/config"
	"github.com/programme-lv/judge/internal/gatherer/natsgath"
	"github.com/programme-lv/judge/internal/gatherer/respbuilder"
	"github.com/programme-lv/judge/internal/gatherer/sqsgath"
	"github.com/programme-lv/judge/internal/gatherer/termgath"
	"github.com/programme-lv/judge/internal/judge"
	"github.com/urfave/cli/v3"
)

func runCommand() *cli.Command {
	flags := append(configFlags(),
		&cli.StringFlag{
			Name:    "source",
			Aliases: []string{"s"},
			Usage:   "candidate C++ source file",
			Sources: cli.EnvVars("JUDGE_SOURCE"),
		},
		&cli.StringFlag{
			Name:    "tests",
			Aliases: []string{"t"},
			Usage:   "directory with k.in / k.out test cases",
			Sources: cli.EnvVars("JUDGE_TESTS"),
		},
		&cli.StringFlag{
			Name:    "compiler",
			Usage:   "compiler executable",
			Sources: cli.EnvVars("JUDGE_COMPILER"),
		},
		&cli.StringFlag{
			Name:    "flags",
			Usage:   "compiler flags",
			Sources: cli.EnvVars("JUDGE_COMPILER_FLAGS"),
		},
		&cli.BoolFlag{
			Name:    "no-cache",
			Usage:   "always compile, bypassing the build cache",
			Sources: cli.EnvVars("JUDGE_NO_CACHE"),
		},
		&cli.StringFlag{
			Name:    "monitor",
			Usage:   "GNU time executable",
			Sources: cli.EnvVars("JUDGE_MONITOR"),
		},
		&cli.FloatFlag{
			Name:    "watchdog-margin",
			Usage:   "seconds past the time limit after which a run is killed (0, the default, never kills)",
			Sources: cli.EnvVars("JUDGE_WATCHDOG_MARGIN"),
		},
		&cli.StringFlag{
			Name:    "workdir",
			Usage:   "directory for the binary and the output artifact",
			Sources: cli.EnvVars("JUDGE_WORKDIR"),
		},
		&cli.BoolFlag{
			Name:    "keep",
			Usage:   "keep the binary and the output artifact after judging",
			Sources: cli.EnvVars("JUDGE_KEEP"),
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "do not echo compiler and candidate output",
			Sources: cli.EnvVars("JUDGE_QUIET"),
		},
		&cli.StringFlag{
			Name:    "report-json",
			Usage:   "write the full report as JSON to this file",
			Sources: cli.EnvVars("JUDGE_REPORT_JSON"),
		},
		&cli.StringFlag{
			Name:    "nats-url",
			Usage:   "stream judging events to this NATS server",
			Sources: cli.EnvVars("JUDGE_NATS_URL"),
		},
		&cli.StringFlag{
			Name:    "nats-subject",
			Usage:   "NATS subject for judging events",
			Sources: cli.EnvVars("JUDGE_NATS_SUBJECT"),
		},
		&cli.StringFlag{
			Name:    "sqs-queue-url",
			Usage:   "send judging events to this SQS queue",
			Sources: cli.EnvVars("JUDGE_SQS_QUEUE_URL"),
		},
		&cli.StringFlag{
			Name:    "sqs-region",
			Usage:   "AWS region of the SQS queue",
			Sources: cli.EnvVars("JUDGE_SQS_REGION"),
		},
	)

	return &cli.Command{
		Name:   "run",
		Usage:  "build the source and judge it against every test case",
		Flags:  flags,
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	overrideString(cmd, "source", &cfg.Source)
	overrideString(cmd, "tests", &cfg.Tests)
	overrideString(cmd, "compiler", &cfg.Compiler.Path)
	overrideString(cmd, "flags", &cfg.Compiler.Flags)
	if cmd.IsSet("no-cache") {
		cfg.Compiler.Cache = !cmd.Bool("no-cache")
	}
	overrideString(cmd, "monitor", &cfg.Monitor.Path)
	if cmd.IsSet("watchdog-margin") {
		cfg.Monitor.WatchdogMargin = cmd.Float("watchdog-margin")
	}
	overrideString(cmd, "workdir", &cfg.Workspace.Dir)
	if cmd.IsSet("keep") {
		cfg.Workspace.Keep = cmd.Bool("keep")
	}
	overrideString(cmd, "report-json", &cfg.Report.JSON)
	overrideString(cmd, "nats-url", &cfg.Report.NatsURL)
	overrideString(cmd, "nats-subject", &cfg.Report.NatsSubject)
	overrideString(cmd, "sqs-queue-url", &cfg.Report.SqsQueueURL)
	overrideString(cmd, "sqs-region", &cfg.Report.SqsRegion)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	runUuid := uuid.NewString()
	logger = logger.With("run", runUuid)
	logger.Debug("configuration loaded", "config", fmt.Sprintf("%+v", cfg))

	gatherer, report, closeAll, err := newGatherers(ctx, cfg, runUuid, logger)
	if err != nil {
		return err
	}
	defer closeAll()

	var live io.Writer = os.Stdout
	if cmd.Bool("quiet") {
		live = io.Discard
	}

	session := &judge.Session{
		Config:   cfg,
		RunUuid:  runUuid,
		Gatherer: gatherer,
		Live:     live,
		Logger:   logger,
	}
	execErr := session.Execute(ctx)

	if cfg.Report.JSON != "" {
		if err := report.WriteJSON(cfg.Report.JSON); err != nil {
			logger.Error("failed to write report", "err", err)
		} else {
			logger.Info("report written", "path", cfg.Report.JSON)
		}
	}
	return execErr
}

// newGatherers assembles the terminal report and every configured remote
// sink. The returned function closes remote connections.
func newGatherers(ctx context.Context, cfg config.Config, runUuid string, logger *slog.Logger) (judge.MultiGatherer, *respbuilder.Builder, func(), error) {
	report := respbuilder.New(runUuid)
	gatherers := judge.MultiGatherer{termgath.New(), report}
	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.Report.NatsURL != "" {
		g, closeNats, err := natsgath.Connect(cfg.Report.NatsURL, runUuid, cfg.Report.NatsSubject, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.Report.NatsURL, err)
		}
		closers = append(closers, closeNats)
		gatherers = append(gatherers, g)
	}

	if cfg.Report.SqsQueueURL != "" {
		g, err := sqsgath.NewFromEnv(ctx, cfg.Report.SqsQueueURL, cfg.Report.SqsRegion, runUuid, logger)
		if err != nil {
			closeAll()
			return nil, nil, nil, err
		}
		gatherers = append(gatherers, g)
	}

	return gatherers, report, closeAll, nil
}
