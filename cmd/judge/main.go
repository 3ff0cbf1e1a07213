package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/programme-lv/judge/internal/config"
	"github.com/programme-lv/judge/internal/judge"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env is read before flags are parsed so JUDGE_* variables from it
	// reach the flag sources.
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	err := newApp().Run(ctx, os.Args)
	switch {
	case err == nil:
	case errors.Is(err, judge.ErrCompile):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(2)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "judge",
		Usage: "build a C++ solution and judge it against k.in / k.out test cases",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug messages",
				Sources: cli.EnvVars("JUDGE_VERBOSE"),
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			classifyCommand(),
			countCommand(),
		},
	}
}

func newLogger(cmd *cli.Command) *slog.Logger {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    color.NoColor,
	}))
}
