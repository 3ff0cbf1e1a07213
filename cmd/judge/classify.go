package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/programme-lv/judge/internal/gatherer/termgath"
	"github.com/programme-lv/judge/internal/judge"
	"github.com/programme-lv/judge/internal/runner"
	"github.com/programme-lv/judge/internal/textlines"
	"github.com/programme-lv/judge/internal/verdict"
	"github.com/urfave/cli/v3"
)

func classifyCommand() *cli.Command {
	flags := append(configFlags(),
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    "captured output artifact, monitor trailer included",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "expected",
			Aliases:  []string{"e"},
			Usage:    "expected output file",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "exit-code",
			Usage: "exit status of the monitor process",
		},
		&cli.IntFlag{
			Name:  "ordinal",
			Usage: "test case number shown in the report",
			Value: 1,
		},
	)
	return &cli.Command{
		Name:   "classify",
		Usage:  "classify a stored output artifact without running anything",
		Flags:  flags,
		Action: classifyAction,
	}
}

func classifyAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.TimeLimit <= 0 || cfg.MemoryLimit <= 0 {
		return errors.New("time and memory limits must be positive")
	}

	lines, err := textlines.ReadFile(cmd.String("output"))
	if err != nil {
		return fmt.Errorf("failed to read output artifact: %w", err)
	}
	expected, err := textlines.ReadFile(cmd.String("expected"))
	if err != nil {
		return fmt.Errorf("failed to read expected output: %w", err)
	}

	res := &runner.Result{ExitCode: int(cmd.Int("exit-code")), Lines: lines}
	v, err := verdict.NewClassifier(cfg.Limits()).Classify(res, expected)
	if err != nil {
		return err
	}
	termgath.New().FinishTest(judge.VerdictResult(int(cmd.Int("ordinal")), v, 0))
	return nil
}
