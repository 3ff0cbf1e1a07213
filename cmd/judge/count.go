package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/programme-lv/judge/internal/testcase"
	"github.com/urfave/cli/v3"
)

func countCommand() *cli.Command {
	return &cli.Command{
		Name:      "count",
		Usage:     "print the number of test cases in a directory",
		ArgsUsage: "DIR",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				return errors.New("test directory is required")
			}
			corpus, err := testcase.Discover(dir)
			if err != nil {
				return err
			}
			if len(corpus.Unpaired) > 0 {
				newLogger(cmd).Warn("test files do not follow the k.in/k.out convention", "ordinals", corpus.Unpaired)
			}
			fmt.Println(len(corpus.Cases))
			return nil
		},
	}
}
