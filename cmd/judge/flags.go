package main

import (
	"github.com/programme-lv/judge/internal/config"
	"github.com/urfave/cli/v3"
)

// configFlags are shared by the commands that classify runs.
func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "TOML configuration file",
			Value:   config.DefaultFile,
			Sources: cli.EnvVars("JUDGE_CONFIG"),
		},
		&cli.FloatFlag{
			Name:    "time-limit",
			Usage:   "time limit in seconds",
			Sources: cli.EnvVars("JUDGE_TIME_LIMIT"),
		},
		&cli.FloatFlag{
			Name:    "memory-limit",
			Usage:   "memory limit in megabytes",
			Sources: cli.EnvVars("JUDGE_MEMORY_LIMIT"),
		},
	}
}

// loadConfig reads the configuration file and applies the limit flags. The
// default file may be absent and is also looked up in the user config
// directory; an explicitly named one must exist.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	path := cmd.String("config")
	if !cmd.IsSet("config") {
		path = config.Locate(path)
	}
	cfg, err := config.Load(path, !cmd.IsSet("config"))
	if err != nil {
		return cfg, err
	}
	if cmd.IsSet("time-limit") {
		cfg.TimeLimit = cmd.Float("time-limit")
	}
	if cmd.IsSet("memory-limit") {
		cfg.MemoryLimit = cmd.Float("memory-limit")
	}
	return cfg, nil
}

func overrideString(cmd *cli.Command, name string, dst *string) {
	if cmd.IsSet(name) {
		*dst = cmd.String(name)
	}
}
