// Package config holds the judge configuration. It is assembled once at
// startup from defaults, an optional TOML file, the environment and
// command-line flags, and then passed by value to the components.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/programme-lv/judge/internal/gtime"
	"github.com/programme-lv/judge/internal/verdict"
	"github.com/programme-lv/judge/internal/xdg"
)

const DefaultFile = "judge.toml"

type Config struct {
	// Source is the candidate source file.
	Source string `toml:"source"`
	// Tests is the directory holding k.in / k.out pairs.
	Tests string `toml:"tests"`
	// TimeLimit in seconds.
	TimeLimit float64 `toml:"time_limit"`
	// MemoryLimit in megabytes (1 MB = 1000 KB).
	MemoryLimit float64 `toml:"memory_limit"`

	Compiler  Compiler  `toml:"compiler"`
	Monitor   Monitor   `toml:"monitor"`
	Workspace Workspace `toml:"workspace"`
	Report    Report    `toml:"report"`
}

type Compiler struct {
	Path  string `toml:"path"`
	Flags string `toml:"flags"`
	Cache bool   `toml:"cache"`
}

type Monitor struct {
	Path   string `toml:"path"`
	Format string `toml:"format"`
	// WatchdogMargin in seconds on top of the time limit before the
	// process group is killed. Zero disables the watchdog.
	WatchdogMargin float64 `toml:"watchdog_margin"`
}

type Workspace struct {
	// Dir is where the binary and the output artifact are placed. Empty
	// means a fresh directory under the system temp dir.
	Dir string `toml:"dir"`
	// Keep leaves the binary and the artifact behind after judging.
	Keep bool `toml:"keep"`
}

type Report struct {
	// JSON is a path the full report is written to.
	JSON        string `toml:"json"`
	NatsURL     string `toml:"nats_url"`
	NatsSubject string `toml:"nats_subject"`
	SqsQueueURL string `toml:"sqs_queue_url"`
	SqsRegion   string `toml:"sqs_region"`
}

func Default() Config {
	return Config{
		TimeLimit:   2.0,
		MemoryLimit: 256,
		Compiler: Compiler{
			Path:  "g++",
			Flags: "-std=c++17 -O2 -lm -Wall",
			Cache: true,
		},
		Monitor: Monitor{
			Path: gtime.LookupPath(),
		},
		Report: Report{
			NatsSubject: "judge.results",
		},
	}
}

// Locate returns name when it exists in the working directory and the path
// of name inside the user config directory otherwise.
func Locate(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(xdg.AppConfigDir("judge"), name)
}

// Load reads path over the defaults. A missing file is not an error when
// optional is set. Unknown keys are rejected so typos do not go unnoticed.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (.env when none)
// into the process environment without overriding existing variables.
// Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Source == "" {
		errs = append(errs, errors.New("source file is not set"))
	}
	if c.Tests == "" {
		errs = append(errs, errors.New("test directory is not set"))
	}
	if c.TimeLimit <= 0 {
		errs = append(errs, fmt.Errorf("time limit must be positive, got %v", c.TimeLimit))
	}
	if c.MemoryLimit <= 0 {
		errs = append(errs, fmt.Errorf("memory limit must be positive, got %v", c.MemoryLimit))
	}
	if c.Compiler.Path == "" {
		errs = append(errs, errors.New("compiler path is not set"))
	}
	if c.Monitor.Path == "" {
		errs = append(errs, errors.New("monitor path is not set"))
	}
	if c.Monitor.WatchdogMargin < 0 {
		errs = append(errs, fmt.Errorf("watchdog margin must not be negative, got %v", c.Monitor.WatchdogMargin))
	}
	if c.Report.NatsURL != "" && c.Report.NatsSubject == "" {
		errs = append(errs, errors.New("nats subject is not set"))
	}
	return errors.Join(errs...)
}

func (c Config) Limits() verdict.Limits {
	return verdict.Limits{TimeSec: c.TimeLimit, MemoryMb: c.MemoryLimit}
}

// Watchdog returns the hard ceiling of one run, or zero when disabled.
func (c Config) Watchdog() time.Duration {
	if c.Monitor.WatchdogMargin <= 0 {
		return 0
	}
	return time.Duration((c.TimeLimit + c.Monitor.WatchdogMargin) * float64(time.Second))
}

func (c Config) GTimeMonitor() gtime.Monitor {
	return gtime.Monitor{Path: c.Monitor.Path, Format: c.Monitor.Format}
}
