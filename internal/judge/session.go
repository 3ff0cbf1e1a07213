package judge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/programme-lv/judge/api"
	"github.com/programme-lv/judge/internal/build"
	"github.com/programme-lv/judge/internal/config"
	"github.com/programme-lv/judge/internal/runner"
	"github.com/programme-lv/judge/internal/testcase"
	"github.com/programme-lv/judge/internal/verdict"
	"github.com/programme-lv/judge/internal/xdg"
)

// ErrCompile means the candidate did not build; no test was judged.
var ErrCompile = errors.New("compilation failed")

const (
	binaryName   = "submission"
	artifactName = "user_out.txt"
)

type Session struct {
	Config  config.Config
	RunUuid string
	// Gatherer receives progress and verdicts.
	Gatherer ResultGatherer
	// Live receives compiler diagnostics and candidate output as produced.
	Live   io.Writer
	Logger *slog.Logger
}

// Execute runs the whole session. Verdicts, including rejections, are not
// errors: a nil error means every test was attempted.
func (s *Session) Execute(ctx context.Context) error {
	cfg := s.Config
	logger := s.logger()

	workDir, cleanup, err := s.workspace()
	if err != nil {
		s.Gatherer.InternalError(err.Error())
		return err
	}
	defer cleanup()

	corpus, err := testcase.Discover(cfg.Tests)
	if err != nil {
		s.Gatherer.InternalError(err.Error())
		return err
	}
	if len(corpus.Unpaired) > 0 {
		logger.Warn("test files do not follow the k.in/k.out convention", "ordinals", corpus.Unpaired)
	}
	s.Gatherer.StartJob(len(corpus.Cases))

	binary := filepath.Join(workDir, binaryName)
	compiled, err := s.compile(ctx, binary)
	if err != nil {
		s.Gatherer.InternalError(err.Error())
		return err
	}
	if !compiled.Success {
		s.Gatherer.CompileError(compiled.Output)
		return ErrCompile
	}

	cases, err := testcase.Prepare(ctx, corpus.Cases, workDir)
	if cases == nil {
		s.Gatherer.InternalError(err.Error())
		return err
	}
	if err != nil {
		logger.Warn("some test files could not be unpacked", "err", err)
	}

	j := &Judge{
		Executor: &runner.Runner{
			Monitor:      cfg.GTimeMonitor(),
			Binary:       binary,
			ArtifactPath: filepath.Join(workDir, artifactName),
			Live:         s.Live,
			Watchdog:     cfg.Watchdog(),
			Logger:       logger,
		},
		Classifier: verdict.NewClassifier(cfg.Limits()),
		Gatherer:   s.Gatherer,
		Logger:     logger,
	}
	j.Run(ctx, cases)

	if err := ctx.Err(); err != nil {
		s.Gatherer.InternalError(err.Error())
		return err
	}
	s.Gatherer.FinishNoError()
	return nil
}

func (s *Session) compile(ctx context.Context, binary string) (*build.Result, error) {
	cfg := s.Config
	cacheDir := ""
	if cfg.Compiler.Cache {
		cacheDir = xdg.AppCacheDir("judge", "builds")
	}
	compiler := build.NewCompiler(cfg.Compiler.Path, cfg.Compiler.Flags, cacheDir)
	compiler.Live = s.Live
	compiler.Logger = s.logger()

	s.Gatherer.StartCompile()
	res, err := compiler.Build(ctx, cfg.Source, binary)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", cfg.Source, err)
	}
	s.Gatherer.FinishCompile(api.CompileResult{
		Success:  res.Success,
		ExitCode: res.ExitCode,
		Output:   res.Output,
		Cached:   res.Cached,
		Millis:   res.Took.Milliseconds(),
	})
	return res, nil
}

// workspace returns an absolute work directory and a function removing what
// the session left in it.
func (s *Session) workspace() (string, func(), error) {
	ws := s.Config.Workspace
	logger := s.logger()

	if ws.Dir == "" {
		dir, err := os.MkdirTemp("", "judge-"+s.RunUuid+"-")
		if err != nil {
			return "", nil, fmt.Errorf("failed to create work directory: %w", err)
		}
		return dir, func() {
			if ws.Keep {
				logger.Info("kept work directory", "dir", dir)
				return
			}
			if err := os.RemoveAll(dir); err != nil {
				logger.Warn("failed to remove work directory", "dir", dir, "err", err)
			}
		}, nil
	}

	dir, err := filepath.Abs(ws.Dir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve work directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	return dir, func() {
		if ws.Keep {
			return
		}
		for _, name := range []string{artifactName, binaryName, "tests"} {
			if err := os.RemoveAll(filepath.Join(dir, name)); err != nil {
				logger.Warn("failed to clean up", "path", name, "err", err)
			}
		}
	}, nil
}

func (s *Session) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
