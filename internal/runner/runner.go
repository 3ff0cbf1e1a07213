// Package runner executes the built candidate once per test case under the
// resource monitor and captures the merged output stream.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/programme-lv/judge/internal/gtime"
	"github.com/programme-lv/judge/internal/testcase"
	"github.com/programme-lv/judge/internal/textlines"
	"golang.org/x/sys/unix"
)

var (
	ErrArtifact = errors.New("failed to create output artifact")
	ErrSpawn    = errors.New("failed to spawn process")
	ErrDrain    = errors.New("failed to drain process output")
)

// Result is the raw outcome of one run, consumed by the classifier.
type Result struct {
	// ExitCode is 0 on normal termination. A monitor killed by a signal
	// reports -1.
	ExitCode int
	// Lines of the merged stdout/stderr stream, trailer included.
	Lines []string
	Raw   []byte
	// Killed is set when the watchdog had to stop the process group.
	Killed bool
	// Wall is measured by the judge around the whole monitor process.
	Wall time.Duration
}

type Runner struct {
	Monitor gtime.Monitor
	Binary  string
	// ArtifactPath receives the raw stream of the latest run. It is
	// truncated on every run, so runs must not overlap.
	ArtifactPath string
	// Live receives every byte as it is produced. Nil discards.
	Live io.Writer
	// Watchdog is the hard wall-clock ceiling of a run; zero waits forever.
	Watchdog time.Duration
	Logger   *slog.Logger
}

// Run spawns exactly one monitor process for tc. Errors are infrastructure
// failures of the judge; a candidate that crashes is reported through
// Result.ExitCode instead.
func (r *Runner) Run(ctx context.Context, tc testcase.TestCase) (*Result, error) {
	logger := r.logger().With("test", tc.Ordinal)

	artifact, err := os.Create(r.ArtifactPath)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrArtifact, r.ArtifactPath, err)
	}
	defer artifact.Close()

	stdin, err := os.Open(tc.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer stdin.Close()

	runCtx := ctx
	if r.Watchdog > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Watchdog)
		defer cancel()
	}

	// stdout and stderr share one pipe so their relative order is the
	// order the kernel received the writes in.
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSpawn, err)
	}
	defer pr.Close()

	cmd := r.Monitor.Command(runCtx, r.Binary)
	cmd.Stdin = stdin
	cmd.Stdout = pw
	cmd.Stderr = pw
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	var watchdogFired atomic.Bool
	cmd.Cancel = func() error {
		if ctx.Err() == nil {
			watchdogFired.Store(true)
		}
		return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	}

	logger.Debug("starting process", "cmd", cmd.String())
	started := time.Now()
	if err := cmd.Start(); err != nil {
		_ = pw.Close()
		return nil, fmt.Errorf("%w: %w", ErrSpawn, err)
	}
	// the child holds its own copy of the write end
	_ = pw.Close()

	var buf bytes.Buffer
	_, drainErr := io.Copy(io.MultiWriter(r.live(), artifact, &buf), pr)
	// closing the read end unblocks a child still writing after a failed drain
	_ = pr.Close()
	waitErr := cmd.Wait()
	wall := time.Since(started)

	if drainErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrDrain, drainErr)
	}

	res := &Result{
		Raw:   buf.Bytes(),
		Lines: textlines.Split(buf.Bytes()),
		Wall:  wall,
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run interrupted: %w", err)
	}

	// Wait reports the watchdog's context error even for a monitor that
	// exited by itself, so the exit status is read from the process state.
	if cmd.ProcessState == nil {
		return nil, fmt.Errorf("failed to wait for process: %w", waitErr)
	}
	res.ExitCode = cmd.ProcessState.ExitCode()
	// A monitor that exited with a status of its own finished before the
	// kill reached it; its exit code and trailer stand.
	if watchdogFired.Load() && res.ExitCode == -1 {
		res.Killed = true
		logger.Warn("watchdog killed process group", "after", r.Watchdog)
	}

	logger.Debug("process finished",
		"exit", res.ExitCode, "wall", wall.Round(time.Millisecond), "bytes", len(res.Raw))
	return res, nil
}

func (r *Runner) live() io.Writer {
	if r.Live == nil {
		return io.Discard
	}
	return r.Live
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}
