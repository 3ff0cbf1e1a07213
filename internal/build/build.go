// Package build compiles the candidate source into an executable.
//
// Successful builds are cached by the sha256 of compiler, flags and source,
// so judging the same file twice skips the compiler.
package build

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/shlex"
	"github.com/programme-lv/judge/internal/xdg"
	"github.com/puzpuzpuz/xsync/v3"
)

type Result struct {
	Success  bool
	ExitCode int
	// Output is the compiler's combined stdout/stderr, passed through as is.
	Output string
	Cached bool
	Took   time.Duration
}

type Compiler struct {
	Path  string
	Flags string
	// CacheDir holds cached executables. Empty disables caching.
	CacheDir string
	// Live mirrors compiler diagnostics while they are produced.
	Live   io.Writer
	Logger *slog.Logger
}

// cacheLocks holds one mutex per cached executable path, shared by all
// compilers of the process, so concurrent sessions compile a source once.
var cacheLocks = xsync.NewMapOf[string, *sync.Mutex]()

func NewCompiler(path, flags, cacheDir string) *Compiler {
	return &Compiler{
		Path:     path,
		Flags:    flags,
		CacheDir: cacheDir,
	}
}

// Build runs `<Path> <Flags...> <src> -o <out>`. A compiler that runs and
// fails gives Result.Success == false and a nil error; errors mean the
// compiler could not be run at all.
func (c *Compiler) Build(ctx context.Context, src, out string) (*Result, error) {
	flags, err := shlex.Split(c.Flags)
	if err != nil {
		return nil, fmt.Errorf("failed to split compiler flags %q: %w", c.Flags, err)
	}
	source, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read source code: %w", err)
	}

	if c.CacheDir == "" {
		return c.compile(ctx, flags, src, out)
	}

	key := c.cacheKey(flags, source)
	cached := filepath.Join(c.CacheDir, key)
	lock := lockFor(cached)
	lock.Lock()
	defer lock.Unlock()

	if _, err := os.Stat(cached); err == nil {
		started := time.Now()
		if err := copyExecutable(cached, out); err != nil {
			return nil, fmt.Errorf("failed to restore cached build: %w", err)
		}
		c.logger().Debug("using cached build", "key", key)
		return &Result{Success: true, Cached: true, Took: time.Since(started)}, nil
	}

	res, err := c.compile(ctx, flags, src, out)
	if err != nil || !res.Success {
		return res, err
	}

	if err := xdg.EnsureDir(c.CacheDir); err != nil {
		c.logger().Warn("failed to create build cache directory", "err", err)
		return res, nil
	}
	if err := copyExecutable(out, cached); err != nil {
		c.logger().Warn("failed to cache build", "key", key, "err", err)
	}
	return res, nil
}

func (c *Compiler) compile(ctx context.Context, flags []string, src, out string) (*Result, error) {
	args := append(flags, src, "-o", out)
	cmd := exec.CommandContext(ctx, c.Path, args...)

	var buf bytes.Buffer
	w := io.MultiWriter(c.live(), &buf)
	cmd.Stdout = w
	cmd.Stderr = w

	c.logger().Debug("compiling", "cmd", cmd.String())
	started := time.Now()
	err := cmd.Run()
	res := &Result{Success: true, Output: buf.String(), Took: time.Since(started)}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to run compiler: %w", err)
		}
		res.Success = false
		res.ExitCode = exitErr.ExitCode()
	}
	return res, nil
}

func (c *Compiler) cacheKey(flags []string, source []byte) string {
	h := sha256.New()
	h.Write([]byte(c.Path))
	for _, f := range flags {
		h.Write([]byte{0})
		h.Write([]byte(f))
	}
	h.Write([]byte{0})
	h.Write(source)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func lockFor(path string) *sync.Mutex {
	lock, _ := cacheLocks.LoadOrCompute(path, func() *sync.Mutex { return &sync.Mutex{} })
	return lock
}

func (c *Compiler) live() io.Writer {
	if c.Live == nil {
		return io.Discard
	}
	return c.Live
}

func (c *Compiler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// copyExecutable writes through a temporary file so a concurrent reader of
// dst never sees a partial binary.
func copyExecutable(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp" + strconv.Itoa(os.Getpid())
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}
