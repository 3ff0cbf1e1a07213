// Package termgath prints judging progress and verdicts to a terminal.
package termgath

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/programme-lv/judge/api"
)

type TerminalGatherer struct {
	StartedAt time.Time

	out   io.Writer
	green *color.Color
	red   *color.Color
	bold  *color.Color
}

func New() *TerminalGatherer { return NewWriter(os.Stdout) }

// NewWriter prints to w instead of stdout.
func NewWriter(w io.Writer) *TerminalGatherer {
	return &TerminalGatherer{
		StartedAt: time.Now(),
		out:       w,
		green:     color.New(color.FgGreen),
		red:       color.New(color.FgRed),
		bold:      color.New(color.Bold),
	}
}

func (t *TerminalGatherer) StartJob(numTests int) {
	t.bold.Fprintf(t.out, "== Judging started: %d tests ==\n", numTests)
}

func (t *TerminalGatherer) StartCompile() {
	fmt.Fprintln(t.out, "-- Compilation started --")
}

func (t *TerminalGatherer) FinishCompile(res api.CompileResult) {
	suffix := ""
	if res.Cached {
		suffix = " (cached)"
	}
	fmt.Fprintf(t.out, "-- Compilation finished in %d ms%s --\n", res.Millis, suffix)
}

func (t *TerminalGatherer) ReachTest(ordinal int) {}

func (t *TerminalGatherer) FinishTest(res api.TestResult) {
	fmt.Fprintf(t.out, "Verdict for test case %d: ", res.Ordinal)
	if res.Error != nil {
		t.red.Fprintf(t.out, "internal error: %s\n", *res.Error)
		return
	}
	c := t.red
	if res.Accepted() {
		c = t.green
	}
	c.Fprint(t.out, verdictText(res))
	if res.ElapsedMillis != nil && res.MemoryMBytes != nil {
		fmt.Fprintf(t.out, "   \t%d ms %s mb", *res.ElapsedMillis,
			strconv.FormatFloat(*res.MemoryMBytes, 'g', -1, 64))
	}
	fmt.Fprintln(t.out)
}

func verdictText(res api.TestResult) string {
	if *res.Verdict == api.VerdictRuntimeError && res.ExitCode != nil {
		return fmt.Sprintf("RE with exit code: %d", *res.ExitCode)
	}
	return *res.Verdict
}

func (t *TerminalGatherer) CompileError(msg string) {
	t.red.Fprintln(t.out, "== Compilation error ==")
	if msg != "" {
		fmt.Fprintln(t.out, msg)
	}
}

func (t *TerminalGatherer) InternalError(msg string) {
	t.red.Fprintf(t.out, "== Internal error: %s ==\n", msg)
}

func (t *TerminalGatherer) FinishNoError() {
	dur := time.Since(t.StartedAt).Round(time.Millisecond)
	t.bold.Fprintf(t.out, "== Judging finished in %s ==\n", dur)
}
