// Package gtime adapts GNU time as the resource monitor of a judged run.
//
// GNU time runs the candidate, waits for it and appends one report line
// with user/system/elapsed times and peak memory to the candidate's stderr.
// With stderr merged into stdout that report becomes the last line of the
// captured stream: the trailer.
package gtime

import (
	"context"
	"os/exec"
)

// DefaultPath is where GNU time lives on most Linux distributions.
const DefaultPath = "/usr/bin/time"

type Monitor struct {
	// Path of the GNU time executable.
	Path string
	// Format is passed as -f when non-empty. It must keep the trailer
	// markers and the "avgdata " label on one line.
	Format string
	// Args are inserted before the format and the wrapped binary.
	Args []string
}

// LookupPath prefers gtime (GNU time as installed by Homebrew) and falls
// back to DefaultPath.
func LookupPath() string {
	if p, err := exec.LookPath("gtime"); err == nil {
		return p
	}
	return DefaultPath
}

// Command returns a command that runs binary under the monitor. Stdio is
// left for the caller to wire.
func (m Monitor) Command(ctx context.Context, binary string) *exec.Cmd {
	return exec.CommandContext(ctx, m.Path, m.ToArgs(binary)...)
}

func (m Monitor) ToArgs(binary string) []string {
	args := append([]string{}, m.Args...)
	if m.Format != "" {
		args = append(args, "-f", m.Format)
	}
	return append(args, binary)
}
