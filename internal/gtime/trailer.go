package gtime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Markers that identify the trailer. A line is the trailer iff it contains
// all three. Candidate output that prints these words on one line is
// indistinguishable from the report; GNU time offers no framing to avoid it.
const (
	UserMarker    = "user"
	SystemMarker  = "system"
	ElapsedMarker = "elapsed"
)

// MemoryLabel precedes the peak resident set size (KB) in the default
// GNU time format: "(0avgtext+0avgdata 1234maxresident)k".
const MemoryLabel = "avgdata "

var ErrMalformedTrailer = errors.New("malformed resource usage trailer")

var leadingFloatRe = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

func IsTrailer(line string) bool {
	return strings.Contains(line, UserMarker) &&
		strings.Contains(line, SystemMarker) &&
		strings.Contains(line, ElapsedMarker)
}

// SplitTrailer scans lines from the start and stops at the first trailer.
// Lines before it are the program output, lines after it are dropped.
func SplitTrailer(lines []string) (output []string, trailer string, ok bool) {
	for i, line := range lines {
		if IsTrailer(line) {
			return lines[:i], line, true
		}
	}
	return lines, "", false
}

// ParseTrailer reads the elapsed time (the number right after the first
// colon, so "0:01.50elapsed" gives 1.5) and the peak memory following
// MemoryLabel.
func ParseTrailer(line string) (Usage, error) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return Usage{}, fmt.Errorf("%w: no elapsed field in %q", ErrMalformedTrailer, line)
	}
	elapsed, err := leadingFloat(line[colon+1:])
	if err != nil {
		return Usage{}, fmt.Errorf("%w: elapsed time: %v", ErrMalformedTrailer, err)
	}

	at := strings.Index(line, MemoryLabel)
	if at < 0 {
		return Usage{}, fmt.Errorf("%w: no %q field in %q", ErrMalformedTrailer, MemoryLabel, line)
	}
	kb, err := leadingFloat(line[at+len(MemoryLabel):])
	if err != nil {
		return Usage{}, fmt.Errorf("%w: peak memory: %v", ErrMalformedTrailer, err)
	}

	return Usage{ElapsedSec: elapsed, MaxRssKb: kb}, nil
}

// leadingFloat parses the longest numeric prefix of s, skipping leading
// whitespace.
func leadingFloat(s string) (float64, error) {
	num := leadingFloatRe.FindString(s)
	if num == "" {
		return 0, fmt.Errorf("no number at %q", s)
	}
	return strconv.ParseFloat(strings.TrimSpace(num), 64)
}
