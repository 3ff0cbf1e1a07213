package gtime_test

import (
	"testing"

	"github.com/programme-lv/judge/internal/gtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gnuTrailer = "0.00user 0.00system 0:01.50elapsed 99%CPU (0avgtext+0avgdata 128000maxresident)k"

func TestIsTrailer(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{line: gnuTrailer, want: true},
		{line: "user system elapsed", want: true},
		{line: "0inputs+0outputs (0major+95minor)pagefaults 0swaps", want: false},
		{line: "user system", want: false},
		{line: "elapsed user", want: false},
		{line: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, gtime.IsTrailer(tt.line))
		})
	}
}

func TestSplitTrailer(t *testing.T) {
	lines := []string{"3", "4", gnuTrailer, "0inputs+0outputs (0major+95minor)pagefaults 0swaps"}

	out, trailer, ok := gtime.SplitTrailer(lines)
	require.True(t, ok)
	assert.Equal(t, []string{"3", "4"}, out)
	assert.Equal(t, gnuTrailer, trailer)

	out, _, ok = gtime.SplitTrailer([]string{"3", "4"})
	assert.False(t, ok)
	assert.Equal(t, []string{"3", "4"}, out)
}

// Program output that happens to use all three words is taken for the
// trailer. This pins the documented limitation.
func TestSplitTrailerAdversarialOutput(t *testing.T) {
	lines := []string{"the user left the system; time elapsed: 5", "42", gnuTrailer}

	out, trailer, ok := gtime.SplitTrailer(lines)
	require.True(t, ok)
	assert.Empty(t, out)
	assert.Equal(t, lines[0], trailer)

	_, err := gtime.ParseTrailer(trailer)
	require.ErrorIs(t, err, gtime.ErrMalformedTrailer)
}

func TestParseTrailer(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		elapsed float64
		rssKb   float64
	}{
		{name: "gnu default", line: gnuTrailer, elapsed: 1.5, rssKb: 128000},
		{name: "minutes dropped", line: "1.00user 0.10system 2:03.10elapsed 50%CPU (0avgtext+0avgdata 300000maxresident)k", elapsed: 3.1, rssKb: 300000},
		{name: "plain seconds", line: "user system elapsed:0.50 avgdata 2048", elapsed: 0.5, rssKb: 2048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := gtime.ParseTrailer(tt.line)
			require.NoError(t, err)
			assert.InDelta(t, tt.elapsed, u.ElapsedSec, 1e-9)
			assert.InDelta(t, tt.rssKb, u.MaxRssKb, 1e-9)
		})
	}
}

func TestParseTrailerMalformed(t *testing.T) {
	lines := []string{
		"0.00user 0.00system 0.50elapsed avgdata 100",
		"0.00user 0.00system 0:xxelapsed (0avgtext+0avgdata 100maxresident)k",
		"0.00user 0.00system 0:00.50elapsed 99%CPU",
		"0.00user 0.00system 0:00.50elapsed (0avgtext+0avgdata maxresident)k",
	}
	for _, line := range lines {
		_, err := gtime.ParseTrailer(line)
		assert.ErrorIs(t, err, gtime.ErrMalformedTrailer, line)
	}
}

func TestUsageConversions(t *testing.T) {
	u := gtime.Usage{ElapsedSec: 1.5, MaxRssKb: 128000}
	assert.Equal(t, int64(1500), u.ElapsedMillis())
	assert.InDelta(t, 128.0, u.MemoryMb(), 1e-9)

	u = gtime.Usage{ElapsedSec: 0.0049, MaxRssKb: 1024}
	assert.Equal(t, int64(5), u.ElapsedMillis())
	assert.InDelta(t, 1.024, u.MemoryMb(), 1e-9)
}

func TestMonitorArgs(t *testing.T) {
	m := gtime.Monitor{Path: gtime.DefaultPath}
	assert.Equal(t, []string{"./submission"}, m.ToArgs("./submission"))

	m = gtime.Monitor{Path: gtime.DefaultPath, Args: []string{"--quiet"}, Format: "%Uuser %Ssystem %Eelapsed %Davgdata %M"}
	assert.Equal(t,
		[]string{"--quiet", "-f", "%Uuser %Ssystem %Eelapsed %Davgdata %M", "./submission"},
		m.ToArgs("./submission"))
}
