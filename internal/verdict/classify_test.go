package verdict_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/programme-lv/judge/internal/gtime"
	"github.com/programme-lv/judge/internal/runner"
	"github.com/programme-lv/judge/internal/testcase"
	"github.com/programme-lv/judge/internal/verdict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var limits = verdict.Limits{TimeSec: 2.0, MemoryMb: 256}

func trailer(elapsed, rssKb string) string {
	return "0.01user 0.00system 0:" + elapsed + "elapsed 99%CPU (0avgtext+0avgdata " + rssKb + "maxresident)k"
}

func result(exit int, lines ...string) *runner.Result {
	return &runner.Result{ExitCode: exit, Lines: lines}
}

func TestClassifyScenarios(t *testing.T) {
	tests := []struct {
		name     string
		res      *runner.Result
		expected []string
		want     verdict.Outcome
		exitCode int
		ms       int64
		mb       float64
	}{
		{
			name:     "runtime error ignores everything else",
			res:      result(2, "garbage"),
			expected: []string{"3"},
			want:     verdict.RuntimeError,
			exitCode: 2,
		},
		{
			name:     "accepted",
			res:      result(0, "3", "4", trailer("01.50", "128000")),
			expected: []string{"3", "4"},
			want:     verdict.Accepted,
			ms:       1500,
			mb:       128,
		},
		{
			name:     "time limit exceeded regardless of output",
			res:      result(0, "3", "4", trailer("03.10", "1000")),
			expected: []string{"3", "4"},
			want:     verdict.TimeLimitExceeded,
			ms:       3100,
			mb:       1,
		},
		{
			name:     "memory limit exceeded",
			res:      result(0, "3", trailer("00.50", "300000")),
			expected: []string{"3"},
			want:     verdict.MemoryLimitExceeded,
			ms:       500,
			mb:       300,
		},
		{
			name:     "extra trailing line is wrong answer",
			res:      result(0, "3", "", trailer("00.50", "1000")),
			expected: []string{"3"},
			want:     verdict.WrongAnswer,
			ms:       500,
			mb:       1,
		},
		{
			name:     "missing line is wrong answer",
			res:      result(0, "3", trailer("00.50", "1000")),
			expected: []string{"3", "4"},
			want:     verdict.WrongAnswer,
			ms:       500,
			mb:       1,
		},
		{
			name:     "order matters",
			res:      result(0, "4", "3", trailer("00.50", "1000")),
			expected: []string{"3", "4"},
			want:     verdict.WrongAnswer,
			ms:       500,
			mb:       1,
		},
		{
			name:     "whitespace matters",
			res:      result(0, "3 ", trailer("00.50", "1000")),
			expected: []string{"3"},
			want:     verdict.WrongAnswer,
			ms:       500,
			mb:       1,
		},
		{
			name:     "empty output matches empty expected",
			res:      result(0, trailer("00.00", "1000")),
			expected: nil,
			want:     verdict.Accepted,
			ms:       0,
			mb:       1,
		},
		{
			name:     "lines after the trailer are dropped",
			res:      result(0, "3", trailer("00.50", "1000"), "0inputs+0outputs (0major+95minor)pagefaults 0swaps"),
			expected: []string{"3"},
			want:     verdict.Accepted,
			ms:       500,
			mb:       1,
		},
		{
			name:     "time equal to the limit passes",
			res:      result(0, "3", trailer("02.00", "256000")),
			expected: []string{"3"},
			want:     verdict.Accepted,
			ms:       2000,
			mb:       256,
		},
	}

	c := verdict.NewClassifier(limits)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := c.Classify(tt.res, tt.expected)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Outcome)
			assert.Equal(t, tt.exitCode, v.ExitCode)

			if tt.want == verdict.RuntimeError {
				assert.Nil(t, v.Usage)
				return
			}
			require.NotNil(t, v.Usage)
			assert.Equal(t, tt.ms, v.Usage.ElapsedMillis())
			assert.InDelta(t, tt.mb, v.Usage.MemoryMb(), 1e-9)
		})
	}
}

func TestClassifyKilledByWatchdog(t *testing.T) {
	c := verdict.NewClassifier(limits)
	v, err := c.Classify(&runner.Result{ExitCode: -1, Killed: true, Lines: []string{"partial"}}, []string{"3"})
	require.NoError(t, err)
	assert.Equal(t, verdict.TimeLimitExceeded, v.Outcome)
	assert.Nil(t, v.Usage)
}

func TestClassifyMissingTrailer(t *testing.T) {
	c := verdict.NewClassifier(limits)

	for _, lines := range [][]string{nil, {"3"}, {"3", "user system"}} {
		_, err := c.Classify(result(0, lines...), lines)
		require.ErrorIs(t, err, verdict.ErrNoTrailer)
	}
}

func TestClassifyMalformedTrailer(t *testing.T) {
	c := verdict.NewClassifier(limits)
	_, err := c.Classify(result(0, "3", "0.00user 0.00system 0:abcelapsed (0avgtext+0avgdata 10maxresident)k"), []string{"3"})
	require.ErrorIs(t, err, gtime.ErrMalformedTrailer)
}

func TestClassifyIsIdempotent(t *testing.T) {
	c := verdict.NewClassifier(limits)
	res := result(0, "3", trailer("01.00", "5000"))

	first, err := c.Classify(res, []string{"3"})
	require.NoError(t, err)
	for range 5 {
		again, err := c.Classify(res, []string{"3"})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, []string{"3", trailer("01.00", "5000")}, res.Lines)
}

func TestClassifyCase(t *testing.T) {
	dir := t.TempDir()
	tc := testcase.TestCase{Ordinal: 1, ExpectedPath: filepath.Join(dir, "1.out")}
	require.NoError(t, os.WriteFile(tc.ExpectedPath, []byte("3\n4"), 0644))

	c := verdict.NewClassifier(limits)
	v, err := c.ClassifyCase(result(0, "3", "4", trailer("00.10", "1000")), tc)
	require.NoError(t, err)
	assert.True(t, v.Accepted())

	// limits are checked before the expected file is needed
	missing := testcase.TestCase{Ordinal: 2, ExpectedPath: filepath.Join(dir, "2.out")}
	v, err = c.ClassifyCase(result(0, "3", trailer("05.00", "1000")), missing)
	require.NoError(t, err)
	assert.Equal(t, verdict.TimeLimitExceeded, v.Outcome)

	_, err = c.ClassifyCase(result(0, "3", trailer("00.10", "1000")), missing)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "AC", verdict.Verdict{Outcome: verdict.Accepted}.String())
	assert.Equal(t, "RE with exit code: 139", verdict.Verdict{Outcome: verdict.RuntimeError, ExitCode: 139}.String())
}
