package testcase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/programme-lv/judge/internal/testcase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func compress(t *testing.T, content string) string {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return string(enc.EncodeAll([]byte(content), nil))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"1.in": "1 2\n", "1.out": "3\n",
		"2.in": "5 5\n", "2.out": "10\n",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	corpus, err := testcase.Discover(dir)
	require.NoError(t, err)
	require.Len(t, corpus.Cases, 2)
	assert.Empty(t, corpus.Unpaired)

	assert.Equal(t, testcase.TestCase{
		Ordinal:      2,
		InputPath:    filepath.Join(dir, "2.in"),
		ExpectedPath: filepath.Join(dir, "2.out"),
	}, corpus.Cases[1])
}

func TestDiscoverUnpaired(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"1.in": "", "1.out": "",
		"2.in": "", "2.out": "",
		"4.in": "",
	})

	corpus, err := testcase.Discover(dir)
	require.NoError(t, err)
	assert.Len(t, corpus.Cases, 2)
	assert.Equal(t, []int{4}, corpus.Unpaired)
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := testcase.Discover(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestPrepareUnpacksZstd(t *testing.T) {
	dir := t.TempDir()
	work := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"1.in":      "1 2\n",
		"1.out.zst": compress(t, "3\n"),
		"2.in.zst":  compress(t, "5 5\n"),
		"2.out.zst": compress(t, "10\n"),
	})

	corpus, err := testcase.Discover(dir)
	require.NoError(t, err)
	require.Len(t, corpus.Cases, 2)

	cases, err := testcase.Prepare(context.Background(), corpus.Cases, work)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, filepath.Join(dir, "1.in"), cases[0].InputPath)
	assert.Equal(t, filepath.Join(work, "tests", "1.out"), cases[0].ExpectedPath)

	body, err := os.ReadFile(cases[1].InputPath)
	require.NoError(t, err)
	assert.Equal(t, "5 5\n", string(body))

	body, err = os.ReadFile(cases[1].ExpectedPath)
	require.NoError(t, err)
	assert.Equal(t, "10\n", string(body))

	// discovered cases are not modified in place
	assert.Equal(t, filepath.Join(dir, "2.in"), corpus.Cases[1].InputPath)
}

func TestPrepareCorruptArchive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"1.in":      "1\n",
		"1.out.zst": "definitely not zstd",
	})

	corpus, err := testcase.Discover(dir)
	require.NoError(t, err)

	cases, err := testcase.Prepare(context.Background(), corpus.Cases, t.TempDir())
	require.Error(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, filepath.Join(dir, "1.out"), cases[0].ExpectedPath)
}
