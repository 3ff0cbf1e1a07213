package textlines_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/programme-lv/judge/internal/textlines"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: []string{}},
		{name: "single newline", in: "\n", want: []string{""}},
		{name: "terminated", in: "a\nb\n", want: []string{"a", "b"}},
		{name: "unterminated", in: "a\nb", want: []string{"a", "b"}},
		{name: "blank lines kept", in: "a\n\nb\n\n", want: []string{"a", "", "b", ""}},
		{name: "carriage return kept", in: "a\r\nb\r\n", want: []string{"a\r", "b\r"}},
		{name: "spaces kept", in: " 1 2 \n", want: []string{" 1 2 "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textlines.Split([]byte(tt.in)))
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "1.out")
	require.NoError(t, os.WriteFile(path, []byte("3\n4\n"), 0644))

	lines, err := textlines.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4"}, lines)

	_, err = textlines.ReadFile(filepath.Join(dir, "missing.out"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEqual(t *testing.T) {
	assert.True(t, textlines.Equal([]string{}, nil))
	assert.True(t, textlines.Equal([]string{"a", "b"}, []string{"a", "b"}))
	assert.False(t, textlines.Equal([]string{"a", "b"}, []string{"b", "a"}))
	assert.False(t, textlines.Equal([]string{"a"}, []string{"a", ""}))
	assert.False(t, textlines.Equal([]string{"a "}, []string{"a"}))
}
