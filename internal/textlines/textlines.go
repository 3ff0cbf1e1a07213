// Package textlines splits byte streams into lines the same way for
// captured program output and for expected-output files.
package textlines

import (
	"bytes"
	"fmt"
	"os"
	"slices"
)

// Split breaks data on '\n'. The separator is dropped, a '\r' before it is
// kept. A trailing fragment without a newline counts as a line only when it
// is non-empty, so "a\nb\n" and "a\nb" both yield [a b].
func Split(data []byte) []string {
	lines := make([]string, 0, bytes.Count(data, []byte{'\n'})+1)
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			lines = append(lines, string(data))
			break
		}
		lines = append(lines, string(data[:i]))
		data = data[i+1:]
	}
	return lines
}

func ReadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Split(data), nil
}

// Equal reports exact, order-sensitive equality of two line sequences.
func Equal(a, b []string) bool {
	return slices.Equal(a, b)
}
