// Package testcase enumerates the test corpus of a problem directory.
//
// Test k is the pair k.in / k.out. Either file may be stored zstd-compressed
// as k.in.zst / k.out.zst and is then unpacked by Prepare.
package testcase

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	InputExt    = ".in"
	ExpectedExt = ".out"
	ZstdExt     = ".zst"
)

type TestCase struct {
	Ordinal      int
	InputPath    string
	ExpectedPath string
}

type Corpus struct {
	Dir   string
	Cases []TestCase
	// Unpaired lists ordinals seen with only one of the two files, or
	// beyond the count derived from the number of files.
	Unpaired []int
}

// Discover counts regular files in dir and assumes half of them are inputs.
// The naming convention is not enforced; mismatches only end up in
// Corpus.Unpaired.
func Discover(dir string) (*Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read test directory: %w", err)
	}

	regular := 0
	ins := mapset.NewThreadUnsafeSet[int]()
	outs := mapset.NewThreadUnsafeSet[int]()
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		regular++
		name := strings.TrimSuffix(e.Name(), ZstdExt)
		ext := filepath.Ext(name)
		k, err := strconv.Atoi(strings.TrimSuffix(name, ext))
		if err != nil {
			continue
		}
		switch ext {
		case InputExt:
			ins.Add(k)
		case ExpectedExt:
			outs.Add(k)
		}
	}

	n := regular / 2
	corpus := &Corpus{Dir: dir, Cases: make([]TestCase, 0, n)}
	for k := 1; k <= n; k++ {
		corpus.Cases = append(corpus.Cases, TestCase{
			Ordinal:      k,
			InputPath:    filepath.Join(dir, strconv.Itoa(k)+InputExt),
			ExpectedPath: filepath.Join(dir, strconv.Itoa(k)+ExpectedExt),
		})
	}

	unpaired := ins.SymmetricDifference(outs)
	for k := range ins.Union(outs).Iter() {
		if k < 1 || k > n {
			unpaired.Add(k)
		}
	}
	corpus.Unpaired = unpaired.ToSlice()
	slices.Sort(corpus.Unpaired)

	return corpus, nil
}
