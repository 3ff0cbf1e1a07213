package testcase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/errgroup"
)

// Prepare resolves compressed test files. Whenever k.in or k.out is missing
// but its .zst sibling exists, the sibling is unpacked into workDir and the
// returned case points there. Files that fail to unpack keep their original
// path, so only the affected test fails later; their errors are joined into
// the returned error next to the usable cases.
func Prepare(ctx context.Context, cases []TestCase, workDir string) ([]TestCase, error) {
	prepared := make([]TestCase, len(cases))
	copy(prepared, cases)

	var mu sync.Mutex
	var errs []error

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range prepared {
		for _, path := range []*string{&prepared[i].InputPath, &prepared[i].ExpectedPath} {
			if !needsUnpacking(*path) {
				continue
			}
			src := *path + ZstdExt
			dst := filepath.Join(workDir, "tests", filepath.Base(*path))
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := unpack(src, dst); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
					return nil
				}
				*path = dst
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return prepared, errors.Join(errs...)
}

func needsUnpacking(path string) bool {
	if _, err := os.Stat(path); err == nil {
		return false
	}
	_, err := os.Stat(path + ZstdExt)
	return err == nil
}

func unpack(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	d, err := zstd.NewReader(in)
	if err != nil {
		return fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer d.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create test directory: %w", err)
	}

	tmp := dst + ".tmp" + strconv.Itoa(os.Getpid())
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", tmp, err)
	}
	_, err = io.Copy(out, d)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to decompress %s: %w", src, err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		return fmt.Errorf("failed to move file %s: %w", dst, err)
	}
	return nil
}
