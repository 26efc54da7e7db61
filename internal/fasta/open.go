// internal/fasta/open.go
package fasta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shenwei356/xopen"
)

// Open returns a reader over path, or stdin for "-". Compression (gzip, xz,
// zstd, bzip2) is detected from the content, not the file name. An empty input
// yields an empty reader rather than an error.
func Open(path string) (io.ReadCloser, error) {
	r, err := xopen.Ropen(path)
	if err != nil {
		if errors.Is(err, xopen.ErrNoContent) {
			return io.NopCloser(strings.NewReader("")), nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return r, nil
}

// ScanPathCtx opens path and scans it with ScanCtx.
func ScanPathCtx(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	return ScanCtx(ctx, rc, emit)
}
