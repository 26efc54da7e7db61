// internal/writers/sinks.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shenwei356/xopen"
	"go.uber.org/multierr"
)

// ErrOutputExists is returned by Create when an output is already present and
// overwriting was not requested.
var ErrOutputExists = errors.New("output file exists")

// Paths names the two run outputs.
type Paths struct {
	FASTA string
	GFF   string
}

// OutputPaths derives <prefix>.fa and <prefix>.gff, adding the suffix of the
// requested compression ("", "gz", "xz" or "zst").
func OutputPaths(prefix, compress string) (Paths, error) {
	var ext string
	switch compress {
	case "", "none":
	case "gz", "xz", "zst":
		ext = "." + compress
	default:
		return Paths{}, fmt.Errorf("unsupported compression %q (use gz, xz or zst)", compress)
	}
	return Paths{FASTA: prefix + ".fa" + ext, GFF: prefix + ".gff" + ext}, nil
}

// Sinks holds the open output files. Only one goroutine may write to them.
type Sinks struct {
	FASTA io.Writer
	GFF   io.Writer

	closers []io.Closer
}

// Create opens both outputs. Missing parent directories are created. Without
// force an existing file is an error and nothing is created; with force
// existing files are truncated. If the second output cannot be opened the
// first is removed again.
func Create(p Paths, force bool) (*Sinks, error) {
	if !force {
		for _, path := range []string{p.FASTA, p.GFF} {
			if _, err := os.Stat(path); err == nil {
				return nil, fmt.Errorf("%s: %w (use --force to overwrite)", path, ErrOutputExists)
			}
		}
	}
	fa, err := xopen.Wopen(p.FASTA)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", p.FASTA, err)
	}
	gf, err := xopen.Wopen(p.GFF)
	if err != nil {
		_ = fa.Close()
		_ = os.Remove(p.FASTA)
		return nil, fmt.Errorf("create %s: %w", p.GFF, err)
	}
	return &Sinks{FASTA: fa, GFF: gf, closers: []io.Closer{fa, gf}}, nil
}

// Close flushes and closes every output, reporting all failures.
func (s *Sinks) Close() error {
	var err error
	for _, c := range s.closers {
		err = multierr.Append(err, c.Close())
	}
	s.closers = nil
	return err
}
