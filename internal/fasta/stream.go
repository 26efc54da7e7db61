// internal/fasta/stream.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is one parsed FASTA entry. Seq keeps the input case; line breaks and
// surrounding whitespace are removed.
type Record struct {
	ID   string
	Desc string // rest of the header after the first blank, may be empty
	Seq  []byte
}

const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)

// ScanCtx parses FASTA from r and calls emit once per record, in input order.
// Each emitted Seq is a fresh slice owned by the receiver.
//
// It is cancelable: it returns ctx.Err() promptly when ctx is Done, even
// mid-record. An error returned by emit stops the scan and is returned as is.
func ScanCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		rec    Record
		inRec  bool
		seq    = make([]byte, 0, 1<<16)
		lineNo int
	)

	flush := func() error {
		if !inRec {
			return nil
		}
		rec.Seq = append([]byte(nil), seq...)
		return emit(rec)
	}

	for sc.Scan() {
		lineNo++
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			rec = Record{}
			rec.ID, rec.Desc = parseHeader(line[1:])
			seq = seq[:0]
			inRec = true
			continue
		}
		if line[0] == ';' {
			continue
		}
		if !inRec {
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			return fmt.Errorf("fasta: line %d: sequence data before the first header", lineNo)
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// Scan is ScanCtx with a background context.
func Scan(r io.Reader, emit func(Record) error) error {
	return ScanCtx(context.Background(), r, emit)
}

func parseHeader(hdr []byte) (id, desc string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}
