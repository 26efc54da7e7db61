// internal/fasta/writer.go
package fasta

import (
	"bufio"
	"io"
)

// Writer emits records with the whole sequence on one line.
type Writer struct {
	bw *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriterSize(w, 1<<16)}
}

// Write emits ">ID[ Desc]\nSEQ\n".
func (w *Writer) Write(r Record) error {
	w.bw.WriteByte('>')
	w.bw.WriteString(r.ID)
	if r.Desc != "" {
		w.bw.WriteByte(' ')
		w.bw.WriteString(r.Desc)
	}
	w.bw.WriteByte('\n')
	w.bw.Write(r.Seq)
	return w.bw.WriteByte('\n')
}

// Flush pushes buffered output to the underlying writer.
func (w *Writer) Flush() error { return w.bw.Flush() }
