// internal/gff/gff.go
package gff

import (
	"bufio"
	"io"
	"strconv"
)

const Header = "##gff-version 3\n"

// Feature is one GFF3 line. Score, strand and phase are always ".".
type Feature struct {
	SeqID  string
	Source string
	Type   string
	Start  int // written as given; the caller picks the coordinate base
	End    int
	Attrs  string
}

// Writer streams features after a single version header. The header is
// emitted before the first feature, or by Flush when there were none.
type Writer struct {
	bw     *bufio.Writer
	headed bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriterSize(w, 1<<16)}
}

func (w *Writer) header() {
	if !w.headed {
		w.bw.WriteString(Header)
		w.headed = true
	}
}

// Write emits one tab-separated feature line.
func (w *Writer) Write(f Feature) error {
	w.header()
	var num [20]byte
	w.bw.WriteString(f.SeqID)
	w.bw.WriteByte('\t')
	w.bw.WriteString(f.Source)
	w.bw.WriteByte('\t')
	w.bw.WriteString(f.Type)
	w.bw.WriteByte('\t')
	w.bw.Write(strconv.AppendInt(num[:0], int64(f.Start), 10))
	w.bw.WriteByte('\t')
	w.bw.Write(strconv.AppendInt(num[:0], int64(f.End), 10))
	w.bw.WriteString("\t.\t.\t.\t")
	w.bw.WriteString(f.Attrs)
	return w.bw.WriteByte('\n')
}

func (w *Writer) Flush() error {
	w.header()
	return w.bw.Flush()
}
