package gff

import (
	"bytes"
	"strings"
	"testing"
)

func TestWrite(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	if err := w.Write(Feature{SeqID: "chr1", Source: "hyperex", Type: "region", Start: 4, End: 10, Attrs: "Note=Hypervariable region v4"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(Feature{SeqID: "chr2", Source: "hyperex", Type: "region", Start: 0, End: 3, Attrs: "Note=Hypervariable region"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "##gff-version 3\n" +
		"chr1\thyperex\tregion\t4\t10\t.\t.\t.\tNote=Hypervariable region v4\n" +
		"chr2\thyperex\tregion\t0\t3\t.\t.\t.\tNote=Hypervariable region\n"
	if got := buf.String(); got != want {
		t.Fatalf("mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestHeaderOnceEvenWhenEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	_ = w.Flush()
	_ = w.Flush()
	if buf.String() != Header {
		t.Fatalf("got %q", buf.String())
	}

	buf.Reset()
	w = NewWriter(buf)
	for i := 0; i < 3; i++ {
		_ = w.Write(Feature{SeqID: "s", Start: i, End: i})
	}
	_ = w.Flush()
	if n := strings.Count(buf.String(), "##gff-version"); n != 1 {
		t.Fatalf("header written %d times", n)
	}
}
