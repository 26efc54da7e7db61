// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hyperex/internal/app"
	"hyperex/internal/primer"
)

func write(t *testing.T, fn, data string) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func read(t *testing.T, fn string) string {
	t.Helper()
	b, err := os.ReadFile(fn)
	if err != nil {
		t.Fatalf("read %s: %v", fn, err)
	}
	return string(b)
}

// literal replaces ambiguity codes with the first base they stand for.
func literal(s string) string {
	b := []byte(s)
	for i, c := range b {
		b[i] = primer.Expand(c)[0]
	}
	return string(b)
}

// amplicon builds fwd + filler + revcomp(rev) with concrete bases.
func amplicon(t *testing.T, region string, filler int) string {
	t.Helper()
	p, ok := primer.NewCatalog().Region(region)
	if !ok {
		t.Fatalf("no region %s", region)
	}
	rc, err := primer.ReverseComplement(p.Reverse, primer.DNA)
	if err != nil {
		t.Fatal(err)
	}
	return literal(p.Forward) + strings.Repeat("T", filler) + literal(rc)
}

func run(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(args, &out, &errBuf)
	return code, errBuf.String()
}

func TestEndToEndV1V9(t *testing.T) {
	dir := t.TempDir()
	seq := amplicon(t, "v1v9", 1600)
	fa := write(t, filepath.Join(dir, "in.fa"), ">rec1 full gene\n"+seq[:700]+"\n"+seq[700:]+"\n")
	prefix := filepath.Join(dir, "out")

	code, logs := run(t, "--region", "v1v9", "-p", prefix, fa)
	if code != 0 {
		t.Fatalf("exit %d\n%s", code, logs)
	}
	E := len(seq) - 1
	wantFa := ">rec1 region=v1v9 forward=AGAGTTTGATCMTGGCTCAG reverse=TACGGYTACCTTGTTAYGACTT\n" + seq + "\n"
	if got := read(t, prefix+".fa"); got != wantFa {
		t.Errorf("fasta:\n%s\nwant:\n%s", got, wantFa)
	}
	wantGff := fmt.Sprintf("##gff-version 3\nrec1\thyperex\tregion\t0\t%d\t.\t.\t.\tNote=Hypervariable region v1v9\n", E)
	if got := read(t, prefix+".gff"); got != wantGff {
		t.Errorf("gff:\n%q\nwant:\n%q", got, wantGff)
	}
	if !strings.Contains(logs, "msg=done") {
		t.Errorf("missing summary log:\n%s", logs)
	}
}

func TestRerunRefusedThenForcedIsIdentical(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "in.fa"),
		">a\n"+amplicon(t, "v4", 150)+"\n>b\n"+amplicon(t, "v3v4", 300)+"\n")
	prefix := filepath.Join(dir, "o")
	args := []string{"--region", "v4", "--region", "v3v4", "-p", prefix, fa}

	if code, logs := run(t, args...); code != 0 {
		t.Fatalf("first run exit %d\n%s", code, logs)
	}
	firstFa, firstGff := read(t, prefix+".fa"), read(t, prefix+".gff")

	code, logs := run(t, args...)
	if code != 3 || !strings.Contains(logs, "output file exists") {
		t.Fatalf("second run without --force: exit %d\n%s", code, logs)
	}
	if read(t, prefix+".fa") != firstFa {
		t.Fatal("refused run modified the output")
	}

	if code, logs := run(t, append([]string{"--force"}, args...)...); code != 0 {
		t.Fatalf("forced run exit %d\n%s", code, logs)
	}
	if read(t, prefix+".fa") != firstFa || read(t, prefix+".gff") != firstGff {
		t.Fatal("forced rerun is not byte-identical")
	}
	if n := strings.Count(firstGff, "##gff-version"); n != 1 {
		t.Fatalf("gff header count %d", n)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&b, ">r%d\n%s%s\n", i, strings.Repeat("C", i%13), amplicon(t, "v4", 40+i%17))
	}
	fa := write(t, filepath.Join(dir, "in.fa"), b.String())

	outputs := func(threads int) string {
		prefix := filepath.Join(dir, fmt.Sprintf("t%d", threads))
		if code, logs := run(t, "--region", "v4", "-t", fmt.Sprint(threads), "-q", "-p", prefix, fa); code != 0 {
			t.Fatalf("exit %d\n%s", code, logs)
		}
		return read(t, prefix+".fa") + read(t, prefix+".gff")
	}
	serial := outputs(1)
	if parallel := outputs(8); serial != parallel {
		t.Fatal("parallel output differs from serial")
	}
}

func TestUnknownAlphabetRecordIsSkipped(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "in.fa"),
		">weird\nACGTXXXX"+amplicon(t, "v4", 50)+"\n>good\n"+amplicon(t, "v4", 50)+"\n")
	prefix := filepath.Join(dir, "o")

	code, logs := run(t, "--region", "v4", "-p", prefix, fa)
	if code != 0 {
		t.Fatalf("exit %d\n%s", code, logs)
	}
	if !strings.Contains(logs, "level=ERROR") || !strings.Contains(logs, "id=weird") {
		t.Errorf("skip not logged:\n%s", logs)
	}
	got := read(t, prefix+".fa")
	if strings.Contains(got, ">weird") || !strings.Contains(got, ">good region=v4") {
		t.Errorf("fasta:\n%s", got)
	}
}

func TestNoMatchExitCodeAndWarnings(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "in.fa"), ">nothing\n"+strings.Repeat("ACCA", 100)+"\n")
	prefix := filepath.Join(dir, "o")

	code, logs := run(t, "--region", "v4", "-p", prefix, fa)
	if code != 0 {
		t.Fatalf("default exit %d", code)
	}
	if !strings.Contains(logs, "primers not found") || !strings.Contains(logs, "at most 1500 bp") {
		t.Errorf("missing warnings:\n%s", logs)
	}
	if read(t, prefix+".gff") != "##gff-version 3\n" {
		t.Error("empty run still writes the gff header")
	}

	code, _ = run(t, "--region", "v4", "--force", "--no-match-exit-code", "1", "-p", prefix, fa)
	if code != 1 {
		t.Fatalf("want exit 1, got %d", code)
	}
}

func TestQuietHidesInfo(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "in.fa"), ">short\n"+amplicon(t, "v4", 10)+"\n")
	_, logs := run(t, "--region", "v4", "-q", "-p", filepath.Join(dir, "o"), fa)
	if strings.Contains(logs, "level=INFO") || strings.Contains(logs, "level=DEBUG") {
		t.Errorf("quiet run logged below WARN:\n%s", logs)
	}
	if !strings.Contains(logs, "level=WARN") {
		t.Errorf("short-record warning missing:\n%s", logs)
	}
}

func TestCompressedInAndOut(t *testing.T) {
	dir := t.TempDir()
	gzPath := filepath.Join(dir, "in.fa.gz")
	fh, err := os.Create(gzPath)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(fh)
	_, _ = io.WriteString(gw, ">z\n"+amplicon(t, "v4", 60)+"\n")
	_ = gw.Close()
	_ = fh.Close()

	prefix := filepath.Join(dir, "o")
	if code, logs := run(t, "--region", "v4", "--compress", "gz", "--one-based", "-p", prefix, gzPath); code != 0 {
		t.Fatalf("exit %d\n%s", code, logs)
	}
	f, err := os.Open(prefix + ".gff.gz")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	gr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(gr)
	if !strings.Contains(string(b), "z\thyperex\tregion\t1\t") {
		t.Errorf("one-based gff:\n%s", b)
	}
}

func TestInlinePrimersAndPrimerFile(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "in.fa"), ">s\n"+amplicon(t, "v3v4", 80)+"\n")

	code, logs := run(t, "-f", "CCTACGGGNGGCWGCAG", "-r", "GACTACHVGGGTATCTAATCC", "-p", filepath.Join(dir, "inline"), fa)
	if code != 0 {
		t.Fatalf("inline exit %d\n%s", code, logs)
	}
	if !strings.Contains(read(t, filepath.Join(dir, "inline.fa")), "region=v3v4") {
		t.Error("inline primers should resolve the catalog label")
	}

	pf := write(t, filepath.Join(dir, "p.yaml"), "pairs:\n  - name: mine\n    forward: CCTACGGGNGGCWGCAG\n    reverse: GACTACHVGGGTATCTAATCC\n")
	if code, logs := run(t, "--primers", pf, "-p", filepath.Join(dir, "file"), fa); code != 0 {
		t.Fatalf("primer file exit %d\n%s", code, logs)
	}
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "in.fa"), ">s\nACGT\n")
	for name, args := range map[string][]string{
		"unknown region": {"--region", "v2v3", fa},
		"bad primer":     {"-f", "ACGZ", "-r", "ACGT", fa},
		"no primers":     {fa},
	} {
		if code, _ := run(t, args...); code != 2 {
			t.Errorf("%s: exit %d, want 2", name, code)
		}
	}
	if code, _ := run(t, "--region", "v4", "-p", filepath.Join(dir, "o"), filepath.Join(dir, "missing.fa")); code != 3 {
		t.Errorf("missing input: exit %d, want 3", code)
	}
}

func TestListRegions(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := app.Run([]string{"--list-regions"}, &out, &errBuf); code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"v1v9", "27F", "1492Rmod", "TACGGYTACCTTGTTAYGACTT"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %s in:\n%s", want, out.String())
		}
	}
}

func TestLogAndMetricsFiles(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "in.fa"), ">m\n"+amplicon(t, "v4", 30)+"\n")
	logPath := filepath.Join(dir, "run.log")
	promPath := filepath.Join(dir, "run.prom")

	if code, logs := run(t, "--region", "v4", "--log-file", logPath, "--metrics", promPath, "-p", filepath.Join(dir, "o"), fa); code != 0 {
		t.Fatalf("exit %d\n%s", code, logs)
	}
	if lg := read(t, logPath); !strings.Contains(lg, "msg=done") || !strings.Contains(lg, "run=") {
		t.Errorf("log file:\n%s", lg)
	}
	if prom := read(t, promPath); !strings.Contains(prom, `hyperex_region_outcomes_total{outcome="found",region="v4"} 1`) {
		t.Errorf("metrics:\n%s", prom)
	}
}

func TestCancelledRunExits130(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "in.fa"), ">c\n"+amplicon(t, "v4", 30)+"\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := app.RunContext(ctx, []string{"--region", "v4", "-p", filepath.Join(dir, "o"), fa}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
