// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"hyperex/internal/engine"
	"hyperex/internal/primer"
)

// Compile-time check: the concrete engine satisfies the minimal contract.
var _ Extractor = (*engine.Extractor)(nil)

// slowEng finishes later records first to shake out ordering bugs.
type slowEng struct{}

func (slowEng) Extract(id string, seq []byte) engine.Report {
	time.Sleep(time.Duration(len(seq)%7) * time.Millisecond)
	return engine.Report{ID: id, Length: len(seq)}
}

func fastaOf(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, ">r%d\n%s\n", i, strings.Repeat("A", 50-i%50))
	}
	return b.String()
}

func TestRunPreservesInputOrder(t *testing.T) {
	for _, threads := range []int{1, 3, 8, 0} {
		t.Run(fmt.Sprintf("threads=%d", threads), func(t *testing.T) {
			var ids []string
			err := Run(context.Background(), Config{Threads: threads}, strings.NewReader(fastaOf(60)), slowEng{},
				func(r Result) error {
					if r.Index != len(ids) {
						return fmt.Errorf("index %d arrived at position %d", r.Index, len(ids))
					}
					ids = append(ids, r.Report.ID)
					return nil
				})
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if len(ids) != 60 {
				t.Fatalf("got %d results", len(ids))
			}
			for i, id := range ids {
				if id != fmt.Sprintf("r%d", i) {
					t.Fatalf("position %d holds %s", i, id)
				}
			}
		})
	}
}

func TestRunWithRealEngine(t *testing.T) {
	pair := primer.Pair{Forward: "ACGTACGTAC", Reverse: "GGGCCCAAAT"}
	x, err := engine.New(engine.Config{Pairs: []primer.Pair{pair}})
	if err != nil {
		t.Fatal(err)
	}
	in := ">hit\nTTACGTACGTACTTTTATTTGGGCCCTT\n>miss\nTTTTTTTTTTTTTTT\n"
	var got []engine.Outcome
	err = Run(context.Background(), Config{Threads: 2}, strings.NewReader(in), x, func(r Result) error {
		got = append(got, r.Report.Results[0].Outcome)
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(got) != 2 || got[0] != engine.OutcomeFound || got[1] != engine.OutcomeBothMissing {
		t.Fatalf("outcomes %v", got)
	}
}

func TestRunVisitErrorStops(t *testing.T) {
	stop := errors.New("sink failed")
	n := 0
	err := Run(context.Background(), Config{Threads: 4}, strings.NewReader(fastaOf(200)), slowEng{}, func(Result) error {
		n++
		if n == 3 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("want sink error, got %v", err)
	}
	if n != 3 {
		t.Fatalf("visit called %d times after failing", n)
	}
}

func TestRunScanError(t *testing.T) {
	err := Run(context.Background(), Config{Threads: 2}, strings.NewReader("ACGT\n"), slowEng{}, func(Result) error { return nil })
	if err == nil {
		t.Fatal("expected scan error")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, Config{Threads: 2}, strings.NewReader(fastaOf(10)), slowEng{}, func(Result) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
