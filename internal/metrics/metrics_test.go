package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hyperex/internal/engine"
	"hyperex/internal/primer"
)

func sampleReport() engine.Report {
	pair := primer.Pair{Name: "v4", Label: "v4", Forward: "ACGT", Reverse: "TTTT"}
	return engine.Report{
		ID:       "r1",
		Alphabet: primer.DNA,
		Short:    true,
		Results: []engine.PairResult{
			{Pair: pair, Outcome: engine.OutcomeFound, Region: &engine.Region{Start: 10, End: 19}},
			{Pair: primer.Pair{Forward: "GG", Reverse: "CC"}, Outcome: engine.OutcomeReverseMissing},
		},
	}
}

func TestObserveReport(t *testing.T) {
	m := New()
	m.ObserveReport(sampleReport())
	m.ObserveReport(engine.Report{Alphabet: primer.Unknown, Skipped: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Records.WithLabelValues("dna")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Records.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("v4", "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("GG/CC", "reverse_missing")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.ExtractedBases))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ShortRecords))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveReport(sampleReport())
	m.ObserveRunDuration(time.Second)
	require.NoError(t, m.WriteFile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteFile(t *testing.T) {
	m := New()
	m.ObserveReport(sampleReport())
	m.ObserveRunDuration(1500 * time.Millisecond)

	path := filepath.Join(t.TempDir(), "run.prom")
	require.NoError(t, m.WriteFile(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(b)
	assert.True(t, strings.Contains(text, `hyperex_region_outcomes_total{outcome="found",region="v4"} 1`), text)
	assert.Contains(t, text, "hyperex_run_duration_seconds 1.5")
}

func TestSeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.ShortRecords.Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ShortRecords))
}
