// internal/engine/result.go
package engine

import (
	"hyperex/internal/myers"
	"hyperex/internal/primer"
)

// Outcome is the terminal state of one (record, primer pair) search.
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeReverseMissing
	OutcomeForwardMissing
	OutcomeBothMissing
	OutcomeInverted // reverse site ends before the forward site starts
	OutcomeUnknownAlphabet
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeReverseMissing:
		return "reverse_missing"
	case OutcomeForwardMissing:
		return "forward_missing"
	case OutcomeBothMissing:
		return "both_missing"
	case OutcomeInverted:
		return "inverted"
	case OutcomeUnknownAlphabet:
		return "unknown_alphabet"
	default:
		return "invalid"
	}
}

// Region is one extracted hypervariable region. Start and End are 0-based and
// inclusive; Seq aliases the record's sequence and must not be modified.
type Region struct {
	Label   string
	Start   int
	End     int
	Forward string
	Reverse string
	FwdDist int
	RevDist int
	Seq     []byte
}

// Len is the number of bases in the region.
func (r Region) Len() int { return r.End - r.Start + 1 }

// PairResult is the outcome of one primer pair on one record.
type PairResult struct {
	Pair    primer.Pair
	Outcome Outcome
	Fwd     *myers.Match // nil when the forward primer was not found
	Rev     *myers.Match // reverse-complement site on the forward strand
	Region  *Region      // set only for OutcomeFound
}

// Report collects everything Extract learned about one record.
type Report struct {
	ID       string
	Length   int
	Alphabet primer.Alphabet
	Short    bool // at or below Config.MinReliableLength
	Skipped  bool // alphabet unresolved; no pair was searched
	Results  []PairResult
}

// Regions returns the regions found, in pair order.
func (r Report) Regions() []Region {
	var out []Region
	for _, pr := range r.Results {
		if pr.Region != nil {
			out = append(out, *pr.Region)
		}
	}
	return out
}
