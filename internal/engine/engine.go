// internal/engine/engine.go
package engine

import (
	"fmt"

	"hyperex/internal/myers"
	"hyperex/internal/primer"
)

// DefaultMinReliableLength is the record length at or below which some regions
// may be out of reach (a full 16S gene is ~1500 bp).
const DefaultMinReliableLength = 1500

// Config holds extraction parameters.
type Config struct {
	Mismatch          int // max edit distance per primer
	Pairs             []primer.Pair
	MinReliableLength int // 0 = DefaultMinReliableLength; <0 disables the check
}

// compiled holds the matchers of one pair. The reverse primer is searched as
// its reverse complement, which depends on the record alphabet.
type compiled struct {
	pair primer.Pair
	fwd  *myers.Matcher
	rev  map[primer.Alphabet]*myers.Matcher
}

// Extractor finds regions for a fixed set of primer pairs. It is read-only
// after New and safe for concurrent use.
type Extractor struct {
	cfg   Config
	pairs []compiled
}

// New compiles every primer once. A primer the matcher cannot hold is a setup
// error.
func New(c Config) (*Extractor, error) {
	if c.Mismatch < 0 {
		return nil, fmt.Errorf("mismatch must be >= 0, got %d", c.Mismatch)
	}
	if c.MinReliableLength == 0 {
		c.MinReliableLength = DefaultMinReliableLength
	}
	x := &Extractor{cfg: c, pairs: make([]compiled, 0, len(c.Pairs))}
	for _, p := range c.Pairs {
		fwd, err := myers.New([]byte(p.Forward), primer.Equivalent)
		if err != nil {
			return nil, fmt.Errorf("forward primer %s: %w", p.Forward, err)
		}
		cp := compiled{pair: p, fwd: fwd, rev: make(map[primer.Alphabet]*myers.Matcher, 2)}
		for _, a := range []primer.Alphabet{primer.DNA, primer.RNA} {
			rev, err := primer.Recode(p.Reverse, a)
			if err != nil {
				return nil, err
			}
			rc, err := primer.ReverseComplement(rev, a)
			if err != nil {
				return nil, err
			}
			m, err := myers.New([]byte(rc), primer.Equivalent)
			if err != nil {
				return nil, fmt.Errorf("reverse primer %s: %w", p.Reverse, err)
			}
			cp.rev[a] = m
		}
		x.pairs = append(x.pairs, cp)
	}
	return x, nil
}

// Pairs returns the configured primer pairs.
func (x *Extractor) Pairs() []primer.Pair { return x.cfg.Pairs }

// Extract searches every pair in seq. A record whose alphabet cannot be
// resolved is skipped: its report carries one OutcomeUnknownAlphabet result
// per pair and no pair is searched.
func (x *Extractor) Extract(id string, seq []byte) Report {
	rep := Report{
		ID:       id,
		Length:   len(seq),
		Alphabet: primer.Classify(seq),
		Results:  make([]PairResult, 0, len(x.pairs)),
	}
	rep.Short = x.cfg.MinReliableLength > 0 && len(seq) <= x.cfg.MinReliableLength

	if rep.Alphabet == primer.Unknown {
		rep.Skipped = true
		for _, cp := range x.pairs {
			rep.Results = append(rep.Results, PairResult{Pair: cp.pair, Outcome: OutcomeUnknownAlphabet})
		}
		return rep
	}
	for _, cp := range x.pairs {
		rep.Results = append(rep.Results, x.extractPair(cp, seq, rep.Alphabet))
	}
	return rep
}

func (x *Extractor) extractPair(cp compiled, seq []byte, a primer.Alphabet) PairResult {
	res := PairResult{Pair: cp.pair}
	k := x.cfg.Mismatch

	if m, ok := cp.fwd.Find(seq, k); ok {
		res.Fwd = &m
	}
	if m, ok := cp.rev[a].Find(seq, k); ok {
		res.Rev = &m
	}

	switch {
	case res.Fwd == nil && res.Rev == nil:
		res.Outcome = OutcomeBothMissing
	case res.Rev == nil:
		res.Outcome = OutcomeReverseMissing
	case res.Fwd == nil:
		res.Outcome = OutcomeForwardMissing
	case res.Rev.End < res.Fwd.Start:
		res.Outcome = OutcomeInverted
	default:
		res.Outcome = OutcomeFound
		res.Region = &Region{
			Label:   cp.pair.Label,
			Start:   res.Fwd.Start,
			End:     res.Rev.End,
			Forward: cp.pair.Forward,
			Reverse: cp.pair.Reverse,
			FwdDist: res.Fwd.Dist,
			RevDist: res.Rev.Dist,
			Seq:     seq[res.Fwd.Start : res.Rev.End+1],
		}
	}
	return res
}
