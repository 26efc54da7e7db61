// internal/writers/regions.go
package writers

import (
	"io"
	"log/slog"
	"strings"

	"hyperex/internal/engine"
	"hyperex/internal/fasta"
	"hyperex/internal/gff"
	"hyperex/internal/metrics"
)

const (
	gffSource = "hyperex"
	gffType   = "region"
	gffNote   = "Note=Hypervariable region"
)

// Options controls presentation of extracted regions.
type Options struct {
	OneBased bool             // shift GFF coordinates by one
	Logger   *slog.Logger     // nil discards log lines
	Metrics  *metrics.Metrics // nil disables counting
}

// Summary is emitted once after the input channel closes.
type Summary struct {
	Records int
	Skipped int // unknown alphabet
	Short   int
	Regions int
	Missing int // pair outcomes other than found
	Bases   int64
	Err     error // first write error, if any
}

// FASTAHeader renders the description that follows the record ID:
// "region=<label> forward=<fwd> reverse=<rev>", without the region part when
// the label is empty.
func FASTAHeader(r engine.Region) string {
	s := "forward=" + r.Forward + " reverse=" + r.Reverse
	if r.Label != "" {
		s = "region=" + r.Label + " " + s
	}
	return s
}

// Feature converts a region to its GFF3 line. Native coordinates are 0-based
// start and inclusive end.
func Feature(id string, r engine.Region, oneBased bool) gff.Feature {
	f := gff.Feature{
		SeqID:  id,
		Source: gffSource,
		Type:   gffType,
		Start:  r.Start,
		End:    r.End,
		Attrs:  gffNote,
	}
	if oneBased {
		f.Start++
		f.End++
	}
	if r.Label != "" {
		f.Attrs += " " + r.Label
	}
	return f
}

// StartRegionWriter spins up the single writer goroutine for both outputs.
// Reports must arrive in the order they should be written. After a write
// error the goroutine keeps draining its input so senders never block.
func StartRegionWriter(faOut, gffOut io.Writer, opt Options, bufSize int) (chan<- engine.Report, <-chan Summary) {
	if bufSize <= 0 {
		bufSize = 64
	}
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	in := make(chan engine.Report, bufSize)
	done := make(chan Summary, 1)

	go func() {
		fw := fasta.NewWriter(faOut)
		gw := gff.NewWriter(gffOut)
		var sum Summary

		for rep := range in {
			sum.Records++
			opt.Metrics.ObserveReport(rep)
			logReport(log, rep, &sum)
			if sum.Err != nil {
				continue
			}
			for _, r := range rep.Regions() {
				if err := fw.Write(fasta.Record{ID: rep.ID, Desc: FASTAHeader(r), Seq: r.Seq}); err != nil {
					sum.Err = err
					break
				}
				if err := gw.Write(Feature(rep.ID, r, opt.OneBased)); err != nil {
					sum.Err = err
					break
				}
				sum.Regions++
				sum.Bases += int64(r.Len())
			}
		}
		if err := fw.Flush(); err != nil && sum.Err == nil {
			sum.Err = err
		}
		if err := gw.Flush(); err != nil && sum.Err == nil {
			sum.Err = err
		}
		done <- sum
		close(done)
	}()

	return in, done
}

func logReport(log *slog.Logger, rep engine.Report, sum *Summary) {
	rl := log.With("id", rep.ID)
	if rep.Skipped {
		sum.Skipped++
		names := make([]string, 0, len(rep.Results))
		for _, res := range rep.Results {
			names = append(names, res.Pair.DisplayName())
		}
		rl.Error("sequence type is not recognized as DNA or RNA; record skipped",
			"regions", strings.Join(names, ","))
		return
	}
	rl.Debug("sequence type", "alphabet", rep.Alphabet.String(), "length", rep.Length)
	if rep.Short {
		sum.Short++
		rl.Warn("sequence length is at most 1500 bp; some regions may not be found", "length", rep.Length)
	}
	for _, res := range rep.Results {
		region := res.Pair.DisplayName()
		switch res.Outcome {
		case engine.OutcomeFound:
			rl.Debug("region extracted", "region", region, "start", res.Region.Start, "end", res.Region.End,
				"fwd_dist", res.Region.FwdDist, "rev_dist", res.Region.RevDist)
			continue
		case engine.OutcomeReverseMissing:
			rl.Warn("region not found: primer not found", "region", region, "primer", res.Pair.Reverse)
		case engine.OutcomeForwardMissing:
			rl.Warn("region not found: primer not found", "region", region, "primer", res.Pair.Forward)
		case engine.OutcomeBothMissing:
			rl.Warn("region not found: primers not found", "region", region,
				"forward", res.Pair.Forward, "reverse", res.Pair.Reverse)
		case engine.OutcomeInverted:
			rl.Warn("region not found: reverse primer binds before forward primer", "region", region,
				"forward_start", res.Fwd.Start, "reverse_end", res.Rev.End)
		}
		sum.Missing++
	}
}
