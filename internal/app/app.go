// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"hyperex/internal/cli"
	"hyperex/internal/cmdutil"
	"hyperex/internal/common"
	"hyperex/internal/engine"
	"hyperex/internal/fasta"
	"hyperex/internal/metrics"
	"hyperex/internal/pipeline"
	"hyperex/internal/primer"
	"hyperex/internal/version"
	"hyperex/internal/writers"
)

const name = "hyperex"

// Exit codes
const (
	exitOK        = 0
	exitUsage     = 2
	exitRuntime   = 3
	exitCancelled = 130
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	opts, err := cli.ParseArgs(name, argv, stdout, stderr)
	if errors.Is(err, cli.ErrHelp) {
		return exitOK
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\nRun '%s --help' for usage.\n", err, name)
		return exitUsage
	}

	cat := primer.NewCatalog()
	if opts.ListRegions {
		return listRegions(cat, stdout, stderr)
	}

	pairs, err := resolvePairs(cat, opts)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	var logFile *os.File
	if opts.LogFile != "" {
		logFile, err = os.Create(opts.LogFile)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return exitRuntime
		}
		defer func() { _ = logFile.Close() }()
	}
	var extra io.Writer
	if logFile != nil {
		extra = logFile
	}
	log := cmdutil.NewLogger(stderr, extra, opts.Quiet, uuid.NewString())

	if uniq := common.UniquePairs(pairs); len(uniq) != len(pairs) {
		log.Warn("duplicate primer pairs ignored", "given", len(pairs), "kept", len(uniq))
		pairs = uniq
	}

	return execute(parent, opts, pairs, log)
}

func execute(parent context.Context, opts cli.Options, pairs []primer.Pair, log *slog.Logger) int {
	started := time.Now()
	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	log.Info("starting", "version", version.Version, "input", opts.Input, "pairs", len(pairs),
		"mismatch", opts.Mismatch, "threads", threads)
	for _, p := range pairs {
		log.Debug("primer pair", "region", p.DisplayName(), "forward", p.Forward, "reverse", p.Reverse)
	}
	if shortest := shortestPrimer(pairs); opts.Mismatch >= shortest {
		log.Warn("mismatch is not below the shortest primer length; primers will match anywhere",
			"mismatch", opts.Mismatch, "shortest_primer", shortest)
	}

	ext, err := engine.New(engine.Config{Mismatch: opts.Mismatch, Pairs: pairs})
	if err != nil {
		log.Error("setup failed", "err", err)
		return exitRuntime
	}

	in, err := fasta.Open(opts.Input)
	if err != nil {
		log.Error("cannot read input", "err", err)
		return exitRuntime
	}
	defer func() { _ = in.Close() }()

	paths, err := writers.OutputPaths(opts.Prefix, opts.Compress)
	if err != nil {
		log.Error("setup failed", "err", err)
		return exitUsage
	}
	sinks, err := writers.Create(paths, opts.Force)
	if err != nil {
		log.Error("cannot create outputs", "err", err)
		return exitRuntime
	}

	var m *metrics.Metrics
	if opts.MetricsFile != "" {
		m = metrics.New()
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	inCh, done := writers.StartRegionWriter(sinks.FASTA, sinks.GFF,
		writers.Options{OneBased: opts.OneBased, Logger: log, Metrics: m}, threads*4)

	_, perr := cmdutil.RunStream(ctx, pipeline.Config{Threads: threads}, in, ext,
		func(rep engine.Report) error {
			select {
			case inCh <- rep:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	close(inCh)
	sum := <-done
	werr := sinks.Close()

	elapsed := time.Since(started)
	m.ObserveRunDuration(elapsed)
	if opts.MetricsFile != "" {
		if err := m.WriteFile(opts.MetricsFile); err != nil {
			log.Error("cannot write metrics", "path", opts.MetricsFile, "err", err)
		}
	}

	switch {
	case perr != nil && errors.Is(perr, context.Canceled):
		log.Warn("cancelled", "records", sum.Records)
		return exitCancelled
	case perr != nil:
		log.Error("run failed", "err", perr)
		return exitRuntime
	case sum.Err != nil:
		return writeFailure(log, "write failed", sum.Err)
	case werr != nil:
		return writeFailure(log, "closing outputs failed", werr)
	}

	log.Info("done",
		"records", humanize.Comma(int64(sum.Records)),
		"regions", humanize.Comma(int64(sum.Regions)),
		"bases", humanize.SIWithDigits(float64(sum.Bases), 1, "bp"),
		"skipped", sum.Skipped,
		"fasta", paths.FASTA,
		"gff", paths.GFF,
		"elapsed", elapsed.Round(time.Millisecond).String())
	if sum.Records == 0 {
		log.Warn("input contained no records", "input", opts.Input)
	}
	if sum.Regions == 0 {
		log.Warn("no region was found in any record")
		return opts.NoMatchExitCode
	}
	return exitOK
}

// writeFailure maps an output error to an exit code. An output that is a FIFO
// closed early by its reader (e.g. `head`) ends the run cleanly.
func writeFailure(log *slog.Logger, msg string, err error) int {
	if writers.IsBrokenPipe(err) {
		log.Warn("output closed by reader; remaining regions discarded", "err", err)
		return exitOK
	}
	log.Error(msg, "err", err)
	return exitRuntime
}

func resolvePairs(cat *primer.Catalog, opts cli.Options) ([]primer.Pair, error) {
	switch {
	case len(opts.Regions) > 0:
		return primer.RegionPairs(cat, common.UniqueLower(opts.Regions))
	case opts.PrimerFile != "":
		return primer.LoadFile(opts.PrimerFile, cat)
	default:
		return primer.InlinePairs(cat, opts.Forward, opts.Reverse)
	}
}

func shortestPrimer(pairs []primer.Pair) int {
	n := 0
	for _, p := range pairs {
		for _, l := range []int{len(p.Forward), len(p.Reverse)} {
			if n == 0 || l < n {
				n = l
			}
		}
	}
	return n
}

func listRegions(cat *primer.Catalog, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	tw := tabwriter.NewWriter(outw, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "REGION\tFORWARD\t\tREVERSE\t")
	for _, r := range cat.Regions() {
		fn, rn, _ := cat.PrimerNames(r)
		fs, _ := cat.Primer(fn)
		rs, _ := cat.Primer(rn)
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r, fn, fs, rn, rs)
	}
	_ = tw.Flush()
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return exitOK
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitRuntime
	}
	return exitOK
}
