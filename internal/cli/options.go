// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hyperex/internal/version"
)

// ErrHelp is returned by ParseArgs when help or version output was printed and
// nothing else should run.
var ErrHelp = errors.New("help requested")

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	Input string // FASTA path or "-"

	// Primer sources (exactly one kind)
	Regions    []string
	Forward    []string
	Reverse    []string
	PrimerFile string

	// Matching
	Mismatch int

	// Performance
	Threads int

	// Output
	Prefix          string
	Force           bool
	OneBased        bool
	Compress        string
	NoMatchExitCode int

	// Misc
	Quiet       bool
	LogFile     string
	MetricsFile string
	ListRegions bool
}

const usageExamples = `  # extract V3-V4 from a gzipped FASTA
  hyperex --region v3v4 16S.fa.gz

  # two regions, one mismatch allowed, custom prefix
  hyperex --region v4 --region v1v2 -m 1 -p out/sample 16S.fa

  # custom primers paired by position, read from stdin
  cat 16S.fa | hyperex -f GTGCCAGCMGCCGCGGTAA -r GGACTACHVGGGTWTCTAAT -
`

// NewCommand builds the root command. run is called with the parsed options
// once validation passed.
func NewCommand(name string, opt *Options, run func(*cobra.Command) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " [flags] FILE",
		Short: "Extract 16S rRNA hypervariable regions between primer pairs",
		Long: `Locates forward/reverse primer pairs (IUPAC codes allowed) in each FASTA record
with a bounded edit distance and writes the delimited regions as FASTA and GFF3.
FILE may be plain or gzip/xz/zstd/bzip2 compressed; use - for stdin.`,
		Example:       usageExamples,
		Version:       version.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opt.Input = args[0]
			}
			if err := opt.Validate(); err != nil {
				return err
			}
			return run(cmd)
		},
	}
	cmd.SetVersionTemplate(name + " version {{.Version}}\n")

	f := cmd.Flags()
	f.SortFlags = false
	f.StringArrayVar(&opt.Regions, "region", nil, "built-in region to extract (repeatable; see --list-regions)")
	f.StringArrayVarP(&opt.Forward, "forward-primer", "f", nil, "forward primer 5'→3' (repeatable, paired with -r by position)")
	f.StringArrayVarP(&opt.Reverse, "reverse-primer", "r", nil, "reverse primer 5'→3' (repeatable, paired with -f by position)")
	f.StringVar(&opt.PrimerFile, "primers", "", "primer set file: TSV 'name forward reverse' or YAML (.yaml/.yml)")
	f.IntVarP(&opt.Mismatch, "mismatch", "m", 0, "max edit distance per primer")
	f.StringVarP(&opt.Prefix, "prefix", "p", "hyperex_out", "output prefix for <prefix>.fa and <prefix>.gff")
	f.BoolVar(&opt.Force, "force", false, "overwrite existing outputs")
	f.BoolVar(&opt.OneBased, "one-based", false, "write 1-based GFF coordinates")
	f.StringVar(&opt.Compress, "compress", "", "compress outputs: gz | xz | zst")
	f.IntVarP(&opt.Threads, "threads", "t", 0, "worker threads (0 = all CPUs)")
	f.IntVar(&opt.NoMatchExitCode, "no-match-exit-code", 0, "exit code when no region is found in any record")
	f.BoolVarP(&opt.Quiet, "quiet", "q", false, "log warnings and errors only")
	f.StringVar(&opt.LogFile, "log-file", "", "also write the log to this file")
	f.StringVar(&opt.MetricsFile, "metrics", "", "write run metrics in Prometheus text format to this file")
	f.BoolVar(&opt.ListRegions, "list-regions", false, "list the built-in regions and exit")
	return cmd
}

// ParseArgs parses argv into Options without doing any work. Help and version
// requests are printed to stdout and reported as ErrHelp.
func ParseArgs(name string, argv []string, stdout, stderr io.Writer) (Options, error) {
	var opt Options
	ran := false
	cmd := NewCommand(name, &opt, func(*cobra.Command) error {
		ran = true
		return nil
	})
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		return opt, err
	}
	if !ran {
		return opt, ErrHelp
	}
	return opt, nil
}

// Validate checks flag combinations.
func (o *Options) Validate() error {
	if o.ListRegions {
		return nil
	}
	if o.Input == "" {
		return errors.New("an input FASTA file is required (use - for stdin)")
	}

	sources := 0
	if len(o.Regions) > 0 {
		sources++
	}
	if len(o.Forward) > 0 || len(o.Reverse) > 0 {
		sources++
	}
	if o.PrimerFile != "" {
		sources++
	}
	switch {
	case sources == 0:
		return errors.New("provide --region, -f/-r primers, or --primers")
	case sources > 1:
		return errors.New("--region, -f/-r and --primers are mutually exclusive")
	}
	if len(o.Forward) != len(o.Reverse) {
		return fmt.Errorf("got %d forward and %d reverse primers; -f and -r pair by position", len(o.Forward), len(o.Reverse))
	}

	if o.Mismatch < 0 {
		return errors.New("--mismatch must be ≥ 0")
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if o.Prefix == "" {
		return errors.New("--prefix must not be empty")
	}
	switch o.Compress {
	case "", "gz", "xz", "zst":
	default:
		return fmt.Errorf("invalid --compress %q (use gz, xz or zst)", o.Compress)
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 125 {
		return errors.New("--no-match-exit-code must be within 0..125")
	}
	return nil
}
