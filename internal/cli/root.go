// Package cli wires the khmerseg command-line tool: flag parsing, dictionary
// loading, and the worker-pool batch runner.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/khmerseg/khmerseg/pkg/khmer"
)

// options holds every flag the root command accepts.
type options struct {
	dictPath string
	sep      string
	input    string
	output   string
	limit    int
	threads  int

	noFrequencyCosts   bool
	noVariantGen       bool
	noRepair           bool
	noAcronymDetection bool
	noUnknownMerging   bool
	noNormalization    bool
}

// NewRootCommand builds the khmerseg Cobra command tree: a bare root plus
// the segment subcommand that does the actual work.
func NewRootCommand(log zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "khmerseg",
		Short: "Khmer word segmentation toolkit",
	}
	root.AddCommand(newSegmentCommand(log))
	return root
}

// newSegmentCommand builds the "segment" subcommand: dictionary load,
// input/output wiring, and the worker pool.
func newSegmentCommand(log zerolog.Logger) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "segment",
		Short:         "Segment lines of Khmer text into word-like tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSegment(cmd, opts, log)
		},
	}

	flags := cmd.Flags()
	// --kdic is a historical alias for --dict.
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "kdic" {
			name = "dict"
		}
		return pflag.NormalizedName(name)
	})
	flags.StringVarP(&opts.dictPath, "dict", "d", "", "path to a KDIC binary dictionary file")
	flags.StringVarP(&opts.sep, "sep", "s", "", "separator inserted between segments (default U+200B)")
	flags.StringVarP(&opts.input, "input", "i", "", "input file, one line of text per record (default stdin)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file of newline-delimited JSON records (default stdout)")
	flags.IntVarP(&opts.limit, "limit", "l", 0, "limit the number of lines processed (0 = unlimited)")
	flags.IntVarP(&opts.threads, "threads", "t", 0, "number of worker goroutines (0 = number of CPUs)")

	flags.BoolVar(&opts.noFrequencyCosts, "no-freq", false, "disable dictionary frequency costs in favor of a uniform cost")
	flags.BoolVar(&opts.noVariantGen, "no-variants", false, "disable dictionary variant generation metadata")
	flags.BoolVar(&opts.noRepair, "no-repair", false, "disable the degenerate-cluster repair edge")
	flags.BoolVar(&opts.noAcronymDetection, "no-acronym", false, "disable acronym-run detection")
	flags.BoolVar(&opts.noUnknownMerging, "no-merging", false, "disable post-decode merging of unknown segments")
	flags.BoolVar(&opts.noNormalization, "no-norm", false, "disable Unicode normalization before segmenting")

	return cmd
}

// OutputRecord is one line of the newline-delimited JSON output.
type OutputRecord struct {
	ID       int      `json:"id"`
	Input    string   `json:"input"`
	Segments []string `json:"segments"`
	Joined   string   `json:"joined"`
}

func (o *options) config() khmer.Config {
	cfg := khmer.DefaultConfig()
	cfg.FrequencyCosts = !o.noFrequencyCosts
	cfg.VariantGeneration = !o.noVariantGen
	cfg.RepairMode = !o.noRepair
	cfg.AcronymDetection = !o.noAcronymDetection
	cfg.UnknownMerging = !o.noUnknownMerging
	cfg.Normalization = !o.noNormalization
	return cfg
}

func runSegment(cmd *cobra.Command, opts *options, log zerolog.Logger) error {
	var dict *khmer.Dictionary
	if opts.dictPath != "" {
		start := time.Now()
		d, err := khmer.LoadDictionary(opts.dictPath)
		if err != nil {
			return fmt.Errorf("loading dictionary %s: %w", opts.dictPath, err)
		}
		dict = d
		log.Info().Str("path", opts.dictPath).Dur("elapsed", time.Since(start)).Int("max_word_len", dict.MaxWordLength()).Msg("dictionary loaded")
	} else {
		log.Warn().Msg("no --dict given, segmenting with structural classification only")
	}

	in := cmd.InOrStdin()
	if opts.input != "" {
		f, err := os.Open(opts.input)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	out := cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}

	lines, err := readLines(in, opts.limit)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	numWorkers := opts.threads
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	start := time.Now()
	results := runWorkerPool(lines, numWorkers, dict, opts.config(), opts.sep, log)
	log.Info().Int("lines", len(lines)).Int("workers", numWorkers).Dur("elapsed", time.Since(start)).Msg("segmentation complete")

	writer := bufio.NewWriter(out)
	for _, line := range results {
		writer.WriteString(line)
		writer.WriteByte('\n')
	}
	return writer.Flush()
}

// readLines scans at most limit non-empty lines (0 = unlimited) and strips a
// leading UTF-8 byte-order mark from the very first line, matching how batch
// input historically arrived from Windows-authored corpora.
func readLines(r io.Reader, limit int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)

	var lines []string
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
		if limit > 0 && len(lines) >= limit {
			break
		}
	}
	return lines, scanner.Err()
}

// effectiveSeparator mirrors Segmenter.Segment's empty-separator default so
// the CLI's joined output matches what library callers would see.
func effectiveSeparator(sep string) string {
	if sep == "" {
		return khmer.DefaultSeparator
	}
	return sep
}

// runWorkerPool segments lines across numWorkers goroutines, each with its
// own Segmenter, and returns one JSON record per input line in original
// order.
func runWorkerPool(lines []string, numWorkers int, dict *khmer.Dictionary, cfg khmer.Config, sep string, log zerolog.Logger) []string {
	results := make([]string, len(lines))
	jobs := make(chan int, len(lines))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seg := khmer.NewWithLogger(dict, cfg, log)
			for i := range jobs {
				segments := seg.SegmentSlice(lines[i])
				record := OutputRecord{
					ID:       i,
					Input:    lines[i],
					Segments: segments,
					Joined:   strings.Join(segments, effectiveSeparator(sep)),
				}
				b, err := json.Marshal(record)
				if err != nil {
					log.Error().Err(err).Int("line", i).Msg("failed to marshal record")
					continue
				}
				results[i] = string(b)
			}
		}()
	}

	for i := range lines {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
