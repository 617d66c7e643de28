package khmer

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/khmerseg/khmerseg/internal/arena"
)

// DefaultSeparator is inserted between segments when Segment is called with
// an empty separator string: U+200B, zero-width space.
const DefaultSeparator = "\u200b"

// Config toggles the optional stages of segmentation. Every field defaults
// to true in DefaultConfig.
type Config struct {
	// FrequencyCosts uses each dictionary entry's own frequency-derived
	// cost instead of a uniform DefaultCost for every dictionary hit.
	FrequencyCosts bool
	// VariantGeneration is carried on Config so callers can round-trip one
	// configuration end to end; neither the Segmenter nor LoadDictionary
	// reads it. Variants are generated only by DictionaryBuilder, as set by
	// NewDictionaryBuilder's generateVariants argument.
	VariantGeneration bool
	// RepairMode enables the decoder's degenerate-cluster recovery edge.
	RepairMode bool
	// AcronymDetection enables the acronym edge proposal.
	AcronymDetection bool
	// UnknownMerging coalesces consecutive unrecognized segments after
	// the rule engine runs.
	UnknownMerging bool
	// Normalization runs the two-phase text normalizer before decoding.
	Normalization bool
}

// DefaultConfig returns a Config with every feature enabled.
func DefaultConfig() Config {
	return Config{
		FrequencyCosts:    true,
		VariantGeneration: true,
		RepairMode:        true,
		AcronymDetection:  true,
		UnknownMerging:    true,
		Normalization:     true,
	}
}

// Segmenter turns Khmer-script text into word-like segments. A Segmenter is
// immutable after construction and safe for concurrent Segment calls: every
// call allocates its own scratch arena.
type Segmenter struct {
	dict *Dictionary
	cfg  Config
	log  zerolog.Logger
}

// New constructs a Segmenter backed by dict (nil is accepted: segmentation
// then falls back to purely structural classification, with no dictionary
// or frequency costs). Diagnostic logging is silent by default; see
// NewWithLogger.
func New(dict *Dictionary, cfg Config) *Segmenter {
	return NewWithLogger(dict, cfg, zerolog.Nop())
}

// NewWithLogger is New with an explicit diagnostic logger, used to observe
// how often the decoder falls back to SegmentationUncovered.
func NewWithLogger(dict *Dictionary, cfg Config, logger zerolog.Logger) *Segmenter {
	return &Segmenter{dict: dict, cfg: cfg, log: logger}
}

// Segment returns text split into segments joined by separator. An empty
// separator defaults to U+200B (zero-width space).
func (s *Segmenter) Segment(text, separator string) string {
	if separator == "" {
		separator = DefaultSeparator
	}
	return strings.Join(s.SegmentSlice(text), separator)
}

// SegmentSlice returns text's segments without joining them, for callers
// that want tokens rather than a delimited string.
func (s *Segmenter) SegmentSlice(text string) []string {
	normalized := text
	if s.cfg.Normalization {
		normalized = Normalize(text)
	}

	segs, covered := decode(normalized, s.dict, decodeConfig{
		RepairMode:       s.cfg.RepairMode,
		AcronymDetection: s.cfg.AcronymDetection,
		FrequencyCosts:   s.cfg.FrequencyCosts,
	})
	if !covered {
		s.log.Debug().Str("text", normalized).Msg("segmentation uncovered, falling back to verbatim text")
		return []string{normalized}
	}

	ar := arena.New()
	segs = ApplyRules(segs, ar)

	if s.cfg.UnknownMerging {
		segs = MergeUnknownSegments(segs, s.dict)
	}

	return segs
}
