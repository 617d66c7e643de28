package khmer

import (
	"unicode/utf8"

	"github.com/khmerseg/khmerseg/internal/arena"
)

// ruleAction is what a matched rule does to the segment list.
type ruleAction int

const (
	actKeep ruleAction = iota
	actMergePrev
	actMergeNext
)

// segRule is one row of the fixed rule table: a compiled trigger plus the
// contextual check and action the specification pairs with it. Regex
// triggers are compiled once at package init from the same patterns the
// specification's rule table names, rather than hand-rolled branch logic,
// so the fixed rule set stays a data table instead of ad-hoc predicates.
type segRule struct {
	trigger func(seg string) bool
	check   func(segments []string, i int) bool
	action  ruleAction
}

// Khmer codepoints the rule table and its tests refer to by name.
const (
	cpKa           = 0x1780 // KA, the base consonant in the Ahsda exception
	cpDa           = 0x178A // DA, the other base consonant in that exception
	cpAhsdaSign    = 0x17CF // Ahsda sign, one of the merge-prev suffix signs
	cpSamyokSannya = 0x17D0 // Samyok Sannya sign, always merges into the next segment
	cpOrParticle   = 0x17A2 // QA, the consonant used as the standalone "or" word
)

var (
	// Rule 0: KA/DA + Ahsda sign is kept as-is, even though that sign
	// would otherwise satisfy the merge-prev rule below.
	reAhsdaException = CompileRegex(`^(ក៏|ដ៏)$`)

	// Rule 1: the "or" particle (the consonant U+17A2 standing alone)
	// absorbs a following non-separator segment.
	reOrParticle = CompileRegex(`^អ$`)

	// Rules 2 & 4: a single base consonant followed by one of the
	// merge-prev suffix signs folds into the previous segment.
	reMergePrevSuffix = CompileRegex(`^[ក-អ][់៎៏៌]$`)

	// Rule 3: a single base consonant followed by the Samyok Sannya sign
	// always merges into the segment that follows.
	reSamyokSannya = CompileRegex(`^[ក-អ]័$`)
)

// ruleTable is the fixed, ordered rule set §4.5 specifies. isInvalidSingle
// (rule 5) is not a regex trigger — the specification itself defines it as
// a semantic predicate, not a pattern.
var ruleTable = []segRule{
	{
		trigger: reAhsdaException.MatchString,
		action:  actKeep,
	},
	{
		trigger: reOrParticle.MatchString,
		check: func(segments []string, i int) bool {
			return i+1 < len(segments) && !isSegmentSeparator(segments[i+1])
		},
		action: actMergeNext,
	},
	{
		trigger: reMergePrevSuffix.MatchString,
		check: func(segments []string, i int) bool {
			return i > 0
		},
		action: actMergePrev,
	},
	{
		trigger: reSamyokSannya.MatchString,
		check: func(segments []string, i int) bool {
			return i+1 < len(segments)
		},
		action: actMergeNext,
	},
	{
		trigger: isInvalidSingle,
		check: func(segments []string, i int) bool {
			return i > 0 && !isSegmentSeparator(segments[i-1])
		},
		action: actMergePrev,
	},
}

// decodeOneRune reports whether seg is exactly one codepoint.
func decodeOneRune(seg string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(seg)
	if size == 0 || size != len(seg) {
		return 0, false
	}
	return r, true
}

// isInvalidSingle reports whether seg is a lone Khmer-block codepoint that
// is neither a valid cluster base, a digit, nor a separator — a cluster
// fragment that should never stand on its own.
func isInvalidSingle(seg string) bool {
	r, ok := decodeOneRune(seg)
	if !ok {
		return false
	}
	if !IsKhmerBlock(r) {
		return false
	}
	if IsBase(r) {
		return false
	}
	if IsDigit(r) {
		return false
	}
	if IsSeparator(r) {
		return false
	}
	return true
}

// ApplyRules runs the fixed rule table over segments in order, merging
// adjacent segments per the first matching rule at each position. ar
// supplies the scratch buffer each merge concatenates into; the merged
// segment itself is a string copy of that buffer.
func ApplyRules(segments []string, ar *arena.Arena) []string {
	i := 0
	for i < len(segments) {
		seg := segments[i]

		matched := false
		for _, r := range ruleTable {
			if !r.trigger(seg) {
				continue
			}
			if r.check != nil && !r.check(segments, i) {
				continue
			}
			matched = true
			switch r.action {
			case actKeep:
				i++
			case actMergeNext:
				segments = mergeAt(segments, i, ar.Concat(seg, segments[i+1]))
			case actMergePrev:
				segments = mergeAt(segments, i-1, ar.Concat(segments[i-1], seg))
				i--
			}
			break
		}
		if !matched {
			i++
		}
	}
	return segments
}

// mergeAt replaces segments[idx] and segments[idx+1] with merged, shifting
// the remainder left by one slot.
func mergeAt(segments []string, idx int, merged string) []string {
	segments[idx] = merged
	return append(segments[:idx+1], segments[idx+2:]...)
}

// isSegmentSeparator reports whether seg is a single separator codepoint.
func isSegmentSeparator(seg string) bool {
	r, ok := decodeOneRune(seg)
	return ok && IsSeparator(r)
}
