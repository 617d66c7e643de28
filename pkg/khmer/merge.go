package khmer

import (
	"strings"
	"unicode/utf8"
)

// validSingleWords are Khmer consonants and independent vowels that are
// commonly attested as standalone one-codepoint words, as opposed to base
// codepoints that only ever appear inside a larger cluster.
var validSingleWords = map[rune]bool{
	0x1780: true, 0x1781: true, 0x1782: true, 0x1784: true, 0x1785: true,
	0x1786: true, 0x1789: true, 0x178A: true, 0x178F: true, 0x1791: true,
	0x1796: true, 0x179A: true, 0x179B: true, 0x179F: true, 0x17A1: true,
	0x17AC: true, 0x17AE: true, 0x17AA: true, 0x17AF: true, 0x17B1: true,
	0x17A6: true, 0x17A7: true, 0x17B3: true,
}

// IsValidSingleWord reports whether r is attested as a standalone
// one-codepoint word.
func IsValidSingleWord(r rune) bool {
	return validSingleWords[r]
}

// isKnownSegment reports whether seg should be treated as already resolved
// when coalescing the decoder's unknown-cluster fallback segments: it
// starts with a digit, is a dictionary entry, is a single attested
// standalone codepoint, is a lone separator, or looks like an acronym run
// (contains '.' and has at least two codepoints).
func isKnownSegment(seg string, dict *Dictionary) bool {
	if seg == "" {
		return false
	}
	r, size := utf8.DecodeRuneInString(seg)

	switch {
	case IsDigit(r):
		return true
	case dict != nil && dict.Contains(seg):
		return true
	case size == len(seg) && IsValidSingleWord(r):
		return true
	case size == len(seg) && IsSeparator(r):
		return true
	case strings.Contains(seg, ".") && utf8.RuneCountInString(seg) >= 2:
		return true
	default:
		return false
	}
}

// MergeUnknownSegments coalesces consecutive segments that isKnownSegment
// rejects into single runs, so the decoder's cluster-at-a-time unknown
// fallback doesn't fragment unrecognized text into one segment per cluster
// or codepoint.
func MergeUnknownSegments(segments []string, dict *Dictionary) []string {
	result := make([]string, 0, len(segments))
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			result = append(result, buf.String())
			buf.Reset()
		}
	}

	for _, seg := range segments {
		if isKnownSegment(seg, dict) {
			flush()
			result = append(result, seg)
		} else {
			buf.WriteString(seg)
		}
	}
	flush()

	return result
}
