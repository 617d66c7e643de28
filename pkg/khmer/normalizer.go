package khmer

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	cpE   = 0x17C1 // dependent 'e'
	cpI   = 0x17B8 // dependent 'i'
	cpAA  = 0x17B6 // dependent 'aa'
	cpOE  = 0x17BE // composed 'oe'
	cpAU  = 0x17C4 // composed 'au'
	cpRo  = 0x179A // Ro, the one consonant that sorts after other coeng pairs
	cpZWS = 0x200B
)

// oeBytes/auBytes are the UTF-8 encodings of the composed vowels produced by
// the e+i and e+aa substitutions.
var (
	oeBytes = string(rune(cpOE))
	auBytes = string(rune(cpAU))
)

// Normalize runs the two-phase text normalization: substitution (ZWS
// removal, e+i/e+aa composition) followed by cluster-internal reordering of
// COENG/REGISTER/VOWEL/SIGN parts around each base codepoint.
func Normalize(text string) string {
	substituted := substitute(text)
	return reorderClusters(substituted)
}

// substitute drops zero-width spaces and folds the two-codepoint e+i / e+aa
// sequences into their single-codepoint composed vowels.
func substitute(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])

		if r == cpZWS {
			i += size
			continue
		}

		if r == cpE {
			rest := text[i+size:]
			if len(rest) > 0 {
				next, nsize := utf8.DecodeRuneInString(rest)
				switch next {
				case cpI:
					b.WriteString(oeBytes)
					i += size + nsize
					continue
				case cpAA:
					b.WriteString(auBytes)
					i += size + nsize
					continue
				}
			}
		}

		b.WriteString(text[i : i+size])
		i += size
	}
	return b.String()
}

// clusterPart is one codepoint (or COENG+consonant pair) belonging to a
// cluster, tagged with the sort priority used to reorder everything but the
// cluster's leading base.
type clusterPart struct {
	text     string
	priority int
}

// partPriority assigns the reordering priority used by reorderClusters:
// COENG+non-Ro pairs first, then COENG+Ro, then register shifters, then
// dependent vowels, then signs. Parts not explicitly classified sort last.
func partPriority(text string, class CodepointClass) int {
	r, size := utf8.DecodeRuneInString(text)
	if r == coeng {
		if size < len(text) {
			next, _ := utf8.DecodeRuneInString(text[size:])
			if next == cpRo {
				return 20
			}
		}
		return 10
	}
	switch class {
	case ClassRegister:
		return 30
	case ClassVowel:
		return 40
	case ClassSign:
		return 50
	default:
		return 100
	}
}

// reorderClusters groups each base codepoint with the COENG/REGISTER/VOWEL/
// SIGN parts that follow it and stably re-sorts everything but the base by
// partPriority, so register shifters and signs always land in a consistent
// position relative to subscript consonants regardless of input order.
func reorderClusters(text string) string {
	var out strings.Builder
	out.Grow(len(text))

	var cluster []clusterPart

	flush := func() {
		if len(cluster) == 0 {
			return
		}
		if len(cluster) > 2 {
			rest := cluster[1:]
			sort.SliceStable(rest, func(a, b int) bool {
				return rest[a].priority < rest[b].priority
			})
		}
		for _, p := range cluster {
			out.WriteString(p.text)
		}
		cluster = cluster[:0]
	}

	i := 0
	n := len(text)
	for i < n {
		r, size := utf8.DecodeRuneInString(text[i:])
		class := ClassOf(r)

		switch {
		case class == ClassBase:
			flush()
			cluster = append(cluster, clusterPart{text: text[i : i+size], priority: 0})
			i += size

		case class == ClassCoeng:
			end := i + size
			combined := end
			if end < n {
				next, nsize := utf8.DecodeRuneInString(text[end:])
				if IsConsonant(next) {
					combined = end + nsize
				}
			}
			part := text[i:combined]
			cluster = append(cluster, clusterPart{text: part, priority: partPriority(part, ClassCoeng)})
			i = combined

		case class == ClassRegister || class == ClassVowel || class == ClassSign:
			if len(cluster) == 0 {
				out.WriteString(text[i : i+size])
			} else {
				part := text[i : i+size]
				cluster = append(cluster, clusterPart{text: part, priority: partPriority(part, class)})
			}
			i += size

		default:
			flush()
			out.WriteString(text[i : i+size])
			i += size
		}
	}
	flush()

	return out.String()
}
