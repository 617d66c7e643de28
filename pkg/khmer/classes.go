// Package khmer segments Khmer-script UTF-8 text into word-like units.
package khmer

import "unicode/utf8"

// Codepoint ranges from the Khmer Unicode block (U+1780-U+17FF) plus the
// Khmer Symbols block (U+19E0-U+19FF), per the authoritative tables.
const (
	consonantStart = 0x1780
	consonantEnd   = 0x17A2

	indepVowelStart = 0x17A3
	indepVowelEnd   = 0x17B3

	baseStart = consonantStart
	baseEnd   = indepVowelEnd

	dependentVowelStart = 0x17B6
	dependentVowelEnd   = 0x17C5

	registerLo = 0x17C9
	registerHi = 0x17CA

	coeng = 0x17D2

	signRangeStart = 0x17C6
	signRangeEnd   = 0x17D1
	signExtra1     = 0x17D3
	signExtra2     = 0x17DD

	khmerDigitStart = 0x17E0
	khmerDigitEnd   = 0x17E9

	khmerBlockStart  = 0x1780
	khmerBlockEnd    = 0x17FF
	khmerSymbolStart = 0x19E0
	khmerSymbolEnd   = 0x19FF

	khmerRiel = 0x17DB
)

// CodepointClass is one of the classes the normalizer and cluster scanner
// dispatch on.
type CodepointClass uint8

const (
	ClassOther CodepointClass = iota
	ClassBase
	ClassCoeng
	ClassRegister
	ClassVowel
	ClassSign
)

// ClassOf classifies a single codepoint.
func ClassOf(r rune) CodepointClass {
	switch {
	case IsBase(r):
		return ClassBase
	case r == coeng:
		return ClassCoeng
	case r == registerLo || r == registerHi:
		return ClassRegister
	case IsDependentVowel(r):
		return ClassVowel
	case IsSign(r):
		return ClassSign
	default:
		return ClassOther
	}
}

// IsConsonant reports whether r is a Khmer base consonant (U+1780-U+17A2).
func IsConsonant(r rune) bool {
	return r >= consonantStart && r <= consonantEnd
}

// IsIndependentVowel reports whether r is a Khmer independent vowel
// (U+17A3-U+17B3).
func IsIndependentVowel(r rune) bool {
	return r >= indepVowelStart && r <= indepVowelEnd
}

// IsBase reports whether r can start a cluster: a consonant or an
// independent vowel (U+1780-U+17B3).
func IsBase(r rune) bool {
	return r >= baseStart && r <= baseEnd
}

// IsCoeng reports whether r is the subscript-former COENG (U+17D2).
func IsCoeng(r rune) bool {
	return r == coeng
}

// IsRegister reports whether r is a register shifter (U+17C9, U+17CA).
func IsRegister(r rune) bool {
	return r == registerLo || r == registerHi
}

// IsDependentVowel reports whether r is a dependent vowel (U+17B6-U+17C5).
func IsDependentVowel(r rune) bool {
	return r >= dependentVowelStart && r <= dependentVowelEnd
}

// IsSign reports whether r is a sign/diacritic modifier.
func IsSign(r rune) bool {
	return (r >= signRangeStart && r <= signRangeEnd) || r == signExtra1 || r == signExtra2
}

// IsKhmerDigit reports whether r is a Khmer-script digit (U+17E0-U+17E9).
func IsKhmerDigit(r rune) bool {
	return r >= khmerDigitStart && r <= khmerDigitEnd
}

// IsASCIIDigit reports whether r is an ASCII digit.
func IsASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsDigit reports whether r is an ASCII or Khmer digit.
func IsDigit(r rune) bool {
	return IsASCIIDigit(r) || IsKhmerDigit(r)
}

// IsCurrencySymbol reports whether r is a currency symbol that may prefix a
// number run.
func IsCurrencySymbol(r rune) bool {
	switch r {
	case '$', khmerRiel, '€', '£', '¥':
		return true
	default:
		return false
	}
}

// IsKhmerBlock reports whether r falls in the Khmer or Khmer Symbols block.
func IsKhmerBlock(r rune) bool {
	return (r >= khmerBlockStart && r <= khmerBlockEnd) || (r >= khmerSymbolStart && r <= khmerSymbolEnd)
}

// isASCIIPunct mirrors C ispunct() in the "C" locale: graphic, non-alnum
// ASCII.
func isASCIIPunct(r rune) bool {
	switch {
	case r >= '!' && r <= '/':
		return true
	case r >= ':' && r <= '@':
		return true
	case r >= '[' && r <= '`':
		return true
	case r >= '{' && r <= '~':
		return true
	default:
		return false
	}
}

// isASCIISpace mirrors C isspace() in the "C" locale.
func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// IsSeparator reports whether r is a separator/punctuation codepoint, per
// the authoritative separator table.
func IsSeparator(r rune) bool {
	switch {
	case r >= 0x17D4 && r <= 0x17DA:
		return true
	case r == khmerRiel:
		return true
	case r < 0x80 && (isASCIIPunct(r) || isASCIISpace(r)):
		return true
	case r == 0x00A0, r == 0x00AB, r == 0x00BB:
		return true
	case r >= 0x2000 && r <= 0x206F:
		return true
	case r >= 0x20A0 && r <= 0x20CF:
		return true
	default:
		return false
	}
}

// decodeRune decodes the rune at byte offset i in data, returning the rune
// and its byte width. Malformed UTF-8 yields (utf8.RuneError, 1), which
// falls through the decoder as an unknown byte per the tolerant-UTF8
// contract.
func decodeRune(data string, i int) (rune, int) {
	return utf8.DecodeRuneInString(data[i:])
}

// clusterLength returns the byte length of the cluster beginning at byte
// offset start: a base codepoint followed by any run of COENG+consonant
// pairs and dependent-vowel/sign modifiers. A COENG not followed by a
// consonant stops the scan without being consumed. If the codepoint at
// start is not a cluster base, its own UTF-8 length is returned.
func clusterLength(data string, start int) int {
	n := len(data)
	if start >= n {
		return 0
	}
	r, size := decodeRune(data, start)
	if !IsBase(r) {
		return size
	}

	i := start + size
	for i < n {
		c, clen := decodeRune(data, i)
		if IsCoeng(c) {
			if i+clen < n {
				next, nlen := decodeRune(data, i+clen)
				if IsConsonant(next) {
					i += clen + nlen
					continue
				}
			}
			break
		}
		if IsDependentVowel(c) || IsSign(c) {
			i += clen
			continue
		}
		break
	}
	return i - start
}

// numberRun returns the byte length of a digit run beginning at start,
// optionally preceded by a currency symbol, or 0 when start holds neither a
// digit nor a currency symbol followed by a digit. Internal commas,
// periods, and single spaces are absorbed when immediately followed by
// another digit.
func numberRun(data string, start int) int {
	n := len(data)
	i := start
	r, size := decodeRune(data, i)

	consumedCurrency := false
	if IsCurrencySymbol(r) {
		if i+size < n {
			next, _ := decodeRune(data, i+size)
			if IsDigit(next) {
				i += size
				consumedCurrency = true
			}
		}
		if !consumedCurrency {
			return 0
		}
	} else if !IsDigit(r) {
		return 0
	}

	if !consumedCurrency {
		i += size
	}

	for i < n {
		c, clen := decodeRune(data, i)
		if IsDigit(c) {
			i += clen
			continue
		}
		if c == ',' || c == '.' || c == ' ' {
			if i+clen < n {
				next, nlen := decodeRune(data, i+clen)
				if IsDigit(next) {
					i += clen + nlen
					continue
				}
			}
		}
		break
	}
	return i - start
}

// isAcronymStart reports whether the cluster at i is immediately followed
// by an ASCII '.', the trigger for acronym scanning.
func isAcronymStart(data string, i int) bool {
	n := len(data)
	if i >= n {
		return false
	}
	r, _ := decodeRune(data, i)
	if !IsBase(r) {
		return false
	}
	clen := clusterLength(data, i)
	if clen == 0 {
		return false
	}
	dot := i + clen
	return dot < n && data[dot] == '.'
}

// acronymLength returns the byte length of the longest run of
// (cluster '.')+ beginning at start.
func acronymLength(data string, start int) int {
	n := len(data)
	i := start
	for {
		clen := clusterLength(data, i)
		if clen == 0 {
			break
		}
		dot := i + clen
		if dot < n && data[dot] == '.' {
			i = dot + 1
			if i >= n {
				break
			}
			continue
		}
		break
	}
	return i - start
}
