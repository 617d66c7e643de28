package khmer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Regex is a tiny, deliberately limited pattern matcher for the rule
// engine's triggers: literal codepoints, \uXXXX escapes, [classes] with
// ranges, and a single top-level (a|b|c) alternation. There is no
// backtracking beyond trying each alternative in turn, and no quantifiers.
type Regex struct {
	insts         []instruction
	anchoredStart bool
	anchoredEnd   bool
}

type opKind int

const (
	opChar opKind = iota
	opClass
	opAlternation
)

type classRange struct{ lo, hi rune }

type instruction struct {
	kind    opKind
	ch      rune
	ranges  []classRange
	options []string
}

// CompileRegex compiles pattern into a Regex. It panics on malformed
// patterns since every pattern in the rule table is a compile-time literal.
func CompileRegex(pattern string) *Regex {
	re, err := compileRegex(pattern)
	if err != nil {
		panic(fmt.Sprintf("khmer: invalid regex %q: %v", pattern, err))
	}
	return re
}

func compileRegex(pattern string) (*Regex, error) {
	re := &Regex{}
	p := pattern

	if strings.HasPrefix(p, "^") {
		re.anchoredStart = true
		p = p[1:]
	}

	for len(p) > 0 {
		if p == "$" {
			re.anchoredEnd = true
			break
		}

		switch p[0] {
		case '[':
			inst, rest, err := parseClass(p[1:])
			if err != nil {
				return nil, err
			}
			re.insts = append(re.insts, inst)
			p = rest

		case '(':
			end := strings.IndexByte(p, ')')
			if end < 0 {
				return nil, fmt.Errorf("unterminated group")
			}
			options := strings.Split(p[1:end], "|")
			re.insts = append(re.insts, instruction{kind: opAlternation, options: options})
			p = p[end+1:]

		default:
			cp, size, err := readLiteral(p)
			if err != nil {
				return nil, err
			}
			re.insts = append(re.insts, instruction{kind: opChar, ch: cp})
			p = p[size:]
		}
	}

	return re, nil
}

// readLiteral reads one literal codepoint from the head of s: either a
// \uXXXX escape or a raw UTF-8 rune, and returns how many source bytes it
// consumed.
func readLiteral(s string) (rune, int, error) {
	if strings.HasPrefix(s, `\u`) {
		if len(s) < 6 {
			return 0, 0, fmt.Errorf("truncated \\u escape")
		}
		v, err := strconv.ParseInt(s[2:6], 16, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("bad \\u escape: %w", err)
		}
		return rune(v), 6, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	return r, size, nil
}

// parseClass parses the body of a [...] class (s is the text just past the
// opening bracket) and returns the compiled instruction plus the remaining
// pattern text past the closing bracket.
func parseClass(s string) (instruction, string, error) {
	inst := instruction{kind: opClass}

	for len(s) > 0 && s[0] != ']' {
		lo, size, err := readLiteral(s)
		if err != nil {
			return inst, s, err
		}
		s = s[size:]

		if strings.HasPrefix(s, "-") && !strings.HasPrefix(s, "-]") {
			s = s[1:]
			hi, hsize, err := readLiteral(s)
			if err != nil {
				return inst, s, err
			}
			s = s[hsize:]
			inst.ranges = append(inst.ranges, classRange{lo: lo, hi: hi})
		} else {
			inst.ranges = append(inst.ranges, classRange{lo: lo, hi: lo})
		}
	}
	if len(s) == 0 {
		return inst, s, fmt.Errorf("unterminated class")
	}
	return inst, s[1:], nil
}

// MatchString reports whether text, from its start, matches re. The match
// is anchored at the start of text regardless of re.anchoredStart (the
// caller is expected to have already positioned text at the candidate
// start); anchoredEnd additionally requires the match to consume all of
// text.
func (re *Regex) MatchString(text string) bool {
	t := text
	for _, inst := range re.insts {
		if len(t) == 0 {
			return false
		}

		switch inst.kind {
		case opChar:
			r, size := utf8.DecodeRuneInString(t)
			if r != inst.ch {
				return false
			}
			t = t[size:]

		case opClass:
			r, size := utf8.DecodeRuneInString(t)
			found := false
			for _, rg := range inst.ranges {
				if r >= rg.lo && r <= rg.hi {
					found = true
					break
				}
			}
			if !found {
				return false
			}
			t = t[size:]

		case opAlternation:
			matched := false
			for _, opt := range inst.options {
				if strings.HasPrefix(t, opt) {
					t = t[len(opt):]
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
	}

	if re.anchoredEnd && len(t) != 0 {
		return false
	}
	return true
}
