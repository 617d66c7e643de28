package khmer

import (
	"math"
	"unicode/utf8"
)

// decodeConfig carries the subset of Config the decoder's edge proposals
// consult.
type decodeConfig struct {
	RepairMode       bool
	AcronymDetection bool
	FrequencyCosts   bool
}

// dpNode is one slot of the byte-offset DP array: the least cost found so
// far to reach this offset, and the offset it was reached from.
type dpNode struct {
	cost float64
	prev int
}

const noPrev = -1

// decode runs the least-cost Viterbi search over byte offsets of text and
// returns the resulting segment list. covered is false when the DP failed
// to reach the end of text, in which case segments holds text unchanged
// (the documented fallback).
func decode(text string, dict *Dictionary, cfg decodeConfig) (segments []string, covered bool) {
	n := len(text)
	if n == 0 {
		return nil, true
	}
	dp := make([]dpNode, n+1)
	for i := range dp {
		dp[i] = dpNode{cost: math.Inf(1), prev: noPrev}
	}
	dp[0].cost = 0

	var unknownCost, defaultCost float64
	var maxWordLen int
	if dict != nil {
		unknownCost = float64(dict.UnknownCost())
		defaultCost = float64(dict.DefaultCost())
		maxWordLen = dict.MaxWordLength()
	} else {
		unknownCost = 20.0
		defaultCost = 10.0
	}

	relax := func(i, j int, cost float64) {
		if c := dp[i].cost + cost; c < dp[j].cost {
			dp[j] = dpNode{cost: c, prev: i}
		}
	}

	i := 0
	for i < n {
		if math.IsInf(dp[i].cost, 1) {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])

		repaired := false
		if cfg.RepairMode {
			prevIsCoeng := i > 0 && lastRuneIs(text[:i], coeng)
			if (prevIsCoeng && IsConsonant(r)) || IsDependentVowel(r) {
				relax(i, i+size, unknownCost+50.0)
				repaired = true
			}
		}

		if !repaired {
			if L := numberRun(text, i); L > 0 {
				relax(i, i+L, 1.0)
			}

			if IsSeparator(r) {
				relax(i, i+size, 0.1)
			}

			if cfg.AcronymDetection && isAcronymStart(text, i) {
				if L := acronymLength(text, i); L > 0 {
					relax(i, i+L, defaultCost)
				}
			}

			if dict != nil && maxWordLen > 0 {
				proposeDictionarySweep(text, i, size, n, maxWordLen, dict, cfg.FrequencyCosts, defaultCost, relax)
			}

			L := size
			if IsKhmerBlock(r) {
				L = clusterLength(text, i)
			}
			cost := unknownCost
			if L == size && IsKhmerBlock(r) && !IsBase(r) {
				cost += 10.0
			}
			relax(i, i+L, cost)
		}

		i += size
	}

	if dp[n].prev == noPrev {
		return []string{text}, false
	}

	breaks := []int{n}
	for cur := n; cur != 0; {
		cur = dp[cur].prev
		breaks = append(breaks, cur)
	}
	for l, r := 0, len(breaks)-1; l < r; l, r = l+1, r-1 {
		breaks[l], breaks[r] = breaks[r], breaks[l]
	}

	segments = make([]string, 0, len(breaks)-1)
	for k := 0; k < len(breaks)-1; k++ {
		segments = append(segments, text[breaks[k]:breaks[k+1]])
	}
	return segments, true
}

// proposeDictionarySweep relaxes every dictionary hit starting at i, up to
// maxWordLen bytes, using one incrementally-folded DJB2 hash instead of
// rehashing each growing candidate from scratch.
func proposeDictionarySweep(text string, i, firstSize, n, maxWordLen int, dict *Dictionary, useFrequencyCosts bool, defaultCost float64, relax func(i, j int, cost float64)) {
	hash := uint32(5381)
	for k := i; k < i+firstSize; k++ {
		hash = ((hash << 5) + hash) + uint32(text[k])
	}

	j := i + firstSize
	for {
		if j-i > maxWordLen || j > n {
			return
		}
		if e, ok := dict.lookupWithHash(hash, text[i:j]); ok {
			cost := float64(e.Cost)
			if !useFrequencyCosts {
				cost = defaultCost
			}
			relax(i, j, cost)
		}
		if j == n {
			return
		}
		_, nsize := utf8.DecodeRuneInString(text[j:])
		if j+nsize-i > maxWordLen {
			return
		}
		for k := j; k < j+nsize; k++ {
			hash = ((hash << 5) + hash) + uint32(text[k])
		}
		j += nsize
	}
}

// lastRuneIs reports whether the final codepoint of s is r.
func lastRuneIs(s string, r rune) bool {
	last, _ := utf8.DecodeLastRuneInString(s)
	return last == r
}
