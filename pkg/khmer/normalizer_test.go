package khmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRemovesZeroWidthSpace(t *testing.T) {
	in := "ក​ខ"
	assert.Equal(t, "កខ", Normalize(in))
}

func TestNormalizeComposesOE(t *testing.T) {
	in := string(rune(0x1780)) + string(rune(cpE)) + string(rune(cpI))
	want := string(rune(0x1780)) + oeBytes
	assert.Equal(t, want, Normalize(in))
}

func TestNormalizeComposesAU(t *testing.T) {
	in := string(rune(0x1780)) + string(rune(cpE)) + string(rune(cpAA))
	want := string(rune(0x1780)) + auBytes
	assert.Equal(t, want, Normalize(in))
}

func TestNormalizeReordersRegisterBeforeVowel(t *testing.T) {
	base := string(rune(0x1780))
	vowel := string(rune(dependentVowelStart))
	register := string(rune(registerLo))

	in := base + vowel + register
	want := base + register + vowel
	assert.Equal(t, want, Normalize(in))
}

func TestNormalizeKeepsCoengBeforeRegisterAndVowel(t *testing.T) {
	base := string(rune(0x1780))
	coengPair := string(rune(coeng)) + string(rune(0x1781))
	register := string(rune(registerLo))
	vowel := string(rune(dependentVowelStart))

	in := base + register + vowel + coengPair
	want := base + coengPair + register + vowel
	assert.Equal(t, want, Normalize(in))
}

func TestNormalizeLeavesIsolatedModifierInPlace(t *testing.T) {
	sep := "."
	vowel := string(rune(dependentVowelStart))
	in := sep + vowel
	assert.Equal(t, sep+vowel, Normalize(in))
}

func TestNormalizePlainTextUnchanged(t *testing.T) {
	assert.Equal(t, "hello world", Normalize("hello world"))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"ក​ខ",
		string(rune(0x1780)) + string(rune(cpE)) + string(rune(cpI)),
		string(rune(0x1780)) + string(rune(cpE)) + string(rune(cpAA)),
		string(rune(0x1780)) + string(rune(dependentVowelStart)) + string(rune(registerLo)),
		string(rune(0x1780)) + string(rune(coeng)) + string(rune(0x1781)) + string(rune(dependentVowelStart)),
		"hello world",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
