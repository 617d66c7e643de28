package khmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestDictionary(t *testing.T) *Dictionary {
	t.Helper()
	b := NewDictionaryBuilder(3.0, 9.0, true)
	b.Add("ខ្ញុំ", 1.5)
	b.Add("សាលា", 2.0)

	d, err := LoadDictionaryBytes(b.Build())
	require.NoError(t, err)
	return d
}

func TestDictionaryRoundTrip(t *testing.T) {
	d := buildTestDictionary(t)

	assert.True(t, d.Contains("ខ្ញុំ"))
	assert.True(t, d.Contains("សាលា"))
	assert.False(t, d.Contains("missing"))

	cost := d.GetWordCost("ខ្ញុំ")
	assert.InDelta(t, 1.5, cost, 0.0001)

	assert.Equal(t, float32(9.0), d.GetWordCost("missing"))
}

func TestLoadDictionaryBytesRejectsBadMagic(t *testing.T) {
	_, err := LoadDictionaryBytes([]byte("XXXX0000000000000000000000000000"))
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestLoadDictionaryBytesRejectsTruncated(t *testing.T) {
	b := NewDictionaryBuilder(1, 2, false)
	b.Add("ក", 1)
	full := b.Build()

	_, err := LoadDictionaryBytes(full[:kdicHeaderSize+2])
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestGenerateVariantsSwapsTaDaCoeng(t *testing.T) {
	word := "ក" + coengTa
	variants := generateVariants(word)
	found := false
	for _, v := range variants {
		if v == "ក"+coengDa {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSwapCoengRoOrderNoOpUnderFourRunes(t *testing.T) {
	assert.Equal(t, "ក", swapCoengRoOrder("ក"))
}
