package khmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCoversPlainText(t *testing.T) {
	segs, covered := decode("hello", nil, decodeConfig{})
	require.True(t, covered)
	joined := ""
	for _, s := range segs {
		joined += s
	}
	assert.Equal(t, "hello", joined)
}

func TestDecodePrefersDictionaryHit(t *testing.T) {
	b := NewDictionaryBuilder(5.0, 20.0, false)
	b.Add("ខ្ញុំ", 0.5)
	d, err := LoadDictionaryBytes(b.Build())
	require.NoError(t, err)

	segs, covered := decode("ខ្ញុំ", d, decodeConfig{FrequencyCosts: true})
	require.True(t, covered)
	assert.Equal(t, []string{"ខ្ញុំ"}, segs)
}

func TestDecodeSeparatorIsOwnSegment(t *testing.T) {
	segs, covered := decode(".", nil, decodeConfig{})
	require.True(t, covered)
	assert.Equal(t, []string{"."}, segs)
}

func TestDecodeNumberRun(t *testing.T) {
	segs, covered := decode("123", nil, decodeConfig{})
	require.True(t, covered)
	assert.Equal(t, []string{"123"}, segs)
}

func TestDecodeUnknownClusterFallback(t *testing.T) {
	text := string(rune(0x1780))
	segs, covered := decode(text, nil, decodeConfig{})
	require.True(t, covered)
	assert.Equal(t, []string{text}, segs)
}

func TestDecodeAlwaysCoversEveryByte(t *testing.T) {
	inputs := []string{"", "x", "ABC", "ក", "ក្ក", "1,234.50", "混合"}
	for _, in := range inputs {
		segs, covered := decode(in, nil, decodeConfig{})
		if in == "" {
			assert.True(t, covered)
			assert.Empty(t, segs)
			continue
		}
		require.True(t, covered, "input %q", in)
		joined := ""
		for _, s := range segs {
			joined += s
		}
		assert.Equal(t, in, joined)
	}
}
