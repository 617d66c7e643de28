package khmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSegmenter(t *testing.T, cfg Config) *Segmenter {
	t.Helper()
	b := NewDictionaryBuilder(3.0, 9.0, true)
	b.Add("ខ្ញុំ", 1.0)
	b.Add("សាលា", 1.2)
	b.Add("ទៅ", 1.1)

	d, err := LoadDictionaryBytes(b.Build())
	require.NoError(t, err)
	return New(d, cfg)
}

func TestSegmentSliceDictionaryWords(t *testing.T) {
	s := newTestSegmenter(t, DefaultConfig())
	got := s.SegmentSlice("ខ្ញុំទៅសាលា")
	assert.Equal(t, []string{"ខ្ញុំ", "ទៅ", "សាលា"}, got)
}

func TestSegmentJoinsWithDefaultSeparator(t *testing.T) {
	s := newTestSegmenter(t, DefaultConfig())
	got := s.Segment("ខ្ញុំទៅ", "")
	assert.Equal(t, "ខ្ញុំ"+DefaultSeparator+"ទៅ", got)
}

func TestSegmentJoinsWithCustomSeparator(t *testing.T) {
	s := newTestSegmenter(t, DefaultConfig())
	got := s.Segment("ខ្ញុំទៅ", "|")
	assert.Equal(t, "ខ្ញុំ|ទៅ", got)
}

func TestSegmentSlicePreservesSeparators(t *testing.T) {
	s := newTestSegmenter(t, DefaultConfig())
	got := s.SegmentSlice("ខ្ញុំ ទៅ")
	assert.Contains(t, got, " ")
}

func TestSegmentSliceHandlesNumberRun(t *testing.T) {
	s := newTestSegmenter(t, DefaultConfig())
	got := s.SegmentSlice("$1,234.50")
	joined := ""
	for _, seg := range got {
		joined += seg
	}
	assert.Equal(t, "$1,234.50", joined)
}

func TestSegmentSliceNilDictionaryStillClassifies(t *testing.T) {
	s := New(nil, DefaultConfig())
	got := s.SegmentSlice("hello")
	assert.NotEmpty(t, got)
}

func TestSegmentScenarios(t *testing.T) {
	s := newTestSegmenter(t, DefaultConfig())

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"zero width space removed, unknown singles stay split", "ក​ក", []string{"ក", "ក"}},
		{"e plus aa composes to au", "េា", []string{"ោ"}},
		{"or particle absorbs the next segment", "អន", []string{"អន"}},
		{"adjacent dictionary words", "ខ្ញុំសាលា", []string{"ខ្ញុំ", "សាលា"}},
		{"grouped number run", "123,456.78", []string{"123,456.78"}},
		{"acronym run stays whole", "ក.ស.អ.", []string{"ក.ស.អ."}},
		{"unknown base isolated between separators", "។ឥ។", []string{"។", "ឥ", "។"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.SegmentSlice(tt.in))
		})
	}
}

func TestSegmentDeterministic(t *testing.T) {
	s := newTestSegmenter(t, DefaultConfig())
	in := "ខ្ញុំទៅសាលា 123 ក.ស."
	assert.Equal(t, s.Segment(in, " | "), s.Segment(in, " | "))
}

func TestSeparatorBetweenWordsAddsNoBoundaries(t *testing.T) {
	s := newTestSegmenter(t, DefaultConfig())
	require.Equal(t, []string{"ខ្ញុំ", "ទៅ"}, s.SegmentSlice("ខ្ញុំទៅ"))
	assert.Equal(t, []string{"ខ្ញុំ", "។", "ទៅ"}, s.SegmentSlice("ខ្ញុំ។ទៅ"))
}

func TestSegmentIsByteLossless(t *testing.T) {
	s := newTestSegmenter(t, DefaultConfig())
	inputs := []string{"ខ្ញុំទៅសាលា", "hello world", "$1,234.50", "ក៏ដ៏អ"}
	for _, in := range inputs {
		segs := s.SegmentSlice(in)
		joined := ""
		for _, seg := range segs {
			joined += seg
		}
		if s.cfg.Normalization {
			assert.Equal(t, Normalize(in), joined)
		} else {
			assert.Equal(t, in, joined)
		}
	}
}
