package khmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegexLiteral(t *testing.T) {
	re := CompileRegex("ក")
	assert.True(t, re.MatchString("ក"))
	assert.False(t, re.MatchString("ខ"))
}

func TestRegexUnicodeEscape(t *testing.T) {
	re := CompileRegex(`\` + "u1780")
	assert.True(t, re.MatchString("ក"))
}

func TestRegexClassRange(t *testing.T) {
	re := CompileRegex(`[ក-អ]`)
	assert.True(t, re.MatchString("ក"))
	assert.False(t, re.MatchString("."))
}

func TestRegexAlternation(t *testing.T) {
	re := CompileRegex("(ក៏|ដ៏)")
	assert.True(t, re.MatchString("ក៏"))
	assert.True(t, re.MatchString("ដ៏"))
	assert.False(t, re.MatchString("អ"))
}

func TestRegexAnchoredEnd(t *testing.T) {
	re := CompileRegex(`ក$`)
	assert.True(t, re.MatchString("ក"))
	assert.False(t, re.MatchString("កខ"))
}

func TestRegexAnchoredStartStripped(t *testing.T) {
	re := CompileRegex("^ក")
	assert.True(t, re.MatchString("ក"))
}
