package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaConcat(t *testing.T) {
	a := New()
	got := a.Concat("ក", "ខ", "គ")
	assert.Equal(t, "កខគ", got)
}

func TestArenaAllocGrowsPastInlineBlock(t *testing.T) {
	a := New()
	big := a.Alloc(inlineSize + 1024)
	require.Len(t, big, inlineSize+1024)

	for i := range big {
		big[i] = byte(i)
	}
	for i := range big {
		require.Equal(t, byte(i), big[i])
	}
}

func TestArenaResetReclaimsBlocks(t *testing.T) {
	a := New()
	a.Alloc(inlineSize + 8)
	require.Len(t, a.blocks, 2)

	a.Reset()
	assert.Len(t, a.blocks, 1)
	assert.Equal(t, 0, a.blocks[0].used)
}

func TestArenaAllocIsZeroed(t *testing.T) {
	a := New()
	b := a.Alloc(16)
	for _, c := range b {
		assert.Equal(t, byte(0), c)
	}
}
