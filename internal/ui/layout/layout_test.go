package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	text := "a\nb\nc\nd\ne"

	out, off := Window(text, 0, 2)
	assert.Equal(t, "a\nb", out)
	assert.Equal(t, 0, off)

	out, off = Window(text, 10, 2)
	assert.Equal(t, "d\ne", out)
	assert.Equal(t, 3, off)

	out, off = Window(text, -3, 10)
	assert.Equal(t, text, out)
	assert.Equal(t, 0, off)

	out, _ = Window(text, 0, 0)
	assert.Equal(t, "", out)
}

func TestReadableWidth(t *testing.T) {
	assert.Equal(t, MaxTextWidth, ReadableWidth(200))
	assert.Equal(t, 56, ReadableWidth(60))
	assert.Equal(t, 20, ReadableWidth(10))
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}
