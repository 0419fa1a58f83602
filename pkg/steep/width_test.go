package steep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibleWidth(t *testing.T) {
	assert.Equal(t, 5, VisibleWidth("hello"))
	assert.Equal(t, 5, VisibleWidth("\x1b[1mhello\x1b[0m"))
	assert.Equal(t, 4, VisibleWidth("日本")) // wide runes count double
	assert.Equal(t, 0, VisibleWidth(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hel…", Truncate("hello", 4, "…"))
	assert.Equal(t, "hello", Truncate("hello", 10, "…"))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "ab", PadRight("abcd", 2))
	assert.Equal(t, "abcd", PadRight("abcd", 4))
}
