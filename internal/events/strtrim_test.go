package events

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimStrToRect_ShortTextUntouched(t *testing.T) {
	assert.Equal(t, "hello\nworld", trimStrToRect("hello\nworld", 10, 20))
}

func TestTrimStrToRect_WidthBound(t *testing.T) {
	got := trimStrToRect("abcdefghij", 5, 4)
	assert.Equal(t, "abcd[...]", got)
}

func TestTrimStrToRect_HeightBound(t *testing.T) {
	in := strings.Repeat("x\n", 10) + "x"
	got := trimStrToRect(in, 3, 80)
	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "[...]", lines[3])
}

func TestTrimStrToRect_Empty(t *testing.T) {
	assert.Equal(t, "", trimStrToRect("", 3, 3))
}
