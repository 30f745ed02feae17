package engine

import (
	"testing"

	"github.com/m-mizutani/gt"
)

func TestSplitText(t *testing.T) {
	t.Run("short text yields one chunk", func(t *testing.T) {
		parts := splitText("hello world", 100, 10)
		gt.Array(t, parts).Equal([]string{"hello world"})
	})

	t.Run("long text overlaps between windows", func(t *testing.T) {
		parts := splitText("abcdefghij", 4, 2)
		gt.Array(t, parts).Equal([]string{"abcd", "cdef", "efgh", "ghij"})
	})

	t.Run("empty text yields no chunks", func(t *testing.T) {
		gt.Number(t, len(splitText("", 4, 2))).Equal(0)
	})

	t.Run("multibyte runes are not split", func(t *testing.T) {
		parts := splitText("こんにちは世界", 3, 1)
		gt.Array(t, parts).Equal([]string{"こんに", "にちは", "は世界"})
	})
}
