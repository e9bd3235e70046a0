package drawing_test

import (
	"strings"
	"testing"

	"github.com/plus3/puffin/drawing"
	"github.com/stretchr/testify/assert"
)

func TestWrapLines(t *testing.T) {
	font := &drawing.FixedFont{CharWidth: 10, LineHeight: 12}

	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{"fits on one line", "hello world", 200, []string{"hello world"}},
		{"breaks between words", "hello world", 100, []string{"hello", "world"}},
		{"width must stay under the limit", "ab cd", 50, []string{"ab", "cd"}},
		{"just under the limit", "ab cd", 51, []string{"ab cd"}},
		{"long word split recursively", "abcdefgh", 30, []string{"ab", "cd", "ef", "gh"}},
		{"long word split once", "abcdefgh", 55, []string{"abcd", "efgh"}},
		{"fragments are packed", "abcdefgh ij", 70, []string{"abcd", "efgh", "ij"}},
		{"paragraphs kept", "a\n\nb", 100, []string{"a", "", "b"}},
		{"no wrap width", "one two\nthree", 0, []string{"one two", "three"}},
		{"collapses runs of spaces", "a   b", 100, []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, drawing.WrapLines(font, tt.text, tt.maxWidth))
		})
	}
}

func TestWrapLinesFragmentsFit(t *testing.T) {
	font := &drawing.FixedFont{CharWidth: 7}
	word := strings.Repeat("x", 97)

	for _, maxWidth := range []float64{8, 15, 30, 64, 100, 333} {
		for _, line := range drawing.WrapLines(font, word, maxWidth) {
			for _, fragment := range strings.Fields(line) {
				w, _ := font.Measure(fragment)
				if len(fragment) > 1 {
					assert.Less(t, w, maxWidth, "fragment %q at width %v", fragment, maxWidth)
				}
			}
		}
		joined := strings.ReplaceAll(drawing.WrapText(font, word, maxWidth), "\n", "")
		assert.Equal(t, word, strings.ReplaceAll(joined, " ", ""))
	}
}

func TestWrapText(t *testing.T) {
	font := &drawing.FixedFont{CharWidth: 10}
	assert.Equal(t, "hello\nworld", drawing.WrapText(font, "hello world", 100))
}
