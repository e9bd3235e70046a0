package drawing

import "strings"

// WrapText wraps text so each line is narrower than maxWidth and joins the
// lines with "\n".
func WrapText(m Measurer, text string, maxWidth float64) string {
	return strings.Join(WrapLines(m, text, maxWidth), "\n")
}

// WrapLines greedily packs the words of each paragraph of text onto lines
// narrower than maxWidth, counting the space between words. A word that is
// too wide on its own is split at its midpoint, recursively, until every
// fragment fits or is a single character. A non-positive maxWidth only
// splits on existing newlines.
func WrapLines(m Measurer, text string, maxWidth float64) []string {
	paragraphs := strings.Split(text, "\n")
	if maxWidth <= 0 {
		return paragraphs
	}

	spaceWidth, _ := m.Measure(" ")
	var lines []string
	for _, paragraph := range paragraphs {
		lines = append(lines, wrapParagraph(m, paragraph, maxWidth, spaceWidth)...)
	}
	return lines
}

func wrapParagraph(m Measurer, paragraph string, maxWidth, spaceWidth float64) []string {
	var words []string
	for _, word := range strings.Fields(paragraph) {
		words = append(words, splitWord(m, word, maxWidth)...)
	}
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines     []string
		line      strings.Builder
		lineWidth float64
	)
	for _, word := range words {
		width, _ := m.Measure(word)
		switch {
		case line.Len() == 0:
			line.WriteString(word)
			lineWidth = width
		case lineWidth+spaceWidth+width < maxWidth:
			line.WriteByte(' ')
			line.WriteString(word)
			lineWidth += spaceWidth + width
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			lineWidth = width
		}
	}
	return append(lines, line.String())
}

func splitWord(m Measurer, word string, maxWidth float64) []string {
	width, _ := m.Measure(word)
	runes := []rune(word)
	if width < maxWidth || len(runes) <= 1 {
		return []string{word}
	}
	mid := len(runes) / 2
	return append(splitWord(m, string(runes[:mid]), maxWidth), splitWord(m, string(runes[mid:]), maxWidth)...)
}
