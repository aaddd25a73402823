package textio

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// DefaultWidth is the line width used when Wrap is given a width below 1.
const DefaultWidth = 72

// Wrap breaks text into lines of at most width cells, breaking at spaces and
// splitting words that are longer than a whole line.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = DefaultWidth
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(ansi.Wrap(text, width, ""), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
