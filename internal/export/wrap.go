package export

import "strings"

// WrapText splits s into lines of at most width characters, breaking at
// whitespace and splitting words longer than a whole line.
func WrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}

	var lines []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, string(cur))
			cur = nil
		}
	}

	for _, field := range strings.Fields(s) {
		word := []rune(field)

		switch {
		case len(cur) == 0 && len(word) <= width:
			cur = word
			continue
		case len(cur) > 0 && len(cur)+1+len(word) <= width:
			cur = append(append(cur, ' '), word...)
			continue
		case len(word) <= width:
			flush()
			cur = word
			continue
		}

		// Word longer than a line: fill what is left of the current line first.
		if len(cur) > 0 {
			if room := width - len(cur) - 1; room > 0 {
				cur = append(append(cur, ' '), word[:room]...)
				word = word[room:]
			}
			flush()
		}
		for len(word) > width {
			lines = append(lines, string(word[:width]))
			word = word[width:]
		}
		cur = word
	}
	flush()

	return lines
}
