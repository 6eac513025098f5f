package generative

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxIdeaLines bounds how many lines are kept from a text response.
const MaxIdeaLines = 10

// bulletMarker matches "-", "*", "•", "1.", "2)", "3 -" and similar prefixes.
var bulletMarker = regexp.MustCompile(`^\s*(?:[-*•·]+|\d+\s*[.):-]|\(\d+\))\s*`)

// SplitIdeas turns a newline delimited text block into at most limit trimmed
// lines with their list markers removed. Blank lines are skipped.
func SplitIdeas(text string, limit int) []string {
	if limit <= 0 || limit > MaxIdeaLines {
		limit = MaxIdeaLines
	}

	lines := make([]string, 0, limit)
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(bulletMarker.ReplaceAllString(line, ""))
		line = strings.Trim(line, `*"`)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == limit {
			break
		}
	}
	return lines
}

// ideaSeed identifies line i of a text response that carries no seed of its own.
func ideaSeed(i int) string {
	return "idea-" + strconv.Itoa(i+1)
}
