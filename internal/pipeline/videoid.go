package pipeline

import (
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID accepts a bare id or a watch/short/embed URL.
// Input without a recognizable id is passed through trimmed and cut at the first '&'.
func ExtractVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if m := videoIDPattern.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	id, _, _ := strings.Cut(input, "&")
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyVideoID
	}
	return id, nil
}
