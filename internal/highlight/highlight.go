package highlight

import (
	"regexp"
	"strings"
)

var ansiCSI = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]`)

// Apply highlights case-insensitive matches of query in the visible text.
// ANSI escape sequences pass through untouched and never match.
func Apply(input, query string, wrap func(string) string) (string, int) {
	query = strings.TrimSpace(query)
	if query == "" || input == "" {
		return input, 0
	}
	if wrap == nil {
		wrap = func(s string) string { return s }
	}

	indices := ansiCSI.FindAllStringIndex(input, -1)
	if len(indices) == 0 {
		return applyPlain(input, query, wrap)
	}

	var out strings.Builder
	total := 0
	pos := 0
	for _, idx := range indices {
		if idx[0] > pos {
			plain, n := applyPlain(input[pos:idx[0]], query, wrap)
			out.WriteString(plain)
			total += n
		}
		out.WriteString(input[idx[0]:idx[1]])
		pos = idx[1]
	}
	if pos < len(input) {
		plain, n := applyPlain(input[pos:], query, wrap)
		out.WriteString(plain)
		total += n
	}
	return out.String(), total
}

func applyPlain(s, query string, wrap func(string) string) (string, int) {
	lower := strings.ToLower(s)
	q := strings.ToLower(query)
	if !strings.Contains(lower, q) {
		return s, 0
	}

	var out strings.Builder
	count := 0
	start := 0
	for {
		rel := strings.Index(lower[start:], q)
		if rel < 0 {
			out.WriteString(s[start:])
			break
		}
		idx := start + rel
		end := idx + len(q)
		out.WriteString(s[start:idx])
		out.WriteString(wrap(s[idx:end]))
		count++
		start = end
	}
	return out.String(), count
}
