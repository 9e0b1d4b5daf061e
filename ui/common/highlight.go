package common

import (
	"sort"
	"strings"

	"github.com/miosa/osa-vlist/style"
)

// HighlightMatches renders s with the byte positions in indices drawn in
// the Match style. Consecutive positions are rendered as one span. Positions
// outside s are ignored.
func HighlightMatches(s string, indices []int) string {
	if len(indices) == 0 || s == "" {
		return s
	}
	idx := append([]int(nil), indices...)
	sort.Ints(idx)

	var out strings.Builder
	prev := 0
	for i := 0; i < len(idx); {
		start := idx[i]
		if start < prev || start >= len(s) {
			i++
			continue
		}
		end := start + 1
		i++
		for i < len(idx) && idx[i] == end && end < len(s) {
			end++
			i++
		}
		out.WriteString(s[prev:start])
		out.WriteString(style.Match.Render(s[start:end]))
		prev = end
	}
	out.WriteString(s[prev:])
	return out.String()
}
