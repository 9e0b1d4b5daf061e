// Package common provides shared rendering helpers and formatting utilities
// used by the vlist UI components.
package common

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-vlist/style"
)

// CappedWidth returns width capped at maxWidth for readability.
// If maxWidth <= 0, 120 is used as the default cap.
func CappedWidth(width, maxWidth int) int {
	limit := maxWidth
	if limit <= 0 {
		limit = 120
	}
	if width > limit {
		return limit
	}
	return width
}

// Truncate shortens s to maxLen runes, appending "…" if truncated.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}

// PadRight pads s with spaces to width display columns.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Divider returns a horizontal rule of the given width rendered in the border color.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(style.Border).Render(strings.Repeat("─", width))
}

// HumanCount formats a count compactly.
//
//	1_250_000 → "1.2M"
//	3_400     → "3.4k"
//	250       → "250"
func HumanCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
