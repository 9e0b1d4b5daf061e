package common

import (
	"strings"

	"github.com/miosa/osa-vlist/style"
)

const (
	scrollTrackChar = "│"
	scrollThumbChar = "█"
)

// Scrollbar renders a vertical scrollbar one column wide and height rows
// tall for content of total lines scrolled to offset. The thumb is sized
// and positioned proportionally. When the content fits, the result is a
// blank column so layouts keep their width.
func Scrollbar(height, total, offset int) string {
	if height <= 0 {
		return ""
	}
	if total <= height {
		return strings.TrimSuffix(strings.Repeat(" \n", height), "\n")
	}

	thumbH := max(height*height/total, 1)
	scrollable := total - height
	thumbTop := offset * (height - thumbH) / scrollable
	thumbTop = max(0, min(thumbTop, height-thumbH))

	rows := make([]string, height)
	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbH {
			rows[i] = style.ScrollbarThumb.Render(scrollThumbChar)
		} else {
			rows[i] = style.ScrollbarTrack.Render(scrollTrackChar)
		}
	}
	return strings.Join(rows, "\n")
}
