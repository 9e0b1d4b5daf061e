package status

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-vlist/style"
	"github.com/miosa/osa-vlist/ui/common"
)

// Model renders the status line under the list.
type Model struct {
	start, end int // -1 when the window is empty
	count      int
	total      int
	offset     int
	measured   int
	scrolling  bool
	live       bool
	filter     string
	notice     string
	width      int
}

func New() Model {
	return Model{start: -1, end: -1}
}

// SetWindow records the rendered index range and the collection size.
func (m *Model) SetWindow(start, end, count int) {
	m.start, m.end, m.count = start, end, count
}

// SetLayout records the total content height, scroll offset and how many
// items have real measurements.
func (m *Model) SetLayout(total, offset, measured int) {
	m.total, m.offset, m.measured = total, offset, measured
}

func (m *Model) SetScrolling(on bool)  { m.scrolling = on }
func (m *Model) SetLive(on bool)       { m.live = on }
func (m *Model) SetFilter(f string)    { m.filter = f }
func (m *Model) SetNotice(text string) { m.notice = text }
func (m *Model) SetWidth(w int)        { m.width = w }

// View renders "rows 3–16 of 10000 · height 61234 · offset 800 · measured 42"
// followed by any pills, truncated to the width.
func (m Model) View() string {
	var parts []string
	if m.start < 0 {
		parts = append(parts, pair("window", "empty"))
	} else {
		parts = append(parts, style.StatusLabel.Render("rows ")+
			style.StatusValue.Render(fmt.Sprintf("%d–%d", m.start, m.end))+
			style.StatusLabel.Render(fmt.Sprintf(" of %d", m.count)))
	}
	parts = append(parts,
		pair("height", fmt.Sprintf("%d", m.total)),
		pair("offset", fmt.Sprintf("%d", m.offset)),
		pair("measured", common.HumanCount(m.measured)),
	)
	if m.filter != "" {
		parts = append(parts, pair("filter", m.filter))
	}
	for _, p := range []string{LivePill(m.live), ScrollingPill(m.scrolling)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if m.notice != "" {
		parts = append(parts, style.ErrorText.Render(m.notice))
	}

	line := strings.Join(parts, style.StatusBar.Render(" · "))
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

func pair(label, value string) string {
	return style.StatusLabel.Render(label+" ") + style.StatusValue.Render(value)
}
