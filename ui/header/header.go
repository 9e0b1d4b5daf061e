package header

import (
	"strings"

	"github.com/miosa/osa-vlist/style"
	"github.com/miosa/osa-vlist/ui/common"
)

// Model holds the state for the one-line header.
type Model struct {
	version string
	items   int
	theme   string
	width   int
}

// NewHeader returns a Model for the given program version.
func NewHeader(version string) Model {
	return Model{version: version}
}

// SetItems updates the displayed collection size.
func (m *Model) SetItems(n int) { m.items = n }

// SetTheme updates the displayed theme name.
func (m *Model) SetTheme(name string) { m.theme = name }

// SetWidth updates the width used for the separator.
func (m *Model) SetWidth(w int) { m.width = w }

// View returns the title line: "vlist dev · 10.0k notices · dark".
func (m Model) View() string {
	title := style.ApplyBoldForegroundGrad("vlist")
	parts := []string{style.HeaderVersion.Render(m.version)}
	parts = append(parts, style.HeaderDetail.Render(common.HumanCount(m.items)+" notices"))
	if m.theme != "" {
		parts = append(parts, style.HeaderVersion.Render(m.theme))
	}
	return title + " " + strings.Join(parts, style.HeaderSeparator.Render(" · "))
}

// HeaderView returns the title line plus a thin separator line.
func (m Model) HeaderView() string {
	return m.View() + "\n" + common.Divider(m.width)
}
