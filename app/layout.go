package app

const (
	// listMaxWidth caps the card column for readability on wide terminals.
	listMaxWidth = 120

	// Minimum list pane size; enforced even if the frame overflows.
	listMinWidth  = 20
	listMinHeight = 3

	scrollbarWidth = 1
)

// Layout holds computed dimensions for the current frame.
type Layout struct {
	TermWidth    int
	TermHeight   int
	HeaderHeight int // header line + separator
	StatusHeight int
	FilterHeight int // 0 unless the filter prompt is open
	HelpHeight   int
	ListWidth    int
	ListHeight   int
}

// ComputeLayout calculates the layout dimensions based on terminal size and
// whether the filter prompt is shown. The list takes whatever height is
// left over, and its width leaves one column for the scrollbar.
func ComputeLayout(termW, termH int, filtering bool) Layout {
	l := Layout{
		TermWidth:    termW,
		TermHeight:   termH,
		HeaderHeight: 2,
		StatusHeight: 1,
		HelpHeight:   1,
	}
	if filtering {
		l.FilterHeight = 1
	}

	l.ListWidth = min(termW-scrollbarWidth, listMaxWidth)
	if l.ListWidth < listMinWidth {
		l.ListWidth = listMinWidth
	}

	reserved := l.HeaderHeight + l.StatusHeight + l.FilterHeight + l.HelpHeight
	l.ListHeight = termH - reserved
	if l.ListHeight < listMinHeight {
		l.ListHeight = listMinHeight
	}
	return l
}
