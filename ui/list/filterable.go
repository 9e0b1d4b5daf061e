package list

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Filterable items expose the text a filter is matched against. Items that
// don't implement it are matched on their ID.
type Filterable interface {
	FilterValue() string
}

// MatchSettable items support match highlighting. SetMatches receives the
// byte positions of the match within FilterValue, or nil to clear. An item
// that changes its rendering must also bump its ContentVersion.
type MatchSettable interface {
	SetMatches(indices []int)
}

// FilterableList wraps a Model with substring filtering. Matching items keep
// their original order, so measurements taken before the filter was applied
// still line up by ID.
type FilterableList struct {
	list     Model
	allItems []Item
	filter   string
	visible  []Item
}

// NewFilterableList constructs a FilterableList over a list built from opts.
func NewFilterableList(opts ...Option) FilterableList {
	return FilterableList{list: New(opts...)}
}

// SetItems replaces the full item set and re-applies the current filter.
func (fl *FilterableList) SetItems(items []Item) {
	fl.allItems = append(fl.allItems[:0:0], items...)
	fl.applyFilter()
}

// SetFilter updates the filter string and re-computes visible items.
func (fl *FilterableList) SetFilter(filter string) {
	if filter == fl.filter {
		return
	}
	fl.filter = filter
	fl.applyFilter()
	fl.list.ScrollToTop()
}

// Filter returns the current filter string.
func (fl FilterableList) Filter() string {
	return fl.filter
}

// FilteredItems returns the items currently passing the filter (in order).
func (fl FilterableList) FilteredItems() []Item {
	return append([]Item(nil), fl.visible...)
}

// Total returns the number of items before filtering.
func (fl FilterableList) Total() int {
	return len(fl.allItems)
}

// List gives access to the wrapped list for scrolling and inspection.
func (fl *FilterableList) List() *Model {
	return &fl.list
}

// SetSize updates the viewport dimensions of the underlying list.
func (fl *FilterableList) SetSize(w, h int) {
	fl.list.SetSize(w, h)
}

// Update forwards tea.Msg to the underlying list model.
func (fl FilterableList) Update(msg tea.Msg) (FilterableList, tea.Cmd) {
	var cmd tea.Cmd
	fl.list, cmd = fl.list.Update(msg)
	return fl, cmd
}

// View renders the filtered list.
func (fl FilterableList) View() string {
	return fl.list.View()
}

func (fl *FilterableList) applyFilter() {
	if fl.filter == "" {
		for _, item := range fl.allItems {
			if ms, ok := item.(MatchSettable); ok {
				ms.SetMatches(nil)
			}
		}
		fl.visible = append(fl.visible[:0:0], fl.allItems...)
		fl.list.SetItems(fl.visible)
		return
	}

	needle := strings.ToLower(fl.filter)
	fl.visible = fl.visible[:0:0]
	for _, item := range fl.allItems {
		indices := substringIndices(strings.ToLower(filterValue(item)), needle)
		if ms, ok := item.(MatchSettable); ok {
			ms.SetMatches(indices)
		}
		if indices != nil {
			fl.visible = append(fl.visible, item)
		}
	}
	fl.list.SetItems(fl.visible)
}

func filterValue(item Item) string {
	if f, ok := item.(Filterable); ok {
		return f.FilterValue()
	}
	return item.ID()
}

// substringIndices returns the byte positions in s covered by the first
// occurrence of p, or nil if p does not occur. Both must already be folded
// to the same case.
func substringIndices(s, p string) []int {
	if p == "" {
		return []int{}
	}
	idx := strings.Index(s, p)
	if idx < 0 {
		return nil
	}
	positions := make([]int, len(p))
	for i := range p {
		positions[i] = idx + i
	}
	return positions
}
