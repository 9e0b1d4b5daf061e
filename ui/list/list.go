// Package list provides a virtualized, scrollable list widget for terminal
// UIs. Layout is delegated to a virtual.Engine: the widget only renders the
// engine's window, measures what it rendered and reports the real heights
// back, so estimates are replaced by measurements as items come into view.
//
// Key properties:
//   - Items are identified by ID; measurements and renders follow the ID, not
//     the index, so reordering or filtering keeps known heights.
//   - Only the rows of the current window (visible range plus overscan) are
//     ever rendered.
//   - Rendered strings live in a bounded LRU keyed by (ID, width, version).
//   - While the engine reports IsScrolling, unmeasured rows of items that
//     implement Placeholder are drawn as cheap placeholders.
//   - Gap lines between items are configurable and factored into all
//     height/scroll calculations.
package list

import (
	"math"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/miosa/osa-vlist/logger"
	"github.com/miosa/osa-vlist/virtual"
)

// ---------------------------------------------------------------------------
// Public interfaces
// ---------------------------------------------------------------------------

// Item is anything the list can render.
type Item interface {
	// ID returns a unique, stable identifier used as the layout key.
	ID() string

	// ContentVersion returns a monotonically increasing integer. When this
	// value changes the cached render for this item is discarded.
	ContentVersion() int

	// Height returns an estimate of the rendered height in terminal lines for
	// the given width. It is only used until the item has been rendered.
	Height(width int) int

	// Render returns the rendered string for the given width.
	// The result must be stable for the same (width, ContentVersion) pair.
	Render(width int) string
}

// Placeholder items can stand in with a cheap rendering of a given height
// while the list is being scrolled.
type Placeholder interface {
	RenderPlaceholder(width, height int) string
}

// MouseClickable items can handle click events.
type MouseClickable interface {
	HandleClick(x, y int) tea.Cmd
}

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Option is a functional option for New.
type Option func(*Model)

// WithWidth sets the initial viewport width.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// WithHeight sets the initial viewport height (number of terminal lines
// visible at once).
func WithHeight(h int) Option {
	return func(m *Model) { m.height = h }
}

// WithGap sets the number of blank lines inserted between consecutive items.
func WithGap(g int) Option {
	return func(m *Model) {
		if g >= 0 {
			m.gap = g
		}
	}
}

// WithOverscan sets how many items beyond each edge of the viewport are
// rendered ahead of time.
func WithOverscan(n int) Option {
	return func(m *Model) {
		if n >= 0 {
			m.overscan = n
		}
	}
}

// WithScrollingDelay sets how long after the last scroll the list still
// counts as scrolling.
func WithScrollingDelay(d time.Duration) Option {
	return func(m *Model) {
		if d >= 0 {
			m.delay = d
		}
	}
}

// WithRenderCacheSize bounds the number of rendered strings kept around.
func WithRenderCacheSize(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.cacheSize = n
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(m *Model) { m.log = l }
}

// ---------------------------------------------------------------------------
// Cache
// ---------------------------------------------------------------------------

type renderKey struct {
	id      string
	width   int
	version int
}

const (
	defaultCacheSize = 512

	// maxSyncPasses bounds the render/measure loop. Each pass can only move
	// the window when a measurement differs from what was assumed.
	maxSyncPasses = 8
)

// itemSet is shared with the engine's key and estimate callbacks, so it is
// always read at call time.
type itemSet struct {
	items []Item
	width int
}

func (s *itemSet) key(i int) string { return s.items[i].ID() }

func (s *itemSet) estimate(i int) float64 {
	h := s.items[i].Height(s.width)
	if h <= 0 {
		h = 1
	}
	return float64(h)
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is a virtualized scrollable list.
// The zero value is not usable; construct with New.
type Model struct {
	width  int
	height int

	// gap is the number of blank lines between items.
	gap      int
	overscan int
	delay    time.Duration

	cacheSize int
	log       logger.Logger

	data    *itemSet
	box     *container
	sched   *scheduler
	engine  *virtual.Engine[string]
	renders *lru.Cache[renderKey, string]
}

// New constructs a Model with the supplied options.
func New(opts ...Option) Model {
	m := Model{
		overscan:  virtual.DefaultOverscan,
		cacheSize: defaultCacheSize,
		data:      &itemSet{},
		box:       newContainer(),
		sched:     newScheduler(),
	}
	for _, o := range opts {
		o(&m)
	}
	if m.log == nil {
		m.log = logger.Discard()
	}
	m.renders, _ = lru.New[renderKey, string](m.cacheSize)
	m.data.width = m.width
	m.box.size = float64(max(m.height, 0))
	m.rebuild()
	return m
}

// rebuild replaces the engine, dropping every measurement. Measurements are
// only valid for the width they were taken at.
func (m *Model) rebuild() {
	if m.engine != nil {
		m.engine.Close()
	}
	box := m.box
	e, err := virtual.New(len(m.data.items), m.data.key,
		virtual.WithEstimateItemHeight(m.data.estimate),
		virtual.WithGap(float64(m.gap)),
		virtual.WithOverscan(m.overscan),
		virtual.WithScrollingDelay(m.delay),
		virtual.WithScheduler(m.sched),
		virtual.WithScrollingElement(func() virtual.Element { return box }),
		virtual.WithLogger(m.log),
	)
	if err != nil {
		// Options are clamped above, so only a broken invariant gets here.
		panic(err)
	}
	m.engine = e
	m.engine.Observe()
	m.sync()
}

// Close stops the engine. The list must not be used afterwards.
func (m *Model) Close() {
	m.engine.Close()
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// SetSize updates the viewport dimensions. Measurements and renders are
// discarded when the width changes because every item wraps differently.
func (m *Model) SetSize(w, h int) {
	h = max(h, 0)
	if w != m.width {
		m.width = w
		m.data.width = w
		m.renders.Purge()
		m.height = h
		m.box.size = float64(h)
		m.rebuild()
		return
	}
	m.height = h
	m.box.resize(float64(h))
	m.sync()
}

// SetItems replaces the item slice wholesale. Known heights are kept for
// items whose ID survives.
func (m *Model) SetItems(items []Item) {
	m.data.items = items
	m.setCount()
}

// AppendItem adds a single item to the end of the list.
func (m *Model) AppendItem(item Item) {
	m.data.items = append(m.data.items, item)
	m.setCount()
}

// PrependItems inserts items at the beginning of the list (for loading history).
// The scroll position is adjusted to keep the currently-visible content stable.
func (m *Model) PrependItems(items []Item) {
	if len(items) == 0 {
		return
	}
	m.data.items = append(append([]Item(nil), items...), m.data.items...)
	m.setCount()
	if shift, ok := m.engine.OffsetOf(len(items)); ok {
		m.box.scrollTo(m.box.offset+shift, m.maxOffset())
		m.sync()
	}
}

// UpdateItem replaces the item with the given id in-place and invalidates
// its cached render. If the id is not found, the call is a no-op.
func (m *Model) UpdateItem(id string, item Item) {
	for i, existing := range m.data.items {
		if existing.ID() == id {
			m.data.items[i] = item
			m.invalidate(id)
			m.sync()
			return
		}
	}
}

func (m *Model) setCount() {
	if err := m.engine.SetItems(len(m.data.items), m.data.key); err != nil {
		m.log.Error("list: updating items failed", "err", err)
	}
	m.sync()
}

// ---------------------------------------------------------------------------
// Scroll
// ---------------------------------------------------------------------------

// ScrollDown moves the viewport down by lines lines.
func (m *Model) ScrollDown(lines int) {
	if lines <= 0 {
		return
	}
	m.scrollTo(m.box.offset + float64(lines))
}

// ScrollUp moves the viewport up by lines lines.
func (m *Model) ScrollUp(lines int) {
	if lines <= 0 {
		return
	}
	m.scrollTo(m.box.offset - float64(lines))
}

// PageDown scrolls down by one full viewport height.
func (m *Model) PageDown() { m.ScrollDown(m.height) }

// PageUp scrolls up by one full viewport height.
func (m *Model) PageUp() { m.ScrollUp(m.height) }

// HalfPageDown scrolls down by half the viewport height.
func (m *Model) HalfPageDown() { m.ScrollDown(m.height / 2) }

// HalfPageUp scrolls up by half the viewport height.
func (m *Model) HalfPageUp() { m.ScrollUp(m.height / 2) }

// ScrollToTop positions the viewport at the very first item.
func (m *Model) ScrollToTop() { m.scrollTo(0) }

// ScrollToBottom positions the viewport so the last item is fully visible.
// Items measured on the way down can grow the list, so it keeps following
// the bottom until the layout settles.
func (m *Model) ScrollToBottom() {
	for pass := 0; pass < maxSyncPasses; pass++ {
		m.scrollTo(m.maxOffset())
		if m.AtBottom() {
			return
		}
	}
}

// ScrollToIndex puts the top of item index at the top of the viewport, as
// far as the content allows.
func (m *Model) ScrollToIndex(index int) {
	if off, ok := m.engine.OffsetOf(index); ok {
		m.scrollTo(off)
	}
}

// AtBottom reports whether the viewport is showing the end of the list.
func (m Model) AtBottom() bool {
	return m.box.offset >= m.maxOffset()
}

func (m *Model) scrollTo(offset float64) {
	m.box.scrollTo(offset, m.maxOffset())
	m.sync()
}

func (m Model) maxOffset() float64 {
	return math.Max(0, m.engine.TotalHeight()-float64(m.height))
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Offset returns the scroll offset in lines.
func (m Model) Offset() int { return int(m.box.offset) }

// TotalHeight returns the height of the whole list in lines, measured where
// known and estimated elsewhere.
func (m Model) TotalHeight() int { return int(math.Ceil(m.engine.TotalHeight())) }

// IsScrolling reports whether the list was scrolled within the scrolling delay.
func (m Model) IsScrolling() bool { return m.engine.IsScrolling() }

// Window returns the engine's current window.
func (m Model) Window() virtual.Window[string] { return m.engine.Window() }

// Measured returns how many items have a real height recorded.
func (m Model) Measured() int { return m.engine.Measurements() }

// Len returns the number of items.
func (m Model) Len() int { return len(m.data.items) }

// Items returns the current item slice.
func (m Model) Items() []Item { return m.data.items }

// ---------------------------------------------------------------------------
// Position helpers
// ---------------------------------------------------------------------------

// ItemIndexAtPosition resolves a y coordinate (relative to the top of the
// viewport) to the index of the item rendered at that line. Returns -1 if
// the coordinate is out of range or falls on a gap line.
func (m Model) ItemIndexAtPosition(y int) int {
	if y < 0 || y >= m.height {
		return -1
	}
	line := m.box.offset + float64(y)
	for _, row := range m.engine.Window().Rows {
		if line >= row.OffsetTop && line < row.Bottom() {
			return row.Index
		}
	}
	return -1
}

// VisibleItemIndices returns the indices of items currently in the viewport,
// leaving out the overscan rows.
func (m Model) VisibleItemIndices() []int {
	if m.height <= 0 {
		return nil
	}
	top := m.box.offset
	bottom := top + float64(m.height)
	var result []int
	for _, row := range m.engine.Window().Rows {
		if row.Bottom() > top && row.OffsetTop < bottom {
			result = append(result, row.Index)
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Cache management
// ---------------------------------------------------------------------------

// InvalidateCache forces all cached renders to be discarded.
func (m *Model) InvalidateCache() {
	m.renders.Purge()
	m.sync()
}

// InvalidateItem discards the cached render for the item with the given id.
func (m *Model) InvalidateItem(id string) {
	m.invalidate(id)
	m.sync()
}

func (m *Model) invalidate(id string) {
	for _, k := range m.renders.Keys() {
		if k.id == id {
			m.renders.Remove(k)
		}
	}
}

// ---------------------------------------------------------------------------
// Update (bubbletea)
// ---------------------------------------------------------------------------

// Update handles mouse wheel events for scrolling and the list's own timer
// messages. Callers forward whichever tea.Msg events they want the list to
// respond to.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.ScrollUp(3)
		case tea.MouseWheelDown:
			m.ScrollDown(3)
		}
	case tea.MouseClickMsg:
		// Forward click events to MouseClickable items.
		idx := m.ItemIndexAtPosition(msg.Y)
		if idx >= 0 && idx < len(m.data.items) {
			if mc, ok := m.data.items[idx].(MouseClickable); ok {
				return m, tea.Batch(mc.HandleClick(msg.X, msg.Y), m.Cmd())
			}
		}
	case timerMsg:
		if msg.owner == m.sched && m.sched.fire(msg.id) {
			m.sync()
		}
	}
	return m, m.Cmd()
}

// Cmd returns the timer commands armed since the last call. Callers that
// drive the list through its methods instead of Update must return it from
// their own Update.
func (m Model) Cmd() tea.Cmd {
	return m.sched.flush()
}

// ---------------------------------------------------------------------------
// Measurement
// ---------------------------------------------------------------------------

// sync renders the current window, reports the measured heights and repeats
// until the window stops moving.
func (m *Model) sync() {
	for pass := 0; pass < maxSyncPasses; pass++ {
		before := m.engine.Window()
		m.measure(before)
		m.box.clamp(m.maxOffset())
		after := m.engine.Window()
		if before.StartIndex == after.StartIndex &&
			before.EndIndex == after.EndIndex &&
			before.TotalHeight == after.TotalHeight {
			return
		}
	}
	m.log.Debug("list: layout did not settle", "passes", maxSyncPasses)
}

func (m *Model) measure(w virtual.Window[string]) {
	if m.width <= 0 {
		return
	}
	scrolling := m.engine.IsScrolling()
	for _, row := range w.Rows {
		if row.Index >= len(m.data.items) {
			continue
		}
		item := m.data.items[row.Index]
		if scrolling && !row.Measured && !m.cached(item) {
			if _, ok := item.(Placeholder); ok {
				continue
			}
		}
		h := lipgloss.Height(m.renderItem(item))
		if err := m.engine.ReportMeasurement(row.Index, float64(h)); err != nil {
			m.log.Warn("list: measurement rejected", "index", row.Index, "err", err)
		}
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders only the rows of the engine's window that intersect the
// viewport. Items outside the window are skipped entirely.
func (m Model) View() string {
	if m.height <= 0 || m.width <= 0 || len(m.data.items) == 0 {
		return ""
	}

	lines := make([]string, m.height)
	top := int(m.box.offset)
	scrolling := m.engine.IsScrolling()

	for _, row := range m.engine.Window().Rows {
		if row.Index >= len(m.data.items) {
			continue
		}
		item := m.data.items[row.Index]
		var rendered string
		if p, ok := item.(Placeholder); ok && scrolling && !row.Measured && !m.cached(item) {
			rendered = p.RenderPlaceholder(m.width, max(int(row.Height), 1))
		} else {
			rendered = m.renderItem(item)
		}
		start := int(row.OffsetTop) - top
		for j, line := range splitLines(rendered) {
			y := start + j
			if y < 0 {
				continue
			}
			if y >= m.height {
				break
			}
			lines[y] = line
		}
	}

	return strings.Join(lines, "\n")
}

// ---------------------------------------------------------------------------
// Render helpers
// ---------------------------------------------------------------------------

func (m Model) cached(item Item) bool {
	return m.renders.Contains(renderKey{id: item.ID(), width: m.width, version: item.ContentVersion()})
}

// renderItem returns the cached or freshly rendered content for an item.
func (m Model) renderItem(item Item) string {
	if m.width <= 0 {
		return ""
	}
	k := renderKey{id: item.ID(), width: m.width, version: item.ContentVersion()}
	if s, ok := m.renders.Get(k); ok {
		return s
	}
	rendered := item.Render(m.width)
	m.renders.Add(k, rendered)
	return rendered
}

// splitLines splits a rendered string into individual lines.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}
