package app

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/osa-vlist/feed"
	"github.com/miosa/osa-vlist/logger"
	"github.com/miosa/osa-vlist/msg"
	"github.com/miosa/osa-vlist/style"
)

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func sized(t *testing.T, n int, opts Options) Model {
	t.Helper()
	m := New(feed.New(n, 1, 6), opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model)
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, x := range msgs {
		var next tea.Model
		next, cmd = m.Update(x)
		m = next.(Model)
	}
	return m, cmd
}

func TestComputeLayout_Browse(t *testing.T) {
	l := ComputeLayout(100, 30, false)
	if l.ListWidth != 99 {
		t.Errorf("want list width 99, got %d", l.ListWidth)
	}
	if l.ListHeight != 26 {
		t.Errorf("want list height 26, got %d", l.ListHeight)
	}
}

func TestComputeLayout_FilterTakesALine(t *testing.T) {
	if l := ComputeLayout(100, 30, true); l.ListHeight != 25 {
		t.Errorf("want list height 25 with filter open, got %d", l.ListHeight)
	}
}

func TestComputeLayout_Bounds(t *testing.T) {
	if l := ComputeLayout(400, 30, false); l.ListWidth != listMaxWidth {
		t.Errorf("want width capped at %d, got %d", listMaxWidth, l.ListWidth)
	}
	l := ComputeLayout(5, 2, false)
	if l.ListWidth != listMinWidth || l.ListHeight != listMinHeight {
		t.Errorf("want minimums, got %dx%d", l.ListWidth, l.ListHeight)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	name := style.ThemeNames[0]
	for range style.ThemeNames {
		name = nextTheme(name)
	}
	if name != style.ThemeNames[0] {
		t.Errorf("want cycle back to %q, got %q", style.ThemeNames[0], name)
	}
}

func TestState_String(t *testing.T) {
	if StateFilter.String() != "filter" || State(9).String() != "unknown" {
		t.Error("unexpected state names")
	}
}

func TestModel_WindowSizeMeasuresVisibleRows(t *testing.T) {
	m := sized(t, 500, Options{})
	l := m.list.List()
	if l.Measured() == 0 {
		t.Fatal("want rows measured after the first layout")
	}
	if l.Measured() >= 500 {
		t.Error("only the window should be measured")
	}
	if w := l.Window(); w.StartIndex != 0 {
		t.Errorf("want window starting at 0, got %d", w.StartIndex)
	}
}

func TestModel_KeysScroll(t *testing.T) {
	m := sized(t, 200, Options{})
	m, _ = send(m, press('j'), press('j'))
	if off := m.list.List().Offset(); off != 2 {
		t.Errorf("want offset 2 after jj, got %d", off)
	}
	m, _ = send(m, press('k'))
	if off := m.list.List().Offset(); off != 1 {
		t.Errorf("want offset 1 after k, got %d", off)
	}
	m, _ = send(m, press('G'))
	if !m.list.List().AtBottom() {
		t.Error("want bottom after G")
	}
	m, _ = send(m, press('g'))
	if off := m.list.List().Offset(); off != 0 {
		t.Errorf("want offset 0 after g, got %d", off)
	}
}

func TestModel_ScrollArmsTimer(t *testing.T) {
	m := sized(t, 200, Options{ScrollingDelay: 50 * time.Millisecond})
	m, cmd := send(m, press('d'))
	if !m.list.List().IsScrolling() {
		t.Error("want scrolling after d")
	}
	if cmd == nil {
		t.Error("want the idle timer command returned")
	}
}

func TestModel_Filter(t *testing.T) {
	m := sized(t, 300, Options{})
	m, _ = send(m, press('/'))
	if m.state != StateFilter {
		t.Fatalf("want filter state, got %s", m.state)
	}
	m, _ = send(m, press('b'), press('t'), press('c'))
	if m.list.Filter() != "btc" {
		t.Fatalf("want filter 'btc', got %q", m.list.Filter())
	}
	got := m.list.FilteredItems()
	if len(got) == 0 || len(got) == 300 {
		t.Fatalf("want a strict subset, got %d items", len(got))
	}
	for _, it := range got {
		if !strings.Contains(strings.ToLower(it.(*feed.Item).Symbol()), "btc") {
			t.Errorf("item %s does not match", it.(*feed.Item).Symbol())
		}
	}

	m, _ = send(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.state != StateBrowse || m.list.Filter() != "btc" {
		t.Errorf("enter should keep the filter, state=%s filter=%q", m.state, m.list.Filter())
	}
	m, _ = send(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.list.Filter() != "" || len(m.list.FilteredItems()) != 300 {
		t.Error("esc should clear the filter")
	}
}

func TestModel_LiveTickUpdatesAnItem(t *testing.T) {
	m := sized(t, 1, Options{LiveInterval: time.Second})
	it := m.feed.Items()[0]
	v := it.ContentVersion()
	m, cmd := send(m, msg.FeedTick{At: time.Now()})
	if it.ContentVersion() == v {
		t.Error("want the item updated by the tick")
	}
	if cmd == nil {
		t.Error("want the next tick scheduled")
	}
	if m.list.List().Measured() != 1 {
		t.Errorf("want the updated item re-measured, got %d", m.list.List().Measured())
	}
}

func TestModel_LiveTickIgnoredWhenOff(t *testing.T) {
	m := sized(t, 1, Options{})
	it := m.feed.Items()[0]
	v := it.ContentVersion()
	_, cmd := send(m, msg.FeedTick{})
	if it.ContentVersion() != v || cmd != nil {
		t.Error("tick should be ignored while live updates are off")
	}
}

func TestModel_CycleTheme(t *testing.T) {
	style.SetTheme("dark")
	t.Cleanup(func() { style.SetTheme("dark") })

	m := sized(t, 10, Options{})
	_, cmd := send(m, press('t'))
	if cmd == nil {
		t.Fatal("want a theme change command")
	}
	changed, ok := cmd().(msg.ThemeChanged)
	if !ok || changed.Name != "light" {
		t.Fatalf("want ThemeChanged{light}, got %#v", changed)
	}
	if style.CurrentThemeName != "light" {
		t.Errorf("want light theme applied, got %q", style.CurrentThemeName)
	}
}

func TestModel_ConfigSaveFailureShowsNotice(t *testing.T) {
	m := sized(t, 10, Options{})
	m, _ = send(m, msg.ConfigSaved{Err: errors.New("disk full")})
	if m.notice == "" {
		t.Error("want a notice after a failed save")
	}
	m, _ = send(m, press('j'))
	if m.notice != "" {
		t.Error("notice should clear on the next key")
	}
}

func TestModel_LogsCarrySessionAttributes(t *testing.T) {
	var buf bytes.Buffer
	m := sized(t, 10, Options{Logger: logger.New(&buf, slog.LevelDebug)})
	send(m, msg.ConfigSaved{Err: errors.New("disk full")})

	out := buf.String()
	if !strings.Contains(out, "saving config failed") {
		t.Fatalf("want the save failure logged, got %q", out)
	}
	if !strings.Contains(out, "component=app items=10") {
		t.Errorf("want session attributes on the record, got %q", out)
	}
}

func TestModel_ViewShowsStatus(t *testing.T) {
	m := sized(t, 50, Options{})
	out := ansi.Strip(m.renderView())
	if !strings.Contains(out, "rows 0–") {
		t.Errorf("want window range in status, got:\n%s", out)
	}
	if !strings.Contains(out, "of 50") {
		t.Errorf("want item count in status, got:\n%s", out)
	}
	if lines := strings.Count(out, "\n") + 1; lines != 30 {
		t.Errorf("want a 30 line frame, got %d", lines)
	}
}

func TestModel_ViewEmptyFilter(t *testing.T) {
	m := sized(t, 20, Options{})
	m.list.SetFilter("zzzz")
	if out := ansi.Strip(m.renderView()); !strings.Contains(out, `no items match "zzzz"`) {
		t.Errorf("want empty notice, got:\n%s", out)
	}
}
