package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-vlist/feed"
	"github.com/miosa/osa-vlist/logger"
	"github.com/miosa/osa-vlist/msg"
	"github.com/miosa/osa-vlist/style"
	"github.com/miosa/osa-vlist/ui/common"
	"github.com/miosa/osa-vlist/ui/header"
	"github.com/miosa/osa-vlist/ui/list"
	"github.com/miosa/osa-vlist/ui/status"
)

// Options configures the root model.
type Options struct {
	Version        string
	Gap            int
	Overscan       int
	ScrollingDelay time.Duration

	// LiveInterval is the period of simulated feed updates. Zero starts
	// with live updates off; the toggle key then uses defaultLiveInterval.
	LiveInterval time.Duration

	// SaveTheme persists the theme after the user cycles it. Optional.
	SaveTheme func(name string) error

	Logger logger.Logger
}

const defaultLiveInterval = time.Second

// Model is the root Bubble Tea model: header, virtualized list with
// scrollbar, status line, optional filter prompt and key help.
type Model struct {
	feed   *feed.Feed
	header header.Model
	list   list.FilterableList
	filter textinput.Model
	status status.Model

	keys   KeyMap
	state  State
	layout Layout
	opts   Options
	log    logger.Logger
	ctx    context.Context // carries the log attributes of this session

	live   bool
	notice string
	width  int
	height int
}

// New constructs the root Model over f.
func New(f *feed.Feed, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	ti := textinput.New()
	ti.Placeholder = "symbol or venue"
	ti.Prompt = "/ "
	s := ti.Styles()
	s.Focused.Prompt = style.FilterPrompt
	ti.SetStyles(s)

	m := Model{
		feed: f,
		list: list.NewFilterableList(
			list.WithGap(opts.Gap),
			list.WithOverscan(opts.Overscan),
			list.WithScrollingDelay(opts.ScrollingDelay),
			list.WithLogger(opts.Logger),
		),
		header: header.NewHeader(opts.Version),
		filter: ti,
		status: status.New(),
		keys:   DefaultKeyMap(),
		opts:   opts,
		log:    opts.Logger,
		ctx:    logger.WithDefaultArgs(context.Background(), "component", "app", "items", f.Len()),
		live:   opts.LiveInterval > 0,
	}
	f.SetDark(style.IsDark())
	m.list.SetItems(listItems(f))
	return m
}

func listItems(f *feed.Feed) []list.Item {
	items := make([]list.Item, f.Len())
	for i, it := range f.Items() {
		items[i] = it
	}
	return items
}

// Init starts live updates when enabled.
func (m Model) Init() tea.Cmd {
	if m.live {
		return m.tick()
	}
	return nil
}

func (m Model) tick() tea.Cmd {
	d := m.opts.LiveInterval
	if d <= 0 {
		d = defaultLiveInterval
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return msg.FeedTick{At: t} })
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.relayout()
		return m, m.listCmd()

	case tea.MouseClickMsg, tea.MouseWheelMsg:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(v)
		return m, cmd

	case tea.KeyPressMsg:
		if m.state == StateFilter {
			return m.handleFilterKey(v)
		}
		return m.handleBrowseKey(v)

	case msg.FeedTick:
		if !m.live {
			return m, nil
		}
		if it := m.feed.Touch(); it != nil {
			m.list.List().UpdateItem(it.ID(), it)
		}
		return m, tea.Batch(m.tick(), m.listCmd())

	case msg.ThemeChanged:
		m.feed.SetDark(style.IsDark())
		m.list.List().InvalidateCache()
		m.log.InfoCtx(m.ctx, "theme changed", "theme", v.Name)
		var save tea.Cmd
		if m.opts.SaveTheme != nil {
			name := v.Name
			fn := m.opts.SaveTheme
			save = func() tea.Msg { return msg.ConfigSaved{Err: fn(name)} }
		}
		return m, tea.Batch(save, m.listCmd())

	case msg.ConfigSaved:
		if v.Err != nil {
			m.log.ErrorCtx(m.ctx, "saving config failed", "err", v.Err)
			m.notice = "could not save settings"
		}
		return m, nil
	}

	// Everything else belongs to the list (its own timers, mostly).
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(rawMsg)
	return m, cmd
}

func (m *Model) relayout() {
	m.layout = ComputeLayout(m.width, m.height, m.state == StateFilter)
	m.list.SetSize(m.layout.ListWidth, m.layout.ListHeight)
	m.filter.SetWidth(max(m.layout.ListWidth-4, 1))
	m.header.SetWidth(m.layout.ListWidth + scrollbarWidth)
	m.status.SetWidth(m.width)
}

func (m *Model) listCmd() tea.Cmd {
	return m.list.List().Cmd()
}

func (m Model) handleBrowseKey(k tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	l := m.list.List()
	m.notice = ""
	switch {
	case key.Matches(k, m.keys.Quit):
		l.Close()
		return m, tea.Quit
	case key.Matches(k, m.keys.ScrollDown):
		l.ScrollDown(1)
	case key.Matches(k, m.keys.ScrollUp):
		l.ScrollUp(1)
	case key.Matches(k, m.keys.HalfPageDown):
		l.HalfPageDown()
	case key.Matches(k, m.keys.HalfPageUp):
		l.HalfPageUp()
	case key.Matches(k, m.keys.PageDown):
		l.PageDown()
	case key.Matches(k, m.keys.PageUp):
		l.PageUp()
	case key.Matches(k, m.keys.ScrollTop):
		l.ScrollToTop()
	case key.Matches(k, m.keys.ScrollBottom):
		l.ScrollToBottom()
	case key.Matches(k, m.keys.Escape):
		if m.list.Filter() != "" {
			m.filter.SetValue("")
			m.list.SetFilter("")
		}
	case key.Matches(k, m.keys.Filter):
		m.state = StateFilter
		m.relayout()
		return m, tea.Batch(m.filter.Focus(), m.listCmd())
	case key.Matches(k, m.keys.CycleTheme):
		name := nextTheme(style.CurrentThemeName)
		style.SetTheme(name)
		return m, func() tea.Msg { return msg.ThemeChanged{Name: name} }
	case key.Matches(k, m.keys.ToggleLive):
		m.live = !m.live
		m.log.DebugCtx(m.ctx, "live updates toggled", "live", m.live)
		if m.live {
			return m, m.tick()
		}
	}
	return m, m.listCmd()
}

func (m Model) handleFilterKey(k tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Escape):
		m.filter.SetValue("")
		m.list.SetFilter("")
		return m.closeFilter()
	case key.Matches(k, m.keys.Accept):
		return m.closeFilter()
	}

	prev := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(k)
	if v := m.filter.Value(); v != prev {
		m.list.SetFilter(v)
		m.log.DebugCtx(m.ctx, "filter changed", "filter", v, "matches", len(m.list.FilteredItems()))
	}
	return m, tea.Batch(cmd, m.listCmd())
}

func (m Model) closeFilter() (tea.Model, tea.Cmd) {
	m.filter.Blur()
	m.state = StateBrowse
	m.relayout()
	return m, m.listCmd()
}

func nextTheme(current string) string {
	i := slices.Index(style.ThemeNames, current)
	return style.ThemeNames[(i+1)%len(style.ThemeNames)]
}

// -- View ---------------------------------------------------------------------

// View returns the tea.View for the current frame.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderView())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) renderView() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.list.List()

	body := l.View()
	if l.Len() == 0 {
		body = style.Faint.Render(fmt.Sprintf("no items match %q", m.list.Filter()))
	}
	pane := lipgloss.NewStyle().
		Width(m.layout.ListWidth).
		Height(m.layout.ListHeight).
		MaxHeight(m.layout.ListHeight).
		Render(body)
	bar := common.Scrollbar(m.layout.ListHeight, l.TotalHeight(), l.Offset())

	m.syncStatus()
	sections := []string{
		m.header.HeaderView(),
		lipgloss.JoinHorizontal(lipgloss.Top, pane, bar),
		m.status.View(),
	}
	if m.state == StateFilter {
		sections = append(sections, m.filter.View())
	}
	sections = append(sections, m.renderHelp())
	return strings.Join(sections, "\n")
}

// syncStatus copies list state into the header and status models.
func (m *Model) syncStatus() {
	l := m.list.List()
	w := l.Window()
	m.header.SetItems(m.feed.Len())
	m.header.SetTheme(style.CurrentThemeName)
	m.status.SetWindow(w.StartIndex, w.EndIndex, l.Len())
	m.status.SetLayout(l.TotalHeight(), l.Offset(), l.Measured())
	m.status.SetScrolling(l.IsScrolling())
	m.status.SetLive(m.live)
	filter := m.list.Filter()
	if m.state == StateFilter {
		filter = ""
	}
	m.status.SetFilter(filter)
	m.status.SetNotice(m.notice)
}

func (m Model) renderHelp() string {
	if m.state == StateFilter {
		return common.KeyHelp(m.keys.Accept, m.keys.Escape)
	}
	return common.KeyHelp(
		m.keys.ScrollDown, m.keys.ScrollUp, m.keys.HalfPageDown, m.keys.HalfPageUp,
		m.keys.ScrollTop, m.keys.ScrollBottom, m.keys.Filter, m.keys.CycleTheme,
		m.keys.ToggleLive, m.keys.Quit,
	)
}
