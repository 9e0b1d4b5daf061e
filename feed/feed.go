// Package feed generates the demo collection shown by vlist: market notices
// with markdown bodies of uneven length, so that rendered heights differ
// from item to item and from the estimate.
package feed

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/miosa/osa-vlist/style"
	"github.com/miosa/osa-vlist/ui/common"
)

// namespace scopes item keys so the same index always yields the same key.
var namespace = uuid.MustParse("6f1d7a3e-2c0b-4e7a-9a51-0d3f5b8c1e42")

var (
	bases  = []string{"BTC", "ETH", "SOL", "XRP", "ADA", "DOGE", "DOT", "AVAX", "LINK", "ATOM", "NEAR", "APT", "ARB", "OP", "TON"}
	quotes = []string{"USDT", "USDC"}
	venues = []string{"binance", "bybit"}
	words  = strings.Fields(`order book depth spread listing maintenance deposit withdrawal
		network congestion wallet upgrade margin funding rate settlement contract
		delisting schedule liquidity incentive snapshot window announcement tier
		limit adjustment collateral index mark window notice latency engine`)
	headings = []string{"Notice", "Maintenance", "Funding", "Listing", "Network"}
)

// Item is one notice. It implements the list item interfaces of ui/list.
type Item struct {
	key      string
	index    int
	symbol   string
	venue    string
	severity int
	body     string
	updates  int
	version  int
	matches  []int
	feed     *Feed
}

func (it *Item) ID() string          { return it.key }
func (it *Item) ContentVersion() int { return it.version }

// Height is a flat estimate; real heights come from measuring Render.
func (it *Item) Height(int) int { return it.feed.estimate }

func (it *Item) Index() int     { return it.index }
func (it *Item) Symbol() string { return it.symbol }
func (it *Item) Venue() string  { return it.venue }
func (it *Item) Body() string   { return it.body }

func (it *Item) FilterValue() string { return it.symbol + " " + it.venue }

// SetMatches keeps the match positions that fall inside the symbol.
func (it *Item) SetMatches(indices []int) {
	var keep []int
	for _, i := range indices {
		if i < len(it.symbol) {
			keep = append(keep, i)
		}
	}
	if slices.Equal(keep, it.matches) {
		return
	}
	it.matches = keep
	it.version++
}

// Render draws the notice as a bordered card at most width columns wide.
func (it *Item) Render(width int) string {
	inner := max(width-4, 1)
	title := style.CardTitle.Render(common.HighlightMatches(it.symbol, it.matches))
	meta := style.CardMeta.Render(fmt.Sprintf("%s · #%d", it.venue, it.index))
	if it.updates > 0 {
		meta += style.CardMeta.Render(fmt.Sprintf(" · %d updates", it.updates))
	}
	body := it.feed.renderers.markdown(it.body, inner, it.feed.dark)
	content := lipgloss.JoinVertical(lipgloss.Left, title, meta, body)
	return style.Card(it.severity).Render(content)
}

// RenderPlaceholder draws a frame of exactly height lines carrying only the
// symbol. It skips markdown rendering entirely.
func (it *Item) RenderPlaceholder(width, height int) string {
	lines := make([]string, max(height, 1))
	lines[0] = style.CardPlaceholder.Render(common.Truncate("░ "+it.symbol, max(width, 1)))
	return strings.Join(lines, "\n")
}

// Feed owns the generated items and the shared markdown renderers.
type Feed struct {
	items     []*Item
	rng       *rand.Rand
	renderers *renderers
	estimate  int
	dark      bool
}

// New generates n items from seed. estimate is the height every item
// reports before it has been measured.
func New(n int, seed uint64, estimate int) *Feed {
	f := &Feed{
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		renderers: newRenderers(),
		estimate:  max(estimate, 1),
		dark:      true,
	}
	f.items = make([]*Item, max(n, 0))
	for i := range f.items {
		f.items[i] = f.generate(i)
	}
	return f
}

// Key returns the stable key of the item generated at index i.
func Key(i int) string {
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("item-%d", i))).String()
}

func (f *Feed) generate(i int) *Item {
	base := bases[f.rng.IntN(len(bases))]
	return &Item{
		key:      Key(i),
		index:    i,
		symbol:   base + quotes[f.rng.IntN(len(quotes))],
		venue:    venues[f.rng.IntN(len(venues))],
		severity: f.rng.IntN(3),
		body:     f.paragraphs(1 + f.rng.IntN(3)),
		version:  1,
		feed:     f,
	}
}

func (f *Feed) paragraphs(n int) string {
	var b strings.Builder
	b.WriteString("**" + headings[f.rng.IntN(len(headings))] + ":** ")
	for p := 0; p < n; p++ {
		if p > 0 {
			b.WriteString("\n\n")
		}
		if f.rng.IntN(4) == 0 {
			for j := 0; j < 1+f.rng.IntN(3); j++ {
				b.WriteString("- " + f.sentence(3+f.rng.IntN(5)) + "\n")
			}
			continue
		}
		b.WriteString(f.sentence(8 + f.rng.IntN(30)))
	}
	return b.String()
}

func (f *Feed) sentence(n int) string {
	ws := make([]string, n)
	for i := range ws {
		ws[i] = words[f.rng.IntN(len(words))]
	}
	s := strings.Join(ws, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

// Items returns the generated items in index order.
func (f *Feed) Items() []*Item { return f.items }

func (f *Feed) Len() int { return len(f.items) }

// SetDark switches the markdown style. Every item's version moves so cached
// renders are dropped.
func (f *Feed) SetDark(dark bool) {
	if dark == f.dark {
		return
	}
	f.dark = dark
	for _, it := range f.items {
		it.version++
	}
}

// Touch appends an update line to a random item and returns it. The item's
// height usually changes, which exercises re-measurement.
func (f *Feed) Touch() *Item {
	if len(f.items) == 0 {
		return nil
	}
	it := f.items[f.rng.IntN(len(f.items))]
	it.updates++
	it.body += fmt.Sprintf("\n\n_Update %d:_ %s", it.updates, f.sentence(4+f.rng.IntN(12)))
	it.version++
	return it
}
