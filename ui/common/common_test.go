package common

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
)

func TestScrollbar_FitsContent(t *testing.T) {
	out := Scrollbar(4, 3, 0)
	if lipgloss.Height(out) != 4 {
		t.Errorf("want 4 rows, got %d", lipgloss.Height(out))
	}
	if strings.Contains(out, scrollThumbChar) {
		t.Error("no thumb expected when content fits")
	}
}

func TestScrollbar_ThumbAtEnds(t *testing.T) {
	top := strings.Split(Scrollbar(10, 100, 0), "\n")
	if !strings.Contains(top[0], scrollThumbChar) {
		t.Error("want thumb on the first row at offset 0")
	}
	bottom := strings.Split(Scrollbar(10, 100, 90), "\n")
	if !strings.Contains(bottom[9], scrollThumbChar) {
		t.Error("want thumb on the last row at the end")
	}
}

func TestScrollbar_ZeroHeight(t *testing.T) {
	if out := Scrollbar(0, 10, 0); out != "" {
		t.Errorf("want empty, got %q", out)
	}
}

func TestHighlightMatches_KeepsText(t *testing.T) {
	s := "apple pie"
	out := HighlightMatches(s, []int{6, 7, 8})
	if !strings.HasPrefix(out, "apple ") {
		t.Errorf("want unmatched prefix kept, got %q", out)
	}
	if lipgloss.Width(out) != len(s) {
		t.Errorf("want width %d, got %d", len(s), lipgloss.Width(out))
	}
}

func TestHighlightMatches_IgnoresOutOfRange(t *testing.T) {
	if out := HighlightMatches("abc", []int{10}); out != "abc" {
		t.Errorf("want input unchanged, got %q", out)
	}
	if out := HighlightMatches("abc", nil); out != "abc" {
		t.Errorf("want input unchanged, got %q", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hell…" {
		t.Errorf("want 'hell…', got %q", got)
	}
	if got := Truncate("hi", 5); got != "hi" {
		t.Errorf("want 'hi', got %q", got)
	}
}

func TestHumanCount(t *testing.T) {
	cases := map[int]string{250: "250", 3400: "3.4k", 1_250_000: "1.2M"}
	for n, want := range cases {
		if got := HumanCount(n); got != want {
			t.Errorf("HumanCount(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestKeyHelp_SkipsDisabled(t *testing.T) {
	on := key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	off := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"))
	off.SetEnabled(false)
	out := KeyHelp(on, off)
	if !strings.Contains(out, "quit") || strings.Contains(out, "hidden") {
		t.Errorf("unexpected help line %q", out)
	}
}
