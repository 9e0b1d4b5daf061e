package feed

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderers keeps one glamour renderer per (width, theme). Creating a
// renderer parses a full style sheet, so it must not happen per item.
type renderers struct {
	byKey map[rendererKey]*glamour.TermRenderer
}

type rendererKey struct {
	width int
	dark  bool
}

func newRenderers() *renderers {
	return &renderers{byKey: make(map[rendererKey]*glamour.TermRenderer)}
}

// markdown renders md word-wrapped at width. It falls back to the raw text
// when glamour cannot render.
func (r *renderers) markdown(md string, width int, dark bool) string {
	if strings.TrimSpace(md) == "" || width <= 0 {
		return md
	}
	k := rendererKey{width: width, dark: dark}
	tr, ok := r.byKey[k]
	if !ok {
		styleName := "light"
		if dark {
			styleName = "dark"
		}
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(styleName),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		r.byKey[k] = tr
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	// glamour pads with blank lines top and bottom; cards add their own.
	return strings.Trim(out, "\n")
}
