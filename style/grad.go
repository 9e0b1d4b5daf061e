package style

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// LerpColor linearly interpolates between two colors at position t ∈ [0,1].
func LerpColor(a, b color.Color, t float64) color.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()

	// RGBA() returns values in [0, 65535]. Convert to [0, 255].
	lerp := func(x, y uint32) uint8 {
		v := float64(x>>8)*(1-t) + float64(y>>8)*t
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}

	return color.NRGBA{
		R: lerp(ar, br),
		G: lerp(ag, bg),
		B: lerp(ab, bb),
		A: lerp(aa, ba),
	}
}

// nrgbaToHex converts a color.Color to a CSS hex string "#RRGGBB".
// Alpha is ignored for terminal compatibility.
func nrgbaToHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}

// GradientTextBold renders bold text with a left-to-right color gradient
// from `from` to `to`, coloring each rune individually.
func GradientTextBold(text string, from, to color.Color) string {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return ""
	}
	if n == 1 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(nrgbaToHex(from))).Bold(true).Render(text)
	}

	var sb strings.Builder
	for i, r := range runes {
		c := LerpColor(from, to, float64(i)/float64(n-1))
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(nrgbaToHex(c))).Bold(true).Render(string(r)))
	}
	return sb.String()
}

// ApplyBoldForegroundGrad applies the theme gradient in bold.
func ApplyBoldForegroundGrad(s string) string {
	return GradientTextBold(s, GradColorA, GradColorB)
}
