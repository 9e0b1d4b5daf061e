package status

import "github.com/miosa/osa-vlist/style"

// ScrollingPill marks that the list is mid-scroll and may be showing
// placeholders. Returns an empty string when idle.
func ScrollingPill(on bool) string {
	if !on {
		return ""
	}
	return style.StatusScrolling.Render("scrolling")
}

// LivePill marks that simulated updates are running.
func LivePill(on bool) string {
	if !on {
		return ""
	}
	return style.StatusValue.Render("live")
}
