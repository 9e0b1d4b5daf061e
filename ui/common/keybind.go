package common

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/miosa/osa-vlist/style"
)

// KeyHelp renders a formatted key-binding help line for the status bar.
// Each binding is rendered as:
//
//	[key]  description
//
// Bindings whose Enabled() is false are omitted.
func KeyHelp(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		keyStr := style.HelpKey.Render("[" + b.Help().Key + "]")
		helpStr := style.HelpDesc.Render(" " + b.Help().Desc)
		parts = append(parts, keyStr+helpStr)
	}
	return strings.Join(parts, style.HelpSeparator.Render("  ·  "))
}
