// Package msg defines the tea.Msg types dispatched within vlist.
// It has no upstream imports to avoid import cycles.
package msg

import "time"

// FeedTick asks the app to apply one live update to the feed.
type FeedTick struct {
	At time.Time
}

// ThemeChanged reports that the active theme switched.
type ThemeChanged struct {
	Name string
}

// ConfigSaved carries the outcome of persisting settings.
type ConfigSaved struct {
	Err error
}
