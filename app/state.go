package app

// State represents the current application state.
type State int

const (
	StateBrowse State = iota // Scrolling the list
	StateFilter              // Typing into the filter prompt
)

func (s State) String() string {
	switch s {
	case StateBrowse:
		return "browse"
	case StateFilter:
		return "filter"
	default:
		return "unknown"
	}
}
