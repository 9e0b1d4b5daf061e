package virtual

// Trigger names the event that caused the engine state to change.
type Trigger int

const (
	TriggerConfig  Trigger = iota // construction or collection change
	TriggerScroll                 // scroll offset moved
	TriggerResize                 // viewport size changed
	TriggerMeasure                // a measurement changed a cached height
	TriggerIdle                   // scrolling debounce elapsed
)

func (t Trigger) String() string {
	switch t {
	case TriggerConfig:
		return "config"
	case TriggerScroll:
		return "scroll"
	case TriggerResize:
		return "resize"
	case TriggerMeasure:
		return "measure"
	case TriggerIdle:
		return "idle"
	default:
		return "unknown"
	}
}
