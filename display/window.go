package display

import "image"

// EventType identifies what happened to a window.
type EventType int

const (
	// EventNone is the zero event.
	EventNone EventType = iota
	// EventClosed is queued when the user asks for the window to close.
	EventClosed
)

func (t EventType) String() string {
	switch t {
	case EventClosed:
		return "closed"
	case EventNone:
		return "none"
	default:
		return "unknown"
	}
}

// Event is something the window observed since the last poll.
type Event struct {
	Type EventType
}

// A Window shows a texture at a fixed set of placements.
type Window interface {
	// Display replaces what the window shows.
	Display(tex image.Image, placements []image.Rectangle) error
	// PollEvents returns and clears the queued events.
	PollEvents() []Event
	IsOpen() bool
	Close() error
}
