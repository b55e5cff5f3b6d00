package scratch

import "math"

// Contact is one pointer contact in host client coordinates.
type Contact struct {
	ClientX float64
	ClientY float64
}

// PointerEvent is a pointer or touch event delivered by the host. Only the
// first contact is used.
type PointerEvent struct {
	Contacts []Contact

	defaultPrevented bool
}

// NewPointerEvent returns an event with a single contact at (x, y).
func NewPointerEvent(x, y float64) *PointerEvent {
	return &PointerEvent{Contacts: []Contact{{ClientX: x, ClientY: y}}}
}

// PreventDefault marks the event as consumed so the host suppresses its
// default handling, such as scrolling.
func (e *PointerEvent) PreventDefault() {
	if e != nil {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *PointerEvent) DefaultPrevented() bool {
	return e != nil && e.defaultPrevented
}

// contact returns the primary contact.
func (e *PointerEvent) contact() (Contact, bool) {
	if e == nil || len(e.Contacts) == 0 {
		return Contact{}, false
	}
	return e.Contacts[0], true
}

// Stroke is one erasure sample in surface device pixels.
type Stroke struct {
	X      float64
	Y      float64
	Radius float64
}

// IsZero reports whether s is the empty sample produced by an event
// without contacts.
func (s Stroke) IsZero() bool {
	return s == Stroke{}
}

// MapPointer converts the first contact of ev to surface coordinates
// relative to anchor, scaled by ratio and rounded to two decimals. The
// radius is passed through unchanged. An event without contacts maps to
// the zero Stroke.
func MapPointer(ev *PointerEvent, anchor Rect, ratio, radius float64) Stroke {
	c, ok := ev.contact()
	if !ok {
		return Stroke{}
	}
	return Stroke{
		X:      round2(math.Abs(c.ClientX-anchor.Left) * ratio),
		Y:      round2(math.Abs(c.ClientY-anchor.Top) * ratio),
		Radius: radius,
	}
}

// gesture is the state of the stroke in progress.
type gesture struct {
	active bool
	anchor Rect
	last   Stroke
}

func (g *gesture) begin(anchor Rect) {
	g.active = true
	g.anchor = anchor
	g.last = Stroke{}
}

func (g *gesture) end() {
	g.active = false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
