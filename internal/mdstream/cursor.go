package mdstream

// Cursor reads an event sequence with a single token of pushback.
type Cursor struct {
	events []Event
	pos    int
	back   *Event
}

// NewCursor returns a cursor positioned at the first event.
func NewCursor(events []Event) *Cursor {
	return &Cursor{events: events}
}

// Next returns the next event, consuming a pushed-back event first.
// The second return value is false once the stream is exhausted.
func (c *Cursor) Next() (Event, bool) {
	if c.back != nil {
		ev := *c.back
		c.back = nil
		return ev, true
	}
	if c.pos >= len(c.events) {
		return Event{}, false
	}
	ev := c.events[c.pos]
	c.pos++
	return ev, true
}

// PushBack returns an event to the stream so the next call to Next yields
// it again. At most one event may be buffered; pushing a second one is a
// programming error.
func (c *Cursor) PushBack(ev Event) {
	if c.back != nil {
		panic("mdstream: double pushback")
	}
	c.back = &ev
}
