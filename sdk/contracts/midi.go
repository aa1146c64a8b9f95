package contracts

import "errors"

// ErrSessionClosed is returned by reads against a session that has been
// closed. It is the session's terminal condition, not a failure.
var ErrSessionClosed = errors.New("MIDI session closed")

// Session is an established connection to a system MIDI backend with one
// input port accepting peer subscriptions. Sessions are opened once;
// establishment failures are terminal and carry no retry policy.
type Session interface {
	// ReadEvent blocks the calling goroutine until the driver delivers the
	// next raw event. It never busy-polls: while the caller is away, events
	// queue inside the driver, not in this layer. After Close, ReadEvent
	// returns ErrSessionClosed.
	ReadEvent() (RawEvent, error)

	// Addr reports the session's own client and port address for
	// diagnostics. Backends without numeric addressing report the zero
	// address.
	Addr() SeqAddr

	// Close releases the input port and the driver handle, unblocking any
	// pending ReadEvent. Closing twice is safe.
	Close() error
}

// Listener is the capture pipeline around a session: it reads raw events,
// normalizes them into the single event cursor, reports them, and hands
// them to the caller.
//
// Listener methods are not safe for concurrent readers. One goroutine reads
// (directly or through StartCapture); any goroutine may Stop.
type Listener interface {
	// Read performs one blocking read-normalize-report cycle and returns
	// the cursor. The pointer stays valid for the listener's lifetime, but
	// its contents are overwritten by the next cycle; callers that keep an
	// event copy it out first.
	Read() (*Event, error)

	// Current returns the cursor without reading: the most recently
	// normalized event, or the zero event before the first cycle.
	Current() *Event

	// StartCapture launches a background read loop that delivers a value
	// copy of each captured event to eventChannel, subject to the
	// configured event filter. A full channel drops the event with a
	// warning rather than stalling the loop.
	StartCapture(eventChannel chan Event)

	// Stop closes the session, unblocking any in-flight read, and waits
	// for the capture loop to drain. Safe to call more than once.
	Stop() error
}
