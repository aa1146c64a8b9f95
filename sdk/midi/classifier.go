package midi

import (
	"fmt"

	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// Classifier inspects normalized events, reports one diagnostic line per
// event, and routes each event to its registered handler. It is total:
// every event lands in exactly one of the four categories, and reporting
// has no failure path.
type Classifier struct {
	logger   contracts.Logger
	handlers contracts.EventHandlers
}

// NewClassifier builds a classifier reporting through logger. handlers may
// be nil; so may any individual callback.
func NewClassifier(logger contracts.Logger, handlers *contracts.EventHandlers) *Classifier {
	c := &Classifier{logger: logger}
	if handlers != nil {
		c.handlers = *handlers
	}
	return c
}

// Classify reports event and dispatches it, returning its category.
func (c *Classifier) Classify(event *contracts.Event) contracts.EventKind {
	c.logger.Info(EventLine(event))

	switch event.Kind {
	case contracts.KindNoteOn:
		if c.handlers.NoteOn != nil {
			c.handlers.NoteOn(event.TickTime, event.Note, event.Velocity)
		}
	case contracts.KindNoteOff:
		if c.handlers.NoteOff != nil {
			c.handlers.NoteOff(event.TickTime, event.Note, event.Velocity)
		}
	case contracts.KindController:
		if c.handlers.Controller != nil {
			c.handlers.Controller(event.TickTime, event.Param, event.Value)
		}
	default:
		if c.handlers.Unknown != nil {
			c.handlers.Unknown(event.TickTime)
		}
	}
	return event.Kind
}

// EventLine renders the one-line diagnostic form of a normalized event.
// Note numbers and velocities print in hex, controller parameters and
// values in decimal. The line is for humans; nothing should parse it.
func EventLine(event *contracts.Event) string {
	switch event.Kind {
	case contracts.KindNoteOn:
		return fmt.Sprintf("[%d] Note on : %2x vel(%2x)", event.TickTime, event.Note, event.Velocity)
	case contracts.KindNoteOff:
		return fmt.Sprintf("[%d] Note off: %2x vel(%2x)", event.TickTime, event.Note, event.Velocity)
	case contracts.KindController:
		return fmt.Sprintf("[%d] Control: %d val(%d)", event.TickTime, event.Param, event.Value)
	default:
		return fmt.Sprintf("[%d] Unknown: Unhandled Event Received", event.TickTime)
	}
}
