package midi

import (
	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// Normalizer maps raw driver events into the backend-independent Event
// form. It owns the single cursor slot: every Normalize overwrites the same
// Event value, so the pointer it hands out stays valid while its contents
// change underneath. Callers that keep an event copy it out first.
type Normalizer struct {
	mode contracts.CopyMode
	slot *contracts.Event
}

// NewNormalizer allocates the cursor slot up front; the slot's address
// never changes for the life of the normalizer.
func NewNormalizer(mode contracts.CopyMode) *Normalizer {
	return &Normalizer{mode: mode, slot: new(contracts.Event)}
}

// KindOf maps a driver type code to its semantic category. Codes outside
// the modeled set map to KindUnknown; there is no failure case.
func KindOf(t contracts.RawEventType) contracts.EventKind {
	switch t {
	case contracts.RawNoteOn:
		return contracts.KindNoteOn
	case contracts.RawNoteOff:
		return contracts.KindNoteOff
	case contracts.RawController:
		return contracts.KindController
	default:
		return contracts.KindUnknown
	}
}

// Normalize decodes raw into the cursor slot and returns the slot. The
// slot's previous contents are gone after this call.
func (n *Normalizer) Normalize(raw contracts.RawEvent) *contracts.Event {
	n.NormalizeInto(raw, n.slot)
	return n.slot
}

// NormalizeInto is the caller-owned-buffer variant: dst receives the
// normalized event and the cursor slot is left alone.
func (n *Normalizer) NormalizeInto(raw contracts.RawEvent, dst *contracts.Event) {
	kind := KindOf(raw.Type)

	if n.mode == contracts.GuardedCopy {
		*dst = contracts.Event{
			Kind:     kind,
			TickTime: raw.TickTime,
			TimeSec:  raw.TimeSec,
			TimeNano: raw.TimeNano,
		}
		switch kind {
		case contracts.KindNoteOn, contracts.KindNoteOff:
			dst.Note = raw.Note.Note
			dst.Velocity = raw.Note.Velocity
			dst.OffVelocity = raw.Note.OffVelocity
			dst.Duration = raw.Note.Duration
			dst.Channel = raw.Note.Channel
		case contracts.KindController:
			dst.Param = raw.Control.Param
			dst.Value = raw.Control.Value
			dst.Channel = raw.Control.Channel
		}
		return
	}

	// Legacy mode writes every field from both payload views on every
	// event. Fields that do not belong to the kind receive the driver's
	// unioned payload bytes; no field is ever stale, but the off-kind ones
	// are undefined for the caller.
	dst.Kind = kind
	dst.TickTime = raw.TickTime
	dst.TimeSec = raw.TimeSec
	dst.TimeNano = raw.TimeNano
	dst.Note = raw.Note.Note
	dst.Velocity = raw.Note.Velocity
	dst.OffVelocity = raw.Note.OffVelocity
	dst.Duration = raw.Note.Duration
	dst.Param = raw.Control.Param
	dst.Value = raw.Control.Value
	dst.Channel = raw.Note.Channel
}

// Current returns the cursor slot. Before the first Normalize it holds the
// zero event, whose kind is KindUnknown.
func (n *Normalizer) Current() *contracts.Event {
	return n.slot
}
