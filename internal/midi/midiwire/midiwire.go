// Package midiwire converts short channel-voice wire messages into the raw
// event records the normalization pipeline consumes. Backends that receive
// plain MIDI bytes from their driver (CoreMIDI, winmm) share it; the ALSA
// backend decodes kernel records directly and never comes through here.
package midiwire

import (
	"time"

	"gitlab.com/gomidi/midi/v2"

	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// FromBytes interprets one wire message and synthesizes the matching raw
// record. tick is the backend's session-monotonic event counter and now the
// arrival wall clock.
//
// A note-on with velocity zero is a release on the wire and synthesizes a
// note-off record. Messages outside the modeled channel-voice set come back
// as records with an unmodeled type code, carrying timestamps only; they
// flow through the pipeline and classify as unknown. ok is false only for
// messages shorter than three bytes, which carry nothing this pipeline
// reports.
func FromBytes(data []byte, tick uint32, now time.Time) (contracts.RawEvent, bool) {
	if len(data) < 3 {
		return contracts.RawEvent{}, false
	}

	event := contracts.RawEvent{
		TickTime: tick,
		TimeSec:  uint32(now.Unix()),
		TimeNano: uint32(now.Nanosecond()),
	}

	message := midi.Message(data)
	var (
		channel, note, onVel  uint8
		controller, ctrlValue uint8
	)
	switch {
	case message.GetNoteStart(&channel, &note, &onVel):
		event.Type = contracts.RawNoteOn
		event.Note = contracts.RawNoteData{Channel: channel, Note: note, Velocity: onVel}
		event.Control = contracts.RawCtrlData{Channel: channel}
	case message.GetNoteEnd(&channel, &note):
		event.Type = contracts.RawNoteOff
		event.Note = contracts.RawNoteData{Channel: channel, Note: note, Velocity: data[2]}
		event.Control = contracts.RawCtrlData{Channel: channel}
	case message.GetControlChange(&channel, &controller, &ctrlValue):
		event.Type = contracts.RawController
		event.Control = contracts.RawCtrlData{Channel: channel, Param: uint32(controller), Value: int32(ctrlValue)}
		event.Note = contracts.RawNoteData{Channel: channel}
	}
	return event, true
}
