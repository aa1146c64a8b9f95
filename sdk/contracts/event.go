package contracts

// RawEventType is the driver-level type discriminant carried by every raw
// sequencer event. The code namespace is the ALSA sequencer's; backends that
// speak plain wire MIDI synthesize the matching code for the channel-voice
// messages they deliver.
type RawEventType uint8

// Type codes the normalizer models. Any other code is legal on the wire and
// normalizes to KindUnknown.
const (
	RawNoteOn     RawEventType = 6  // Note pressed.
	RawNoteOff    RawEventType = 7  // Note released.
	RawController RawEventType = 10 // Continuous controller change.
)

// EventKind identifies the semantic category of a normalized event.
type EventKind uint8

const (
	// KindUnknown is the catch-all for raw event types the pipeline does not model.
	KindUnknown EventKind = iota
	// KindNoteOn marks a note press.
	KindNoteOn
	// KindNoteOff marks a note release.
	KindNoteOff
	// KindController marks a continuous controller change.
	KindController
)

// String returns the lower-case name of the kind.
func (k EventKind) String() string {
	switch k {
	case KindNoteOn:
		return "note-on"
	case KindNoteOff:
		return "note-off"
	case KindController:
		return "controller"
	default:
		return "unknown"
	}
}

// SeqAddr identifies a sequencer client and one of its ports.
type SeqAddr struct {
	Client uint8 // Sequencer client number.
	Port   uint8 // Port number within the client.
}

// RawNoteData is the note-message view of a raw event's payload.
type RawNoteData struct {
	Channel     uint8  // Channel the note plays on (0-15).
	Note        uint8  // MIDI note number (0-127).
	Velocity    uint8  // Note velocity (0-127).
	OffVelocity uint8  // Release velocity, for note events that carry one.
	Duration    uint32 // Note duration in ticks, for combined note events.
}

// RawCtrlData is the controller-message view of a raw event's payload.
type RawCtrlData struct {
	Channel uint8  // Channel the controller acts on (0-15).
	Param   uint32 // Controller (parameter) number.
	Value   int32  // Controller value.
}

// RawEvent is one event exactly as the driver session delivered it, decoded
// from the backend's native record at the session boundary. The payload
// bytes of the native record form a union; Note and Control expose both
// decodings of those bytes, so the normalizer can reproduce the driver's
// union semantics without touching driver memory again.
type RawEvent struct {
	Type     RawEventType // Driver type code.
	Flags    uint8        // Driver flag bits (timestamp and payload encoding).
	Tag      uint8        // Sender-assigned tag byte.
	Queue    uint8        // Queue the event was scheduled on.
	TickTime uint32       // Tick counter at arrival.
	TimeSec  uint32       // Wall-clock seconds at arrival.
	TimeNano uint32       // Wall-clock nanosecond remainder.
	Source   SeqAddr      // Emitting client and port.
	Dest     SeqAddr      // Receiving client and port.
	Note     RawNoteData  // Note view of the payload union.
	Control  RawCtrlData  // Controller view of the payload union.
}

// Event is the normalized, backend-independent MIDI event the pipeline
// produces. Only the fields matching Kind carry defined values; under the
// default LegacyCopy mode the remaining fields hold whatever bytes the
// driver's payload union contained and must not be interpreted.
type Event struct {
	Kind        EventKind // Semantic category of the event.
	TickTime    uint32    // Driver tick counter at arrival.
	TimeSec     uint32    // Wall-clock seconds at arrival (not monotonic across sessions).
	TimeNano    uint32    // Wall-clock nanosecond remainder.
	Note        uint8     // MIDI note number, note events only.
	Velocity    uint8     // Note velocity, note events only.
	OffVelocity uint8     // Release velocity, note events only.
	Duration    uint32    // Note duration in ticks, note events only.
	Param       uint32    // Controller number, controller events only.
	Value       int32     // Controller value, controller events only.
	Channel     uint8     // Channel index, channel-voice events only.
}
