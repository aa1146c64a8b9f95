package midialsa

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/OwenCochell/midilisten/sdk/contracts"
)

type recordSpec struct {
	typ     uint8
	flags   uint8
	tag     uint8
	queue   uint8
	time0   uint32
	time1   uint32
	source  [2]uint8
	dest    [2]uint8
	payload [12]byte
}

func encodeRecord(spec recordSpec) []byte {
	buf := make([]byte, eventSize)
	buf[0], buf[1], buf[2], buf[3] = spec.typ, spec.flags, spec.tag, spec.queue
	binary.NativeEndian.PutUint32(buf[4:8], spec.time0)
	binary.NativeEndian.PutUint32(buf[8:12], spec.time1)
	buf[12], buf[13] = spec.source[0], spec.source[1]
	buf[14], buf[15] = spec.dest[0], spec.dest[1]
	copy(buf[16:], spec.payload[:])
	return buf
}

func notePayload(channel, note, velocity, offVelocity uint8, duration uint32) [12]byte {
	var p [12]byte
	p[0], p[1], p[2], p[3] = channel, note, velocity, offVelocity
	binary.NativeEndian.PutUint32(p[4:8], duration)
	return p
}

func ctrlPayload(channel uint8, param uint32, value int32) [12]byte {
	var p [12]byte
	p[0] = channel
	binary.NativeEndian.PutUint32(p[4:8], param)
	binary.NativeEndian.PutUint32(p[8:12], uint32(value))
	return p
}

func TestDecodeNoteEvent(t *testing.T) {
	buf := encodeRecord(recordSpec{
		typ:     uint8(contracts.RawNoteOn),
		tag:     3,
		queue:   1,
		time0:   100,
		time1:   500,
		source:  [2]uint8{24, 0},
		dest:    [2]uint8{128, 0},
		payload: notePayload(1, 0x40, 0x7f, 0x20, 250),
	})

	event, n, err := decodeEvent(buf)
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}
	if n != eventSize {
		t.Fatalf("consumed %d bytes, want %d", n, eventSize)
	}
	if event.Type != contracts.RawNoteOn {
		t.Errorf("Type = %d, want %d", event.Type, contracts.RawNoteOn)
	}
	if event.Tag != 3 || event.Queue != 1 {
		t.Errorf("tag/queue = %d/%d, want 3/1", event.Tag, event.Queue)
	}
	if event.TickTime != 100 || event.TimeNano != 500 {
		t.Errorf("time = %d/%d, want 100/500", event.TickTime, event.TimeNano)
	}
	if event.TickTime != event.TimeSec {
		t.Errorf("tick %d and seconds %d must alias the same word", event.TickTime, event.TimeSec)
	}
	if event.Source != (contracts.SeqAddr{Client: 24}) {
		t.Errorf("Source = %+v, want client 24 port 0", event.Source)
	}
	if event.Dest != (contracts.SeqAddr{Client: 128}) {
		t.Errorf("Dest = %+v, want client 128 port 0", event.Dest)
	}

	note := event.Note
	if note.Channel != 1 || note.Note != 0x40 || note.Velocity != 0x7f || note.OffVelocity != 0x20 || note.Duration != 250 {
		t.Errorf("Note view = %+v", note)
	}
}

func TestDecodeControllerEvent(t *testing.T) {
	tests := []struct {
		name  string
		value int32
	}{
		{name: "positive value", value: 100},
		{name: "negative value survives the round trip", value: -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := encodeRecord(recordSpec{
				typ:     uint8(contracts.RawController),
				time0:   50,
				payload: ctrlPayload(2, 7, tt.value),
			})

			event, _, err := decodeEvent(buf)
			if err != nil {
				t.Fatalf("decodeEvent: %v", err)
			}
			ctrl := event.Control
			if ctrl.Channel != 2 || ctrl.Param != 7 || ctrl.Value != tt.value {
				t.Errorf("Control view = %+v", ctrl)
			}
		})
	}
}

// Both payload views decode the same twelve bytes, so the aliased fields
// must agree no matter which kind of event the record carries.
func TestDecodeViewsShareUnionBytes(t *testing.T) {
	tests := []struct {
		name    string
		payload [12]byte
	}{
		{name: "note payload", payload: notePayload(1, 0x40, 0x7f, 0, 7)},
		{name: "controller payload", payload: ctrlPayload(1, 7, 0x7f)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, _, err := decodeEvent(encodeRecord(recordSpec{typ: 6, payload: tt.payload}))
			if err != nil {
				t.Fatalf("decodeEvent: %v", err)
			}
			if event.Note.Channel != event.Control.Channel {
				t.Errorf("channel views disagree: %d vs %d", event.Note.Channel, event.Control.Channel)
			}
			if event.Note.Duration != event.Control.Param {
				t.Errorf("duration %d and param %d must alias the same word", event.Note.Duration, event.Control.Param)
			}
		})
	}
}

func TestDecodeConsecutiveRecords(t *testing.T) {
	buf := append(
		encodeRecord(recordSpec{typ: 6, time0: 1, payload: notePayload(0, 10, 20, 0, 0)}),
		encodeRecord(recordSpec{typ: 7, time0: 2, payload: notePayload(0, 10, 0, 0, 0)})...,
	)

	first, n, err := decodeEvent(buf)
	if err != nil {
		t.Fatalf("first decode: %v", err)
	}
	second, m, err := decodeEvent(buf[n:])
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if first.Type != 6 || second.Type != 7 {
		t.Errorf("types = %d, %d, want 6, 7", first.Type, second.Type)
	}
	if n+m != len(buf) {
		t.Errorf("consumed %d bytes, want %d", n+m, len(buf))
	}
}

func TestDecodeVariableLengthEvent(t *testing.T) {
	// A sysex event (type 130) declares 5 payload bytes, which occupy one
	// full trailing cell.
	var payload [12]byte
	binary.NativeEndian.PutUint32(payload[0:4], 5)
	record := encodeRecord(recordSpec{typ: 130, flags: flagLengthVariable, time0: 9, payload: payload})
	buf := append(record, make([]byte, eventSize)...)

	event, n, err := decodeEvent(buf)
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}
	if n != 2*eventSize {
		t.Errorf("consumed %d bytes, want %d", n, 2*eventSize)
	}
	if event.Type != 130 || event.TickTime != 9 {
		t.Errorf("event = %+v", event)
	}

	// Without the trailing cell the record is incomplete.
	if _, _, err := decodeEvent(record); !errors.Is(err, ErrTruncatedEvent) {
		t.Errorf("truncated variable event: err = %v, want ErrTruncatedEvent", err)
	}
}

func TestDecodeShortBuffer(t *testing.T) {
	buf := encodeRecord(recordSpec{typ: 6})
	if _, _, err := decodeEvent(buf[:eventSize-1]); !errors.Is(err, ErrTruncatedEvent) {
		t.Errorf("short buffer: err = %v, want ErrTruncatedEvent", err)
	}
}

func TestEventCells(t *testing.T) {
	tests := []struct {
		bytes, cells int
	}{
		{0, 0},
		{1, 1},
		{eventSize, 1},
		{eventSize + 1, 2},
		{3 * eventSize, 3},
	}
	for _, tt := range tests {
		if got := eventCells(tt.bytes); got != tt.cells {
			t.Errorf("eventCells(%d) = %d, want %d", tt.bytes, got, tt.cells)
		}
	}
}
