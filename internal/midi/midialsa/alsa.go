// Package midialsa implements the Linux driver session on the kernel
// sequencer character device. It registers a named client with one
// subscribable input port and turns the kernel's fixed-size event records
// into raw events for the normalization pipeline.
package midialsa

import (
	"encoding/binary"
	"errors"

	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// Establishment step failures. Each maps to exactly one step of the session
// handshake; callers treat all three as terminal.
var (
	// ErrOpenSequencer covers opening the device and the protocol handshake.
	ErrOpenSequencer = errors.New("could not open sequencer")
	// ErrSetClientName covers registering the client name.
	ErrSetClientName = errors.New("could not set client name")
	// ErrCreatePort covers creating the subscribable input port.
	ErrCreatePort = errors.New("could not open port")
)

// ErrTruncatedEvent reports a record shorter than its declared size. The
// read loop treats it as a partial read and tops the buffer up.
var ErrTruncatedEvent = errors.New("truncated sequencer event")

const (
	// eventSize is sizeof(struct snd_seq_event): the kernel writes events
	// in whole cells of this size on every architecture.
	eventSize = 28

	// Payload-length encoding bits inside the event flags.
	flagLengthMask     = 0x0c
	flagLengthFixed    = 0x00
	flagLengthVariable = 0x04
)

// decodeEvent decodes one kernel sequencer record from the front of buf.
// It returns the decoded event and the total number of bytes the record
// occupies in the stream, including any cell-padded variable payload.
//
// The record's twelve payload bytes are a union; both the note and the
// controller view are decoded so downstream copy modes can reproduce the
// kernel's union semantics. The timestamp is a union as well: the tick
// counter aliases the seconds word, so TickTime and TimeSec always decode
// equal and the flags say which one is meaningful.
func decodeEvent(buf []byte) (contracts.RawEvent, int, error) {
	if len(buf) < eventSize {
		return contracts.RawEvent{}, 0, ErrTruncatedEvent
	}

	order := binary.NativeEndian
	event := contracts.RawEvent{
		Type:     contracts.RawEventType(buf[0]),
		Flags:    buf[1],
		Tag:      buf[2],
		Queue:    buf[3],
		TickTime: order.Uint32(buf[4:8]),
		TimeSec:  order.Uint32(buf[4:8]),
		TimeNano: order.Uint32(buf[8:12]),
		Source:   contracts.SeqAddr{Client: buf[12], Port: buf[13]},
		Dest:     contracts.SeqAddr{Client: buf[14], Port: buf[15]},
	}

	payload := buf[16:eventSize]
	event.Note = contracts.RawNoteData{
		Channel:     payload[0],
		Note:        payload[1],
		Velocity:    payload[2],
		OffVelocity: payload[3],
		Duration:    order.Uint32(payload[4:8]),
	}
	event.Control = contracts.RawCtrlData{
		Channel: payload[0],
		Param:   order.Uint32(payload[4:8]),
		Value:   int32(order.Uint32(payload[8:12])),
	}

	size := eventSize
	if event.Flags&flagLengthMask == flagLengthVariable {
		// Variable-length payloads ride behind the record, padded to whole
		// cells; their byte length sits in the first payload word.
		size += eventCells(int(order.Uint32(payload[0:4]))) * eventSize
		if len(buf) < size {
			return contracts.RawEvent{}, 0, ErrTruncatedEvent
		}
	}
	return event, size, nil
}

// eventCells returns how many whole event cells n payload bytes occupy.
func eventCells(n int) int {
	return (n + eventSize - 1) / eventSize
}
