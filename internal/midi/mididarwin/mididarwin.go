// Package mididarwin implements the driver session on CoreMIDI for macOS.
// It bridges CoreMIDI's callback delivery into the blocking read the
// pipeline expects.
package mididarwin

import "errors"

// Error definitions for session establishment and packet handling.
var (
	ErrCreateClient         = errors.New("could not create MIDI client")
	ErrCreateInputPort      = errors.New("could not create input port")
	ErrSourceConnection     = errors.New("could not connect MIDI source")
	ErrIncompleteMIDIPacket = errors.New("incomplete MIDI packet")
)
