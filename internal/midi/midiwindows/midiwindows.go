// Package midiwindows implements the driver session on the winmm MIDI API.
// It bridges winmm's callback delivery into the blocking read the pipeline
// expects.
package midiwindows

import "errors"

// Error definitions for session establishment. winmm has no port concept,
// so its establishment steps are opening the device and starting input.
var (
	ErrNoInputDevices = errors.New("no MIDI input devices found")
	ErrOpenDevice     = errors.New("could not open MIDI input device")
	ErrStartInput     = errors.New("could not start MIDI input")
)
