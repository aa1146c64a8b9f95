package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/OwenCochell/midilisten/internal/midi/midialsa"
	"github.com/OwenCochell/midilisten/internal/midi/mididarwin"
	"github.com/OwenCochell/midilisten/internal/midi/midiwindows"
	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// ErrUnsupportedOS is returned when no driver session backend exists for
// the current operating system.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// sessionInitializers maps OS names to corresponding driver session initializers.
var sessionInitializers = map[string]func(*contracts.ClientOptions) (contracts.Session, error){
	"linux":   midialsa.NewSession,    // ALSA kernel sequencer.
	"darwin":  mididarwin.NewSession,  // CoreMIDI.
	"windows": midiwindows.NewSession, // winmm.
}

// NewSession opens a driver session on the backend for the current
// operating system, returning ErrUnsupportedOS if there is none.
//
// opts *contracts.ClientOptions: Configuration for the session.
//
// Returns:
//   - contracts.Session: An established session with its input port ready.
//   - error: A terminal establishment failure naming the step that failed.
func NewSession(opts *contracts.ClientOptions) (contracts.Session, error) {
	if initializer, exists := sessionInitializers[runtime.GOOS]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
