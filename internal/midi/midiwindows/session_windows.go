//go:build windows

package midiwindows

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"go.uber.org/multierr"
	"golang.org/x/sys/windows"

	"github.com/OwenCochell/midilisten/internal/midi/midiwire"
	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// Type definitions for MIDI handles
type HMIDIIN windows.Handle

// Constants for callback flags
const (
	CALLBACK_FUNCTION = 0x00030000 // The callback parameter is a function
	MIDI_IO_STATUS    = 0x00000020 // Deliver MIM_MOREDATA on overload
)

// Constants for MIDI input messages
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // Short MIDI message received
	MIM_ERROR     = 0x3C5 // Invalid short message received
	MIM_LONGERROR = 0x3C6 // Invalid system-exclusive message received
	MIM_MOREDATA  = 0x3CC // Application is not processing fast enough
)

// Load the winmm.dll library and required functions
var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// Session receives wire MIDI through winmm. The driver delivers short
// messages on a callback thread; the session bridges them into an internal
// queue and ReadEvent blocks on that queue.
type Session struct {
	logger contracts.Logger
	handle HMIDIIN
	events chan contracts.RawEvent
	done   chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// NewSession opens the first MIDI input device and starts capture on it.
// Establishment failures are terminal.
func NewSession(options *contracts.ClientOptions) (contracts.Session, error) {
	if r0, _, _ := procMidiInGetNumDevs.Call(); r0 == 0 {
		return nil, ErrNoInputDevices
	}

	s := &Session{
		logger: options.Logger,
		events: make(chan contracts.RawEvent, options.EventBuffer),
		done:   make(chan struct{}),
	}

	// dwInstance carries the session pointer back into midiInCallback.
	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&s.handle)),
		0, // first input device
		windows.NewCallback(midiInCallback),
		uintptr(unsafe.Pointer(s)),
		uintptr(CALLBACK_FUNCTION|MIDI_IO_STATUS),
	)
	if r1 != 0 {
		return nil, fmt.Errorf("%w: %v", ErrOpenDevice, err)
	}

	if r1, _, err := procMidiInStart.Call(uintptr(s.handle)); r1 != 0 {
		procMidiInClose.Call(uintptr(s.handle))
		return nil, fmt.Errorf("%w: %v", ErrStartInput, err)
	}

	s.logger.Info("MIDI input device opened",
		s.logger.Field().Int("device", 0),
	)
	return s, nil
}

// midiInCallback processes incoming MIDI input messages on the driver's
// callback thread. dwParam1 packs the short message bytes and dwParam2 the
// millisecond timestamp since midiInStart, which serves as the tick.
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	s := (*Session)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case MIM_OPEN:
		s.logger.Debug("MIDI device opened")
	case MIM_CLOSE:
		s.logger.Debug("MIDI device closed")
	case MIM_DATA:
		data := []byte{byte(dwParam1), byte(dwParam1 >> 8), byte(dwParam1 >> 16)}
		event, ok := midiwire.FromBytes(data, uint32(dwParam2), time.Now().UTC())
		if !ok {
			return 0
		}
		select {
		case s.events <- event:
		default:
			s.logger.Warn("event buffer full; dropping MIDI event")
		}
	case MIM_ERROR, MIM_LONGERROR:
		s.logger.Error(fmt.Sprintf("MIDI input error: msg=0x%X", wMsg))
	case MIM_MOREDATA:
		s.logger.Debug("received MIM_MOREDATA; input is backing up")
	default:
		s.logger.Warn(fmt.Sprintf("unknown MIDI input message: 0x%X", wMsg))
	}

	return 0
}

// ReadEvent blocks until the input device delivers the next event.
func (s *Session) ReadEvent() (contracts.RawEvent, error) {
	select {
	case event := <-s.events:
		return event, nil
	case <-s.done:
		return contracts.RawEvent{}, contracts.ErrSessionClosed
	}
}

// Addr reports the zero address: winmm does not number clients and ports
// the way a sequencer does.
func (s *Session) Addr() contracts.SeqAddr {
	return contracts.SeqAddr{}
}

// Close stops and closes the input device and unblocks pending reads. Both
// teardown calls run even when the first fails.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var errs error
		if r1, _, err := procMidiInStop.Call(uintptr(s.handle)); r1 != 0 {
			errs = multierr.Append(errs, fmt.Errorf("midiInStop: %v", err))
		}
		if r1, _, err := procMidiInClose.Call(uintptr(s.handle)); r1 != 0 {
			errs = multierr.Append(errs, fmt.Errorf("midiInClose: %v", err))
		}
		s.closeErr = errs
		close(s.done)
	})
	return s.closeErr
}
