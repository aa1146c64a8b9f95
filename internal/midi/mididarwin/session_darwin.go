//go:build darwin

package mididarwin

import (
	"fmt"
	"sync"
	"time"

	"github.com/youpy/go-coremidi"

	"github.com/OwenCochell/midilisten/internal/midi/midiwire"
	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// internalPortConnection is the slice of the CoreMIDI connection type the
// session needs; tests substitute their own.
type internalPortConnection interface {
	Disconnect()
}

// Session receives wire MIDI through CoreMIDI. CoreMIDI delivers packets on
// a callback thread, so the session bridges them into an internal queue and
// ReadEvent blocks on that queue.
type Session struct {
	logger    contracts.Logger
	client    coremidi.Client
	inputPort coremidi.InputPort
	conns     []internalPortConnection

	events chan contracts.RawEvent
	done   chan struct{}
	tick   uint32

	closeOnce sync.Once
}

// NewSession creates the CoreMIDI client and input port and connects the
// port to every source present. Establishment failures are terminal; a
// system without sources is not a failure, merely silent.
func NewSession(options *contracts.ClientOptions) (contracts.Session, error) {
	client, err := coremidi.NewClient(options.SequencerConfig.ClientName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateClient, err)
	}

	s := &Session{
		logger: options.Logger,
		client: client,
		events: make(chan contracts.RawEvent, options.EventBuffer),
		done:   make(chan struct{}),
	}

	s.inputPort, err = coremidi.NewInputPort(client, options.SequencerConfig.PortName, s.handlePacket)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceConnection, err)
	}
	for _, source := range sources {
		conn, err := s.inputPort.Connect(source)
		if err != nil {
			s.disconnect()
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceConnection, source.Name(), err)
		}
		s.conns = append(s.conns, conn)
	}

	if len(s.conns) == 0 {
		s.logger.Warn("no MIDI sources present; the session will stay silent")
	} else {
		s.logger.Info("MIDI input port connected",
			s.logger.Field().Int("sources", len(s.conns)),
			s.logger.Field().String("port", options.SequencerConfig.PortName),
		)
	}
	return s, nil
}

// handlePacket runs on CoreMIDI's delivery thread. Packets arrive one at a
// time, so the tick counter needs no synchronization.
func (s *Session) handlePacket(source coremidi.Source, packet coremidi.Packet) {
	event, ok := midiwire.FromBytes(packet.Data, s.tick, time.Now().UTC())
	if !ok {
		s.logger.Warn(ErrIncompleteMIDIPacket.Error())
		return
	}
	s.tick++

	select {
	case s.events <- event:
	default:
		s.logger.Warn("event buffer full; dropping MIDI event")
	}
}

// ReadEvent blocks until the input port delivers the next event.
func (s *Session) ReadEvent() (contracts.RawEvent, error) {
	select {
	case event := <-s.events:
		return event, nil
	case <-s.done:
		return contracts.RawEvent{}, contracts.ErrSessionClosed
	}
}

// Addr reports the zero address: CoreMIDI does not number clients and
// ports the way a sequencer does.
func (s *Session) Addr() contracts.SeqAddr {
	return contracts.SeqAddr{}
}

// Close disconnects every source and unblocks pending reads. CoreMIDI owns
// the client and port handles; dropping the connections is the whole
// teardown.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.disconnect()
		close(s.done)
	})
	return nil
}

func (s *Session) disconnect() {
	for _, conn := range s.conns {
		conn.Disconnect()
	}
	s.conns = nil
}
