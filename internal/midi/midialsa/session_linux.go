//go:build linux

package midialsa

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// Sequencer ioctl requests, 64-bit ABI.
const (
	reqProtocolVersion = 0x80045300
	reqClientID        = 0x80045301
	reqGetClientInfo   = 0xc0bc5310
	reqSetClientInfo   = 0x40bc5311
	reqCreatePort      = 0xc0a85320
)

// protocolMajor is the sequencer protocol generation this decoder speaks.
const protocolMajor = 1

// Capability and type bits for the input port: peers may write events and
// subscribe for writing, and the port belongs to an application client.
const (
	capWrite        = 1 << 1
	capSubsWrite    = 1 << 6
	typeApplication = 1 << 20
)

const readBufferSize = 4096

// clientInfo mirrors struct snd_seq_client_info.
type clientInfo struct {
	Client          int32
	Type            int32
	Name            [64]byte
	Filter          uint32
	MulticastFilter [8]byte
	EventFilter     [32]byte
	NumPorts        int32
	EventLost       int32
	Card            int32
	Pid             int32
	Reserved        [56]byte
}

// portInfo mirrors struct snd_seq_port_info.
type portInfo struct {
	Client       uint8
	Port         uint8
	Name         [64]byte
	Capability   uint32
	Type         uint32
	MidiChannels int32
	MidiVoices   int32
	SynthVoices  int32
	ReadUse      int32
	WriteUse     int32
	Kernel       uint64
	Flags        uint32
	TimeQueue    uint8
	Reserved     [59]byte
}

// Session is an open connection to the kernel sequencer with one input port
// registered for peer subscriptions.
type Session struct {
	logger  contracts.Logger
	file    *os.File
	addr    contracts.SeqAddr
	buffer  []byte
	pending []byte

	closeOnce sync.Once
	closeErr  error
}

// NewSession opens the sequencer device and registers the client and input
// port named in options. Establishment runs in fixed steps; each step fails
// fast with its own sentinel and nothing retries.
func NewSession(options *contracts.ClientOptions) (contracts.Session, error) {
	config := options.SequencerConfig

	file, err := os.OpenFile(config.Device, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenSequencer, err)
	}

	s := &Session{
		logger: options.Logger,
		file:   file,
		buffer: make([]byte, readBufferSize),
	}
	if err := s.establish(config); err != nil {
		file.Close()
		return nil, err
	}

	s.logger.Info("sequencer input port ready",
		s.logger.Field().Uint8("client", s.addr.Client),
		s.logger.Field().Uint8("port", s.addr.Port),
		s.logger.Field().String("name", config.PortName),
	)
	return s, nil
}

// establish runs the handshake: protocol check, client identity, client
// name, input port.
func (s *Session) establish(config *contracts.SequencerConfig) error {
	var version int32
	if err := s.ioctl(reqProtocolVersion, unsafe.Pointer(&version)); err != nil {
		return fmt.Errorf("%w: protocol version: %v", ErrOpenSequencer, err)
	}
	if version>>16 != protocolMajor {
		return fmt.Errorf("%w: incompatible sequencer protocol %d.%d.%d",
			ErrOpenSequencer, version>>16, (version>>8)&0xff, version&0xff)
	}

	var client int32
	if err := s.ioctl(reqClientID, unsafe.Pointer(&client)); err != nil {
		return fmt.Errorf("%w: client id: %v", ErrOpenSequencer, err)
	}

	var info clientInfo
	info.Client = client
	if err := s.ioctl(reqGetClientInfo, unsafe.Pointer(&info)); err != nil {
		return fmt.Errorf("%w: %v", ErrSetClientName, err)
	}
	copyCString(info.Name[:], config.ClientName)
	if err := s.ioctl(reqSetClientInfo, unsafe.Pointer(&info)); err != nil {
		return fmt.Errorf("%w: %v", ErrSetClientName, err)
	}

	var port portInfo
	port.Client = uint8(client)
	copyCString(port.Name[:], config.PortName)
	port.Capability = capWrite | capSubsWrite
	port.Type = typeApplication
	// No GIVEN_PORT flag: the kernel assigns the port number and writes it
	// back into the struct.
	if err := s.ioctl(reqCreatePort, unsafe.Pointer(&port)); err != nil {
		return fmt.Errorf("%w: %v", ErrCreatePort, err)
	}

	s.addr = contracts.SeqAddr{Client: uint8(client), Port: port.Port}
	return nil
}

// ReadEvent blocks until the kernel delivers the next event and returns its
// decoded form. The kernel hands over whole records, often several per
// read; leftovers are served before the device is read again.
func (s *Session) ReadEvent() (contracts.RawEvent, error) {
	for {
		if len(s.pending) > 0 {
			event, n, err := decodeEvent(s.pending)
			if err == nil {
				s.pending = s.pending[n:]
				return event, nil
			}
			// Partial record: keep what we have and read the rest.
			if err := s.refill(true); err != nil {
				return contracts.RawEvent{}, err
			}
			continue
		}
		if err := s.refill(false); err != nil {
			return contracts.RawEvent{}, err
		}
	}
}

// refill reads from the device into the buffer. With keep set, the
// undecoded remainder moves to the front first and new bytes land behind
// it; the buffer grows when a variable payload outruns it.
func (s *Session) refill(keep bool) error {
	head := 0
	if keep {
		head = copy(s.buffer, s.pending)
		if head == len(s.buffer) {
			grown := make([]byte, 2*len(s.buffer))
			copy(grown, s.buffer[:head])
			s.buffer = grown
		}
	}
	n, err := s.file.Read(s.buffer[head:])
	if err != nil {
		s.pending = nil
		if errors.Is(err, os.ErrClosed) {
			return contracts.ErrSessionClosed
		}
		return fmt.Errorf("sequencer read: %w", err)
	}
	s.pending = s.buffer[:head+n]
	return nil
}

// Addr reports the session's own client and port numbers.
func (s *Session) Addr() contracts.SeqAddr {
	return s.addr
}

// Close releases the sequencer handle, which also deletes the client and
// its port, and unblocks a pending ReadEvent.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.file.Close()
	})
	return s.closeErr
}

// ioctl issues a sequencer ioctl through the file's syscall conn, keeping
// the descriptor under the runtime poller so Close still interrupts reads.
func (s *Session) ioctl(req uintptr, arg unsafe.Pointer) error {
	conn, err := s.file.SyscallConn()
	if err != nil {
		return err
	}
	var errno unix.Errno
	if err := conn.Control(func(fd uintptr) {
		_, _, errno = unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	}); err != nil {
		return err
	}
	if errno != 0 {
		return errno
	}
	return nil
}

// copyCString writes s into dst as a NUL-terminated C string, truncating to
// fit.
func copyCString(dst []byte, s string) {
	clear(dst)
	if len(s) > len(dst)-1 {
		s = s[:len(dst)-1]
	}
	copy(dst, s)
}
