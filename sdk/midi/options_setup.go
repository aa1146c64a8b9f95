package midi

import (
	"github.com/OwenCochell/midilisten/internal/logger"
	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// Default sequencer identity: a client named "MIDI Listener" with one
// input port "listen:in" on the default sequencer device.
const (
	DefaultClientName = "MIDI Listener"
	DefaultPortName   = "listen:in"
	DefaultDevice     = "/dev/snd/seq"

	defaultEventBuffer = 64
)

// applyDefaultOptions sets default values for ClientOptions if not
// explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can
// modify ClientOptions.
//
// Returns:
//   - contracts.ClientOptions: The finalized options with defaults applied.
//   - error: An error if there was an issue applying the options.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.SequencerConfig == nil {
		options.SequencerConfig = &contracts.SequencerConfig{}
	}
	if options.SequencerConfig.ClientName == "" {
		options.SequencerConfig.ClientName = DefaultClientName
	}
	if options.SequencerConfig.PortName == "" {
		options.SequencerConfig.PortName = DefaultPortName
	}
	if options.SequencerConfig.Device == "" {
		options.SequencerConfig.Device = DefaultDevice
	}
	if options.EventBuffer <= 0 {
		options.EventBuffer = defaultEventBuffer
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}
