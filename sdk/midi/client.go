package midi

import (
	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// NewListener opens the platform driver session and assembles the capture
// pipeline around it.
//
// opts ...contracts.Option: A variadic list of option functions to customize
// the listener configuration.
//
// Returns:
//   - contracts.Listener: A ready listener with its session established.
//   - error: A terminal session-establishment failure; these are never
//     retried, so callers normally report the failing step and exit.
func NewListener(opts ...contracts.Option) (contracts.Listener, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	session, err := NewSession(&options)
	if err != nil {
		return nil, err
	}

	return newListener(session, &options), nil
}
