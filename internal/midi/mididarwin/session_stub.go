//go:build !darwin

package mididarwin

import (
	"fmt"
	"runtime"

	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// NewSession fails fast off macOS: CoreMIDI does not exist here, and
// session establishment has no fallback.
func NewSession(options *contracts.ClientOptions) (contracts.Session, error) {
	options.Logger.Warn("CoreMIDI backend requested on a non-macOS system",
		options.Logger.Field().String("os", runtime.GOOS),
	)
	return nil, fmt.Errorf("%w: no CoreMIDI on %s", ErrCreateClient, runtime.GOOS)
}
