//go:build !linux

package midialsa

import (
	"fmt"
	"runtime"

	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// NewSession fails fast off Linux: the kernel sequencer does not exist
// here, and session establishment has no fallback.
func NewSession(options *contracts.ClientOptions) (contracts.Session, error) {
	options.Logger.Warn("ALSA sequencer backend requested on a non-Linux system",
		options.Logger.Field().String("os", runtime.GOOS),
	)
	return nil, fmt.Errorf("%w: no ALSA sequencer on %s", ErrOpenSequencer, runtime.GOOS)
}
