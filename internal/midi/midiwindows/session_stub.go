//go:build !windows

package midiwindows

import (
	"fmt"
	"runtime"

	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// NewSession fails fast off Windows: winmm does not exist here, and
// session establishment has no fallback.
func NewSession(options *contracts.ClientOptions) (contracts.Session, error) {
	options.Logger.Warn("winmm backend requested on a non-Windows system",
		options.Logger.Field().String("os", runtime.GOOS),
	)
	return nil, fmt.Errorf("%w: no winmm on %s", ErrOpenDevice, runtime.GOOS)
}
