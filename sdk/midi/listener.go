package midi

import (
	"errors"
	"sync"

	"github.com/OwenCochell/midilisten/sdk/contracts"
)

// listener wires a driver session to the normalization pipeline and owns
// its lifecycle.
type listener struct {
	logger     contracts.Logger
	session    contracts.Session
	normalizer *Normalizer
	classifier *Classifier
	filter     *contracts.EventFilter

	mu        sync.Mutex
	capturing bool
	wg        sync.WaitGroup
	stopOnce  sync.Once
	stopErr   error
}

// newListener assembles the pipeline around an established session.
func newListener(session contracts.Session, options *contracts.ClientOptions) contracts.Listener {
	return &listener{
		logger:     options.Logger,
		session:    session,
		normalizer: NewNormalizer(options.CopyMode),
		classifier: NewClassifier(options.Logger, options.Handlers),
		filter:     options.EventFilter,
	}
}

// Read runs one capture cycle: block for the next raw event, normalize it
// into the cursor, report it. The returned pointer is the cursor; the next
// cycle overwrites what it points to.
func (l *listener) Read() (*contracts.Event, error) {
	raw, err := l.session.ReadEvent()
	if err != nil {
		return nil, err
	}
	event := l.normalizer.Normalize(raw)
	l.classifier.Classify(event)
	return event, nil
}

// Current returns the cursor without reading.
func (l *listener) Current() *contracts.Event {
	return l.normalizer.Current()
}

// StartCapture pumps events into eventChannel until the session closes.
// Each delivery is a value copy, so consumers are immune to cursor
// overwrites. Events the filter rejects are still read and reported, just
// not delivered.
func (l *listener) StartCapture(eventChannel chan contracts.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if eventChannel == nil {
		l.logger.Error("StartCapture called with nil event channel")
		return
	}
	if l.capturing {
		l.logger.Warn("capture already running")
		return
	}

	addr := l.session.Addr()
	l.logger.Info("starting MIDI event capture",
		l.logger.Field().Uint8("client", addr.Client),
		l.logger.Field().Uint8("port", addr.Port),
	)
	l.capturing = true
	l.wg.Add(1)
	go l.pump(eventChannel)
}

func (l *listener) pump(out chan contracts.Event) {
	defer l.wg.Done()
	for {
		event, err := l.Read()
		if err != nil {
			if !errors.Is(err, contracts.ErrSessionClosed) {
				l.logger.Error("capture loop stopped", l.logger.Field().Error("error", err))
			}
			return
		}
		if !l.filter.Allows(event.Kind) {
			continue
		}
		select {
		case out <- *event:
		default:
			l.logger.Warn("event channel full; dropping event",
				l.logger.Field().String("kind", event.Kind.String()))
		}
	}
}

// Stop closes the session, which unblocks any in-flight read, then waits
// for the capture loop to exit.
func (l *listener) Stop() error {
	l.stopOnce.Do(func() {
		l.logger.Info("stopping MIDI capture")
		l.stopErr = l.session.Close()
		l.wg.Wait()
	})
	return l.stopErr
}
