package contracts

// CopyMode selects how the normalizer fills the event fields that do not
// belong to the event's kind.
type CopyMode uint8

const (
	// LegacyCopy copies both payload views unconditionally: fields that
	// do not belong to the event's kind receive the driver's unioned
	// payload bytes and are undefined.
	LegacyCopy CopyMode = iota
	// GuardedCopy zeroes the event and then copies only the payload view
	// matching the event's kind.
	GuardedCopy
)

// EventFilter restricts which event kinds a capture loop delivers.
type EventFilter struct {
	Kinds []EventKind // Kinds to deliver. Empty delivers everything.
}

// Allows reports whether events of kind k pass the filter. A nil filter
// allows every kind.
func (f *EventFilter) Allows(k EventKind) bool {
	if f == nil || len(f.Kinds) == 0 {
		return true
	}
	for _, allowed := range f.Kinds {
		if k == allowed {
			return true
		}
	}
	return false
}

// EventHandlers routes classified events to optional per-category
// callbacks. Each callback receives only the fields defined for its
// category; nil callbacks are skipped.
type EventHandlers struct {
	NoteOn     func(tick uint32, note, velocity uint8)
	NoteOff    func(tick uint32, note, velocity uint8)
	Controller func(tick uint32, param uint32, value int32)
	Unknown    func(tick uint32)
}

// SequencerConfig holds the identity a session registers with the driver.
type SequencerConfig struct {
	ClientName string // Name the sequencer client registers under.
	PortName   string // Name of the input port peers subscribe to.
	Device     string // Backend device node, for backends that open one (ALSA).
}

// ClientOptions defines the configuration options for a listener.
type ClientOptions struct {
	Logger          Logger           // Logger for events and errors.
	LogLevel        LogLevel         // Minimum level the logger emits.
	EventFilter     *EventFilter     // Optional filter for captured events.
	Handlers        *EventHandlers   // Optional per-category event callbacks.
	SequencerConfig *SequencerConfig // Identity registered with the driver.
	CopyMode        CopyMode         // Normalizer field-copy behavior.
	EventBuffer     int              // Queue capacity for callback-driven backends.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the listener.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the listener.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithEventFilter sets the kinds the capture loop delivers.
func WithEventFilter(filter EventFilter) Option {
	return func(opts *ClientOptions) {
		opts.EventFilter = &filter
	}
}

// WithEventHandlers registers per-category callbacks invoked on every
// classified event.
func WithEventHandlers(handlers EventHandlers) Option {
	return func(opts *ClientOptions) {
		opts.Handlers = &handlers
	}
}

// WithSequencerConfig sets the identity the session registers with the
// driver.
func WithSequencerConfig(config SequencerConfig) Option {
	return func(opts *ClientOptions) {
		opts.SequencerConfig = &config
	}
}

// WithCopyMode selects the normalizer's field-copy behavior.
func WithCopyMode(mode CopyMode) Option {
	return func(opts *ClientOptions) {
		opts.CopyMode = mode
	}
}

// WithEventBuffer sets the internal event queue capacity used by backends
// that receive events on driver callbacks.
func WithEventBuffer(n int) Option {
	return func(opts *ClientOptions) {
		opts.EventBuffer = n
	}
}
