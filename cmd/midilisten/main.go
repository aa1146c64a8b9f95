package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/OwenCochell/midilisten/internal/logger"
	"github.com/OwenCochell/midilisten/sdk/contracts"
	"github.com/OwenCochell/midilisten/sdk/midi"
)

func main() {
	var (
		device    = flag.String("device", midi.DefaultDevice, "sequencer device node (ALSA backend)")
		client    = flag.String("client", midi.DefaultClientName, "name the sequencer client registers under")
		port      = flag.String("port", midi.DefaultPortName, "name of the input port peers subscribe to")
		buffer    = flag.Int("buffer", 64, "capture channel capacity")
		guard     = flag.Bool("guard", false, "zero event fields that do not match the event kind")
		notesOnly = flag.Bool("notes-only", false, "deliver note events only")
		debug     = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()
	if *buffer <= 0 {
		*buffer = 64
	}

	log := logger.NewDevelopmentLogger()

	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithSequencerConfig(contracts.SequencerConfig{
			ClientName: *client,
			PortName:   *port,
			Device:     *device,
		}),
		contracts.WithEventBuffer(*buffer),
	}
	if *debug {
		opts = append(opts, contracts.WithLogLevel(contracts.DebugLevel))
	}
	if *guard {
		opts = append(opts, contracts.WithCopyMode(contracts.GuardedCopy))
	}
	if *notesOnly {
		opts = append(opts, contracts.WithEventFilter(contracts.EventFilter{
			Kinds: []contracts.EventKind{contracts.KindNoteOn, contracts.KindNoteOff},
		}))
	}

	listener, err := midi.NewListener(opts...)
	if err != nil {
		// Establishment failures are terminal: no session exists and no
		// read is ever attempted.
		log.Fatal("could not establish MIDI session", log.Field().Error("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events := make(chan contracts.Event, *buffer)
	listener.StartCapture(events)

	stopped := make(chan struct{})
	counts := make(map[contracts.EventKind]uint64)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		err := listener.Stop()
		close(stopped)
		return err
	})
	group.Go(func() error {
		for {
			select {
			case event := <-events:
				counts[event.Kind]++
			case <-stopped:
				// The capture loop is done; drain what it left behind.
				for {
					select {
					case event := <-events:
						counts[event.Kind]++
					default:
						return nil
					}
				}
			}
		}
	})

	if err := group.Wait(); err != nil {
		log.Error("shutdown error", log.Field().Error("error", err))
	}
	log.Info("capture finished",
		log.Field().Uint64("note_on", counts[contracts.KindNoteOn]),
		log.Field().Uint64("note_off", counts[contracts.KindNoteOff]),
		log.Field().Uint64("controller", counts[contracts.KindController]),
		log.Field().Uint64("unknown", counts[contracts.KindUnknown]),
	)
}
