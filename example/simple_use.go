package main

import (
	"fmt"

	"github.com/OwenCochell/midilisten/internal/logger"
	"github.com/OwenCochell/midilisten/sdk/contracts"
	"github.com/OwenCochell/midilisten/sdk/midi"
)

func main() {
	log := logger.NewDevelopmentLogger()

	listener, err := midi.NewListener(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithEventFilter(contracts.EventFilter{
			Kinds: []contracts.EventKind{contracts.KindNoteOn, contracts.KindNoteOff},
		}),
	)
	if err != nil {
		log.Error("Failed to open MIDI session", log.Field().Error("error", err))
		return
	}

	eventChannel := make(chan contracts.Event, 100)
	go func() {
		for event := range eventChannel {
			log.Info("MIDI event",
				log.Field().String("kind", event.Kind.String()),
				log.Field().Uint32("tick", event.TickTime),
				log.Field().Int("note", int(event.Note)),
				log.Field().Int("velocity", int(event.Velocity)),
			)
		}
	}()

	listener.StartCapture(eventChannel)
	defer listener.Stop()

	fmt.Println("Capturing MIDI events... Press Ctrl+C to exit.")
	select {} // Run indefinitely
}
