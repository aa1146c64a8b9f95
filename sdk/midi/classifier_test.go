package midi

import (
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/OwenCochell/midilisten/internal/logger"
	"github.com/OwenCochell/midilisten/sdk/contracts"
)

func TestEventLine(t *testing.T) {
	tests := []struct {
		name  string
		event contracts.Event
		want  string
	}{
		{
			name:  "note on",
			event: contracts.Event{Kind: contracts.KindNoteOn, TickTime: 100, Note: 0x40, Velocity: 0x7f},
			want:  "[100] Note on : 40 vel(7f)",
		},
		{
			name:  "note off",
			event: contracts.Event{Kind: contracts.KindNoteOff, TickTime: 100, Note: 0x40, Velocity: 0x7f},
			want:  "[100] Note off: 40 vel(7f)",
		},
		{
			name:  "single hex digits keep their padding",
			event: contracts.Event{Kind: contracts.KindNoteOn, TickTime: 3, Note: 0x07, Velocity: 0x05},
			want:  "[3] Note on :  7 vel( 5)",
		},
		{
			name:  "controller prints decimal",
			event: contracts.Event{Kind: contracts.KindController, TickTime: 50, Param: 7, Value: 100},
			want:  "[50] Control: 7 val(100)",
		},
		{
			name:  "negative controller value",
			event: contracts.Event{Kind: contracts.KindController, TickTime: 50, Param: 7, Value: -2},
			want:  "[50] Control: 7 val(-2)",
		},
		{
			name:  "unknown",
			event: contracts.Event{Kind: contracts.KindUnknown, TickTime: 39},
			want:  "[39] Unknown: Unhandled Event Received",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EventLine(&tt.event); got != tt.want {
				t.Errorf("EventLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyDispatchesHandlers(t *testing.T) {
	type call struct {
		kind  contracts.EventKind
		tick  uint32
		note  uint8
		vel   uint8
		param uint32
		value int32
	}
	var calls []call

	core, _ := observer.New(zapcore.DebugLevel)
	c := NewClassifier(logger.NewWithCore(core), &contracts.EventHandlers{
		NoteOn: func(tick uint32, note, velocity uint8) {
			calls = append(calls, call{kind: contracts.KindNoteOn, tick: tick, note: note, vel: velocity})
		},
		NoteOff: func(tick uint32, note, velocity uint8) {
			calls = append(calls, call{kind: contracts.KindNoteOff, tick: tick, note: note, vel: velocity})
		},
		Controller: func(tick uint32, param uint32, value int32) {
			calls = append(calls, call{kind: contracts.KindController, tick: tick, param: param, value: value})
		},
		Unknown: func(tick uint32) {
			calls = append(calls, call{kind: contracts.KindUnknown, tick: tick})
		},
	})

	events := []contracts.Event{
		{Kind: contracts.KindNoteOn, TickTime: 1, Note: 0x40, Velocity: 0x7f},
		{Kind: contracts.KindNoteOff, TickTime: 2, Note: 0x40, Velocity: 0x10},
		{Kind: contracts.KindController, TickTime: 3, Param: 7, Value: 100},
		{Kind: contracts.KindUnknown, TickTime: 4},
	}
	for i := range events {
		if got := c.Classify(&events[i]); got != events[i].Kind {
			t.Errorf("Classify returned %v, want %v", got, events[i].Kind)
		}
	}

	want := []call{
		{kind: contracts.KindNoteOn, tick: 1, note: 0x40, vel: 0x7f},
		{kind: contracts.KindNoteOff, tick: 2, note: 0x40, vel: 0x10},
		{kind: contracts.KindController, tick: 3, param: 7, value: 100},
		{kind: contracts.KindUnknown, tick: 4},
	}
	if len(calls) != len(want) {
		t.Fatalf("got %d handler calls, want %d", len(calls), len(want))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, calls[i], want[i])
		}
	}
}

func TestClassifyWithoutHandlers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewClassifier(logger.NewWithCore(core), nil)

	event := contracts.Event{Kind: contracts.KindNoteOn, TickTime: 100, Note: 0x40, Velocity: 0x7f}
	if got := c.Classify(&event); got != contracts.KindNoteOn {
		t.Errorf("Classify = %v, want KindNoteOn", got)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	if entries[0].Message != "[100] Note on : 40 vel(7f)" {
		t.Errorf("report line = %q", entries[0].Message)
	}
}

func TestClassifyReportsEveryEvent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewClassifier(logger.NewWithCore(core), nil)

	for _, event := range []contracts.Event{
		{Kind: contracts.KindNoteOn, TickTime: 1},
		{Kind: contracts.KindUnknown, TickTime: 2},
		{Kind: contracts.KindController, TickTime: 3},
	} {
		c.Classify(&event)
	}

	var reported int
	for _, entry := range logs.All() {
		if strings.HasPrefix(entry.Message, "[") {
			reported++
		}
	}
	if reported != 3 {
		t.Errorf("reported %d lines, want 3", reported)
	}
}
