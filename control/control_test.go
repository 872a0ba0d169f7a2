package control_test

import (
	"errors"
	"testing"

	"github.com/vsariola/motif"
	"github.com/vsariola/motif/control"
)

func TestSendMIDI(t *testing.T) {
	playback, consumer := control.New(2)
	on := motif.MidiEvent{Type: motif.NoteOn, Note: 60, Velocity: 100}
	if err := playback.SendMIDI(3, on); err != nil {
		t.Fatalf("SendMIDI failed: %v", err)
	}
	if err := playback.SendMIDI(3, on); err != nil {
		t.Fatalf("SendMIDI failed: %v", err)
	}
	if err := playback.SendMIDI(3, on); !errors.Is(err, control.ErrBufferFull) {
		t.Fatalf("SendMIDI on a full queue returned %v, want ErrBufferFull", err)
	}
	if got := playback.Pending(); got != 2 {
		t.Errorf("Pending = %v, want 2", got)
	}
	routed, ok := consumer.Pop()
	if !ok {
		t.Fatalf("nothing was queued")
	}
	want := motif.RoutedEvent{Track: 3, Event: on.Event()}
	if routed != want {
		t.Errorf("got %+v, want %+v", routed, want)
	}
	// a slot was freed, so sending works again
	if err := playback.SendMIDI(0, on); err != nil {
		t.Errorf("SendMIDI after draining failed: %v", err)
	}
}
