package gomidi_test

import (
	"testing"

	"github.com/vsariola/motif"
	"github.com/vsariola/motif/gomidi"
	"gitlab.com/gomidi/midi/v2"
)

func TestDecode(t *testing.T) {
	var tests = []struct {
		name    string
		msg     midi.Message
		channel uint8
		want    motif.MidiEvent
		ok      bool
	}{
		{"note on", midi.NoteOn(2, 60, 100), 2, motif.MidiEvent{Type: motif.NoteOn, Note: 60, Velocity: 100}, true},
		{"note off", midi.NoteOff(3, 61), 3, motif.MidiEvent{Type: motif.NoteOff, Note: 61}, true},
		{"zero velocity note on", midi.NoteOn(0, 62, 0), 0, motif.MidiEvent{Type: motif.NoteOff, Note: 62}, true},
		{"control change", midi.ControlChange(0, 7, 100), 0, motif.MidiEvent{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			channel, got, ok := gomidi.Decode(tt.msg)
			if ok != tt.ok || got != tt.want || (ok && channel != tt.channel) {
				t.Errorf("Decode = %v, %+v, %v, want %v, %+v, %v", channel, got, ok, tt.channel, tt.want, tt.ok)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	event := motif.MidiEvent{Type: motif.NoteOn, Note: 64, Velocity: 90}
	msg, ok := gomidi.Encode(5, event)
	if !ok {
		t.Fatalf("Encode failed")
	}
	channel, got, ok := gomidi.Decode(msg)
	if !ok || channel != 5 || got != event {
		t.Errorf("Decode(Encode(%+v)) = %v, %+v", event, channel, got)
	}
}
