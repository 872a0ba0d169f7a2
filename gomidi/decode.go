// Package gomidi connects motif to MIDI: it decodes messages from live input
// devices and converts Standard MIDI Files to and from sequences.
package gomidi

import (
	"github.com/vsariola/motif"
	"gitlab.com/gomidi/midi/v2"
)

// Decode extracts a note event from msg. A note on with zero velocity is a note
// off. ok is false for every other kind of message.
func Decode(msg midi.Message) (channel uint8, event motif.MidiEvent, ok bool) {
	var key, velocity uint8
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		if velocity == 0 {
			return channel, motif.MidiEvent{Type: motif.NoteOff, Note: motif.Note(key)}, true
		}
		return channel, motif.MidiEvent{Type: motif.NoteOn, Note: motif.Note(key), Velocity: motif.Velocity(velocity)}, true
	case msg.GetNoteOff(&channel, &key, &velocity):
		return channel, motif.MidiEvent{Type: motif.NoteOff, Note: motif.Note(key)}, true
	}
	return 0, motif.MidiEvent{}, false
}

// Encode is the inverse of Decode.
func Encode(channel uint8, event motif.MidiEvent) (midi.Message, bool) {
	switch event.Type {
	case motif.NoteOn:
		return midi.NoteOn(channel, uint8(event.Note), uint8(event.Velocity)), true
	case motif.NoteOff:
		return midi.NoteOff(channel, uint8(event.Note)), true
	}
	return nil, false
}
