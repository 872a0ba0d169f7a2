package cmd

import "github.com/vsariola/motif"

type (
	// MIDIInput is a live MIDI input; see NewMIDIInput.
	MIDIInput interface {
		Devices() ([]string, error)
		Open(prefix string, takeFirst bool) (string, error)
		Close()
	}

	MIDIHandler func(track motif.TrackID, event motif.MidiEvent)
)
