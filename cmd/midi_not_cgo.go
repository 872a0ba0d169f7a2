//go:build !cgo

package cmd

import "errors"

// ErrNoMIDI is returned by every MIDI operation of a build without cgo.
var ErrNoMIDI = errors.New("MIDI input is not available without cgo")

type nullMIDIInput struct{}

func NewMIDIInput(handler MIDIHandler) (MIDIInput, error) {
	// with no cgo, we cannot use MIDI, so return a null input
	return nullMIDIInput{}, nil
}

func (nullMIDIInput) Devices() ([]string, error)                         { return nil, nil }
func (nullMIDIInput) Open(prefix string, takeFirst bool) (string, error) { return "", ErrNoMIDI }
func (nullMIDIInput) Close()                                             {}
