//go:build cgo

package cmd

import "github.com/vsariola/motif/gomidi"

func NewMIDIInput(handler MIDIHandler) (MIDIInput, error) {
	input, err := gomidi.NewInput(gomidi.Handler(handler))
	if err != nil {
		return nil, err
	}
	return input, nil
}
