//go:build cgo

package gomidi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vsariola/motif"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

type (
	// Handler receives decoded notes on the driver's goroutine. The MIDI
	// channel is used as the track.
	Handler func(track motif.TrackID, event motif.MidiEvent)

	// Input listens to at most one MIDI input device at a time.
	Input struct {
		driver  *rtmididrv.Driver
		current drivers.In
		stop    func()
		handler Handler
	}
)

func NewInput(handler Handler) (*Input, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("cannot open rtmidi driver: %w", err)
	}
	return &Input{driver: driver, handler: handler}, nil
}

// Devices lists the names of the input devices.
func (i *Input) Devices() ([]string, error) {
	ins, err := i.driver.Ins()
	if err != nil {
		return nil, fmt.Errorf("cannot list MIDI inputs: %w", err)
	}
	names := make([]string, len(ins))
	for j, in := range ins {
		names[j] = in.String()
	}
	return names, nil
}

// Open starts listening to the first device whose name starts with prefix, or
// to the first device at all if takeFirst is set. A previously open device is
// closed. It returns the name of the opened device.
func (i *Input) Open(prefix string, takeFirst bool) (string, error) {
	ins, err := i.driver.Ins()
	if err != nil {
		return "", fmt.Errorf("cannot list MIDI inputs: %w", err)
	}
	for _, in := range ins {
		if !takeFirst && !strings.HasPrefix(in.String(), prefix) {
			continue
		}
		if in == i.current {
			return in.String(), nil
		}
		i.closeCurrent()
		if err := in.Open(); err != nil {
			return "", fmt.Errorf("opening MIDI input failed: %w", err)
		}
		stop, err := midi.ListenTo(in, i.handleMessage)
		if err != nil {
			in.Close()
			return "", fmt.Errorf("listening to MIDI input failed: %w", err)
		}
		i.current, i.stop = in, stop
		return in.String(), nil
	}
	if takeFirst {
		return "", errors.New("could not find any MIDI input")
	}
	return "", fmt.Errorf("could not find any MIDI input starting with %q", prefix)
}

func (i *Input) handleMessage(msg midi.Message, timestampms int32) {
	channel, event, ok := Decode(msg)
	if !ok {
		return
	}
	i.handler(motif.TrackID(channel), event)
}

func (i *Input) closeCurrent() {
	if i.stop != nil {
		i.stop()
		i.stop = nil
	}
	if i.current != nil && i.current.IsOpen() {
		i.current.Close()
	}
	i.current = nil
}

func (i *Input) Close() {
	i.closeCurrent()
	i.driver.Close()
}
