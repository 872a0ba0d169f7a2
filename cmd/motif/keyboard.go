package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vsariola/motif"
	"golang.org/x/term"
)

// two rows of a piano keyboard, lower row starting from C3
var keyboardLayout = map[byte]motif.Note{
	'z': 48, 's': 49, 'x': 50, 'd': 51, 'c': 52, 'v': 53, 'g': 54, 'b': 55, 'h': 56, 'n': 57, 'j': 58, 'm': 59,
	'q': 60, '2': 61, 'w': 62, '3': 63, 'e': 64, 'r': 65, '5': 66, 't': 67, '6': 68, 'y': 69, '7': 70, 'u': 71, 'i': 72,
}

const keyboardVelocity = 100

// runKeyboard plays notes from the terminal until Esc or Ctrl-C is pressed.
// Octaves are shifted with '-' and '+'. Terminals report no key releases, so
// every key press is a note of length gate.
func runKeyboard(gate time.Duration, send func(motif.MidiEvent)) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("standard input is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("cannot switch terminal to raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)
	fmt.Print("play with z s x d c ... and q 2 w 3 e ..., change octave with - and +, quit with esc\r\n")
	var octave int
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return fmt.Errorf("cannot read keyboard: %w", err)
		}
		switch key := buf[0]; key {
		case 3, 27:
			return nil
		case '-':
			octave = max(octave-1, -4)
		case '+', '=':
			octave = min(octave+1, 4)
		default:
			base, ok := keyboardLayout[key]
			if !ok {
				continue
			}
			n := int(base) + 12*octave
			if n < 0 || n > int(motif.MaxNote) {
				continue
			}
			note := motif.Note(n)
			send(motif.MidiEvent{Type: motif.NoteOn, Note: note, Velocity: keyboardVelocity})
			time.AfterFunc(gate, func() { send(motif.MidiEvent{Type: motif.NoteOff, Note: note}) })
		}
	}
}
