package motif

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type (
	// Note is a MIDI key number 0-127; 60 is C4, 69 is A4.
	Note uint8

	// Velocity is a MIDI velocity 0-127.
	Velocity uint8
)

const (
	MaxNote     Note     = 127
	MaxVelocity Velocity = 127
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Frequency returns the equal tempered frequency of the note, A4 = 440 Hz.
func (n Note) Frequency() float64 {
	return 440 * math.Pow(2, (float64(n)-69)/12)
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", noteNames[n%12], int(n)/12-1)
}

// ParseNote parses either a key number ("60") or a note name with octave
// ("C4", "f#3", "Bb2", "C-1").
func ParseNote(s string) (Note, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		if v < 0 || v > int(MaxNote) {
			return 0, fmt.Errorf("note %d out of range 0-127", v)
		}
		return Note(v), nil
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid note %q", s)
	}
	semitone := strings.Index("C D EF G A B", strings.ToUpper(s[:1]))
	if semitone < 0 || s[0] == ' ' {
		return 0, fmt.Errorf("invalid note name %q", s)
	}
	rest := s[1:]
	switch {
	case strings.HasPrefix(rest, "#"):
		semitone++
		rest = rest[1:]
	case strings.HasPrefix(rest, "b"):
		semitone--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid octave in note %q: %w", s, err)
	}
	v := (octave+1)*12 + semitone
	if v < 0 || v > int(MaxNote) {
		return 0, errors.New("note " + s + " out of range C-1..G9")
	}
	return Note(v), nil
}
