package motif

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

type (
	// NoteEvent is a note placed in musical time. Length is a duration in ticks.
	// A zero Velocity plays at MaxVelocity.
	NoteEvent struct {
		Start    Tick     `yaml:"start" json:"start"`
		Length   uint64   `yaml:"length" json:"length"`
		Note     Note     `yaml:"note" json:"note"`
		Velocity Velocity `yaml:"velocity,omitempty" json:"velocity,omitempty"`
	}

	// Sequence is a list of notes played at a fixed tempo.
	Sequence struct {
		BPM   float64     `yaml:"bpm" json:"bpm"`
		Notes []NoteEvent `yaml:"notes" json:"notes"`
	}
)

// ReadSequence parses a sequence from either JSON or YAML.
func ReadSequence(data []byte) (Sequence, error) {
	var seq Sequence
	if errJSON := json.Unmarshal(data, &seq); errJSON != nil {
		seq = Sequence{}
		if errYaml := yaml.Unmarshal(data, &seq); errYaml != nil {
			return Sequence{}, fmt.Errorf("the sequence could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	if err := seq.Validate(); err != nil {
		return Sequence{}, err
	}
	return seq, nil
}

func (s *Sequence) Validate() error {
	if s.BPM <= 0 {
		return errors.New("BPM should be > 0")
	}
	for i, n := range s.Notes {
		if n.Length == 0 {
			return fmt.Errorf("note %d (%v at %v) has zero length", i, n.Note, n.Start)
		}
		if n.Note > MaxNote || n.Velocity > MaxVelocity {
			return fmt.Errorf("note %d is outside the 7-bit MIDI range", i)
		}
	}
	return nil
}

// Length returns the tick at which the last note ends.
func (s *Sequence) Length() Tick {
	var end Tick
	for _, n := range s.Notes {
		end = max(end, n.Start.Add(Tick(n.Length)))
	}
	return end
}

// Timeline converts the notes into note on and note off events at absolute
// sample positions, sorted by sample. On equal samples note offs come first, so
// a note ending exactly where the same pitch starts again is retriggered rather
// than cut.
func (s *Sequence) Timeline(clock *Clock) []TimedEvent {
	ret := make([]TimedEvent, 0, 2*len(s.Notes))
	for _, n := range s.Notes {
		velocity := n.Velocity
		if velocity == 0 {
			velocity = MaxVelocity
		}
		ret = append(ret,
			TimedEvent{Sample: clock.TickToSample(n.Start, s.BPM), Event: NoteOnEvent(n.Note, velocity)},
			TimedEvent{Sample: clock.TickToSample(n.Start.Add(Tick(n.Length)), s.BPM), Event: NoteOffEvent(n.Note)},
		)
	}
	slices.SortStableFunc(ret, func(a, b TimedEvent) int {
		if c := cmp.Compare(a.Sample, b.Sample); c != 0 {
			return c
		}
		return cmp.Compare(b.Event.Midi.Type, a.Event.Midi.Type) // NoteOff > NoteOn
	})
	return ret
}

// UnmarshalYAML accepts both key numbers and note names.
func (n *Note) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: note should be a number or a name", value.Line)
	}
	v, err := ParseNote(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*n = v
	return nil
}

// UnmarshalJSON accepts both key numbers and note names.
func (n *Note) UnmarshalJSON(data []byte) error {
	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	}
	v, err := ParseNote(text)
	if err != nil {
		return err
	}
	*n = v
	return nil
}
