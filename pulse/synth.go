// Package pulse implements an 8-voice polyphonic pulse wave synthesizer with
// per-voice ADSR envelopes. It is a motif.Node: feed it note events through
// motif.Evaluate and it renders audio.
package pulse

import "github.com/vsariola/motif"

const (
	NumVoices = 8

	// Gain is the master output scale; keeps eight full voices from clipping.
	Gain = 0.15
)

// Synth is a fixed pool of voices sharing one Patch. The envelope parameters of
// the patch are copied into a voice when it is triggered, so changing Patch
// does not affect notes already sounding.
type Synth struct {
	Voices  [NumVoices]Voice
	Patch   Patch
	nextAge uint64
}

func New(patch Patch) *Synth {
	return &Synth{Patch: patch}
}

// Render writes the sum of all active voices, scaled by Gain, to channels 0 and
// 1 of output. The signal is mono, duplicated to both channels.
func (s *Synth) Render(_ []*motif.AudioBuffer, output *motif.AudioBuffer, rng motif.FrameRange, sampleRate float64) {
	left, right := output.TwoChannels(0, 1)
	for frame := rng.Start; frame < rng.End; frame++ {
		sum := 0.0
		for i := range s.Voices {
			if s.Voices[i].IsActive() {
				sum += s.Voices[i].Render(s.Patch.DutyCycle, sampleRate)
			}
		}
		out := float32(sum * Gain)
		left[frame] = out
		right[frame] = out
	}
}

func (s *Synth) HandleEvent(event motif.Event) {
	switch event.Kind {
	case motif.EventMidi:
		switch m := event.Midi; m.Type {
		case motif.NoteOn:
			s.noteOn(m.Note, m.Velocity)
		case motif.NoteOff:
			s.noteOff(m.Note)
		}
	}
}

// noteOn takes the first idle voice, or if all are busy steals the one
// triggered longest ago, whatever it is playing. Ties go to the lowest index.
func (s *Synth) noteOn(note motif.Note, velocity motif.Velocity) {
	index := -1
	for i := range s.Voices {
		if !s.Voices[i].IsActive() {
			index = i
			break
		}
	}
	if index < 0 {
		index = 0
		for i := 1; i < len(s.Voices); i++ {
			if s.Voices[i].Age < s.Voices[index].Age {
				index = i
			}
		}
	}
	s.nextAge++
	v := &s.Voices[index]
	v.Trigger(note, velocity, note.Frequency(), s.nextAge)
	v.Envelope.SetADSR(s.Patch.Attack, s.Patch.Decay, s.Patch.Sustain, s.Patch.Release)
}

// noteOff releases every voice playing note that is not releasing already.
// Voices that already went idle stay idle.
func (s *Synth) noteOff(note motif.Note) {
	for i := range s.Voices {
		v := &s.Voices[i]
		// Release on an idle voice would set its stage to Release and make it
		// active again, with a stale note and level 0.
		if n, ok := v.Note(); ok && n == note && v.IsActive() && !v.Envelope.IsReleasing() {
			v.Release()
		}
	}
}

func (s *Synth) Reset() {
	for i := range s.Voices {
		s.Voices[i].Reset()
	}
	s.nextAge = 0
}

// ActiveVoices returns the number of voices whose envelope is not idle.
func (s *Synth) ActiveVoices() int {
	n := 0
	for i := range s.Voices {
		if s.Voices[i].IsActive() {
			n++
		}
	}
	return n
}
