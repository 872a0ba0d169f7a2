package pulse

import "github.com/vsariola/motif"

// Voice is one note's worth of synthesis state: a phase accumulator and an ADSR
// envelope. Idle voices are skipped when rendering.
type Voice struct {
	Phase     float64
	Frequency float64
	Velocity  motif.Velocity
	Envelope  Envelope
	// Age is stamped from the synth's counter on trigger; higher is newer. Used
	// to pick the voice to steal.
	Age uint64

	note     motif.Note
	assigned bool
}

// Render advances the voice by one sample and returns it. dutyCycle (0-1) is
// the fraction of each cycle spent low; 0.5 is a square wave.
func (v *Voice) Render(dutyCycle, sampleRate float64) float64 {
	v.Phase += v.Frequency / sampleRate
	for v.Phase >= 1 {
		v.Phase -= 1
	}
	pulse := -1.0
	if v.Phase > dutyCycle {
		pulse = 1
	}
	return pulse * v.Envelope.Tick(sampleRate) * (float64(v.Velocity) / 127)
}

func (v *Voice) Trigger(note motif.Note, velocity motif.Velocity, frequency float64, age uint64) {
	v.Phase = 0
	v.note = note
	v.assigned = true
	v.Velocity = velocity
	v.Frequency = frequency
	v.Age = age
	v.Envelope.Trigger()
}

func (v *Voice) Release() {
	v.Envelope.Release()
}

// Note returns the note the voice was last triggered with; ok is false after a
// reset.
func (v *Voice) Note() (note motif.Note, ok bool) {
	return v.note, v.assigned
}

func (v *Voice) IsActive() bool {
	return !v.Envelope.IsIdle()
}

func (v *Voice) Reset() {
	v.note = 0
	v.assigned = false
	v.Envelope.Reset()
}
