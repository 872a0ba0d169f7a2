package pulse

import (
	"errors"
	"fmt"
)

// Patch holds the parameters shared by all voices of a Synth. Times are in
// seconds, Sustain is a level and DutyCycle is the low fraction of a cycle.
type Patch struct {
	DutyCycle float64 `yaml:"dutycycle"`
	Attack    float32 `yaml:"attack"`
	Decay     float32 `yaml:"decay"`
	Sustain   float32 `yaml:"sustain"`
	Release   float32 `yaml:"release"`
}

func DefaultPatch() Patch {
	return Patch{
		DutyCycle: 0.5,
		Attack:    0.01,
		Decay:     0.1,
		Sustain:   0.7,
		Release:   0.15,
	}
}

func (p Patch) Validate() error {
	if p.DutyCycle < 0 || p.DutyCycle > 1 {
		return fmt.Errorf("duty cycle %v should be within 0..1", p.DutyCycle)
	}
	if p.Sustain < 0 || p.Sustain > 1 {
		return fmt.Errorf("sustain %v should be within 0..1", p.Sustain)
	}
	if p.Attack < 0 || p.Decay < 0 || p.Release < 0 {
		return errors.New("envelope times cannot be negative")
	}
	return nil
}
