package pulse_test

import (
	"testing"

	"github.com/vsariola/motif"
	"github.com/vsariola/motif/pulse"
)

func TestVoiceTrigger(t *testing.T) {
	var v pulse.Voice
	if _, ok := v.Note(); ok || v.IsActive() {
		t.Fatalf("zero voice should be unassigned and inactive")
	}
	v.Trigger(69, 127, 440, 7)
	v.Envelope.SetADSR(0, 0, 1, 0)
	if n, ok := v.Note(); !ok || n != 69 {
		t.Errorf("Note = %v, %v, want A4, true", n, ok)
	}
	if !v.IsActive() || v.Age != 7 {
		t.Errorf("triggered voice: active %v age %v", v.IsActive(), v.Age)
	}
	v.Reset()
	if _, ok := v.Note(); ok || v.IsActive() {
		t.Errorf("Reset should unassign and silence the voice")
	}
}

func TestVoicePulseShape(t *testing.T) {
	const rate = 100
	var v pulse.Voice
	v.Trigger(69, 127, 25, 1) // four samples per cycle
	v.Envelope.SetADSR(0, 0, 1, 0)
	var got []float64
	for i := 0; i < 8; i++ {
		got = append(got, v.Render(0.25, rate))
	}
	// phases 0.25, 0.5, 0.75, 0; low while phase <= duty cycle
	want := []float64{-1, 1, 1, -1, -1, 1, 1, -1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pulse = %v, want %v", got, want)
		}
	}
}

func TestVoiceVelocityScales(t *testing.T) {
	var v pulse.Voice
	v.Trigger(motif.Note(60), 0, 100, 1)
	v.Envelope.SetADSR(0, 0, 1, 0)
	if got := v.Render(0.5, 1000); got != 0 {
		t.Errorf("zero velocity rendered %v", got)
	}
}
