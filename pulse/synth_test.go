package pulse_test

import (
	"math"
	"testing"

	"github.com/vsariola/motif"
	"github.com/vsariola/motif/pulse"
)

const (
	rate   = 48000
	frames = 256
)

// render runs one buffer through the synth and returns it
func render(s *pulse.Synth, events ...motif.ScheduledEvent) *motif.AudioBuffer {
	out := motif.NewAudioBuffer(2, frames)
	out.Prepare(frames)
	motif.Evaluate(s, nil, out, events, rate)
	return out
}

func at(offset uint32, event motif.Event) motif.ScheduledEvent {
	return motif.ScheduledEvent{SampleOffset: offset, Event: event}
}

func isSilent(samples []float32) bool {
	for _, v := range samples {
		if math.Abs(float64(v)) >= 1e-6 {
			return false
		}
	}
	return true
}

func isSounding(samples []float32) bool {
	for _, v := range samples {
		if v == 0 {
			return false
		}
	}
	return true
}

func TestNoteOnSoundsMono(t *testing.T) {
	s := pulse.New(pulse.DefaultPatch())
	out := render(s, at(0, motif.NoteOnEvent(60, 100)))
	if !isSounding(out.Channel(0)) {
		t.Errorf("note on at offset 0 should sound across the whole buffer")
	}
	left, right := out.Channel(0), out.Channel(1)
	for i := range left {
		if left[i] != right[i] {
			t.Fatalf("channels differ at frame %v: %v != %v", i, left[i], right[i])
		}
	}
	if peak := out.Peak(0); peak > pulse.Gain {
		t.Errorf("single voice peak %v exceeds gain %v", peak, pulse.Gain)
	}
}

func TestNoEventsIsSilent(t *testing.T) {
	s := pulse.New(pulse.DefaultPatch())
	out := render(s)
	if !isSilent(out.Channel(0)) || !isSilent(out.Channel(1)) {
		t.Errorf("synth without notes should be silent")
	}
}

func TestNoteOnMidBuffer(t *testing.T) {
	s := pulse.New(pulse.DefaultPatch())
	out := render(s, at(128, motif.NoteOnEvent(60, 100)))
	if !isSilent(out.ChannelRange(0, 0, 128)) {
		t.Errorf("frames before the note on should be silent")
	}
	if !isSounding(out.ChannelRange(0, 128, frames)) {
		t.Errorf("frames from the note on should carry signal")
	}
}

func TestReleaseReturnsToSilence(t *testing.T) {
	patch := pulse.DefaultPatch()
	s := pulse.New(patch)
	render(s, at(0, motif.NoteOnEvent(60, 100)))
	for i := 0; i < 4; i++ {
		render(s)
	}
	render(s, at(0, motif.NoteOffEvent(60)))
	releaseFrames := int(float64(patch.Release)*rate) + 1
	for i := 0; i < releaseFrames/frames+1; i++ {
		render(s)
	}
	if got := s.ActiveVoices(); got != 0 {
		t.Errorf("ActiveVoices = %v after the release time, want 0", got)
	}
	if out := render(s); !isSilent(out.Channel(0)) {
		t.Errorf("synth should be silent after the release")
	}
}

func TestResetSilences(t *testing.T) {
	s := pulse.New(pulse.DefaultPatch())
	render(s, at(0, motif.NoteOnEvent(60, 100)), at(0, motif.NoteOnEvent(64, 100)))
	s.Reset()
	if got := s.ActiveVoices(); got != 0 {
		t.Errorf("ActiveVoices = %v after Reset, want 0", got)
	}
	if out := render(s); !isSilent(out.Channel(0)) {
		t.Errorf("synth should be silent after Reset")
	}
}

func TestVoiceSteal(t *testing.T) {
	s := pulse.New(pulse.DefaultPatch())
	var events []motif.ScheduledEvent
	for i := 0; i < pulse.NumVoices; i++ {
		events = append(events, at(0, motif.NoteOnEvent(motif.Note(60+i), 100)))
	}
	render(s, events...)
	if got := s.ActiveVoices(); got != pulse.NumVoices {
		t.Fatalf("ActiveVoices = %v, want %v", got, pulse.NumVoices)
	}
	render(s, at(0, motif.NoteOnEvent(72, 100)))
	if got := s.ActiveVoices(); got != pulse.NumVoices {
		t.Errorf("ActiveVoices after stealing = %v, want %v", got, pulse.NumVoices)
	}
	for i := range s.Voices {
		if n, _ := s.Voices[i].Note(); n == 60 {
			t.Errorf("voice %v still plays the oldest note", i)
		}
	}
	if n, _ := s.Voices[0].Note(); n != 72 {
		t.Errorf("the oldest voice (0) should have been stolen, it plays %v", n)
	}
}

func TestStealIgnoresReleaseState(t *testing.T) {
	s := pulse.New(pulse.DefaultPatch())
	var events []motif.ScheduledEvent
	for i := 0; i < pulse.NumVoices; i++ {
		events = append(events, at(0, motif.NoteOnEvent(motif.Note(60+i), 100)))
	}
	// the newest voice is releasing, but the oldest one is still taken
	events = append(events, at(1, motif.NoteOffEvent(67)))
	render(s, events...)
	render(s, at(0, motif.NoteOnEvent(80, 100)))
	if n, _ := s.Voices[0].Note(); n != 80 {
		t.Errorf("voice 0 plays %v, want the stolen note 80", n)
	}
	if !s.Voices[7].Envelope.IsReleasing() {
		t.Errorf("releasing voice should have been left alone")
	}
}

func TestNoteOffReleasesDuplicates(t *testing.T) {
	s := pulse.New(pulse.DefaultPatch())
	render(s, at(0, motif.NoteOnEvent(60, 100)), at(0, motif.NoteOnEvent(60, 80)), at(0, motif.NoteOnEvent(64, 100)))
	render(s, at(0, motif.NoteOffEvent(60)))
	releasing := 0
	for i := range s.Voices {
		if s.Voices[i].Envelope.IsReleasing() {
			releasing++
		}
	}
	if releasing != 2 {
		t.Errorf("%v voices releasing, want both voices playing C4", releasing)
	}
}

func TestLateNoteOffKeepsIdleVoiceIdle(t *testing.T) {
	patch := pulse.DefaultPatch()
	s := pulse.New(patch)
	render(s, at(0, motif.NoteOnEvent(60, 100)))
	render(s, at(0, motif.NoteOffEvent(60)))
	for i := 0; i < int(float64(patch.Release)*rate)/frames+2; i++ {
		render(s)
	}
	if !s.Voices[0].Envelope.IsIdle() {
		t.Fatalf("voice 0 stage %v, want Idle after the release", s.Voices[0].Envelope.Stage())
	}
	out := render(s, at(0, motif.NoteOffEvent(60)), at(10, motif.NoteOffEvent(60)))
	if got := s.ActiveVoices(); got != 0 {
		t.Errorf("ActiveVoices = %v after a note off for an idle voice, want 0", got)
	}
	if stage := s.Voices[0].Envelope.Stage(); stage != pulse.Idle {
		t.Errorf("voice 0 stage %v, want Idle", stage)
	}
	if !isSilent(out.Channel(0)) {
		t.Errorf("late note off should leave the synth silent")
	}
}

func TestPatchChangeDoesNotAffectSoundingVoices(t *testing.T) {
	s := pulse.New(pulse.DefaultPatch())
	render(s, at(0, motif.NoteOnEvent(60, 100)))
	s.Patch.Release = 0
	render(s, at(0, motif.NoteOffEvent(60)))
	if s.ActiveVoices() != 1 {
		t.Errorf("voice should still be releasing with the release time it was triggered with")
	}
}

func TestPatchValidate(t *testing.T) {
	if err := pulse.DefaultPatch().Validate(); err != nil {
		t.Errorf("default patch is invalid: %v", err)
	}
	bad := pulse.DefaultPatch()
	bad.Sustain = 2
	if err := bad.Validate(); err == nil {
		t.Errorf("sustain above 1 should be invalid")
	}
}
