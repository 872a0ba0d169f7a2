package motif_test

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/vsariola/motif"
)

// recorder logs the calls Evaluate makes, in order
type recorder struct {
	calls []string
}

func (r *recorder) Render(_ []*motif.AudioBuffer, _ *motif.AudioBuffer, rng motif.FrameRange, _ float64) {
	if rng.Len() <= 0 {
		r.calls = append(r.calls, "empty render")
	}
	r.calls = append(r.calls, "render "+strconv.Itoa(rng.Start)+"-"+strconv.Itoa(rng.End))
}

func (r *recorder) HandleEvent(event motif.Event) {
	r.calls = append(r.calls, event.Midi.Type.String()+" "+event.Midi.Note.String())
}

func (r *recorder) Reset() {}

func TestEvaluateSlicesAtEvents(t *testing.T) {
	var tests = []struct {
		name   string
		frames int
		events []motif.ScheduledEvent
		want   []string
	}{
		{"no events", 256, nil, []string{"render 0-256"}},
		{"zero frames", 0, nil, nil},
		{
			"event at start",
			256,
			[]motif.ScheduledEvent{{SampleOffset: 0, Event: motif.NoteOnEvent(60, 100)}},
			[]string{"NoteOn C4", "render 0-256"},
		},
		{
			"events in the middle share an offset",
			256,
			[]motif.ScheduledEvent{
				{SampleOffset: 128, Event: motif.NoteOffEvent(60)},
				{SampleOffset: 128, Event: motif.NoteOnEvent(64, 100)},
			},
			[]string{"render 0-128", "NoteOff C4", "NoteOn E4", "render 128-256"},
		},
		{
			"event at the end",
			256,
			[]motif.ScheduledEvent{
				{SampleOffset: 100, Event: motif.NoteOnEvent(60, 100)},
				{SampleOffset: 256, Event: motif.NoteOffEvent(60)},
			},
			[]string{"render 0-100", "NoteOn C4", "render 100-256", "NoteOff C4"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			out := motif.NewAudioBuffer(2, 256)
			out.Prepare(tt.frames)
			motif.Evaluate(r, nil, out, tt.events, 48000)
			if !reflect.DeepEqual(r.calls, tt.want) {
				t.Errorf("got calls %v, want %v", r.calls, tt.want)
			}
		})
	}
}
