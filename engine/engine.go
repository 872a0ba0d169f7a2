// Package engine runs a motif.Node in the audio host's callback. Live events
// from the control queue and sequence events are merged into one list of
// buffer offsets before each pass through motif.Evaluate.
package engine

import (
	"cmp"
	"slices"

	"github.com/vsariola/motif"
	"github.com/vsariola/motif/control"
)

type (
	// Engine is the audio thread side of the system. Everything it needs is
	// allocated in New, so Process never allocates or blocks.
	//
	// Apart from Process/ReadAudio, methods are not safe to call while another
	// goroutine is processing. The only channel into a running engine is the
	// control queue.
	Engine struct {
		node       motif.Node
		events     *control.Consumer[motif.RoutedEvent]
		buffer     *motif.AudioBuffer
		scheduled  []motif.ScheduledEvent
		clock      motif.Clock
		sampleRate float64

		timeline      []motif.TimedEvent
		timelineStart uint64 // clock position of timeline sample 0
		cursor        int    // next timeline event to schedule
		playing       bool
	}

	Config struct {
		SampleRate float64
		Channels   int // channels of the internal buffer
		MaxFrames  int // frames rendered per pass; larger host requests are split
		MaxEvents  int // events scheduled per pass; the rest wait for the next pass
	}
)

func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		Channels:   2,
		MaxFrames:  8192,
		MaxEvents:  control.DefaultCapacity + 256,
	}
}

// New creates an engine rendering node. events is the consumer end of the
// control queue; it may be nil if there are no live events.
func New(node motif.Node, events *control.Consumer[motif.RoutedEvent], cfg Config) *Engine {
	cfg.Channels = max(cfg.Channels, 2)
	cfg.MaxFrames = max(cfg.MaxFrames, 1)
	cfg.MaxEvents = max(cfg.MaxEvents, 1)
	return &Engine{
		node:       node,
		events:     events,
		buffer:     motif.NewAudioBuffer(cfg.Channels, cfg.MaxFrames),
		scheduled:  make([]motif.ScheduledEvent, 0, cfg.MaxEvents),
		clock:      motif.NewClock(cfg.SampleRate),
		sampleRate: cfg.SampleRate,
	}
}

// ReadAudio implements motif.AudioSource.
func (e *Engine) ReadAudio(out []float32, channels int) {
	e.Process(out, channels)
}

// Process fills out with len(out)/channels frames of interleaved audio. Host
// channels beyond the engine's own are silent.
func (e *Engine) Process(out []float32, channels int) {
	e.ProcessScheduled(out, channels, nil)
}

// ProcessScheduled is Process with additional events that the host has already
// placed in the buffer, such as MIDI from a plugin host. external must be sorted
// by SampleOffset, each offset within 0..len(out)/channels.
//
// A pass holds at most MaxEvents events. When the list fills up, the pass ends
// at the next external event, which then starts the following pass. Events
// sharing one offset beyond MaxEvents are handled late, at the start of the
// next pass; any still left when out is full are dropped.
func (e *Engine) ProcessScheduled(out []float32, channels int, external []motif.ScheduledEvent) {
	if channels <= 0 {
		return
	}
	frames := len(out) / channels
	for done := 0; done < frames; {
		n := min(frames-done, e.buffer.Capacity())
		last := done+n == frames
		for len(external) > 0 {
			offset := int(external[0].SampleOffset)
			if offset >= done+n && !(last && offset == frames) {
				break
			}
			if len(e.scheduled) == cap(e.scheduled) {
				if offset > done {
					n = offset - done
				}
				break
			}
			ev := external[0]
			ev.SampleOffset = uint32(max(offset-done, 0))
			e.scheduled = append(e.scheduled, ev)
			external = external[1:]
		}
		e.renderPass(out[done*channels:(done+n)*channels], channels, n)
		done += n
	}
}

// renderPass renders n frames. e.scheduled may already hold host events.
func (e *Engine) renderPass(out []float32, channels, n int) {
	e.buffer.Prepare(n)
	hostEvents := len(e.scheduled)
	e.drain()
	e.scheduleTimeline(n)
	if hostEvents > 0 {
		// live and timeline events were appended after the host events
		slices.SortStableFunc(e.scheduled, byOffset)
	}
	motif.Evaluate(e.node, nil, e.buffer, e.scheduled, e.sampleRate)
	e.scheduled = e.scheduled[:0]
	e.buffer.Interleave(out, channels)
	e.clock.Advance(n)
}

// drain moves every queued live event into the scheduled list. Live events are
// not timestamped when sent, so they all land on offset 0 of the pass that
// drains them.
func (e *Engine) drain() {
	if e.events == nil {
		return
	}
	for len(e.scheduled) < cap(e.scheduled) {
		routed, ok := e.events.Pop()
		if !ok {
			return
		}
		// one node per engine: the destination track is not used for routing
		e.scheduled = append(e.scheduled, motif.ScheduledEvent{SampleOffset: 0, Event: routed.Event})
	}
}

// scheduleTimeline adds the timeline events falling into the next n frames at
// their exact offsets.
func (e *Engine) scheduleTimeline(n int) {
	if !e.playing {
		return
	}
	pos := e.clock.Position() - e.timelineStart
	end := pos + uint64(n)
	for e.cursor < len(e.timeline) && len(e.scheduled) < cap(e.scheduled) {
		ev := e.timeline[e.cursor]
		if ev.Sample >= end {
			break
		}
		var offset uint32
		if ev.Sample > pos {
			offset = uint32(ev.Sample - pos)
		}
		e.scheduled = append(e.scheduled, motif.ScheduledEvent{SampleOffset: offset, Event: ev.Event})
		e.cursor++
	}
	if e.cursor >= len(e.timeline) {
		e.playing = false
	}
}

// Play starts a timeline at the current position. The timeline is sorted by
// sample, with sample 0 being the next frame processed; motif.Sequence.Timeline
// produces one.
func (e *Engine) Play(timeline []motif.TimedEvent) {
	e.timeline = timeline
	e.timelineStart = e.clock.Position()
	e.cursor = 0
	e.playing = len(timeline) > 0
}

// Stop drops the rest of the timeline and silences the node.
func (e *Engine) Stop() {
	e.playing = false
	e.timeline = nil
	e.cursor = 0
	e.node.Reset()
}

// Reset silences the node and rewinds the clock.
func (e *Engine) Reset() {
	e.Stop()
	e.clock.Seek(0)
}

// SetSampleRate changes the rate the node renders at, for hosts that change it
// between callbacks. The node is reset; a playing timeline keeps its sample
// positions.
func (e *Engine) SetSampleRate(rate float64) {
	e.sampleRate = rate
	e.clock.SampleRate = rate
	e.node.Reset()
}

func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Playing reports whether timeline events are still pending.
func (e *Engine) Playing() bool { return e.playing }

// Position returns the number of frames processed since the last Reset.
func (e *Engine) Position() uint64 { return e.clock.Position() }

// PositionTick derives the musical playhead from the sample position.
func (e *Engine) PositionTick(bpm float64) motif.Tick { return e.clock.PositionTick(bpm) }

func (e *Engine) Clock() *motif.Clock { return &e.clock }

func (e *Engine) Channels() int { return e.buffer.Channels() }

// Render plays seq from the current position and returns it rendered as
// interleaved audio, followed by tail frames to let releases ring out. Meant for
// offline use; it allocates the result.
func (e *Engine) Render(seq motif.Sequence, tail int) []float32 {
	e.Play(seq.Timeline(&e.clock))
	frames := int(e.clock.TickToSample(seq.Length(), seq.BPM)) + tail
	channels := e.buffer.Channels()
	out := make([]float32, frames*channels)
	e.Process(out, channels)
	return out
}

func byOffset(a, b motif.ScheduledEvent) int {
	return cmp.Compare(a.SampleOffset, b.SampleOffset)
}
