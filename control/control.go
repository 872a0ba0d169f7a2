// Package control carries events from the control thread (UI, MIDI input) to
// the audio thread over a bounded lock-free queue.
package control

import (
	"errors"

	"github.com/vsariola/motif"
)

// DefaultCapacity is the queue size used when nothing else is configured.
const DefaultCapacity = 1024

// ErrBufferFull is returned by SendMIDI when the queue has no free slot. The
// event is not delivered; the caller decides whether to drop it or try again.
var ErrBufferFull = errors.New("control: event queue is full")

// Playback is the control thread's handle for sending live events to the audio
// thread. It wraps the producer end of the queue so transport details stay in
// one place. Like the producer, it must only be used from one goroutine at a
// time.
type Playback struct {
	producer *Producer[motif.RoutedEvent]
}

// New creates the event queue with the given capacity. The returned consumer
// belongs to the audio thread.
func New(capacity int) (*Playback, *Consumer[motif.RoutedEvent]) {
	producer, consumer := NewRing[motif.RoutedEvent](capacity)
	return NewPlayback(producer), consumer
}

func NewPlayback(producer *Producer[motif.RoutedEvent]) *Playback {
	return &Playback{producer: producer}
}

// SendMIDI enqueues a live MIDI event for the next audio callback. It never
// blocks or retries: if the queue is full, it returns ErrBufferFull.
func (p *Playback) SendMIDI(track motif.TrackID, midi motif.MidiEvent) error {
	routed := motif.RoutedEvent{Track: track, Event: midi.Event()}
	if !p.producer.Push(routed) {
		return ErrBufferFull
	}
	return nil
}

// Pending returns how many sent events the audio thread has not drained yet.
func (p *Playback) Pending() int {
	return p.producer.Len()
}
