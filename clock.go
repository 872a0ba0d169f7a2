package motif

import "math"

// Clock bridges musical time (ticks) and audio time (samples). The sample
// position is the only counter the audio thread advances; tick positions are
// always derived from it, so the two can never drift apart.
type Clock struct {
	SampleRate float64
	position   uint64
}

func NewClock(sampleRate float64) Clock {
	return Clock{SampleRate: sampleRate}
}

// TickToSample returns the sample at which tick t starts. It rounds up, so that
// SampleToTick(TickToSample(t)) == t for ticks on the sample grid.
func (c *Clock) TickToSample(t Tick, bpm float64) uint64 {
	seconds := t.Quarters() / (bpm / 60.0)
	return uint64(math.Ceil(seconds * c.SampleRate))
}

// SampleToTick returns the tick position of a sample, truncating.
func (c *Clock) SampleToTick(sample uint64, bpm float64) Tick {
	seconds := float64(sample) / c.SampleRate
	quarters := seconds * (bpm / 60.0)
	return ticksFromQuarters(quarters)
}

// Advance moves the sample position forward by frames.
func (c *Clock) Advance(frames int) {
	c.position += uint64(frames)
}

func (c *Clock) Seek(sample uint64) {
	c.position = sample
}

// Position returns the number of samples rendered since the last Seek.
func (c *Clock) Position() uint64 {
	return c.position
}

// PositionTick derives the playhead tick from the sample position.
func (c *Clock) PositionTick(bpm float64) Tick {
	return c.SampleToTick(c.position, bpm)
}
