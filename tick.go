package motif

import (
	"fmt"
	"math"
)

// TicksPerQuarter is the musical time resolution. 480 divides evenly by 2, 3,
// 4, 5, 8, 16 and 32, so all the usual subdivisions including triplets are
// exact.
const TicksPerQuarter = 480

// Tick is an absolute position in musical time, in 1/480ths of a quarter note.
// It is integer only so positions never drift; durations are plain uint64 tick
// counts.
type Tick uint64

// FromQuarters returns the position of the given number of whole quarter notes.
func FromQuarters(quarters uint64) Tick {
	return Tick(quarters * TicksPerQuarter)
}

// FromBeats returns the position of a whole-note fraction, e.g. FromBeats(1, 16)
// is a sixteenth note. The fraction has to divide the resolution exactly.
func FromBeats(numerator, denominator uint64) Tick {
	total := numerator * TicksPerQuarter * 4
	assert(denominator != 0 && total%denominator == 0, "motif.FromBeats: fraction does not divide evenly into 480 PPQ")
	if denominator == 0 {
		return 0
	}
	return Tick(total / denominator)
}

func (t Tick) Add(other Tick) Tick {
	return t + other
}

// Sub subtracts other from t. Going below zero is a programmer error; when
// assertions are compiled out the result saturates at zero.
func (t Tick) Sub(other Tick) Tick {
	assert(other <= t, "motif.Tick.Sub: result would be negative")
	return t.SaturatingSub(other)
}

func (t Tick) SaturatingSub(other Tick) Tick {
	if other > t {
		return 0
	}
	return t - other
}

// SnapToGrid rounds t to the nearest multiple of grid ticks. Ties round up.
func (t Tick) SnapToGrid(grid uint64) Tick {
	assert(grid > 0, "motif.Tick.SnapToGrid: zero grid")
	if grid == 0 {
		return t
	}
	return Tick((uint64(t) + grid/2) / grid * grid)
}

// Quarters converts t to fractional quarter notes. Lossy; use it for tempo math
// and display, never for storage.
func (t Tick) Quarters() float64 {
	return float64(t) / TicksPerQuarter
}

func (t Tick) String() string {
	q, rem := uint64(t)/TicksPerQuarter, uint64(t)%TicksPerQuarter
	if rem == 0 {
		return fmt.Sprintf("%dq", q)
	}
	return fmt.Sprintf("%dq+%d", q, rem)
}

// ticksFromQuarters converts fractional quarters to ticks, truncating.
func ticksFromQuarters(quarters float64) Tick {
	if quarters <= 0 || math.IsNaN(quarters) {
		return 0
	}
	return Tick(uint64(quarters * TicksPerQuarter))
}
