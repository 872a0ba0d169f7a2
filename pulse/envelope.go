package pulse

// Stage is the current segment of an ADSR envelope.
type Stage int

const (
	Idle Stage = iota
	Attack
	Decay
	Sustain
	Release
)

// instantTime is the segment time (in seconds) below which a segment is taken
// to be instantaneous, to avoid dividing by almost zero.
const instantTime = 1e-5

// Envelope is a per-voice linear ADSR amplitude envelope, advanced one sample
// at a time with Tick. Times are in seconds; sustain is a level in [0, 1].
type Envelope struct {
	stage        Stage
	level        float64
	attack       float32
	decay        float32
	sustain      float32
	release      float32
	releaseStart float64
}

// Trigger restarts the envelope from zero. It is valid in any stage, which is
// what retriggering and voice stealing rely on.
func (e *Envelope) Trigger() {
	e.stage = Attack
	e.level = 0
}

// Release starts the release segment from the current level, so a note
// released during attack or decay ramps down from wherever it got to.
func (e *Envelope) Release() {
	e.releaseStart = e.level
	e.stage = Release
}

// SetADSR sets the segment parameters. Voices call it right after Trigger.
func (e *Envelope) SetADSR(attack, decay, sustain, release float32) {
	e.attack = attack
	e.decay = decay
	e.sustain = sustain
	e.release = release
}

// Tick advances the envelope by one sample and returns the new level.
func (e *Envelope) Tick(sampleRate float64) float64 {
	switch e.stage {
	case Attack:
		if e.attack < instantTime {
			e.level = 1
			e.stage = Decay
			break
		}
		e.level += 1 / (float64(e.attack) * sampleRate)
		if e.level >= 1 {
			e.level = 1
			e.stage = Decay
		}
	case Decay:
		sustain := float64(e.sustain)
		if e.decay < instantTime {
			e.level = sustain
			e.stage = Sustain
			break
		}
		e.level -= (1 - sustain) / (float64(e.decay) * sampleRate)
		if e.level <= sustain {
			e.level = max(sustain, 0)
			e.stage = Sustain
		}
	case Release:
		if e.release < instantTime {
			e.level = 0
			e.stage = Idle
			break
		}
		// constant slope from the level release started at, so the full
		// release time is always spent
		e.level -= e.releaseStart / (float64(e.release) * sampleRate)
		if e.level <= 0 {
			e.level = 0
			e.stage = Idle
		}
	}
	return e.level
}

func (e *Envelope) Stage() Stage      { return e.stage }
func (e *Envelope) Level() float64    { return e.level }
func (e *Envelope) IsIdle() bool      { return e.stage == Idle }
func (e *Envelope) IsReleasing() bool { return e.stage == Release }

// Reset forces the envelope silent.
func (e *Envelope) Reset() {
	e.stage = Idle
	e.level = 0
}

func (s Stage) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Attack:
		return "Attack"
	case Decay:
		return "Decay"
	case Sustain:
		return "Sustain"
	case Release:
		return "Release"
	}
	return "Unknown"
}
