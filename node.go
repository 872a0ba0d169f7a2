package motif

type (
	// Node is anything that produces or transforms audio: synthesizers, effects,
	// mixers. Nodes never deal with event timing; Evaluate slices the buffer and
	// calls Render and HandleEvent in the right order.
	//
	// All three methods run on the audio thread and must never block.
	Node interface {
		// Render writes frames rng.Start..rng.End of output, optionally reading
		// inputs. Frames outside rng must be left untouched.
		Render(inputs []*AudioBuffer, output *AudioBuffer, rng FrameRange, sampleRate float64)
		// HandleEvent applies an event instantly. It does not see any buffer.
		HandleEvent(event Event)
		// Reset returns the node to its silent initial state.
		Reset()
	}

	// FrameRange is the half open frame interval [Start, End).
	FrameRange struct {
		Start, End int
	}
)

func (r FrameRange) Len() int { return r.End - r.Start }
