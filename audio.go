package motif

type (
	// AudioSource is pulled by an audio host whenever it needs more samples.
	// ReadAudio fills out completely with interleaved samples of the given
	// channel count. It runs on the host's audio thread.
	AudioSource interface {
		ReadAudio(out []float32, channels int)
	}

	// AudioContext is an audio host that plays sources.
	AudioContext interface {
		Play(source AudioSource) CloserWaiter
		SampleRate() int
		Channels() int
		Close() error
	}

	// CloserWaiter stops a playing source with Close; Wait blocks until it has
	// been closed.
	CloserWaiter interface {
		Close() error
		Wait()
	}
)

type (
	// PCM is interleaved audio rendered in advance.
	PCM struct {
		Data       []float32
		Channels   int
		SampleRate int
	}

	// PCMSource plays a PCM once and is silent afterwards.
	PCMSource struct {
		pcm PCM
		pos int // frames played
	}
)

func (p PCM) Frames() int {
	if p.Channels <= 0 {
		return 0
	}
	return len(p.Data) / p.Channels
}

func (p PCM) Wav(pcm16 bool) ([]byte, error) { return Wav(p.Data, p.Channels, p.SampleRate, pcm16) }
func (p PCM) Raw(pcm16 bool) ([]byte, error) { return Raw(p.Data, pcm16) }

func (p PCM) Source() *PCMSource { return &PCMSource{pcm: p} }

// ReadAudio implements AudioSource. Channels are mapped by index; missing ones
// are silent.
func (s *PCMSource) ReadAudio(out []float32, channels int) {
	if channels <= 0 {
		return
	}
	src := s.pcm.Channels
	for frame := 0; frame < len(out)/channels; frame++ {
		for ch := 0; ch < channels; ch++ {
			var v float32
			if s.pos < s.pcm.Frames() && ch < src {
				v = s.pcm.Data[s.pos*src+ch]
			}
			out[frame*channels+ch] = v
		}
		if s.pos < s.pcm.Frames() {
			s.pos++
		}
	}
}

// Remaining returns the number of frames not yet played.
func (s *PCMSource) Remaining() int { return s.pcm.Frames() - s.pos }
