package oto

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/vsariola/motif"
)

type (
	OtoContext struct {
		context    *oto.Context
		sampleRate int
		channels   int
		pcm16      bool
	}

	OtoOutput struct {
		player *oto.Player
		once   sync.Once
		closed chan struct{}
	}

	// sourceReader adapts a motif.AudioSource to the io.Reader oto pulls
	// from. Read runs on oto's audio goroutine.
	sourceReader struct {
		source   motif.AudioSource
		channels int
		pcm16    bool
		floats   []float32
	}

	finiteSource interface {
		Remaining() int
	}
)

const otoBufferDuration = 50 * time.Millisecond

// NewContext opens the audio device. oto supports one context per process.
func NewContext(sampleRate, channels int, pcm16 bool) (*OtoContext, error) {
	format := oto.FormatFloat32LE
	if pcm16 {
		format = oto.FormatSignedInt16LE
	}
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       format,
		BufferSize:   otoBufferDuration,
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context, sampleRate: sampleRate, channels: channels, pcm16: pcm16}, nil
}

// Play starts pulling audio from source. Sources with a Remaining method stop
// once it reaches zero; others play until closed.
func (c *OtoContext) Play(source motif.AudioSource) motif.CloserWaiter {
	reader := &sourceReader{source: source, channels: c.channels, pcm16: c.pcm16}
	o := &OtoOutput{player: c.context.NewPlayer(reader), closed: make(chan struct{})}
	o.player.Play()
	return o
}

func (c *OtoContext) SampleRate() int { return c.sampleRate }
func (c *OtoContext) Channels() int   { return c.channels }

func (c *OtoContext) Close() error {
	if err := c.context.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

func (r *sourceReader) Read(p []byte) (int, error) {
	bytesPerSample := 4
	if r.pcm16 {
		bytesPerSample = 2
	}
	frames := len(p) / (bytesPerSample * r.channels)
	if frames == 0 {
		return 0, nil
	}
	n := frames * r.channels
	if cap(r.floats) < n {
		r.floats = make([]float32, n)
	}
	r.floats = r.floats[:n]
	var done bool
	if f, ok := r.source.(finiteSource); ok {
		done = f.Remaining() <= 0
	}
	r.source.ReadAudio(r.floats, r.channels)
	if r.pcm16 {
		FloatBufferTo16BitLE(r.floats, p[:n*2])
	} else {
		FloatBufferTo32BitLE(r.floats, p[:n*4])
	}
	if done {
		return n * bytesPerSample, io.EOF
	}
	return n * bytesPerSample, nil
}

// Close stops the player. oto players need no explicit disposal since v3.4.
func (o *OtoOutput) Close() error {
	o.once.Do(func() {
		o.player.Pause()
		close(o.closed)
	})
	return o.player.Err()
}

// Wait blocks until the player is closed or a finite source has played out.
func (o *OtoOutput) Wait() {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-o.closed:
			return
		case <-ticker.C:
			if !o.player.IsPlaying() {
				return
			}
		}
	}
}
