package motif

import "github.com/viterin/vek/vek32"

// AudioBuffer is a fixed capacity, planar, multi-channel sample store. It is
// allocated once and reused for every callback: Prepare sets how many frames
// the current callback uses and all accessors are bounded by that count.
//
//	data[0] = [L0, L1, L2, ...]
//	data[1] = [R0, R1, R2, ...]
type AudioBuffer struct {
	data   [][]float32
	frames int
}

// NewAudioBuffer allocates channels channels of maxFrames samples each.
func NewAudioBuffer(channels, maxFrames int) *AudioBuffer {
	data := make([][]float32, channels)
	for i := range data {
		data[i] = make([]float32, maxFrames)
	}
	return &AudioBuffer{data: data}
}

// Prepare sets the frame count of the next callback and zeroes exactly that many
// samples in every channel.
func (b *AudioBuffer) Prepare(frames int) {
	assert(frames >= 0 && frames <= b.Capacity(), "motif.AudioBuffer.Prepare: frames exceed capacity")
	b.frames = frames
	for _, ch := range b.data {
		clear(ch[:frames])
	}
}

func (b *AudioBuffer) Frames() int   { return b.frames }
func (b *AudioBuffer) Channels() int { return len(b.data) }

// Capacity is the maximum frame count the buffer was allocated for.
func (b *AudioBuffer) Capacity() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data[0])
}

// Channel returns the prepared frames of channel ch. The slice aliases the
// buffer, so writes go straight into it.
func (b *AudioBuffer) Channel(ch int) []float32 {
	return b.data[ch][:b.frames]
}

// ChannelRange returns frames [start, end) of channel ch.
func (b *AudioBuffer) ChannelRange(ch, start, end int) []float32 {
	return b.data[ch][start:end:b.frames]
}

// TwoChannels returns two distinct channels at once, in the order asked, for
// stereo algorithms that write both channels in one pass.
func (b *AudioBuffer) TwoChannels(a, c int) ([]float32, []float32) {
	assert(a != c, "motif.AudioBuffer.TwoChannels: same channel twice")
	return b.Channel(a), b.Channel(c)
}

// MixFrom adds the samples of other into b. Both buffers need the same frame and
// channel counts. Mixing is additive, so calling it twice adds other twice.
func (b *AudioBuffer) MixFrom(other *AudioBuffer) {
	assert(b.frames == other.frames, "motif.AudioBuffer.MixFrom: frame count mismatch")
	assert(len(b.data) == len(other.data), "motif.AudioBuffer.MixFrom: channel count mismatch")
	for ch := range b.data {
		vek32.Add_Inplace(b.data[ch][:b.frames], other.data[ch][:b.frames])
	}
}

// ApplyStereoGain scales channel 0 by left and channel 1 by right. The buffer
// must have at least two channels.
func (b *AudioBuffer) ApplyStereoGain(left, right float32) {
	vek32.MulNumber_Inplace(b.data[0][:b.frames], left)
	vek32.MulNumber_Inplace(b.data[1][:b.frames], right)
}

// WriteInterleaved transposes the planar data into out, which must hold
// Frames()*Channels() samples.
func (b *AudioBuffer) WriteInterleaved(out []float32) {
	b.Interleave(out, len(b.data))
}

// Interleave writes the prepared frames into out using channels interleaved
// channels, the layout a host asks for. Host channels the buffer does not have
// are written as silence; buffer channels the host does not have are dropped.
func (b *AudioBuffer) Interleave(out []float32, channels int) {
	out = out[:b.frames*channels]
	for ch := 0; ch < channels; ch++ {
		if ch >= len(b.data) {
			for i := ch; i < len(out); i += channels {
				out[i] = 0
			}
			continue
		}
		src := b.data[ch][:b.frames]
		for frame, v := range src {
			out[frame*channels+ch] = v
		}
	}
}

// Peak returns the largest absolute sample value of channel ch.
func (b *AudioBuffer) Peak(ch int) float32 {
	if b.frames == 0 {
		return 0
	}
	samples := b.data[ch][:b.frames]
	return max(vek32.Max(samples), -vek32.Min(samples))
}
