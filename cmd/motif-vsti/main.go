//go:build plugin

package main

import (
	"cmp"
	"slices"

	"github.com/vsariola/motif"
	"github.com/vsariola/motif/cmd"
	"github.com/vsariola/motif/engine"
	"github.com/vsariola/motif/gomidi"
	"github.com/vsariola/motif/pulse"
	"gitlab.com/gomidi/midi/v2"
	"pipelined.dev/audio/vst2"
)

var pluginID = [4]byte{'m', 'o', 't', 'f'}

const pluginName = "motif pulse"

type vstiProcessor struct {
	host   vst2.Host
	cfg    cmd.Config
	engine *engine.Engine
	events []motif.ScheduledEvent
	buf    []float32
}

// newVstiProcessor allocates everything process needs, so that the audio thread
// never allocates.
func newVstiProcessor(cfg cmd.Config) *vstiProcessor {
	ec := cfg.EngineConfig()
	return &vstiProcessor{
		cfg:    cfg,
		engine: engine.New(pulse.New(cfg.Patch), nil, ec),
		events: make([]motif.ScheduledEvent, 0, cfg.QueueCapacity),
		buf:    make([]float32, 2*ec.MaxFrames),
	}
}

// hostSampleRate asks the host for its sample rate, falling back to the configured
// one.
func (p *vstiProcessor) hostSampleRate() float64 {
	timeInfo := p.host.GetTimeInfo(0)
	if timeInfo == nil || timeInfo.SampleRate <= 0 {
		return float64(p.cfg.SampleRate)
	}
	return timeInfo.SampleRate
}

func (p *vstiProcessor) process(out vst2.FloatBuffer) {
	left, right := out.Channel(0), out.Channel(1)
	p.render(left[:out.Frames], right[:out.Frames], p.hostSampleRate())
}

// render fills left and right with the synth output and the events received
// since the last call. Host buffers longer than buf are rendered in slices.
func (p *vstiProcessor) render(left, right []float32, rate float64) {
	if rate != p.engine.SampleRate() {
		p.engine.SetSampleRate(rate)
	}
	frames := len(left)
	slices.SortStableFunc(p.events, byOffset)
	for i := range p.events {
		p.events[i].SampleOffset = min(p.events[i].SampleOffset, uint32(frames))
	}
	events := p.events
	for done := 0; done < frames; {
		n := min(frames-done, len(p.buf)/2)
		end := done + n
		k := 0
		for ; k < len(events); k++ {
			offset := int(events[k].SampleOffset)
			if offset >= end && end != frames {
				break
			}
			events[k].SampleOffset = uint32(offset - done)
		}
		buf := p.buf[:2*n]
		p.engine.ProcessScheduled(buf, 2, events[:k])
		for i := 0; i < n; i++ {
			left[done+i], right[done+i] = buf[2*i], buf[2*i+1]
		}
		events = events[k:]
		done = end
	}
	p.events = p.events[:0] // reset buffer, but keep the allocated memory
}

func byOffset(a, b motif.ScheduledEvent) int {
	return cmp.Compare(a.SampleOffset, b.SampleOffset)
}

func init() {
	var (
		version = int32(100)
	)
	vst2.PluginAllocator = func(h vst2.Host) (vst2.Plugin, vst2.Dispatcher) {
		p := newVstiProcessor(cmd.DefaultConfig())
		p.host = h
		return vst2.Plugin{
				UniqueID:       pluginID,
				Version:        version,
				InputChannels:  0,
				OutputChannels: 2,
				Name:           pluginName,
				Vendor:         "vsariola/motif",
				Category:       vst2.PluginCategorySynth,
				Flags:          vst2.PluginIsSynth,
				ProcessFloatFunc: func(in, out vst2.FloatBuffer) {
					p.process(out)
				},
			}, vst2.Dispatcher{
				CanDoFunc: func(pcds vst2.PluginCanDoString) vst2.CanDoResponse {
					switch pcds {
					case vst2.PluginCanReceiveEvents, vst2.PluginCanReceiveMIDIEvent, vst2.PluginCanReceiveTimeInfo:
						return vst2.YesCanDo
					}
					return vst2.NoCanDo
				},
				ProcessEventsFunc: func(ev *vst2.EventsPtr) {
					for i := 0; i < ev.NumEvents(); i++ {
						v, ok := ev.Event(i).(*vst2.MIDIEvent)
						if !ok || len(p.events) == cap(p.events) {
							continue
						}
						_, event, ok := gomidi.Decode(midi.Message(v.Data[:]))
						if !ok {
							continue // ignore all other MIDI messages
						}
						p.events = append(p.events, motif.ScheduledEvent{SampleOffset: uint32(max(v.DeltaFrames, 0)), Event: event.Event()})
					}
				},
			}
	}
}

func main() {}
