package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vsariola/motif/control"
	"github.com/vsariola/motif/engine"
	"github.com/vsariola/motif/pulse"
	"gopkg.in/yaml.v3"
)

// Config is shared by the command line tools. A config file only needs the
// fields that differ from DefaultConfig.
type Config struct {
	SampleRate    int         `yaml:"samplerate"`
	Channels      int         `yaml:"channels"`
	BufferFrames  int         `yaml:"bufferframes"`
	QueueCapacity int         `yaml:"queuecapacity"`
	BPM           float64     `yaml:"bpm"`
	PCM16         bool        `yaml:"pcm16"`
	MIDIInput     string      `yaml:"midiinput"`
	Patch         pulse.Patch `yaml:"patch"`
}

func DefaultConfig() Config {
	return Config{
		SampleRate:    48000,
		Channels:      2,
		BufferFrames:  8192,
		QueueCapacity: control.DefaultCapacity,
		BPM:           120,
		Patch:         pulse.DefaultPatch(),
	}
}

// LoadConfig reads a YAML config over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config %v: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config %v: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %v: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate %v should be > 0", c.SampleRate)
	}
	if c.Channels < 1 {
		return fmt.Errorf("channel count %v should be >= 1", c.Channels)
	}
	if c.BufferFrames < 1 {
		return errors.New("buffer frames should be >= 1")
	}
	if c.QueueCapacity < 1 {
		return errors.New("queue capacity should be >= 1")
	}
	if c.BPM <= 0 {
		return fmt.Errorf("BPM %v should be > 0", c.BPM)
	}
	if err := c.Patch.Validate(); err != nil {
		return fmt.Errorf("invalid patch: %w", err)
	}
	return nil
}

// NoteGate is the length of an eighth note at the config tempo. Terminal key
// presses play notes of this length.
func (c Config) NoteGate() time.Duration {
	return time.Duration(float64(time.Minute) / c.BPM / 2)
}

// EngineConfig sizes an engine for this config. The event list has room for a
// full queue plus the sequence events of one pass.
func (c Config) EngineConfig() engine.Config {
	return engine.Config{
		SampleRate: float64(c.SampleRate),
		Channels:   2,
		MaxFrames:  c.BufferFrames,
		MaxEvents:  c.QueueCapacity + 256,
	}
}
