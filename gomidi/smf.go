package gomidi

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/vsariola/motif"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// DefaultBPM is the tempo of files without a tempo change, as in the SMF
// standard.
const DefaultBPM = 120

type (
	noteKey struct {
		channel uint8
		note    motif.Note
	}

	heldNote struct {
		start    uint64
		velocity motif.Velocity
	}

	smfEvent struct {
		tick uint64
		msg  midi.Message
		off  bool
	}
)

// ReadSMF imports a Standard MIDI File.
func ReadSMF(path string) (motif.Sequence, error) {
	rd, err := smf.ReadFile(path)
	if err != nil {
		return motif.Sequence{}, fmt.Errorf("could not read MIDI file %v: %w", path, err)
	}
	return FromSMF(rd)
}

// FromSMF converts the notes of all tracks and channels into one sequence.
// The tempo is the first tempo change of the file; later changes are ignored.
// Times are rescaled to motif.TicksPerQuarter. Notes are paired first in,
// first out per channel and key, and notes never released end with their
// track.
func FromSMF(rd *smf.SMF) (motif.Sequence, error) {
	mt, ok := rd.TimeFormat.(smf.MetricTicks)
	if !ok {
		return motif.Sequence{}, errors.New("MIDI files with SMPTE time code are not supported")
	}
	ppq := uint64(uint16(mt))
	if ppq == 0 {
		return motif.Sequence{}, errors.New("MIDI file has zero ticks per quarter note")
	}
	rescale := func(t uint64) uint64 { return t * motif.TicksPerQuarter / ppq }
	seq := motif.Sequence{BPM: DefaultBPM}
	if tc := rd.TempoChanges(); len(tc) > 0 && tc[0].BPM > 0 {
		seq.BPM = tc[0].BPM
	}
	for _, track := range rd.Tracks {
		held := map[noteKey][]heldNote{}
		add := func(h heldNote, note motif.Note, end uint64) {
			start := rescale(h.start)
			length := max(rescale(end)-start, 1)
			seq.Notes = append(seq.Notes, motif.NoteEvent{Start: motif.Tick(start), Length: length, Note: note, Velocity: h.velocity})
		}
		var abs uint64
		for _, ev := range track {
			abs += uint64(ev.Delta)
			channel, event, ok := Decode(midi.Message(ev.Message))
			if !ok {
				continue
			}
			key := noteKey{channel: channel, note: event.Note}
			switch event.Type {
			case motif.NoteOn:
				held[key] = append(held[key], heldNote{start: abs, velocity: event.Velocity})
			case motif.NoteOff:
				if len(held[key]) == 0 {
					continue
				}
				add(held[key][0], event.Note, abs)
				held[key] = held[key][1:]
			}
		}
		for key, notes := range held {
			for _, h := range notes {
				add(h, key.note, abs)
			}
		}
	}
	slices.SortStableFunc(seq.Notes, func(a, b motif.NoteEvent) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Note, b.Note)
	})
	if err := seq.Validate(); err != nil {
		return motif.Sequence{}, fmt.Errorf("invalid MIDI file: %w", err)
	}
	return seq, nil
}

// WriteSMF exports seq as a format 1 Standard MIDI File with a tempo track and
// one note track on channel 0.
func WriteSMF(path string, seq motif.Sequence) error {
	sm, err := ToSMF(seq)
	if err != nil {
		return err
	}
	if err := sm.WriteFile(path); err != nil {
		return fmt.Errorf("could not write MIDI file %v: %w", path, err)
	}
	return nil
}

func ToSMF(seq motif.Sequence) (*smf.SMF, error) {
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(motif.TicksPerQuarter)
	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(seq.BPM))
	tempo.Close(0)
	if err := sm.Add(tempo); err != nil {
		return nil, fmt.Errorf("error adding tempo track: %w", err)
	}
	events := make([]smfEvent, 0, 2*len(seq.Notes))
	for _, n := range seq.Notes {
		velocity := n.Velocity
		if velocity == 0 {
			velocity = motif.MaxVelocity
		}
		on, _ := Encode(0, motif.MidiEvent{Type: motif.NoteOn, Note: n.Note, Velocity: velocity})
		off, _ := Encode(0, motif.MidiEvent{Type: motif.NoteOff, Note: n.Note})
		events = append(events,
			smfEvent{tick: uint64(n.Start), msg: on},
			smfEvent{tick: uint64(n.Start) + n.Length, msg: off, off: true})
	}
	slices.SortStableFunc(events, func(a, b smfEvent) int {
		if c := cmp.Compare(a.tick, b.tick); c != 0 {
			return c
		}
		switch {
		case a.off && !b.off:
			return -1
		case !a.off && b.off:
			return 1
		}
		return 0
	})
	var notes smf.Track
	var prev uint64
	for _, ev := range events {
		notes.Add(uint32(ev.tick-prev), ev.msg)
		prev = ev.tick
	}
	notes.Close(0)
	if err := sm.Add(notes); err != nil {
		return nil, fmt.Errorf("error adding note track: %w", err)
	}
	return sm, nil
}
