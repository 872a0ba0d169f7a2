package motif

type (
	// Event is something that happened, without a time. Nodes receive events
	// through HandleEvent; the timing has already been turned into buffer
	// offsets by Evaluate. Event is a closed set of variants selected by Kind.
	// The variants are stored inline rather than boxed in an interface, so that
	// copying events through the transport and the scheduled list never
	// allocates.
	Event struct {
		Kind EventKind
		Midi MidiEvent
	}

	EventKind uint8

	// MidiEvent is a note on or note off in the standard 7-bit domains.
	MidiEvent struct {
		Type     MidiEventType
		Note     Note
		Velocity Velocity // ignored for NoteOff
	}

	MidiEventType uint8

	// TrackID identifies the destination track of a routed event.
	TrackID uint32

	// RoutedEvent is an event on its way from the control thread to a track. It
	// has not been scheduled into any buffer yet.
	RoutedEvent struct {
		Track TrackID
		Event Event
	}

	// ScheduledEvent is an event positioned inside the current buffer.
	// SampleOffset is a frame index 0..frames, not a musical time.
	ScheduledEvent struct {
		SampleOffset uint32
		Event        Event
	}

	// TimedEvent is an event at an absolute sample position, e.g. on a
	// sequence timeline.
	TimedEvent struct {
		Sample uint64
		Event  Event
	}
)

const (
	EventMidi EventKind = iota
)

const (
	NoteOn MidiEventType = iota + 1
	NoteOff
)

// NoteOnEvent returns a MIDI note on wrapped in an Event.
func NoteOnEvent(note Note, velocity Velocity) Event {
	return Event{Kind: EventMidi, Midi: MidiEvent{Type: NoteOn, Note: note, Velocity: velocity}}
}

// NoteOffEvent returns a MIDI note off wrapped in an Event.
func NoteOffEvent(note Note) Event {
	return Event{Kind: EventMidi, Midi: MidiEvent{Type: NoteOff, Note: note}}
}

func (m MidiEvent) Event() Event {
	return Event{Kind: EventMidi, Midi: m}
}

func (t MidiEventType) String() string {
	switch t {
	case NoteOn:
		return "NoteOn"
	case NoteOff:
		return "NoteOff"
	}
	return "Unknown"
}
