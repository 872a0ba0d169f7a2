package motif

// Evaluate renders node into output, applying events at their exact sample
// offsets. output must already be prepared; events must be sorted by
// SampleOffset, each in [0, output.Frames()]. Rendering is split at every event
// offset, so a state change such as a note on takes effect at the intended
// sample instead of somewhere in the buffer. Events sharing an offset are
// handled back to back and empty ranges are never rendered.
func Evaluate(node Node, inputs []*AudioBuffer, output *AudioBuffer, events []ScheduledEvent, sampleRate float64) {
	total := output.Frames()
	cursor := 0
	for i := range events {
		offset := int(events[i].SampleOffset)
		assert(offset >= cursor && offset <= total, "motif.Evaluate: events unsorted or out of range")
		offset = min(max(offset, cursor), total)
		if offset > cursor {
			node.Render(inputs, output, FrameRange{cursor, offset}, sampleRate)
			cursor = offset
		}
		node.HandleEvent(events[i].Event)
	}
	if cursor < total {
		node.Render(inputs, output, FrameRange{cursor, total}, sampleRate)
	}
}
