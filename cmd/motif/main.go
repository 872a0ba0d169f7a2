package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/vsariola/motif"
	"github.com/vsariola/motif/cmd"
	"github.com/vsariola/motif/control"
	"github.com/vsariola/motif/engine"
	"github.com/vsariola/motif/oto"
	"github.com/vsariola/motif/pulse"
	"github.com/vsariola/motif/version"
)

var configFile = flag.String("config", "", "read settings from a YAML `file`")
var midiInput = flag.String("midi-input", "", "connect MIDI input to matching device name prefix")
var listMidi = flag.Bool("list-midi", false, "list MIDI input devices and exit")
var versionFlag = flag.Bool("v", false, "print version")

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	cfg, err := cmd.LoadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if isFlagPassed("midi-input") {
		cfg.MIDIInput = *midiInput
	}

	// all live events pass through this channel, so that only one goroutine
	// ever produces into the control queue
	events := make(chan motif.RoutedEvent, 256)
	send := func(track motif.TrackID, event motif.MidiEvent) {
		select {
		case events <- motif.RoutedEvent{Track: track, Event: event.Event()}:
		default: // the sender is hopelessly behind, drop
		}
	}

	midi, err := cmd.NewMIDIInput(send)
	if err != nil {
		log.Printf("MIDI input disabled: %v", err)
	} else {
		defer midi.Close()
	}
	if *listMidi {
		if midi == nil {
			os.Exit(1)
		}
		devices, err := midi.Devices()
		if err != nil {
			log.Fatal(err)
		}
		for _, d := range devices {
			fmt.Println(d)
		}
		return
	}
	if midi != nil && cfg.MIDIInput != "" {
		if name, err := midi.Open(cfg.MIDIInput, false); err != nil {
			log.Printf("failed to open MIDI input: %v", err)
		} else {
			log.Printf("listening to MIDI input '%s'", name)
		}
	}

	playback, consumer := control.New(cfg.QueueCapacity)
	eng := engine.New(pulse.New(cfg.Patch), consumer, cfg.EngineConfig())
	tempo := cfg.BPM
	if flag.NArg() > 0 {
		seq, err := cmd.ReadSequenceFile(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		tempo = seq.BPM
		eng.Play(seq.Timeline(eng.Clock()))
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case ev := <-events:
				err := playback.SendMIDI(ev.Track, ev.Event.Midi)
				if errors.Is(err, control.ErrBufferFull) {
					log.Printf("event queue full, dropped %v %v\r", ev.Event.Midi.Type, ev.Event.Midi.Note)
				}
			case <-done:
				return
			}
		}
	}()

	audioContext, err := oto.NewContext(cfg.SampleRate, cfg.Channels, cfg.PCM16)
	if err != nil {
		log.Fatal(err)
	}
	player := audioContext.Play(eng)
	if err := runKeyboard(cfg.NoteGate(), func(event motif.MidiEvent) { send(0, event) }); err != nil {
		log.Printf("keyboard disabled: %v; press Ctrl-C to quit", err)
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		<-interrupt
	}
	player.Close()
	close(done)
	log.Printf("stopped at %v (%v BPM)", eng.PositionTick(tempo), tempo)
	if err := audioContext.Close(); err != nil {
		log.Print(err)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Live pulse wave synthesizer played from the terminal keyboard or MIDI input.\nUsage: %s [flags] [sequence]\n", os.Args[0])
	flag.PrintDefaults()
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
