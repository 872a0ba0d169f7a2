package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vsariola/motif"
	"github.com/vsariola/motif/cmd"
	"github.com/vsariola/motif/engine"
	"github.com/vsariola/motif/oto"
	"github.com/vsariola/motif/pulse"
	"github.com/vsariola/motif/version"
)

func main() {
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	directory := flag.String("o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, everything is placed in the working directory.")
	play := flag.Bool("p", false, "Play the input sequences (default behaviour when no other output is defined).")
	rawOut := flag.Bool("r", false, "Output the rendered sequence as .raw file. By default, saves stereo float32 buffer to disk.")
	wavOut := flag.Bool("w", false, "Output the rendered sequence as .wav file. By default, saves stereo float32 buffer to disk.")
	pcm := flag.Bool("c", false, "Convert audio to 16-bit signed PCM when outputting.")
	tail := flag.Float64("tail", 1, "Seconds rendered after the last note ends, to let releases ring out.")
	configFile := flag.String("config", "", "Read settings from a YAML `file`.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	if !*rawOut && !*wavOut {
		*play = true // if the user gives nothing to output, then the default behaviour is just to play the file
	}
	cfg, err := cmd.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	var audioContext motif.AudioContext
	if *play {
		audioContext, err = oto.NewContext(cfg.SampleRate, cfg.Channels, cfg.PCM16)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not acquire oto AudioContext: %v\n", err)
			os.Exit(1)
		}
	}
	process := func(filename string) error {
		output := func(extension string, contents []byte) error {
			if *stdout {
				_, err := os.Stdout.Write(contents)
				return err
			}
			_, name := filepath.Split(filename)
			dir := *directory
			if dir == "" {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
				}
			}
			name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
			f := filepath.Join(dir, name)
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("could not create output directory %v: %v", dir, err)
			}
			if err := os.WriteFile(f, contents, 0644); err != nil {
				return fmt.Errorf("could not write file %v: %v", f, err)
			}
			return nil
		}
		seq, err := cmd.ReadSequenceFile(filename)
		if err != nil {
			return err
		}
		eng := engine.New(pulse.New(cfg.Patch), nil, cfg.EngineConfig())
		tailFrames := int(max(*tail, 0) * float64(cfg.SampleRate))
		buffer := motif.PCM{Data: eng.Render(seq, tailFrames), Channels: eng.Channels(), SampleRate: cfg.SampleRate}
		var playWaiter motif.CloserWaiter
		if *play {
			playWaiter = audioContext.Play(buffer.Source())
		}
		if *rawOut {
			raw, err := buffer.Raw(*pcm)
			if err != nil {
				return fmt.Errorf("could not generate .raw file: %v", err)
			}
			if err := output(".raw", raw); err != nil {
				return fmt.Errorf("error outputting .raw file: %v", err)
			}
		}
		if *wavOut {
			wav, err := buffer.Wav(*pcm)
			if err != nil {
				return fmt.Errorf("could not generate .wav file: %v", err)
			}
			if err := output(".wav", wav); err != nil {
				return fmt.Errorf("error outputting .wav file: %v", err)
			}
		}
		if *play {
			playWaiter.Wait()
		}
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			entries, err := os.ReadDir(param)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not list the directory %v: %v\n", param, err)
				retval = 1
				continue
			}
			for _, entry := range entries {
				if entry.IsDir() || !slices.Contains(cmd.SequenceExtensions, strings.ToLower(filepath.Ext(entry.Name()))) {
					continue
				}
				file := filepath.Join(param, entry.Name())
				if err := process(file); err != nil {
					fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
					retval = 1
				}
			}
		} else {
			if err := process(param); err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
				retval = 1
			}
		}
	}
	if audioContext != nil {
		audioContext.Close()
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Command line utility for rendering and playing .yml/.json/.mid sequences with the pulse synthesizer.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
