package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsariola/motif"
	"github.com/vsariola/motif/gomidi"
)

// SequenceExtensions are the file types ReadSequenceFile understands.
var SequenceExtensions = []string{".yml", ".yaml", ".json", ".mid", ".midi"}

// ReadSequenceFile loads a sequence from YAML, JSON or a Standard MIDI File,
// chosen by extension.
func ReadSequenceFile(filename string) (motif.Sequence, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mid", ".midi":
		return gomidi.ReadSMF(filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return motif.Sequence{}, fmt.Errorf("could not read file %v: %w", filename, err)
	}
	return motif.ReadSequence(data)
}
