package oto_test

import (
	"bytes"
	"testing"

	"github.com/vsariola/motif/oto"
)

func TestFloatBufferTo16BitLE(t *testing.T) {
	out := make([]byte, 8)
	oto.FloatBufferTo16BitLE([]float32{0, 1, -2, 0.5}, out)
	want := []byte{0x00, 0x00, 0xff, 0x7f, 0x01, 0x80, 0xff, 0x3f}
	if !bytes.Equal(out, want) {
		t.Errorf("got % x, want % x", out, want)
	}
}

func TestFloatBufferTo32BitLE(t *testing.T) {
	out := make([]byte, 8)
	oto.FloatBufferTo32BitLE([]float32{1, -0.5}, out)
	want := []byte{0x00, 0x00, 0x80, 0x3f, 0x00, 0x00, 0x00, 0xbf}
	if !bytes.Equal(out, want) {
		t.Errorf("got % x, want % x", out, want)
	}
}
