package oto

import (
	"encoding/binary"
	"math"
)

// FloatBufferTo16BitLE converts floats to 16-bit little-endian signed integers
// in out, which must hold 2*len(buff) bytes. Values beyond ±1 are clipped.
func FloatBufferTo16BitLE(buff []float32, out []byte) {
	for i, v := range buff {
		var uv int16
		if v < -1.0 {
			uv = -math.MaxInt16
		} else if v > 1.0 {
			uv = math.MaxInt16
		} else {
			uv = int16(v * math.MaxInt16)
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(uv))
	}
}

// FloatBufferTo32BitLE writes floats as 32-bit little-endian IEEE floats in
// out, which must hold 4*len(buff) bytes.
func FloatBufferTo32BitLE(buff []float32, out []byte) {
	for i, v := range buff {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
}
