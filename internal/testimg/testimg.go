// Package testimg builds minimal synthetic WebP, JPEG and PNG files for tests.
package testimg

import (
	"encoding/binary"
)

// AnimationFlag is the VP8X flags bit marking an animated file.
const AnimationFlag = 0x02

// Chunk encodes a RIFF chunk, adding the pad byte after odd-length payloads.
func Chunk(fourcc string, payload []byte) []byte {
	out := make([]byte, 8, 8+len(payload)+1)
	copy(out[0:4], fourcc)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(payload)))
	out = append(out, payload...)
	if len(payload)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

// RIFF wraps chunks in a RIFF/WEBP header with a correct size field.
func RIFF(chunks ...[]byte) []byte {
	var body []byte
	for _, c := range chunks {
		body = append(body, c...)
	}
	out := make([]byte, 12, 12+len(body))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(4+len(body)))
	copy(out[8:12], "WEBP")
	return append(out, body...)
}

// VP8X encodes an extended header chunk; width and height are stored biased by -1.
func VP8X(flags byte, width, height int) []byte {
	p := make([]byte, 10)
	p[0] = flags
	putLE24(p[4:7], width-1)
	putLE24(p[7:10], height-1)
	return Chunk("VP8X", p)
}

// ANIM encodes a global animation chunk with a white background, looping forever.
func ANIM() []byte {
	p := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00}
	return Chunk("ANIM", p)
}

// ANMF encodes a frame chunk covering a 1x1 area with the given duration and
// no frame data.
func ANMF(durationMs int) []byte {
	p := make([]byte, 16)
	putLE24(p[12:15], durationMs)
	return Chunk("ANMF", p)
}

// AnimatedWebP builds a VP8X + ANIM + one ANMF per duration file.
func AnimatedWebP(width, height int, durations ...int) []byte {
	chunks := [][]byte{VP8X(AnimationFlag, width, height), ANIM()}
	for _, d := range durations {
		chunks = append(chunks, ANMF(d))
	}
	return RIFF(chunks...)
}

// VP8L encodes a lossless bitstream chunk holding only the 5-byte header.
func VP8L(width, height int) []byte {
	p := make([]byte, 5)
	p[0] = 0x2F
	bits := uint32(width-1) | uint32(height-1)<<14
	binary.LittleEndian.PutUint32(p[1:5], bits)
	return Chunk("VP8L", p)
}

// VP8 encodes a lossy key frame chunk holding only the 10-byte frame header.
func VP8(width, height int) []byte {
	p := make([]byte, 10)
	p[0] = 0x10 // key frame, shown
	p[3], p[4], p[5] = 0x9D, 0x01, 0x2A
	binary.LittleEndian.PutUint16(p[6:8], uint16(width))
	binary.LittleEndian.PutUint16(p[8:10], uint16(height))
	return Chunk("VP8 ", p)
}

// JPEG builds SOI, an APP0 (JFIF) segment, a frame header using the given
// SOF marker code, and EOI.
func JPEG(width, height int, sof byte) []byte {
	out := []byte{
		0xFF, 0xD8, // SOI
		0xFF, 0xE0, 0x00, 0x10, // APP0, length 16
		'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00, 0x00, 0x48, 0x00, 0x48, 0x00, 0x00,
		0xFF, sof, 0x00, 0x11, // SOF, length 17
		0x08, // precision
	}
	out = binary.BigEndian.AppendUint16(out, uint16(height))
	out = binary.BigEndian.AppendUint16(out, uint16(width))
	out = append(out,
		0x03,             // components
		0x01, 0x22, 0x00, // Y
		0x02, 0x11, 0x01, // Cb
		0x03, 0x11, 0x01, // Cr
		0xFF, 0xD9, // EOI
	)
	return out
}

// PNGSignature is the fixed 8-byte PNG file signature.
var PNGSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// PNGChunk encodes a PNG chunk with a zero CRC.
func PNGChunk(typ string, data []byte) []byte {
	out := binary.BigEndian.AppendUint32(nil, uint32(len(data)))
	out = append(out, typ...)
	out = append(out, data...)
	return append(out, 0, 0, 0, 0)
}

// IHDR encodes an 8-bit truecolor image header chunk.
func IHDR(width, height uint32) []byte {
	d := binary.BigEndian.AppendUint32(nil, width)
	d = binary.BigEndian.AppendUint32(d, height)
	d = append(d, 8, 2, 0, 0, 0)
	return PNGChunk("IHDR", d)
}

// PNG builds signature, IHDR and IEND.
func PNG(width, height uint32) []byte {
	out := append([]byte{}, PNGSignature...)
	out = append(out, IHDR(width, height)...)
	return append(out, PNGChunk("IEND", nil)...)
}

func putLE24(b []byte, v int) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}
