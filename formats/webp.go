package formats

import (
	"encoding/binary"
	"fmt"
)

// Container structure sizes.
const (
	riffHeaderSize  = 12 // "RIFF" + size + "WEBP"
	chunkHeaderSize = 8  // FourCC + LE32 payload length
	vp8xMinSize     = 10 // flags + reserved + canvas width/height
	anmfHeaderSize  = 16 // offsets, frame size, duration, flags
	vp8HeaderSize   = 10
	vp8lHeaderSize  = 5
)

// VP8X feature flag marking an animated file.
const animationFlag = 0x02

const (
	vp8lMagicByte = 0x2F
	vp8Signature  = 0x9D012A
)

// ParseWebP walks the RIFF chunks of a WebP buffer and collects the canvas
// size, the animation flag and the duration of every ANMF frame in file order.
// FrameCount counts every ANMF chunk, so it exceeds len(FrameDurations) when a
// frame chunk is too short to hold a duration.
//
// The walk fails on the first chunk whose declared length runs past the
// buffer; nothing found before that point is returned.
func ParseWebP(data []byte) (*Animation, error) {
	if len(data) < riffHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is too small to be a valid WebP", ErrTruncated, len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return nil, fmt.Errorf("%w: missing RIFF/WEBP signature%s", ErrInvalidHeader, looksLike(data))
	}

	anim := &Animation{FileSize: int64(len(data))}
	size := uint64(len(data))
	seenVP8X := false

	for pos := uint64(riffHeaderSize); pos+chunkHeaderSize <= size; {
		fourcc := string(data[pos : pos+4])
		chunkLen := uint64(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		if pos+chunkHeaderSize+chunkLen > size {
			return nil, fmt.Errorf("%w: %q at offset %d declares %d bytes, %d remain",
				ErrCorruptChunk, fourcc, pos, chunkLen, size-pos-chunkHeaderSize)
		}
		payload := data[pos+chunkHeaderSize : pos+chunkHeaderSize+chunkLen]

		switch fourcc {
		case "VP8X":
			seenVP8X = true
			if len(payload) >= vp8xMinSize {
				anim.IsAnimated = payload[0]&animationFlag != 0
				anim.Width = readLE24(payload[4:7]) + 1
				anim.Height = readLE24(payload[7:10]) + 1
			}

		case "ANIM":
			// Background color and loop count; nothing to record.

		case "ANMF":
			// A frame too short to carry its header still counts; only its
			// duration is unknown.
			anim.FrameCount++
			if len(payload) >= anmfHeaderSize {
				anim.FrameDurations = append(anim.FrameDurations, readLE24(payload[12:15]))
			}

		case "VP8 ":
			if !seenVP8X && anim.Width == 0 {
				anim.Width, anim.Height = vp8Dimensions(payload)
			}

		case "VP8L":
			if !seenVP8X && anim.Width == 0 {
				anim.Width, anim.Height = vp8lDimensions(payload)
			}
		}

		pos += chunkHeaderSize + chunkLen + chunkLen&1
	}

	anim.finish()
	return anim, nil
}

// vp8Dimensions reads the key frame size of a simple lossy bitstream.
// It returns zeros when the payload is not a key frame.
func vp8Dimensions(payload []byte) (width, height uint) {
	if len(payload) < vp8HeaderSize {
		return 0, 0
	}
	if payload[0]&1 != 0 {
		return 0, 0
	}
	sig := uint32(payload[3])<<16 | uint32(payload[4])<<8 | uint32(payload[5])
	if sig != vp8Signature {
		return 0, 0
	}
	width = uint(binary.LittleEndian.Uint16(payload[6:8]) & 0x3FFF)
	height = uint(binary.LittleEndian.Uint16(payload[8:10]) & 0x3FFF)
	return width, height
}

// vp8lDimensions reads the 14-bit biased width and height of a lossless bitstream.
func vp8lDimensions(payload []byte) (width, height uint) {
	if len(payload) < vp8lHeaderSize || payload[0] != vp8lMagicByte {
		return 0, 0
	}
	bits := binary.LittleEndian.Uint32(payload[1:5])
	if bits>>29 != 0 {
		return 0, 0 // unknown version
	}
	width = uint(bits&0x3FFF) + 1
	height = uint((bits>>14)&0x3FFF) + 1
	return width, height
}

// readLE24 reads a 24-bit little-endian integer from 3 bytes.
func readLE24(b []byte) uint {
	return uint(b[0]) | uint(b[1])<<8 | uint(b[2])<<16
}
