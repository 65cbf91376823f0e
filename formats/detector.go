package formats

import "bytes"

var (
	jpegSOI       = []byte{0xFF, 0xD8}
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	riffSignature = []byte("RIFF")
	webpSignature = []byte("WEBP")
)

// Detect returns "JPEG", "PNG" or "WebP" when magicBytes starts with that format's
// signature, and "" otherwise. JPEG needs a marker byte after SOI and WebP
// needs the WEBP form type in its RIFF header, so a bare SOI or a RIFF/WAVE
// file is not recognized.
//
// Detection never decides which reader runs; readers are selected by file
// extension. It only enriches header errors with what the bytes look like.
func Detect(magicBytes []byte) string {
	switch {
	case len(magicBytes) >= 3 && bytes.HasPrefix(magicBytes, jpegSOI) && magicBytes[2] == 0xFF:
		return "JPEG"
	case bytes.HasPrefix(magicBytes, pngSignature):
		return "PNG"
	case len(magicBytes) >= 12 && bytes.HasPrefix(magicBytes, riffSignature) && bytes.Equal(magicBytes[8:12], webpSignature):
		return "WebP"
	}
	return ""
}

// looksLike returns a suffix for header errors naming the detected format, if any.
func looksLike(data []byte) string {
	if f := Detect(data); f != "" {
		return " (content looks like " + f + ")"
	}
	return ""
}
