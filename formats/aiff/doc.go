// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff.
//
// # Supported Formats
//
//   - Uncompressed big-endian PCM at 8, 16, 24 and 32 bits
//   - Any channel count and sample rate
//
// # Decoding AIFF Files
//
//	decoder := aiff.Decoder{}
//	file, _ := os.Open("audio.aif")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// go-audio needs an io.ReadSeeker; other readers are buffered in memory
// first.
//
// # Output Format
//
// Samples are scaled by their bit depth to float32 in [-1, 1) and keep the
// file's channel count and rate.
//
// # Error Handling
//
//   - ErrNotAiffFile: the input has no FORM/AIFF header
//   - ErrUnsupportedBitDepth: a sample size other than 8, 16, 24 or 32
//   - ErrUnsupportedAiffLayout: no channels in the COMM chunk
//
// Check them with errors.Is:
//
//	source, err := decoder.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not AIFF
//	}
//
// # Limitations
//
//   - Compressed AIFF-C variants are not decoded
//   - Markers, loops and instrument chunks are ignored
//
// # File Extensions
//
// formats.Registry maps ".aiff", ".aif" and ".aifc" to this decoder, and
// also picks it for FORM headers of type AIFF or AIFC.
package aiff
