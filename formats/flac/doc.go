// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC audio decoding.
//
// This package uses github.com/mewkiz/flac, a pure Go decoder.
//
// # Supported Formats
//
//   - Native FLAC streams ("fLaC" signature)
//   - Bit depths from 4 to 32, any channel count the stream declares
//
// # Decoding FLAC Files
//
//	decoder := flac.Decoder{}
//	file, _ := os.Open("audio.flac")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer source.Close()
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Output Format
//
// Frames are decoded one at a time and their subframes interleaved, so
// memory use is bounded by the largest block. Samples are scaled by the
// stream's bit depth to float32 in [-1, 1). A frame that does not fit in
// dst is kept for the next read.
//
// # Error Handling
//
//   - ErrInvalidStream: the STREAMINFO block has no channels or rate
//   - ErrUnsupportedBitDepth: a bit depth of 0 or above 32
//
// Frame parse errors are wrapped and returned from ReadSamples.
//
// # File Extensions
//
// formats.Registry maps ".flac" to this decoder, and also picks it for
// streams starting with "fLaC".
package flac
