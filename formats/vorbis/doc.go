// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis, a pure Go decoder.
//
// # Supported Formats
//
//   - Vorbis I audio in an Ogg container
//   - Any sample rate and channel count the stream declares
//
// # Decoding Vorbis Files
//
//	decoder := vorbis.Decoder{}
//	file, _ := os.Open("audio.ogg")
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
// Samples are interleaved float32 at the file's own rate and channel
// count, already in [-1, 1]; no integer conversion takes place.
//
// # Channel Layout
//
// Channels follow the Vorbis order, for example L, R for stereo and
// L, C, R, RL, RR, LFE for 5.1. audio.ChannelMapper or ReadBuffer can mix
// them down to the layout of the playback context.
//
// Reads are trimmed to whole frames, so a dst shorter than one frame
// returns (0, nil) and a dst of 4097 values on a stereo file yields at
// most 4096.
//
// # Limitations
//
//   - Ogg Opus and Ogg FLAC streams are rejected
//   - Seeking is not exposed; streams decode front to back
//
// # Example: Vorbis into a Clip Buffer
//
//	source, _ := vorbis.Decoder{}.Decode(file)
//	buf, err := audio.ReadBuffer(source, 44100, 2, 4096)
//
// # File Extensions
//
// formats.Registry maps ".ogg" and ".oga" to this decoder, and also picks
// it for streams starting with "OggS".
package vorbis
