// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3, a pure Go decoder.
//
// # Supported Formats
//
//   - MPEG audio Layer III
//   - Constant and variable bit rate
//   - Mono and stereo, with or without a leading ID3v2 tag
//
// # Decoding MP3 Files
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("audio.mp3")
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
// go-mp3 always yields 16-bit stereo, so Channels is 2 even for mono files;
// both channels then carry the same signal. SampleRate is the rate stored
// in the first frame. Reads of an odd length are fine: a byte that splits
// a sample is carried over to the next call.
//
// # Error Handling
//
// Decode fails when no valid frame header is found. Errors from the
// underlying reader are wrapped, so errors.Is works on them.
//
// # Limitations
//
//   - Layer I and II streams are not supported
//   - Gapless metadata (LAME/Xing encoder delay) is not applied
//
// # Example: MP3 into a Clip Buffer
//
//	source, _ := mp3.Decoder{}.Decode(file)
//	buf, err := audio.ReadBuffer(source, 48000, 2, source.BufSize())
//
// # File Extensions
//
// formats.Registry maps ".mp3" to this decoder, and also picks it for
// streams starting with an ID3 tag or an MPEG frame sync.
package mp3
