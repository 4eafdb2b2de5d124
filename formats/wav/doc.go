// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding uses github.com/go-audio/wav, so files with extra chunks (LIST,
// fact, cue) before the data chunk are handled.
//
// # Supported Formats
//
//   - Integer PCM, 8-bit (unsigned), 16, 24 and 32-bit (signed)
//   - Any channel count and sample rate
//
// IEEE float and compressed WAV variants are rejected with
// ErrOnlyPCMSupported.
//
// # Decoding WAV Files
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Non-seekable readers are buffered in memory first.
//
// # Output Format
//
// Samples keep the file's rate and channel count. 8-bit data is unsigned
// in WAV and is re-centred before scaling; wider depths are scaled by their
// full range to float32 in [-1, 1).
//
// # Error Handling
//
//   - ErrNotWavFile: no RIFF/WAVE header
//   - ErrOnlyPCMSupported: a format tag other than integer PCM
//   - ErrUnsupportedBitDepth: a depth other than 8, 16, 24 or 32
//   - ErrUnsupportedWavLayout: no data chunk, or no channels or rate
//
// Check them with errors.Is:
//
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not a WAV file
//	}
//
// # Writing WAV Files
//
// WriteWAV16 and WriteBuffer produce canonical 16-bit PCM files and only
// need an io.Writer:
//
//	file, _ := os.Create("output.wav")
//	err := wav.WriteBuffer(file, decoded)
//
// Samples outside [-1, 1] are clipped. The header is written up front
// with the final sizes, so no seeking is needed.
//
// # File Extensions
//
// formats.Registry maps ".wav" and ".wave" to this decoder, and also picks
// it for RIFF headers of type WAVE.
package wav
