// SPDX-License-Identifier: EPL-2.0

// Package audio holds the decoding side of a clip: streaming sources, the
// stages that reshape them and the in-memory Buffer they end up in.
//
// Decoders yield a Source of interleaved float32 samples in [-1, 1]. A
// stream is finished once ReadSamples reports io.EOF; the count returned
// with it is still valid.
//
// Resampler changes the rate (cubic interpolation), MonoMixer averages
// channels down to one and ChannelMapper fans mono out or mixes down to any
// layout. ReadBuffer chains them to produce a Buffer at the rate and layout
// the playback engine runs at:
//
//	src, _ := decoder.Decode(r)
//	defer src.Close()
//	buf, err := audio.ReadBuffer(src, 48000, 2, 4096)
//
// Registry maps format keys to decoders. Detect looks at the extension of
// the clip's name first and then at its leading bytes:
//
//	reg := audio.NewRegistry()
//	reg.Register(audio.FormatWAV, wav.Decoder{}, "wave")
//	format, decoder, err := reg.Detect("https://cdn.example.com/beep", header)
//
// Sniff recognises RIFF/WAVE, FORM/AIFF, OggS, fLaC and MP3 (ID3 tag or
// frame sync) headers.
package audio
