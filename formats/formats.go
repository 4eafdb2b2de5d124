// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/aural/audio"
	"github.com/ik5/aural/formats/aiff"
	"github.com/ik5/aural/formats/flac"
	"github.com/ik5/aural/formats/mp3"
	"github.com/ik5/aural/formats/vorbis"
	"github.com/ik5/aural/formats/wav"
)

// Registry returns a new registry holding the WAV, MP3, Ogg Vorbis, AIFF
// and FLAC decoders.
func Registry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register(audio.FormatWAV, wav.Decoder{}, "wav", "wave")
	reg.Register(audio.FormatMP3, mp3.Decoder{}, "mp3")
	reg.Register(audio.FormatVorbis, vorbis.Decoder{}, "ogg", "oga")
	reg.Register(audio.FormatAIFF, aiff.Decoder{}, "aiff", "aif", "aifc")
	reg.Register(audio.FormatFLAC, flac.Decoder{}, "flac")

	return reg
}
