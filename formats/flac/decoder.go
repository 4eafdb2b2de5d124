// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/ik5/aural/audio"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// frameParser is an interface for flac.Stream to allow testing
type frameParser interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

// source interleaves decoded FLAC subframes. A frame that does not fit in
// dst is kept in pending and drained on the next read.
type source struct {
	stream     frameParser
	sampleRate int
	channels   int
	scale      float32

	pending []float32
	eof     bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return s.stream.Close() }
func (s *source) BufSize() int    { return 4096 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	n := 0
	for n < len(dst) {
		if len(s.pending) == 0 {
			if s.eof {
				break
			}
			if err := s.next(); err != nil {
				return n, err
			}
			continue
		}

		c := copy(dst[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 && s.eof {
		return 0, io.EOF
	}
	if s.eof && len(s.pending) == 0 {
		return n, io.EOF
	}

	return n, nil
}

func (s *source) next() error {
	f, err := s.stream.ParseNext()
	if err == io.EOF {
		s.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if len(f.Subframes) < s.channels {
		return fmt.Errorf("%w: frame has %d subframes", ErrInvalidStream, len(f.Subframes))
	}

	frames := len(f.Subframes[0].Samples)
	buf := make([]float32, frames*s.channels)
	for ch := range s.channels {
		samples := f.Subframes[ch].Samples
		for i := 0; i < frames && i < len(samples); i++ {
			buf[i*s.channels+ch] = float32(samples[i]) * s.scale
		}
	}
	s.pending = buf

	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	info := stream.Info
	if info == nil || info.NChannels == 0 || info.SampleRate == 0 {
		_ = stream.Close()
		return nil, ErrInvalidStream
	}

	bits := int(info.BitsPerSample)
	if bits == 0 || bits > 32 {
		_ = stream.Close()
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}

	return newSource(stream, int(info.SampleRate), int(info.NChannels), bits), nil
}

func newSource(stream frameParser, sampleRate, channels, bits int) *source {
	return &source{
		stream:     stream,
		sampleRate: sampleRate,
		channels:   channels,
		scale:      1 / float32(int64(1)<<(bits-1)),
	}
}
