// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMapper converts src to a fixed channel count. Mono input is copied
// to every output channel; any other layout is mixed down to mono first.
type ChannelMapper struct {
	src      Source
	mono     Source
	channels int
	tmp      []float32
}

// NewChannelMapper returns src unchanged when it already has the requested
// channel count.
func NewChannelMapper(src Source, channels int) Source {
	if src.Channels() == channels {
		return src
	}
	if channels == 1 {
		return NewMonoMixer(src)
	}

	mono := src
	if src.Channels() != 1 {
		mono = NewMonoMixer(src)
	}

	return &ChannelMapper{
		src:      src,
		mono:     mono,
		channels: channels,
		tmp:      make([]float32, 4096),
	}
}

func (m *ChannelMapper) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMapper) Channels() int   { return m.channels }
func (m *ChannelMapper) BufSize() int    { return m.src.BufSize() }

func (m *ChannelMapper) Close() error {
	if err := m.mono.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *ChannelMapper) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / m.channels
	if frames == 0 {
		return 0, nil
	}
	if cap(m.tmp) < frames {
		m.tmp = make([]float32, frames)
	}
	m.tmp = m.tmp[:frames]

	n, err := m.mono.ReadSamples(m.tmp)
	for f := range n {
		base := f * m.channels
		for c := range m.channels {
			dst[base+c] = m.tmp[f]
		}
	}

	return n * m.channels, err
}
