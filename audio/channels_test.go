// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/aural/internal/audiotest"
)

func TestNewChannelMapper_SameLayout(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 10)
	if got := NewChannelMapper(src, 2); got != Source(src) {
		t.Error("NewChannelMapper() should return the source unchanged")
	}
}

func TestChannelMapper_MonoFanOut(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 1, 4)
	m := NewChannelMapper(src, 3)

	if m.Channels() != 3 || m.SampleRate() != 8000 {
		t.Fatalf("metadata = %d ch / %d Hz", m.Channels(), m.SampleRate())
	}

	dst := make([]float32, 12)
	n, err := m.ReadSamples(dst)
	if n != 12 || err != io.EOF {
		t.Fatalf("ReadSamples() = (%d, %v), want (12, EOF)", n, err)
	}

	for f := range 4 {
		for c := range 3 {
			if dst[f*3+c] != float32(f) {
				t.Fatalf("dst[%d] = %v, want %d", f*3+c, dst[f*3+c], f)
			}
		}
	}
}

func TestChannelMapper_DownmixThenFanOut(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 4, 2, func(_ int, channel int) float32 {
		return float32(channel)
	})
	m := NewChannelMapper(src, 2)

	dst := make([]float32, 4)
	n, _ := m.ReadSamples(dst)
	if n != 4 {
		t.Fatalf("ReadSamples() n = %d, want 4", n)
	}
	for i, v := range dst {
		if v != 1.5 {
			t.Errorf("dst[%d] = %v, want 1.5", i, v)
		}
	}
}

func TestChannelMapper_ToMono(t *testing.T) {
	t.Parallel()

	m := NewChannelMapper(audiotest.NewSilentSource(8000, 2, 2), 1)
	if _, ok := m.(*MonoMixer); !ok {
		t.Errorf("NewChannelMapper(src, 1) = %T, want *MonoMixer", m)
	}
}

func TestChannelMapper_InvalidDst(t *testing.T) {
	t.Parallel()

	m := NewChannelMapper(audiotest.NewSilentSource(8000, 1, 10), 2)
	if _, err := m.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}
