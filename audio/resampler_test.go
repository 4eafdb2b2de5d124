// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/aural/internal/audiotest"
)

func drain(t *testing.T, src Source, chunk int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, chunk)

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 100), 8000)

	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_SameRateKeepsSignal(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewConstantSource(16000, 1, 1600, 0.5), 16000)
	out := drain(t, r, 256)

	if len(out) < 1590 || len(out) > 1610 {
		t.Errorf("len(out) = %d, want ~1600", len(out))
	}
	for i, v := range out {
		if math.Abs(float64(v-0.5)) > 1e-5 {
			t.Fatalf("out[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestResampler_Ratios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
	}{
		{name: "downsample", srcRate: 44100, dstRate: 8000},
		{name: "upsample", srcRate: 8000, dstRate: 48000},
		{name: "cd to dat", srcRate: 44100, dstRate: 48000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, 2, tt.srcRate/2, 220)
			out := drain(t, NewResampler(src, tt.dstRate), 1024)

			frames := len(out) / 2
			want := tt.dstRate / 2
			if math.Abs(float64(frames-want)) > float64(want)/100+8 {
				t.Errorf("frames = %d, want ~%d", frames, want)
			}
		})
	}
}

func TestResampler_StereoPreserved(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 4410, func(_ int, channel int) float32 {
		if channel == 0 {
			return 0.8
		}
		return -0.8
	})
	out := drain(t, NewResampler(src, 22050), 512)

	// skip the filter warm-up region
	for f := 10; f < len(out)/2-10; f++ {
		if out[2*f] <= 0 || out[2*f+1] >= 0 {
			t.Fatalf("frame %d lost channel separation: %v %v", f, out[2*f], out[2*f+1])
		}
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 0), 16000)
	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 2, 10), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_PropagatesErrors(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewFailingSource(8000, 1, 50), 16000)

	buf := make([]float32, 32)
	for range 100 {
		_, err := r.ReadSamples(buf)
		if errors.Is(err, audiotest.ErrBroken) {
			return
		}
		if err == io.EOF {
			t.Fatal("got EOF, want ErrBroken")
		}
	}
	t.Fatal("error never surfaced")
}

func BenchmarkResampler_Downsample(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for range b.N {
		r := NewResampler(audiotest.NewSineSource(44100, 2, 44100, 440), 8000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
