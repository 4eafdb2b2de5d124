// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/aural/audio"
	"github.com/ik5/aural/internal/audiotest"
)

// mockPCMReader simulates the go-audio wav.Decoder for testing
type mockPCMReader struct {
	channels int
	samples  []int
	offset   int
	err      error
}

func (m *mockPCMReader) Format() *goaudio.Format {
	return &goaudio.Format{SampleRate: 8000, NumChannels: m.channels}
}

func (m *mockPCMReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n

	return n, nil
}

// readAll drains a source into a slice
func readAll(t *testing.T, src audio.Source) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, 64)

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

func TestDecoder_ValidWAVFile(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, 32767, -32768, 0}
	wavData := audiotest.PCM16WAV(8000, 1, samples)

	src, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}

	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}

	got := readAll(t, src)
	if len(got) != len(samples) {
		t.Fatalf("read %d samples, want %d", len(got), len(samples))
	}

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0, -1, 0}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("sample[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecoder_StereoNonSeekable(t *testing.T) {
	t.Parallel()

	wavData := audiotest.SineWAV(44100, 2, 441, 440, 0.5)

	// io.MultiReader hides the Seek method
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(wavData)))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	if src.Channels() != 2 || src.SampleRate() != 44100 {
		t.Errorf("got %d ch / %d Hz, want 2 / 44100", src.Channels(), src.SampleRate())
	}

	if got := readAll(t, src); len(got) != 882 {
		t.Errorf("read %d samples, want 882", len(got))
	}
}

func TestDecoder_NotWAVFile(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("NOT A WAV FILE DATA AT ALL, REALLY NOT")))
	if !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader(nil)); err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestSource_EightBitIsUnsigned(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockPCMReader{channels: 1, samples: []int{128, 255, 0}},
		sampleRate: 8000,
		channels:   1,
		bitDepth:   8,
	}

	got := readAll(t, src)
	want := []float32{0, 127.0 / 128.0, -1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSource_TwentyFourBit(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockPCMReader{channels: 2, samples: []int{4194304, -8388608}},
		sampleRate: 8000,
		channels:   2,
		bitDepth:   24,
	}

	got := readAll(t, src)
	if got[0] != 0.5 || got[1] != -1 {
		t.Errorf("samples = %v, want [0.5 -1]", got)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:      &mockPCMReader{channels: 1, err: io.ErrUnexpectedEOF},
		channels: 1,
		bitDepth: 16,
	}

	_, err := src.ReadSamples(make([]float32, 8))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want ErrUnexpectedEOF", err)
	}

	if n, _ := src.ReadSamples(nil); n != 0 {
		t.Errorf("empty read n = %d, want 0", n)
	}

	if src.BufSize() <= 0 {
		t.Errorf("BufSize() = %d, want positive value", src.BufSize())
	}
}
