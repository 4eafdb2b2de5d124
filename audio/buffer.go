// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Buffer is a fully decoded clip held in memory as interleaved float32
// samples in [-1, 1].
type Buffer struct {
	SampleRate int
	Channels   int
	Data       []float32
}

// NewBuffer allocates a silent buffer of the given length in frames.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	return &Buffer{
		SampleRate: sampleRate,
		Channels:   channels,
		Data:       make([]float32, frames*channels),
	}
}

// Frames returns the number of sample frames.
func (b *Buffer) Frames() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Data) / b.Channels
}

// Duration returns the playback length at the native rate.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate == 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// Frame returns the samples of frame i. The slice aliases Data.
func (b *Buffer) Frame(i int) []float32 {
	return b.Data[i*b.Channels : (i+1)*b.Channels]
}

// Reader streams the buffer from the beginning as a Source.
func (b *Buffer) Reader() Source {
	return &bufferReader{buf: b}
}

type bufferReader struct {
	buf *Buffer
	off int
}

func (r *bufferReader) SampleRate() int { return r.buf.SampleRate }
func (r *bufferReader) Channels() int   { return r.buf.Channels }
func (r *bufferReader) BufSize() int    { return 4096 }
func (r *bufferReader) Close() error    { return nil }

func (r *bufferReader) ReadSamples(dst []float32) (int, error) {
	if r.off >= len(r.buf.Data) {
		return 0, io.EOF
	}

	n := copy(dst, r.buf.Data[r.off:])
	r.off += n
	if r.off >= len(r.buf.Data) {
		return n, io.EOF
	}

	return n, nil
}

// maxEmptyReads bounds how many consecutive empty reads ReadBuffer accepts
// before giving up on a source.
const maxEmptyReads = 100

// ReadBuffer drains src into memory, converting it to sampleRate and
// channels on the way. It creates the processing pipeline:
//  1. Resamples with cubic interpolation when the rates differ
//  2. Maps the channel layout (mono fan-out or mix-down)
//  3. Reads until io.EOF using bufferSize sized reads
//
// src is not closed.
func ReadBuffer(src Source, sampleRate, channels, bufferSize int) (*Buffer, error) {
	if sampleRate <= 0 || channels <= 0 || src.SampleRate() <= 0 || src.Channels() <= 0 {
		return nil, ErrInvalidFormat
	}
	if bufferSize < channels {
		bufferSize = 4096
	}

	var pipeline Source = src
	if src.SampleRate() != sampleRate {
		pipeline = NewResampler(pipeline, sampleRate)
	}
	pipeline = NewChannelMapper(pipeline, channels)

	// read sizes must stay frame aligned for every stage
	bufferSize -= bufferSize % (channels * src.Channels())
	if bufferSize == 0 {
		bufferSize = channels * src.Channels()
	}

	out := &Buffer{
		SampleRate: sampleRate,
		Channels:   channels,
		Data:       make([]float32, 0, sampleRate*channels),
	}
	buf := make([]float32, bufferSize)
	stalled := 0

	for {
		n, err := pipeline.ReadSamples(buf)
		out.Data = append(out.Data, buf[:n]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n == 0 {
			stalled++
			if stalled > maxEmptyReads {
				return nil, io.ErrNoProgress
			}
			continue
		}
		stalled = 0
	}

	// drop a trailing partial frame left by a truncated source
	out.Data = out.Data[:len(out.Data)-len(out.Data)%channels]

	return out, nil
}
