// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/aural/utils"
)

// Resampler streams from src to a target sample rate using cubic
// interpolation. Works on interleaved samples and preserves the channel
// count. A one-pole low-pass filter is applied when downsampling.
type Resampler struct {
	src      Source
	dstRate  float64
	ratio    float64 // source frames consumed per output frame
	channels int

	// window of four source frames: t-1, t0, t+1, t+2
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	// fractional position between frames[1] and frames[2]
	pos float64

	srcBuf []float32
	eof    bool

	filterState []float32
	useFilter   bool
	filterAlpha float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     float64(dstRate),
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, channels),
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads exactly one source frame into dst and applies the
// anti-aliasing filter. ok reports whether a frame was read.
func (r *Resampler) readFrame(dst []float32) (ok bool, err error) {
	n, err := r.src.ReadSamples(r.srcBuf)
	if n >= r.channels {
		copy(dst, r.srcBuf)

		if r.useFilter {
			for c := range r.channels {
				dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
				r.filterState[c] = dst[c]
			}
		}
		ok = true
	}

	if err == io.EOF {
		r.eof = true
		return ok, nil
	}
	if err != nil {
		return ok, fmt.Errorf("%w", err)
	}

	return ok, nil
}

// prime fills the interpolation window from the start of the stream. The
// first frame doubles as its own left neighbour so output starts at t=0.
func (r *Resampler) prime() error {
	r.primed = true

	n, err := r.src.ReadSamples(r.srcBuf)
	if n < r.channels {
		if err != nil && err != io.EOF {
			return fmt.Errorf("%w", err)
		}
		return io.EOF
	}
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return fmt.Errorf("%w", err)
	}

	if r.useFilter {
		copy(r.filterState, r.srcBuf)
	}
	copy(r.frames[0], r.srcBuf)
	copy(r.frames[1], r.srcBuf)
	r.hasFrame[0], r.hasFrame[1] = true, true

	last := 1
	for i := 2; i < len(r.frames) && !r.eof; i++ {
		ok, err := r.readFrame(r.frames[i])
		if err != nil {
			return err
		}
		if ok {
			r.hasFrame[i] = true
			last = i
		}
	}

	// a short stream repeats its last frame
	for i := last + 1; i < len(r.frames); i++ {
		copy(r.frames[i], r.frames[last])
		r.hasFrame[i] = true
	}

	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	if r.eof && !r.hasFrame[3] {
		return io.EOF
	}

	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]

	if r.eof {
		r.hasFrame[3] = false
		return nil
	}

	ok, err := r.readFrame(r.frames[3])
	if err != nil {
		return err
	}
	r.hasFrame[3] = ok

	return nil
}

// ReadSamples produces samples at the target rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.hasFrame[1] || !r.hasFrame[2] {
			return written * r.channels, io.EOF
		}

		f0, f3 := r.frames[0], r.frames[3]
		if !r.hasFrame[0] {
			f0 = r.frames[1]
		}
		if !r.hasFrame[3] {
			f3 = r.frames[2]
		}

		out := dst[written*r.channels : (written+1)*r.channels]
		utils.InterpolateFrame(out, f0, r.frames[1], r.frames[2], f3, float32(r.pos))

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
