// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	DefaultFFTSize     = 2048
	DefaultSmoothing   = 0.8
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0
)

// Analyser passes its input through unchanged and keeps the most recent
// FFTSize frames, downmixed to mono, for spectrum queries.
type Analyser struct {
	input    Node
	channels int

	mu        sync.Mutex
	fftSize   int
	smoothing float64
	minDB     float64
	maxDB     float64
	window    []float64
	ring      []float64
	w         int
	smoothed  []float64
	scratch   []float64
}

func NewAnalyser(ctx *Context, input Node) *Analyser {
	a := &Analyser{
		input:     input,
		channels:  ctx.Channels(),
		smoothing: DefaultSmoothing,
		minDB:     DefaultMinDecibels,
		maxDB:     DefaultMaxDecibels,
	}
	a.resize(DefaultFFTSize)

	return a
}

func (a *Analyser) resize(size int) {
	a.fftSize = size
	a.window = window.Blackman(size)
	a.ring = make([]float64, size)
	a.w = 0
	a.smoothed = make([]float64, size/2)
	a.scratch = make([]float64, size)
}

// SetFFTSize changes the analysis window. size must be a power of two in
// [32, 32768]; other values are ignored. History is cleared.
func (a *Analyser) SetFFTSize(size int) {
	if size < 32 || size > 32768 || size&(size-1) != 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.resize(size)
}

func (a *Analyser) FFTSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.fftSize
}

// FrequencyBinCount is half the FFT size.
func (a *Analyser) FrequencyBinCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.fftSize / 2
}

func (a *Analyser) Process(dst []float32) {
	if a.input != nil {
		a.input.Process(dst)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	inv := 1 / float64(a.channels)
	for off := 0; off+a.channels <= len(dst); off += a.channels {
		var sum float64
		for _, v := range dst[off : off+a.channels] {
			sum += float64(v)
		}
		a.ring[a.w] = sum * inv
		a.w = (a.w + 1) % a.fftSize
	}
}

// magnitudes runs the windowed FFT over the ring and folds the result into
// the smoothed spectrum. Caller holds mu.
func (a *Analyser) magnitudes() []float64 {
	n := a.fftSize
	for i := range n {
		a.scratch[i] = a.ring[(a.w+i)%n] * a.window[i]
	}

	spectrum := fft.FFTReal(a.scratch)
	scale := 1 / float64(n)
	for k := range a.smoothed {
		mag := cmplx.Abs(spectrum[k]) * scale
		if math.IsNaN(mag) || math.IsInf(mag, 0) {
			mag = 0
		}
		a.smoothed[k] = a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
	}

	return a.smoothed
}

// GetFloatFrequencyData writes the spectrum in decibels. Silent bins are
// -Inf.
func (a *Analyser) GetFloatFrequencyData(dst []float32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for k, mag := range a.magnitudes() {
		if k >= len(dst) {
			break
		}
		dst[k] = float32(20 * math.Log10(mag))
	}
}

// GetByteFrequencyData writes the spectrum scaled from [minDB, maxDB] to
// [0, 255]. At most FrequencyBinCount bytes are written.
func (a *Analyser) GetByteFrequencyData(dst []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	scale := 255 / (a.maxDB - a.minDB)
	for k, mag := range a.magnitudes() {
		if k >= len(dst) {
			break
		}

		db := 20 * math.Log10(mag)
		v := math.Floor(scale * (db - a.minDB))
		switch {
		case v < 0 || math.IsNaN(v):
			dst[k] = 0
		case v > 255:
			dst[k] = 255
		default:
			dst[k] = byte(v)
		}
	}
}
