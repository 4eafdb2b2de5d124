// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/aural/audio"
	"github.com/ik5/aural/utils"
)

// BufferSource plays a decoded buffer once. It can be started and stopped
// a single time; replaying means creating a new source over the same
// buffer.
type BufferSource struct {
	// PlaybackRate scales the read speed. 0 holds the current position and
	// renders silence, negative values are treated as 0.
	PlaybackRate *Param

	id       uuid.UUID
	buffer   *audio.Buffer
	channels int
	rate     int

	mu      sync.Mutex
	loop    bool
	started bool
	stopped bool
	ended   bool
	pos     float64
	onEnded func()

	silence []float32
}

// NewBufferSource creates a source for buf, which must already be in the
// context's channel layout.
func NewBufferSource(ctx *Context, buf *audio.Buffer) (*BufferSource, error) {
	if buf == nil || buf.Channels != ctx.Channels() {
		return nil, fmt.Errorf("%w: buffer layout does not match context", ErrInvalidConfig)
	}

	return &BufferSource{
		PlaybackRate: NewParam(1),
		id:           uuid.New(),
		buffer:       buf,
		channels:     buf.Channels,
		rate:         buf.SampleRate,
		silence:      make([]float32, buf.Channels),
	}, nil
}

func (s *BufferSource) ID() uuid.UUID         { return s.id }
func (s *BufferSource) Buffer() *audio.Buffer { return s.buffer }

func (s *BufferSource) Loop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loop
}

func (s *BufferSource) SetLoop(loop bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loop = loop
}

// SetOnEnded registers fn to run on the render goroutine when a started
// source plays past the end of its buffer without looping. Stop does not
// trigger it.
func (s *BufferSource) SetOnEnded(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onEnded = fn
}

// Start begins playback at offset into the buffer.
func (s *BufferSource) Start(offset time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	s.started = true
	s.pos = max(0, offset.Seconds()*float64(s.rate))

	frames := float64(s.buffer.Frames())
	if s.loop && frames > 0 && s.pos >= frames {
		s.pos = math.Mod(s.pos, frames)
	}

	return nil
}

// Stop silences the source for good.
func (s *BufferSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case !s.started:
		return ErrNotStarted
	case s.stopped:
		return ErrAlreadyStopped
	}

	s.stopped = true

	return nil
}

func (s *BufferSource) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.started
}

// Playing reports whether the source is started and has neither been
// stopped nor run out.
func (s *BufferSource) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.started && !s.stopped && !s.ended
}

// Position is the current read offset into the buffer.
func (s *BufferSource) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return time.Duration(s.pos / float64(s.rate) * float64(time.Second))
}

func (s *BufferSource) frame(i int, frames int, loop bool) []float32 {
	if i < 0 {
		if !loop {
			i = 0
		} else {
			i += frames
		}
	}
	if i >= frames {
		if !loop {
			return s.silence
		}
		i %= frames
	}
	return s.buffer.Frame(i)
}

func (s *BufferSource) Process(dst []float32) {
	s.mu.Lock()

	if !s.started || s.stopped || s.ended {
		s.mu.Unlock()
		return
	}

	rate := s.PlaybackRate.Value()
	if !(rate > 0) {
		s.mu.Unlock()
		return
	}

	frames := s.buffer.Frames()
	fired := false

	for off := 0; off+s.channels <= len(dst); off += s.channels {
		if s.pos >= float64(frames) {
			if !s.loop || frames == 0 {
				s.ended = true
				fired = true
				break
			}
			s.pos = math.Mod(s.pos, float64(frames))
		}

		i := int(s.pos)
		x := float32(s.pos - float64(i))
		utils.InterpolateFrame(dst[off:off+s.channels],
			s.frame(i-1, frames, s.loop),
			s.frame(i, frames, s.loop),
			s.frame(i+1, frames, s.loop),
			s.frame(i+2, frames, s.loop),
			x)

		s.pos += rate
	}

	fn := s.onEnded
	s.mu.Unlock()

	if fired && fn != nil {
		fn()
	}
}
