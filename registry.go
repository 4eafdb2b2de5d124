// SPDX-License-Identifier: EPL-2.0

package aural

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ik5/aural/audio"
	"github.com/ik5/aural/engine"
	"github.com/ik5/aural/fetch"
	"github.com/ik5/aural/formats"
	"go.uber.org/zap"
)

const defaultDecodeBufferSize = 4096

// Registry maps keys to loaded clips rendered by one engine Context. All
// methods are safe for concurrent use.
type Registry struct {
	ctx      *engine.Context
	log      *zap.Logger
	fetcher  fetch.Fetcher
	decoders *audio.Registry
	cache    *lru.Cache[string, decoded]
	bufSize  int

	mu      sync.Mutex
	entries map[string]*entry
	closed  bool
}

// New creates a registry on ctx. The caller keeps ownership of ctx and
// closes it after the registry.
func New(ctx *engine.Context, opts ...Option) *Registry {
	r := &Registry{
		ctx:      ctx,
		log:      zap.NewNop(),
		fetcher:  fetch.Default(),
		decoders: formats.Registry(),
		bufSize:  defaultDecodeBufferSize,
		entries:  make(map[string]*entry),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Context returns the engine context the registry renders on.
func (r *Registry) Context() *engine.Context { return r.ctx }

// Load fetches and decodes source, then registers it under key, replacing
// any clip already there. Unless the clip is Suspended a voice is started
// at rate 0; AutoPlay then sets it playing at the configured rate.
func (r *Registry) Load(ctx context.Context, key, source string, opts ...LoadOption) (*Handle, error) {
	if r.isClosed() {
		return nil, ErrClosed
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o = o.sanitize()

	format, buf, err := r.buffer(ctx, source)
	if err != nil {
		r.log.Debug("clip load failed", zap.String("key", key), zap.String("source", source), zap.Error(err))
		return nil, err
	}

	e := &entry{
		key:  key,
		clip: &clip{source: source, format: format, buffer: buf, opts: o},
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrClosed
	}

	if err := r.prime(e); err != nil {
		r.mu.Unlock()
		return nil, err
	}

	if old, ok := r.entries[key]; ok {
		r.dropVoice(old)
	}
	r.entries[key] = e
	playing := e.playing
	r.mu.Unlock()

	r.log.Debug("clip loaded",
		zap.String("key", key),
		zap.String("source", source),
		zap.String("format", format),
		zap.Duration("duration", buf.Duration()),
		zap.Bool("playing", playing))

	h := &Handle{r: r, key: key}
	if o.OnLoad != nil {
		o.OnLoad(h)
	}

	return h, nil
}

// decoded is a cached decode result.
type decoded struct {
	format string
	buffer *audio.Buffer
}

// buffer returns the decoded samples of source in the context format.
func (r *Registry) buffer(ctx context.Context, source string) (string, *audio.Buffer, error) {
	if r.cache != nil {
		if d, ok := r.cache.Get(source); ok {
			return d.format, d.buffer, nil
		}
	}

	data, err := r.fetcher.Fetch(ctx, source)
	if err != nil {
		return "", nil, fmt.Errorf("%w %q: %w", ErrFetch, source, err)
	}

	format, src, err := r.decoders.Decode(source, data)
	switch {
	case errors.Is(err, audio.ErrUnknownFormat):
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, source)
	case err != nil:
		return "", nil, fmt.Errorf("%w %q: %w", ErrDecode, source, err)
	}
	defer src.Close()

	buf, err := audio.ReadBuffer(src, r.ctx.SampleRate(), r.ctx.Channels(), r.bufSize)
	if err != nil {
		return "", nil, fmt.Errorf("%w %q as %s: %w", ErrDecode, source, format, err)
	}

	if r.cache != nil {
		r.cache.Add(source, decoded{format: format, buffer: buf})
	}

	return format, buf, nil
}

// prime sets up e the way a fresh load does. Caller holds mu.
func (r *Registry) prime(e *entry) error {
	e.playing = false
	e.started = false

	if e.clip.opts.Suspended {
		return nil
	}

	if err := r.startVoice(e); err != nil {
		return err
	}

	if e.clip.opts.AutoPlay {
		e.playing = true
	}
	e.applyParams()

	return nil
}

// startVoice allocates and starts a voice for e. Caller holds mu.
func (r *Registry) startVoice(e *entry) error {
	v, err := newVoice(r.ctx, e.clip)
	if err != nil {
		return err
	}

	if err := v.source.Start(e.clip.opts.StartAt); err != nil {
		v.discard(r.ctx)
		return fmt.Errorf("starting voice: %w", err)
	}

	src := v.source
	v.source.SetOnEnded(func() { r.voiceEnded(e, src) })

	e.voice = v
	e.started = true

	r.log.Debug("voice started",
		zap.String("key", e.key),
		zap.Stringer("voice", v.source.ID()),
		zap.Duration("offset", e.clip.opts.StartAt))

	return nil
}

// dropVoice disconnects e's voice, if any. Caller holds mu.
func (r *Registry) dropVoice(e *entry) {
	if e.voice == nil {
		return
	}

	r.log.Debug("voice discarded", zap.String("key", e.key), zap.Stringer("voice", e.voice.source.ID()))

	e.voice.discard(r.ctx)
	e.voice = nil
	e.started = false
	e.playing = false
}

// voiceEnded runs on the render goroutine when a non-looping voice runs
// out. The entry keeps its clip; the next Play allocates a new voice.
func (r *Registry) voiceEnded(e *entry, src *engine.BufferSource) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.voice == nil || e.voice.source != src {
		return
	}

	r.log.Debug("voice ended", zap.String("key", e.key), zap.Stringer("voice", src.ID()))
	r.ctx.Disconnect(e.voice.gain)
	e.voice = nil
	e.started = false
	e.playing = false
}

func (r *Registry) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.closed
}

// lookup returns the entry for key. Caller holds mu.
func (r *Registry) lookup(key string) (*entry, error) {
	if r.closed {
		return nil, ErrClosed
	}

	e, ok := r.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	return e, nil
}

// with runs fn on the entry for key while holding mu.
func (r *Registry) with(key string, fn func(e *entry) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.lookup(key)
	if err != nil {
		return err
	}

	return fn(e)
}

// Play resumes the context when suspended and plays key at its configured
// rate, starting a new voice if none is live.
func (r *Registry) Play(key string) error {
	return r.with(key, func(e *entry) error {
		if r.ctx.State() == engine.StateSuspended {
			if err := r.ctx.Resume(); err != nil {
				return fmt.Errorf("resuming audio context: %w", err)
			}
		}

		if e.voice == nil {
			if err := r.startVoice(e); err != nil {
				return err
			}
		}

		e.playing = true
		e.applyParams()

		return nil
	})
}

// Pause holds the voice at its position. The configured rate is kept.
func (r *Registry) Pause(key string) error {
	return r.with(key, func(e *entry) error {
		e.playing = false
		e.applyParams()
		return nil
	})
}

// SetRate stores rate and applies it when playing. A rate of 0 pauses.
func (r *Registry) SetRate(key string, rate float64) error {
	return r.with(key, func(e *entry) error {
		switch {
		case math.IsNaN(rate) || rate < 0 || math.IsInf(rate, 0):
			return fmt.Errorf("%w: %v", ErrInvalidRate, rate)
		case rate == 0:
			e.playing = false
		default:
			e.clip.opts.Rate = rate
		}

		e.applyParams()

		return nil
	})
}

// Stop discards the voice. The clip stays loaded with AutoPlay turned off,
// so the next Play starts from StartAt on a fresh voice.
func (r *Registry) Stop(key string) error {
	return r.with(key, func(e *entry) error {
		r.dropVoice(e)
		e.clip.opts.AutoPlay = false
		return nil
	})
}

// SetVolume stores v and applies it to the live gain.
func (r *Registry) SetVolume(key string, v float64) error {
	return r.with(key, func(e *entry) error {
		if math.IsNaN(v) || v < 0 || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidVolume, v)
		}

		e.clip.opts.Volume = v
		e.applyParams()

		return nil
	})
}

func (r *Registry) Mute(key string) error { return r.SetVolume(key, 0) }

// Unmute restores key to volume, DefaultVolume when omitted. Only the first
// value is used.
func (r *Registry) Unmute(key string, volume ...float64) error {
	v := DefaultVolume
	if len(volume) > 0 {
		v = volume[0]
	}
	return r.SetVolume(key, v)
}

func (r *Registry) MuteAll() error { return r.UnmuteAll(0) }

// UnmuteAll sets every clip to volume v.
func (r *Registry) UnmuteAll(v float64) error {
	if math.IsNaN(v) || v < 0 || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidVolume, v)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	for _, e := range r.entries {
		e.clip.opts.Volume = v
		e.applyParams()
	}

	return nil
}

// Frequency is the analyser's byte spectrum summed and divided by the
// clip's FrequencyDivider. It is 0 when key has no live voice. Volume does
// not affect it.
func (r *Registry) Frequency(key string) (float64, error) {
	var f float64

	err := r.with(key, func(e *entry) error {
		if e.voice != nil {
			f = e.voice.frequency(e.clip.opts.FrequencyDivider)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return f, nil
}

// Options returns a copy of the clip's current configuration.
func (r *Registry) Options(key string) (Options, error) {
	var o Options

	err := r.with(key, func(e *entry) error {
		o = e.clip.opts
		return nil
	})

	return o, err
}

// IsPlaying is false for unknown keys.
func (r *Registry) IsPlaying(key string) bool {
	var playing bool

	_ = r.with(key, func(e *entry) error {
		playing = e.playing
		return nil
	})

	return playing
}

// Started reports whether key has a started voice.
func (r *Registry) Started(key string) bool {
	var started bool

	_ = r.with(key, func(e *entry) error {
		started = e.started
		return nil
	})

	return started
}

// Handle returns a view bound to key.
func (r *Registry) Handle(key string) (*Handle, error) {
	err := r.with(key, func(*entry) error { return nil })
	if err != nil {
		return nil, err
	}

	return &Handle{r: r, key: key}, nil
}

// Keys lists the loaded keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

// Remove stops key and forgets it.
func (r *Registry) Remove(key string) error {
	return r.with(key, func(e *entry) error {
		r.dropVoice(e)
		delete(r.entries, key)
		return nil
	})
}

// Close stops every voice and empties the registry. The engine context is
// left open.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	for _, e := range r.entries {
		r.dropVoice(e)
	}
	clear(r.entries)
	r.closed = true

	if r.cache != nil {
		r.cache.Purge()
	}

	r.log.Debug("registry closed")

	return nil
}
