// SPDX-License-Identifier: EPL-2.0

package aural

import (
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ik5/aural/audio"
	"github.com/ik5/aural/fetch"
	"go.uber.org/zap"
)

const (
	DefaultVolume           = 1.0
	DefaultRate             = 1.0
	DefaultFrequencyDivider = 128.0
)

// Options is the configuration of one clip. The registry owns a single
// copy per key; live node parameters are derived from it.
type Options struct {
	Volume   float64
	Rate     float64
	Loop     bool
	AutoPlay bool
	// Suspended defers creating and starting a voice until Play.
	Suspended bool
	// StartAt is the offset into the clip every voice starts from.
	StartAt          time.Duration
	FrequencyDivider float64
	// OnLoad runs after Load has registered the clip, outside any lock.
	OnLoad func(*Handle)
}

func DefaultOptions() Options {
	return Options{
		Volume:           DefaultVolume,
		Rate:             DefaultRate,
		FrequencyDivider: DefaultFrequencyDivider,
	}
}

// sanitize replaces values the graph cannot use with defaults. A volume of
// 0 is kept.
func (o Options) sanitize() Options {
	if math.IsNaN(o.Volume) || o.Volume < 0 {
		o.Volume = DefaultVolume
	}
	if !(o.Rate > 0) || math.IsInf(o.Rate, 0) {
		o.Rate = DefaultRate
	}
	if !(o.FrequencyDivider > 0) || math.IsInf(o.FrequencyDivider, 0) {
		o.FrequencyDivider = DefaultFrequencyDivider
	}
	if o.StartAt < 0 {
		o.StartAt = 0
	}
	return o
}

// LoadOption adjusts the Options of a clip being loaded.
type LoadOption func(*Options)

func WithVolume(v float64) LoadOption { return func(o *Options) { o.Volume = v } }

func WithRate(r float64) LoadOption { return func(o *Options) { o.Rate = r } }

func WithLoop(loop bool) LoadOption { return func(o *Options) { o.Loop = loop } }

func WithAutoPlay(auto bool) LoadOption { return func(o *Options) { o.AutoPlay = auto } }

func WithSuspended(s bool) LoadOption { return func(o *Options) { o.Suspended = s } }

func WithStartAt(d time.Duration) LoadOption { return func(o *Options) { o.StartAt = d } }

func WithFrequencyDivider(d float64) LoadOption {
	return func(o *Options) { o.FrequencyDivider = d }
}

func WithOnLoad(fn func(*Handle)) LoadOption { return func(o *Options) { o.OnLoad = fn } }

// WithOptions replaces every field with opts. Zero fields are not filled
// in: Rate and FrequencyDivider fall back to their defaults on load, but a
// zero Volume is kept and loads the clip muted. Start from DefaultOptions
// to change only some fields.
func WithOptions(opts Options) LoadOption { return func(o *Options) { *o = opts } }

// Option configures a Registry.
type Option func(*Registry)

func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithFetcher sets where clip bytes come from. The default serves files
// and http(s).
func WithFetcher(f fetch.Fetcher) Option {
	return func(r *Registry) {
		if f != nil {
			r.fetcher = f
		}
	}
}

// WithDecoders sets the decoder registry. The default holds every bundled
// format.
func WithDecoders(d *audio.Registry) Option {
	return func(r *Registry) {
		if d != nil {
			r.decoders = d
		}
	}
}

// WithCache keeps up to size decoded buffers, keyed by source, so loading
// the same source under several keys decodes it once. size <= 0 disables
// the cache.
func WithCache(size int) Option {
	return func(r *Registry) {
		if size <= 0 {
			r.cache = nil
			return
		}
		cache, err := lru.New[string, decoded](size)
		if err == nil {
			r.cache = cache
		}
	}
}

// WithDecodeBufferSize sets the read size used while decoding.
func WithDecodeBufferSize(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.bufSize = n
		}
	}
}
