// SPDX-License-Identifier: EPL-2.0

package aural

import (
	"fmt"

	"github.com/ik5/aural/audio"
	"github.com/ik5/aural/engine"
)

// clip is the durable part of a key: the decoded samples and the owned
// options.
type clip struct {
	source string
	format string
	buffer *audio.Buffer
	opts   Options
}

// voice is one single-use source -> analyser -> gain chain. Once stopped
// or ended it is dropped, never restarted.
type voice struct {
	source   *engine.BufferSource
	analyser *engine.Analyser
	gain     *engine.Gain
	freq     []byte
}

// newVoice builds and connects a voice for c. Its playback rate starts at
// 0, so it is silent until Play.
func newVoice(ctx *engine.Context, c *clip) (*voice, error) {
	src, err := engine.NewBufferSource(ctx, c.buffer)
	if err != nil {
		return nil, fmt.Errorf("creating buffer source: %w", err)
	}
	src.SetLoop(c.opts.Loop)
	src.PlaybackRate.SetValue(0)

	an := engine.NewAnalyser(ctx, src)
	gain := engine.NewGain(an)
	gain.Gain.SetValue(c.opts.Volume)

	if err := ctx.Connect(gain); err != nil {
		return nil, fmt.Errorf("connecting voice: %w", err)
	}

	return &voice{
		source:   src,
		analyser: an,
		gain:     gain,
		freq:     make([]byte, an.FrequencyBinCount()),
	}, nil
}

// discard stops the voice if it was started and removes it from the graph.
func (v *voice) discard(ctx *engine.Context) {
	if v.source.Started() {
		_ = v.source.Stop()
	}
	ctx.Disconnect(v.gain)
}

// frequency sums the analyser's byte spectrum and divides it by divider.
func (v *voice) frequency(divider float64) float64 {
	v.analyser.GetByteFrequencyData(v.freq)

	var sum int
	for _, b := range v.freq {
		sum += int(b)
	}

	return float64(sum) / divider
}

// entry is the registry state of one key.
type entry struct {
	key     string
	clip    *clip
	voice   *voice
	playing bool
	started bool
}

// liveRate is the playback rate the voice should run at.
func (e *entry) liveRate() float64 {
	if !e.playing {
		return 0
	}
	return e.clip.opts.Rate
}

func (e *entry) applyParams() {
	if e.voice == nil {
		return
	}
	e.voice.source.PlaybackRate.SetValue(e.liveRate())
	e.voice.gain.Gain.SetValue(e.clip.opts.Volume)
}
