// SPDX-License-Identifier: EPL-2.0

package aural

// Handle is a view of one key in a Registry. It stays valid across Stop
// and reload of the same key; after Remove its methods return
// ErrUnknownKey.
type Handle struct {
	r   *Registry
	key string
}

func (h *Handle) Key() string                 { return h.key }
func (h *Handle) Play() error                 { return h.r.Play(h.key) }
func (h *Handle) Pause() error                { return h.r.Pause(h.key) }
func (h *Handle) Stop() error                 { return h.r.Stop(h.key) }
func (h *Handle) Mute() error                 { return h.r.Mute(h.key) }
func (h *Handle) SetVolume(v float64) error   { return h.r.SetVolume(h.key, v) }
func (h *Handle) SetRate(rate float64) error  { return h.r.SetRate(h.key, rate) }
func (h *Handle) Frequency() (float64, error) { return h.r.Frequency(h.key) }
func (h *Handle) Options() (Options, error)   { return h.r.Options(h.key) }
func (h *Handle) IsPlaying() bool             { return h.r.IsPlaying(h.key) }
func (h *Handle) Started() bool               { return h.r.Started(h.key) }

// Unmute restores the volume, DefaultVolume when omitted.
func (h *Handle) Unmute(volume ...float64) error { return h.r.Unmute(h.key, volume...) }
