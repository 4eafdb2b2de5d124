// SPDX-License-Identifier: EPL-2.0

// Package aural loads sound clips under string keys and controls their
// playback.
//
// Each loaded key keeps its decoded samples and one Options record. Playing
// it builds a voice, a single-use chain of buffer source, analyser and gain
// nodes on a shared engine.Context. Stop throws the voice away; the next
// Play builds a new one from the same samples.
//
// # Quick Start
//
//	ctx, err := engine.NewContext(engine.DefaultConfig(), &otobackend.Backend{})
//	if err != nil {
//	    // Handle error
//	}
//	defer ctx.Close()
//
//	reg := aural.New(ctx, aural.WithLogger(logger), aural.WithCache(32))
//	defer reg.Close()
//
//	laser, err := reg.Load(context.Background(), "laser", "sounds/laser.ogg",
//	    aural.WithVolume(0.5), aural.WithRate(1.25))
//	if err != nil {
//	    // Handle error
//	}
//
//	_ = laser.Play()
//	level, _ := reg.Frequency("laser")
//
// # Keys
//
// Every keyed method returns an error wrapping ErrUnknownKey for a key that
// was never loaded; Frequency returns 0 with it. Loading an existing key
// replaces the clip and silences its old voice.
//
// # Rate and Volume
//
// The stored Rate is applied while a clip plays and 0 while it is paused,
// so Pause then Play resumes at the last rate set. SetRate(key, 0) pauses.
// Volume drives the gain node only; the analyser sits before it, so a
// muted clip still reports its frequency intensity.
//
// # Sources
//
// Sources are fetched through fetch.Default (files and http(s)) unless
// WithFetcher is given, and decoded by the first decoder that matches the
// extension or the leading bytes. WAV, MP3, Ogg Vorbis, AIFF and FLAC are
// built in. A Manifest preloads many clips from YAML.
package aural
