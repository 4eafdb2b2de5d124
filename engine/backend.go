// SPDX-License-Identifier: EPL-2.0

package engine

import "io"

// Backend moves rendered audio to an output device. Open hands it the
// reader it should pull 16-bit little-endian interleaved PCM from.
type Backend interface {
	Open(sampleRate, channels int, r io.Reader) error
	Suspend() error
	Resume() error
	Close() error
}

// NullBackend never pulls audio. The owner of the Context drives it with
// Render or Read, which is what tests and offline rendering do.
type NullBackend struct{}

func (NullBackend) Open(int, int, io.Reader) error { return nil }
func (NullBackend) Suspend() error                 { return nil }
func (NullBackend) Resume() error                  { return nil }
func (NullBackend) Close() error                   { return nil }
