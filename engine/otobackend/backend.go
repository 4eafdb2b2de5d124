// SPDX-License-Identifier: EPL-2.0

// Package otobackend plays an engine.Context on the default audio device
// through oto. It is kept apart from engine because oto needs cgo on most
// platforms; offline rendering and tests only need engine.NullBackend.
//
//	ctx, err := engine.NewContext(engine.DefaultConfig(), &otobackend.Backend{})
package otobackend

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/aural/engine"
)

const defaultReadyTimeout = 5 * time.Second

// ErrDeviceTimeout is returned when the audio device does not become ready
var ErrDeviceTimeout = errors.New("audio device not ready")

var _ engine.Backend = (*Backend)(nil)

// device is the part of *oto.Context the backend uses.
type device interface {
	Suspend() error
	Resume() error
	play(r io.Reader) player
}

type player interface {
	Close() error
}

type otoDevice struct{ *oto.Context }

func (d otoDevice) play(r io.Reader) player {
	p := d.NewPlayer(r)
	p.Play()
	return p
}

func openOto(opts *oto.NewContextOptions) (device, <-chan struct{}, error) {
	ctx, ready, err := oto.NewContext(opts)
	if err != nil {
		return nil, nil, err
	}
	return otoDevice{ctx}, ready, nil
}

// Backend streams the context output to oto. oto allows one device context
// per process, so the context is created on the first Open and kept: an
// Open that timed out waiting for the device can be retried on the same
// Backend, and only one Backend may be used per process.
type Backend struct {
	// BufferSize is the device buffer length. Zero lets oto choose.
	BufferSize time.Duration
	// ReadyTimeout bounds the wait for the device. Zero means 5s.
	ReadyTimeout time.Duration

	mu     sync.Mutex
	open   func(*oto.NewContextOptions) (device, <-chan struct{}, error)
	dev    device
	ready  <-chan struct{}
	player player
}

func (b *Backend) Open(sampleRate, channels int, r io.Reader) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dev == nil {
		open := b.open
		if open == nil {
			open = openOto
		}

		dev, ready, err := open(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   b.BufferSize,
		})
		if err != nil {
			return fmt.Errorf("creating audio device context: %w", err)
		}
		b.dev, b.ready = dev, ready
	}

	timeout := b.ReadyTimeout
	if timeout <= 0 {
		timeout = defaultReadyTimeout
	}

	select {
	case <-b.ready:
	case <-time.After(timeout):
		return ErrDeviceTimeout
	}

	if b.player != nil {
		_ = b.player.Close()
	}
	b.player = b.dev.play(r)

	return nil
}

func (b *Backend) Suspend() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dev == nil {
		return nil
	}
	return b.dev.Suspend()
}

func (b *Backend) Resume() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dev == nil {
		return nil
	}
	return b.dev.Resume()
}

// Close stops the player. The device context stays alive until the
// process exits; oto has no way to release it.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player == nil {
		return nil
	}

	err := b.player.Close()
	b.player = nil

	return err
}
