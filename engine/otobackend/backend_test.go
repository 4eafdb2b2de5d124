// SPDX-License-Identifier: EPL-2.0

package otobackend

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	r      io.Reader
	closed bool
}

func (p *fakePlayer) Close() error {
	p.closed = true
	return nil
}

type fakeDevice struct {
	suspended bool
	players   []*fakePlayer
}

func (d *fakeDevice) Suspend() error { d.suspended = true; return nil }
func (d *fakeDevice) Resume() error  { d.suspended = false; return nil }

func (d *fakeDevice) play(r io.Reader) player {
	p := &fakePlayer{r: r}
	d.players = append(d.players, p)
	return p
}

// newFakeBackend returns a backend whose device becomes ready when the
// returned channel is closed.
func newFakeBackend() (*Backend, *fakeDevice, chan struct{}, *[]*oto.NewContextOptions) {
	dev := &fakeDevice{}
	ready := make(chan struct{})
	var calls []*oto.NewContextOptions

	b := &Backend{ReadyTimeout: 20 * time.Millisecond}
	b.open = func(opts *oto.NewContextOptions) (device, <-chan struct{}, error) {
		calls = append(calls, opts)
		return dev, ready, nil
	}

	return b, dev, ready, &calls
}

func TestBackend_OpenPlays(t *testing.T) {
	t.Parallel()

	b, dev, ready, calls := newFakeBackend()
	close(ready)

	src := bytes.NewReader(nil)
	require.NoError(t, b.Open(48000, 2, src))

	require.Len(t, *calls, 1)
	opts := (*calls)[0]
	assert.Equal(t, 48000, opts.SampleRate)
	assert.Equal(t, 2, opts.ChannelCount)
	assert.Equal(t, oto.FormatSignedInt16LE, opts.Format)

	require.Len(t, dev.players, 1)
	assert.Same(t, src, dev.players[0].r)
}

func TestBackend_RetryAfterTimeoutReusesDevice(t *testing.T) {
	t.Parallel()

	b, dev, ready, calls := newFakeBackend()

	err := b.Open(44100, 2, bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrDeviceTimeout)
	assert.Empty(t, dev.players)

	close(ready)
	require.NoError(t, b.Open(44100, 2, bytes.NewReader(nil)))

	assert.Len(t, *calls, 1, "device context is created once")
	assert.Len(t, dev.players, 1)
}

func TestBackend_OpenError(t *testing.T) {
	t.Parallel()

	boom := errors.New("no device")
	b := &Backend{}
	b.open = func(*oto.NewContextOptions) (device, <-chan struct{}, error) {
		return nil, nil, boom
	}

	assert.ErrorIs(t, b.Open(44100, 2, bytes.NewReader(nil)), boom)
	assert.NoError(t, b.Suspend(), "nothing opened")
	assert.NoError(t, b.Close())
}

func TestBackend_SuspendResumeClose(t *testing.T) {
	t.Parallel()

	b, dev, ready, _ := newFakeBackend()
	close(ready)
	require.NoError(t, b.Open(44100, 1, bytes.NewReader(nil)))

	require.NoError(t, b.Suspend())
	assert.True(t, dev.suspended)
	require.NoError(t, b.Resume())
	assert.False(t, dev.suspended)

	require.NoError(t, b.Close())
	assert.True(t, dev.players[0].closed)
	require.NoError(t, b.Close(), "closing twice")
}
