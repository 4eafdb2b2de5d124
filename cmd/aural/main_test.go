// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ik5/aural"
	"github.com/ik5/aural/audio"
	"github.com/ik5/aural/engine"
	"github.com/ik5/aural/fetch"
	"github.com/ik5/aural/formats/wav"
	"github.com/ik5/aural/internal/audiotest"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTone(t *testing.T, frames int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.wav")
	require.NoError(t, os.WriteFile(path, audiotest.SineWAV(8000, 1, frames, 1000, 0.5), 0o600))

	return path
}

func newTestSession(t *testing.T) *session {
	t.Helper()

	viper.Set("sample_rate", 8000)
	viper.Set("channels", 1)
	viper.Set("cache", 0)

	s, err := newSession(engine.NullBackend{})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	return s
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "laser", keyFor("sounds/laser.ogg"))
	assert.Equal(t, "beep", keyFor("https://x.test/fx/beep.wav"))
	assert.Equal(t, "plain", keyFor("plain"))
}

func TestClipFlags(t *testing.T) {
	f := clipFlags{volume: 0, rate: 2, loop: true, startAt: time.Second, divider: 64}

	o := aural.DefaultOptions()
	for _, opt := range f.options(aural.WithAutoPlay(true)) {
		opt(&o)
	}

	assert.Zero(t, o.Volume)
	assert.Equal(t, 2.0, o.Rate)
	assert.True(t, o.Loop)
	assert.True(t, o.AutoPlay)
	assert.Equal(t, time.Second, o.StartAt)
	assert.Equal(t, 64.0, o.FrequencyDivider)
}

func TestRenderClipToBuffer(t *testing.T) {
	s := newTestSession(t)
	path := writeTone(t, 4000)

	_, err := s.reg.Load(context.Background(), "tone", path, aural.WithAutoPlay(true), aural.WithRate(2))
	require.NoError(t, err)

	buf := renderClipToBuffer(s, "tone", time.Minute)
	assert.Equal(t, 8000, buf.SampleRate)
	// 4000 frames at rate 2 end inside the second block
	assert.Equal(t, 2*renderBlock, buf.Frames())
	assert.False(t, s.reg.IsPlaying("tone"))

	var out bytes.Buffer
	require.NoError(t, wav.WriteBuffer(&out, buf))

	src, err := wav.Decoder{}.Decode(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	decoded, err := audio.ReadBuffer(src, 8000, 1, 512)
	require.NoError(t, err)
	assert.Equal(t, buf.Frames(), decoded.Frames())
}

func TestRenderClipToBuffer_Limit(t *testing.T) {
	s := newTestSession(t)
	path := writeTone(t, 800)

	_, err := s.reg.Load(context.Background(), "tone", path, aural.WithAutoPlay(true), aural.WithLoop(true))
	require.NoError(t, err)

	buf := renderClipToBuffer(s, "tone", 500*time.Millisecond)
	assert.Equal(t, 4*renderBlock, buf.Frames())
	assert.True(t, s.reg.IsPlaying("tone"))
}

func TestPrintFrequency(t *testing.T) {
	s := newTestSession(t)
	// ends inside the fourth 250ms reading
	path := writeTone(t, 7000)

	_, err := s.reg.Load(context.Background(), "tone", path, aural.WithAutoPlay(true))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printFrequency(&out, s, "tone", 250*time.Millisecond, time.Minute))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "250ms\t"), lines[0])
}

func TestLazyFetcher_BuildIgnoresRequestContext(t *testing.T) {
	t.Parallel()

	builds := 0
	l := &lazyFetcher{
		log: zap.NewNop(),
		build: func(ctx context.Context) (fetch.Fetcher, error) {
			builds++
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return fetch.Func(func(ctx context.Context, source string) ([]byte, error) {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				return []byte(source), nil
			}), nil
		},
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Fetch(cancelled, "s3://bucket/a.wav")
	require.ErrorIs(t, err, context.Canceled)

	data, err := l.Fetch(context.Background(), "s3://bucket/a.wav")
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/a.wav", string(data))
	assert.Equal(t, 1, builds)
}

func TestLazyFetcher_BuildErrorIsKept(t *testing.T) {
	t.Parallel()

	boom := errors.New("no credentials")
	builds := 0
	l := &lazyFetcher{
		log: zap.NewNop(),
		build: func(context.Context) (fetch.Fetcher, error) {
			builds++
			return nil, boom
		},
	}

	for range 2 {
		_, err := l.Fetch(context.Background(), "s3://bucket/a.wav")
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, 1, builds)
}
