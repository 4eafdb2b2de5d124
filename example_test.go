// SPDX-License-Identifier: EPL-2.0

package aural_test

import (
	"context"
	"fmt"

	"github.com/ik5/aural"
	"github.com/ik5/aural/engine"
	"github.com/ik5/aural/fetch"
	"github.com/ik5/aural/internal/audiotest"
)

func Example() {
	// NullBackend renders nothing by itself, swap in &otobackend.Backend{}
	// to hear the clip.
	ctx, err := engine.NewContext(engine.Config{SampleRate: 8000, Channels: 1}, engine.NullBackend{})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer ctx.Close()

	tone := audiotest.SineWAV(8000, 1, 8000, 440, 0.5)
	reg := aural.New(ctx, aural.WithFetcher(fetch.Func(func(context.Context, string) ([]byte, error) {
		return tone, nil
	})))
	defer reg.Close()

	h, err := reg.Load(context.Background(), "beep", "beep.wav", aural.WithRate(1.5))
	if err != nil {
		fmt.Println(err)
		return
	}

	_ = h.Play()
	_ = h.Pause()
	_ = h.Play()

	opts, _ := h.Options()
	fmt.Println(h.Key(), h.IsPlaying(), opts.Rate)

	_, err = reg.Frequency("missing")
	fmt.Println(err)

	// Output:
	// beep true 1.5
	// unknown clip key: "missing"
}
