// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ik5/aural"
	"github.com/ik5/aural/audio"
	"github.com/ik5/aural/engine"
	"github.com/ik5/aural/formats/wav"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const renderBlock = 1024

var (
	renderClip   clipFlags
	renderOutput string
	renderMax    time.Duration

	renderCmd = &cobra.Command{
		Use:   "render SOURCE",
		Short: "Render a clip through the audio graph to a WAV file",
		Long: "render plays SOURCE offline with the given rate and volume and writes the " +
			"mixed output as 16-bit PCM WAV.",
		Args: cobra.ExactArgs(1),
		RunE: runRender,
	}
)

func init() {
	renderClip.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output WAV file")
	renderCmd.Flags().DurationVar(&renderMax, "max", 5*time.Minute, "stop after this much audio")
	_ = renderCmd.MarkFlagRequired("output")
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderOutput == "" {
		return errors.New("--output is required")
	}

	s, err := newSession(engine.NullBackend{})
	if err != nil {
		return err
	}
	defer s.Close()

	key := keyFor(args[0])
	if _, err := s.reg.Load(cmd.Context(), key, args[0], renderClip.options(aural.WithAutoPlay(true))...); err != nil {
		return err
	}

	buf := renderClipToBuffer(s, key, renderMax)

	f, err := os.Create(renderOutput)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	if err := wav.WriteBuffer(f, buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing output: %w", err)
	}

	s.log.Info("rendered",
		zap.String("key", key),
		zap.String("output", renderOutput),
		zap.Duration("duration", buf.Duration()))

	return f.Close()
}

// renderClipToBuffer renders until key stops playing or limit is reached.
func renderClipToBuffer(s *session, key string, limit time.Duration) *audio.Buffer {
	out := audio.NewBuffer(s.ctx.SampleRate(), s.ctx.Channels(), 0)
	block := make([]float32, renderBlock*s.ctx.Channels())

	for s.reg.IsPlaying(key) && s.ctx.CurrentTime() < limit {
		s.ctx.Render(block)
		out.Data = append(out.Data, block...)
	}

	return out
}
