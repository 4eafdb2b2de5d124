// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/ik5/aural"
	"github.com/ik5/aural/engine"
	"github.com/spf13/cobra"
)

var (
	freqClip     clipFlags
	freqInterval time.Duration
	freqMax      time.Duration

	freqCmd = &cobra.Command{
		Use:   "freq SOURCE",
		Short: "Print the frequency intensity of a clip over time",
		Long: "freq renders SOURCE offline and prints the clip's frequency intensity, the summed " +
			"analyser spectrum divided by --frequency-divider, every --interval.",
		Args: cobra.ExactArgs(1),
		RunE: runFreq,
	}
)

func init() {
	freqClip.register(freqCmd)
	freqCmd.Flags().DurationVar(&freqInterval, "interval", 100*time.Millisecond, "time between readings")
	freqCmd.Flags().DurationVar(&freqMax, "max", 30*time.Second, "stop after this much audio")
}

func runFreq(cmd *cobra.Command, args []string) error {
	s, err := newSession(engine.NullBackend{})
	if err != nil {
		return err
	}
	defer s.Close()

	key := keyFor(args[0])
	if _, err := s.reg.Load(cmd.Context(), key, args[0], freqClip.options(aural.WithAutoPlay(true))...); err != nil {
		return err
	}

	return printFrequency(cmd.OutOrStdout(), s, key, freqInterval, freqMax)
}

func printFrequency(w io.Writer, s *session, key string, interval, limit time.Duration) error {
	frames := max(1, int(interval.Seconds()*float64(s.ctx.SampleRate())))
	block := make([]float32, frames*s.ctx.Channels())

	for s.reg.IsPlaying(key) && s.ctx.CurrentTime() < limit {
		s.ctx.Render(block)

		f, err := s.reg.Frequency(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.3f\n", s.ctx.CurrentTime().Round(time.Millisecond), f)
	}

	return nil
}
