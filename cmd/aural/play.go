// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/ik5/aural"
	"github.com/ik5/aural/engine/otobackend"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const pollInterval = 50 * time.Millisecond

var (
	playClip     clipFlags
	playManifest string

	playCmd = &cobra.Command{
		Use:   "play [SOURCE...]",
		Short: "Play clips on the default audio device",
		Long: "Play loads every SOURCE, and every clip of --manifest, then plays them together " +
			"until they end or the command is interrupted.",
		RunE: runPlay,
	}
)

func init() {
	playClip.register(playCmd)
	playCmd.Flags().StringVar(&playManifest, "manifest", "", "YAML manifest of clips to load")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && playManifest == "" {
		return errors.New("nothing to play: give a SOURCE or --manifest")
	}

	s, err := newSession(&otobackend.Backend{})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()

	if playManifest != "" {
		m, err := aural.ReadManifest(playManifest)
		if err != nil {
			return err
		}
		if err := s.reg.LoadManifest(ctx, m); err != nil {
			s.log.Warn("some manifest clips failed to load", zap.Error(err))
		}
	}

	for _, source := range args {
		if _, err := s.reg.Load(ctx, keyFor(source), source, playClip.options()...); err != nil {
			return err
		}
	}

	for _, key := range s.reg.Keys() {
		if err := s.reg.Play(key); err != nil {
			return fmt.Errorf("playing %q: %w", key, err)
		}
		s.log.Info("playing", zap.String("key", key))
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !anyPlaying(s.reg) {
				return nil
			}
		}
	}
}

func anyPlaying(reg *aural.Registry) bool {
	for _, key := range reg.Keys() {
		if reg.IsPlaying(key) {
			return true
		}
	}
	return false
}
