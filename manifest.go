// SPDX-License-Identifier: EPL-2.0

package aural

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// manifestLoadLimit bounds concurrent loads from one manifest.
const manifestLoadLimit = 4

// ManifestClip describes one clip to preload. Unset numeric fields keep
// their defaults.
type ManifestClip struct {
	Key              string        `yaml:"key"`
	Source           string        `yaml:"source"`
	Volume           *float64      `yaml:"volume,omitempty"`
	Rate             *float64      `yaml:"rate,omitempty"`
	Loop             bool          `yaml:"loop,omitempty"`
	AutoPlay         bool          `yaml:"autoplay,omitempty"`
	Suspended        bool          `yaml:"suspended,omitempty"`
	StartAt          time.Duration `yaml:"start_at,omitempty"`
	FrequencyDivider float64       `yaml:"frequency_divider,omitempty"`
}

// Manifest is a YAML list of clips:
//
//	clips:
//	  - key: laser
//	    source: sounds/laser.ogg
//	    volume: 0.5
//	    start_at: 250ms
type Manifest struct {
	Clips []ManifestClip `yaml:"clips"`
}

// LoadOptions converts c to load options.
func (c ManifestClip) LoadOptions() []LoadOption {
	opts := []LoadOption{
		WithLoop(c.Loop),
		WithAutoPlay(c.AutoPlay),
		WithSuspended(c.Suspended),
		WithStartAt(c.StartAt),
	}
	if c.Volume != nil {
		opts = append(opts, WithVolume(*c.Volume))
	}
	if c.Rate != nil {
		opts = append(opts, WithRate(*c.Rate))
	}
	if c.FrequencyDivider != 0 {
		opts = append(opts, WithFrequencyDivider(c.FrequencyDivider))
	}

	return opts
}

// ParseManifest decodes and validates a manifest. Unknown fields are
// rejected. Every problem found is reported.
func ParseManifest(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	var errs []error
	seen := make(map[string]bool, len(m.Clips))
	for i, c := range m.Clips {
		switch {
		case c.Key == "":
			errs = append(errs, fmt.Errorf("%w: clip %d has no key", ErrInvalidManifest, i))
		case c.Source == "":
			errs = append(errs, fmt.Errorf("%w: clip %q has no source", ErrInvalidManifest, c.Key))
		case seen[c.Key]:
			errs = append(errs, fmt.Errorf("%w: duplicate key %q", ErrInvalidManifest, c.Key))
		}
		seen[c.Key] = true
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &m, nil
}

// ReadManifest parses the manifest file at path.
func ReadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	return ParseManifest(f)
}

// LoadManifest loads every clip in m, a few at a time. Clips that fail do
// not stop the others; their errors are joined.
func (r *Registry) LoadManifest(ctx context.Context, m *Manifest) error {
	var (
		mu   sync.Mutex
		errs []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(manifestLoadLimit)

	for _, c := range m.Clips {
		g.Go(func() error {
			if _, err := r.Load(gctx, c.Key, c.Source, c.LoadOptions()...); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("clip %q: %w", c.Key, err))
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()

	return errors.Join(errs...)
}
