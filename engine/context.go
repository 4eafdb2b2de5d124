// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"encoding/binary"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/aural/utils"
	"go.uber.org/zap"
)

// Node produces audio in the context format.
type Node interface {
	// Process fills dst with the next len(dst)/channels interleaved frames.
	// dst is zeroed by the caller.
	Process(dst []float32)
}

type State int32

const (
	StateRunning State = iota
	StateSuspended
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

type Config struct {
	SampleRate int
	Channels   int
	// StartSuspended creates the context in StateSuspended. It renders
	// silence until Resume is called.
	StartSuspended bool
	Logger         *zap.Logger
}

// DefaultConfig is 44.1kHz stereo.
func DefaultConfig() Config {
	return Config{SampleRate: 44100, Channels: 2}
}

// Context mixes every node connected to its destination. Render is the
// pull side; a Backend drives it through Read.
type Context struct {
	sampleRate int
	channels   int
	backend    Backend
	log        *zap.Logger

	state  atomic.Int32
	frames atomic.Int64

	mu    sync.Mutex
	nodes []Node

	// serialises renders, guards scratch
	renderMu sync.Mutex
	scratch  []float32

	readMu sync.Mutex
	mix    []float32
}

// NewContext validates cfg and opens backend. A nil backend is replaced by
// NullBackend.
func NewContext(cfg Config, backend Backend) (*Context, error) {
	if cfg.SampleRate <= 0 || cfg.Channels <= 0 {
		return nil, fmt.Errorf("%w: rate=%d channels=%d", ErrInvalidConfig, cfg.SampleRate, cfg.Channels)
	}
	if backend == nil {
		backend = NullBackend{}
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &Context{
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
		backend:    backend,
		log:        log,
	}
	if cfg.StartSuspended {
		c.state.Store(int32(StateSuspended))
	}

	if err := backend.Open(cfg.SampleRate, cfg.Channels, c); err != nil {
		return nil, fmt.Errorf("opening backend: %w", err)
	}
	if cfg.StartSuspended {
		if err := backend.Suspend(); err != nil {
			return nil, fmt.Errorf("suspending backend: %w", err)
		}
	}

	log.Debug("audio context created",
		zap.Int("sample_rate", cfg.SampleRate),
		zap.Int("channels", cfg.Channels),
		zap.Stringer("state", c.State()))

	return c, nil
}

func (c *Context) SampleRate() int { return c.sampleRate }
func (c *Context) Channels() int   { return c.channels }
func (c *Context) State() State    { return State(c.state.Load()) }

// CurrentTime is the amount of audio rendered while running.
func (c *Context) CurrentTime() time.Duration {
	return framesToDuration(c.frames.Load(), c.sampleRate)
}

// framesToDuration splits whole seconds from the remainder so long sessions
// do not overflow.
func framesToDuration(frames int64, rate int) time.Duration {
	r := int64(rate)
	secs, rem := frames/r, frames%r
	return time.Duration(secs)*time.Second + time.Duration(rem)*time.Second/time.Duration(r)
}

func (c *Context) Resume() error {
	switch c.State() {
	case StateClosed:
		return ErrContextClosed
	case StateRunning:
		return nil
	}

	if err := c.backend.Resume(); err != nil {
		return fmt.Errorf("resuming backend: %w", err)
	}
	c.state.CompareAndSwap(int32(StateSuspended), int32(StateRunning))
	c.log.Debug("audio context resumed")

	return nil
}

func (c *Context) Suspend() error {
	switch c.State() {
	case StateClosed:
		return ErrContextClosed
	case StateSuspended:
		return nil
	}

	c.state.CompareAndSwap(int32(StateRunning), int32(StateSuspended))
	if err := c.backend.Suspend(); err != nil {
		return fmt.Errorf("suspending backend: %w", err)
	}
	c.log.Debug("audio context suspended")

	return nil
}

// Close disconnects every node and closes the backend. Closing twice is a
// no-op.
func (c *Context) Close() error {
	if State(c.state.Swap(int32(StateClosed))) == StateClosed {
		return nil
	}

	c.mu.Lock()
	c.nodes = nil
	c.mu.Unlock()

	c.log.Debug("audio context closed")

	return c.backend.Close()
}

// Connect routes n to the destination. Connecting a node twice is a no-op.
func (c *Context) Connect(n Node) error {
	if c.State() == StateClosed {
		return ErrContextClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !slices.Contains(c.nodes, n) {
		c.nodes = append(c.nodes, n)
	}

	return nil
}

// Disconnect removes n from the destination. Unknown nodes are ignored.
func (c *Context) Disconnect(n Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := slices.Index(c.nodes, n); i >= 0 {
		c.nodes = slices.Delete(c.nodes, i, i+1)
	}
}

// Connected reports the number of nodes routed to the destination.
func (c *Context) Connected() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.nodes)
}

// Render mixes the connected nodes into dst. len(dst) should be a multiple
// of the channel count; any remainder is left silent. A context that is not
// running writes silence and does not advance its sources.
func (c *Context) Render(dst []float32) {
	clear(dst)

	if c.State() != StateRunning {
		return
	}

	frames := len(dst) / c.channels
	dst = dst[:frames*c.channels]

	c.mu.Lock()
	nodes := slices.Clone(c.nodes)
	c.mu.Unlock()

	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	if cap(c.scratch) < len(dst) {
		c.scratch = make([]float32, len(dst))
	}
	scratch := c.scratch[:len(dst)]

	for _, n := range nodes {
		clear(scratch)
		n.Process(scratch)
		for i, v := range scratch {
			dst[i] += v
		}
	}

	c.frames.Add(int64(frames))
}

// Read renders into p as signed 16-bit little-endian PCM. It returns
// io.EOF once the context is closed.
func (c *Context) Read(p []byte) (int, error) {
	if c.State() == StateClosed {
		return 0, io.EOF
	}

	frameBytes := 2 * c.channels
	samples := (len(p) / frameBytes) * c.channels
	if samples == 0 {
		return 0, nil
	}

	c.readMu.Lock()
	defer c.readMu.Unlock()

	if cap(c.mix) < samples {
		c.mix = make([]float32, samples)
	}
	mix := c.mix[:samples]

	c.Render(mix)

	for i, v := range mix {
		binary.LittleEndian.PutUint16(p[i*2:], uint16(utils.Float32ToInt16(v)))
	}

	return samples * 2, nil
}
