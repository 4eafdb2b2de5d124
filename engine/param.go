// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"math"
	"sync/atomic"
)

// Param is a node parameter that can be changed from any goroutine while
// the render goroutine reads it.
type Param struct {
	bits atomic.Uint64
}

func NewParam(v float64) *Param {
	p := &Param{}
	p.SetValue(v)
	return p
}

func (p *Param) Value() float64 {
	return math.Float64frombits(p.bits.Load())
}

func (p *Param) SetValue(v float64) {
	p.bits.Store(math.Float64bits(v))
}
