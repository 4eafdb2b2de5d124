// SPDX-License-Identifier: EPL-2.0

package engine

// Gain scales its input by Gain.
type Gain struct {
	Gain *Param

	input Node
}

func NewGain(input Node) *Gain {
	return &Gain{Gain: NewParam(1), input: input}
}

func (g *Gain) Process(dst []float32) {
	if g.input == nil {
		return
	}
	g.input.Process(dst)

	v := float32(g.Gain.Value())
	if v == 1 {
		return
	}
	for i := range dst {
		dst[i] *= v
	}
}
