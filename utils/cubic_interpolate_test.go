// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
	}{
		{name: "start returns y1", y0: 0, y1: 1, y2: 2, y3: 3, x: 0, want: 1},
		{name: "end returns y2", y0: 0, y1: 1, y2: 2, y3: 3, x: 1, want: 2},
		{name: "linear midpoint", y0: 0, y1: 1, y2: 2, y3: 3, x: 0.5, want: 1.5},
		{name: "constant signal", y0: 0.4, y1: 0.4, y2: 0.4, y3: 0.4, x: 0.3, want: 0.4},
		{name: "silence", y0: 0, y1: 0, y2: 0, y3: 0, x: 0.7, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if diff := math.Abs(float64(got - tt.want)); diff > 1e-5 {
				t.Errorf("CubicInterpolate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInterpolateFrame(t *testing.T) {
	t.Parallel()

	dst := make([]float32, 2)
	f0 := []float32{0, 0}
	f1 := []float32{1, -1}
	f2 := []float32{2, -2}
	f3 := []float32{3, -3}

	InterpolateFrame(dst, f0, f1, f2, f3, 0.5)

	if math.Abs(float64(dst[0]-1.5)) > 1e-5 || math.Abs(float64(dst[1]+1.5)) > 1e-5 {
		t.Errorf("InterpolateFrame() = %v, want [1.5 -1.5]", dst)
	}
}

func TestCubicInterpolate_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = CubicInterpolate(0.5, 1.0, 0.8, 0.3, 0.5)
	})

	if allocs > 0 {
		t.Errorf("CubicInterpolate allocated %v times, want 0", allocs)
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	var result float32

	b.ReportAllocs()

	for i := range b.N {
		result = CubicInterpolate(0.5, 1.0, 0.8, 0.3, float32(i%100)/100)
	}

	_ = result
}
