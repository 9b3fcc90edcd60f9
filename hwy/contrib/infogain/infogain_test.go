// Copyright 2025 go-mdfs Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package infogain

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/ajroetker/go-mdfs/hwy"
)

func scalarView(values ...float32) hwy.LaneView {
	return hwy.NewLaneView(values, 1)
}

func TestCells(t *testing.T) {
	tests := []struct {
		div, dim, want int
	}{
		{1, 0, 1},
		{1, 1, 2},
		{1, 3, 8},
		{2, 2, 9},
		{3, 5, 1024},
	}
	for _, tt := range tests {
		if got := Cells(tt.div, tt.dim); got != tt.want {
			t.Errorf("Cells(%d, %d) = %d, want %d", tt.div, tt.dim, got, tt.want)
		}
	}
}

func TestReduceCounterAxis(t *testing.T) {
	var b hwy.Scalar
	in := scalarView(1, 2, 3, 4)

	out := scalarView(0, 0)
	ReduceCounter[float32, int32](b, 1, in, 2, out, 1)
	if got := out.Data(); got[0] != 3 || got[1] != 7 {
		t.Errorf("ReduceCounter(axis=1) = %v, want [3 7]", got)
	}

	ReduceCounter[float32, int32](b, 1, in, 2, out, 2)
	if got := out.Data(); got[0] != 4 || got[1] != 6 {
		t.Errorf("ReduceCounter(axis=2) = %v, want [4 6]", got)
	}
}

func TestReduceCounterThreeBuckets(t *testing.T) {
	var b hwy.Scalar
	// dim=2, div=2: index = x0 + 3*x1.
	in := make([]float32, 9)
	for i := range in {
		in[i] = float32(i)
	}
	out := scalarView(make([]float32, 3)...)

	ReduceCounter[float32, int32](b, 2, scalarView(in...), 2, out, 2)
	// out[x0] = in[x0] + in[x0+3] + in[x0+6]
	want := []float32{9, 12, 15}
	for i, w := range want {
		if out.Data()[i] != w {
			t.Errorf("out[%d] = %v, want %v", i, out.Data()[i], w)
		}
	}
}

func TestReduceCounterPreservesMass(t *testing.T) {
	var b hwy.Scalar
	rng := rand.New(rand.NewSource(7))

	for div := 1; div <= 3; div++ {
		for dim := 1; dim <= 4; dim++ {
			size := Cells(div, dim)
			in := make([]float32, size)
			var total float32
			for i := range in {
				in[i] = float32(rng.Intn(50))
				total += in[i]
			}
			for axis := 1; axis <= dim; axis++ {
				out := make([]float32, Cells(div, dim-1))
				ReduceCounter[float32, int32](b, div, scalarView(in...), dim, scalarView(out...), axis)
				var sum float32
				for _, x := range out {
					sum += x
				}
				if sum != total {
					t.Errorf("div=%d dim=%d axis=%d: reduced mass %v, want %v", div, dim, axis, sum, total)
				}
			}
		}
	}
}

func TestInformationGainUniformRatio(t *testing.T) {
	var b hwy.Scalar
	// c0 = c1 = 2 in every cell: each cell contributes 2*(1-2) + 2*(1-2).
	c0 := scalarView(2, 2, 2, 2)
	c1 := scalarView(2, 2, 2, 2)
	if got := InformationGain[float32, int32](b, 4, c0, c1); got != -16 {
		t.Errorf("InformationGain() = %v, want -16", got)
	}
}

func TestInformationGainMatchesReference(t *testing.T) {
	var b hwy.Scalar
	rng := rand.New(rand.NewSource(11))
	const n = 27
	c0 := make([]float32, n)
	c1 := make([]float32, n)
	var want float64
	for i := range n {
		c0[i] = rng.Float32()*20 + 0.01
		c1[i] = rng.Float32()*20 + 0.01
		c := float64(c0[i]) + float64(c1[i])
		want += float64(c0[i])*math.Log2(float64(c0[i])/c) + float64(c1[i])*math.Log2(float64(c1[i])/c)
	}

	got := InformationGain[float32, int32](b, n, scalarView(c0...), scalarView(c1...))
	if math.Abs(float64(got)-want) > 1e-4*math.Abs(want) {
		t.Errorf("InformationGain() = %v, want %v", got, want)
	}
	if got > 0 {
		t.Errorf("InformationGain() = %v, want <= 0", got)
	}
}

func TestBuild(t *testing.T) {
	var b hwy.Scalar
	// bucket = b*2 + a: objects land in buckets 0, 1, 2, 3.
	a := []int32{0, 1, 0, 1}
	bb := []int32{0, 0, 1, 1}
	decision := []int32{0, 0, 1, 1}

	p := NewParams(2, 1, 4, 2, 2)
	if p.Pseudo0 != 0.5 || p.Pseudo1 != 0.5 {
		t.Fatalf("pseudo-counts = (%v, %v), want (0.5, 0.5)", p.Pseudo0, p.Pseudo1)
	}

	ws := NewWorkspace(p, 1)
	Build[float32, int32](b, p, ws, [][]int32{a, bb}, decision)

	class0, class1 := ws.Counters()
	want0 := []float32{1.5, 1.5, 0.5, 0.5}
	want1 := []float32{0.5, 0.5, 1.5, 1.5}
	for i := range want0 {
		if class0.Data()[i] != want0[i] {
			t.Errorf("class0[%d] = %v, want %v", i, class0.Data()[i], want0[i])
		}
		if class1.Data()[i] != want1[i] {
			t.Errorf("class1[%d] = %v, want %v", i, class1.Data()[i], want1[i])
		}
	}
}

func TestNewParamsWeightsByPrevalence(t *testing.T) {
	p := NewParams(1, 1, 1, 3, 1)
	// 3/4 and 1/4 of the mass, spread over 2 buckets.
	if p.Pseudo0 != 0.375 || p.Pseudo1 != 0.125 {
		t.Errorf("pseudo-counts = (%v, %v), want (0.375, 0.125)", p.Pseudo0, p.Pseudo1)
	}
	if p.Cells != 2 || p.ReducedCells() != 1 {
		t.Errorf("Cells = %d, ReducedCells = %d, want 2, 1", p.Cells, p.ReducedCells())
	}
}

func TestVariableGainsIndependentIsZero(t *testing.T) {
	var b hwy.Scalar
	p := Params{Dim: 2, Div: 1, Cells: 4}
	ws := NewWorkspace(p, 1)
	for i := range 4 {
		*ws.class0.At(i, 0) = 2
		*ws.class1.At(i, 0) = 2
	}

	gains := make([]float32, 2)
	VariableGains[float32, int32](b, p, ws, gains)
	for vv, g := range gains {
		if g != 0 {
			t.Errorf("gain[%d] = %v, want 0", vv, g)
		}
	}
}

func TestVariableGainsNonNegative(t *testing.T) {
	var b hwy.Scalar
	rng := rand.New(rand.NewSource(5))

	for div := 1; div <= 2; div++ {
		for dim := 1; dim <= 3; dim++ {
			p := Params{Dim: dim, Div: div, Cells: Cells(div, dim)}
			ws := NewWorkspace(p, 1)
			var total float32
			for i := range p.Cells {
				*ws.class0.At(i, 0) = rng.Float32()*10 + 0.05
				*ws.class1.At(i, 0) = rng.Float32()*10 + 0.05
				total += *ws.class0.At(i, 0) + *ws.class1.At(i, 0)
			}
			gains := make([]float32, dim)
			VariableGains[float32, int32](b, p, ws, gains)
			for vv, g := range gains {
				if g < -1e-5*total {
					t.Errorf("div=%d dim=%d: gain[%d] = %v, want >= 0", div, dim, vv, g)
				}
			}
		}
	}
}

func TestVariableGainsSeparatingVariable(t *testing.T) {
	var b hwy.Scalar
	// One variable equal to the decision, one constant.
	x := []int32{0, 0, 0, 0, 1, 1, 1, 1}
	c := []int32{0, 0, 0, 0, 0, 0, 0, 0}
	decision := []int32{0, 0, 0, 0, 1, 1, 1, 1}

	p := NewParams(1, 1, 1, 4, 4)
	gain := func(col []int32) float32 {
		ws := NewWorkspace(p, 1)
		Build[float32, int32](b, p, ws, [][]int32{col}, decision)
		out := make([]float32, 1)
		VariableGains[float32, int32](b, p, ws, out)
		return out[0]
	}

	gx, gc := gain(x), gain(c)
	if gx <= gc {
		t.Errorf("gain(separating) = %v, gain(constant) = %v, want separating > constant", gx, gc)
	}
	if gc < -1e-5 || gc > 1e-5 {
		t.Errorf("gain(constant) = %v, want 0", gc)
	}
}

// packLanes interleaves per-trial code columns into one lane-packed column.
func packLanes(trials [][]int32, lanes int) []int32 {
	objects := len(trials[0])
	out := make([]int32, objects*lanes)
	for o := range objects {
		for l := range lanes {
			if l < len(trials) {
				out[o*lanes+l] = trials[l][o]
			}
		}
	}
	return out
}

func runKernel[F, I any, B hwy.Backend[F, I]](b B, p Params, columns [][]int32, decision []int32) []float32 {
	ws := NewWorkspace(p, b.Lanes())
	Build[F, I](b, p, ws, columns, decision)
	out := make([]float32, p.Dim*b.Lanes())
	VariableGains[F, I](b, p, ws, out)
	return out
}

func TestWideLanesMatchScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	const objects = 50

	for _, lanes := range []int{4, 8} {
		for dim := 1; dim <= 3; dim++ {
			t.Run(fmt.Sprintf("W%d/D%d", lanes, dim), func(t *testing.T) {
				div := 2
				decision := make([]int32, objects)
				c1 := 0
				for o := range decision {
					decision[o] = int32(rng.Intn(2))
					c1 += int(decision[o])
				}
				p := NewParams(dim, div, 0.25, objects-c1, c1)

				// codes[k][trial][object]
				codes := make([][][]int32, dim)
				for k := range codes {
					codes[k] = make([][]int32, lanes)
					for tr := range lanes {
						codes[k][tr] = make([]int32, objects)
						for o := range objects {
							codes[k][tr][o] = int32(rng.Intn(div + 1))
						}
					}
				}

				packed := make([][]int32, dim)
				for k := range dim {
					packed[k] = packLanes(codes[k], lanes)
				}
				var wide []float32
				if lanes == 4 {
					wide = runKernel[hwy.F32x4, hwy.I32x4](hwy.Wide4{}, p, packed, decision)
				} else {
					wide = runKernel[hwy.F32x8, hwy.I32x8](hwy.Wide8{}, p, packed, decision)
				}

				for tr := range lanes {
					cols := make([][]int32, dim)
					for k := range dim {
						cols[k] = codes[k][tr]
					}
					want := runKernel[float32, int32](hwy.Scalar{}, p, cols, decision)
					for vv := range dim {
						got := wide[vv*lanes+tr]
						if math.Float32bits(got) != math.Float32bits(want[vv]) {
							t.Errorf("trial %d position %d: wide = %v, scalar = %v", tr, vv, got, want[vv])
						}
					}
				}
			})
		}
	}
}

func BenchmarkBuildAndGain(b *testing.B) {
	rng := rand.New(rand.NewSource(17))
	const objects = 1000
	const dim, div = 2, 2

	decision := make([]int32, objects)
	c1 := 0
	for o := range decision {
		decision[o] = int32(rng.Intn(2))
		c1 += int(decision[o])
	}
	p := NewParams(dim, div, 0.25, objects-c1, c1)

	column := func(lanes int) []int32 {
		col := make([]int32, objects*lanes)
		for i := range col {
			col[i] = int32(rng.Intn(div + 1))
		}
		return col
	}

	b.Run("Scalar", func(b *testing.B) {
		cols := [][]int32{column(1), column(1)}
		for i := 0; i < b.N; i++ {
			runKernel[float32, int32](hwy.Scalar{}, p, cols, decision)
		}
	})

	b.Run("Wide8", func(b *testing.B) {
		cols := [][]int32{column(8), column(8)}
		for i := 0; i < b.N; i++ {
			runKernel[hwy.F32x8, hwy.I32x8](hwy.Wide8{}, p, cols, decision)
		}
	})
}
