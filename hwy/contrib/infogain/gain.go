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

import "github.com/ajroetker/go-mdfs/hwy"

// InformationGain returns, per lane, the sum over the first n cells of
//
//	c0*log2(c0/c) + c1*log2(c1/c),  c = c0 + c1
//
// which is the negated conditional entropy of the class given the bucket,
// scaled by the object count. The quotient is taken as a difference of
// logarithms so that only backend operations are used. All cells must be
// strictly positive.
func InformationGain[F, I any, B hwy.Backend[F, I]](b B, n int, counts0, counts1 hwy.LaneView) F {
	ig := b.Set(0)
	for i := range n {
		c0 := b.Load(counts0.Vector(i))
		c1 := b.Load(counts1.Vector(i))
		lc := b.Log2(b.Add(c0, c1))
		ig = b.MulAdd(c0, b.Sub(b.Log2(c0), lc), ig)
		ig = b.MulAdd(c1, b.Sub(b.Log2(c1), lc), ig)
	}
	return ig
}

// ReduceCounter sums axis out of in, a (div+1)^dim counter array, and
// writes the (div+1)^(dim-1) result to out.
//
// axis is the 1-based tuple position; its digit has stride (div+1)^(axis-1).
// The array is walked in blocks of stride*(div+1) cells, and within a block
// the div+1 slices of length stride are added element-wise into one output
// slice.
func ReduceCounter[F, I any, B hwy.Backend[F, I]](b B, div int, in hwy.LaneView, dim int, out hwy.LaneView, axis int) {
	radix := div + 1
	stride := Cells(div, axis-1)
	size := Cells(div, dim)

	v := 0
	for c := 0; c < size; c += stride * radix {
		for s := 0; s < stride; s++ {
			acc := b.Load(in.Vector(c + s))
			for d := 1; d < radix; d++ {
				acc = b.Add(acc, b.Load(in.Vector(c+s+d*stride)))
			}
			b.Store(acc, out.Vector(v))
			v++
		}
	}
}

// VariableGains computes, for every tuple position vv, the information lost
// when the distinctions of that variable are ignored:
//
//	IG(full) - IG(full with axis vv+1 summed out)
//
// and stores the W lanes of position vv at dst[vv*W:]. Build must have run
// on ws.
func VariableGains[F, I any, B hwy.Backend[F, I]](b B, p Params, ws *Workspace, dst []float32) {
	w := b.Lanes()
	full := InformationGain[F, I](b, p.Cells, ws.class0, ws.class1)
	rc := p.ReducedCells()

	for vv := range p.Dim {
		ReduceCounter[F, I](b, p.Div, ws.class0, p.Dim, ws.reduced0, vv+1)
		ReduceCounter[F, I](b, p.Div, ws.class1, p.Dim, ws.reduced1, vv+1)
		marginal := InformationGain[F, I](b, rc, ws.reduced0, ws.reduced1)
		b.Store(b.Sub(full, marginal), dst[vv*w:])
	}
}
