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

// Params are the per-run constants of the kernels.
type Params struct {
	// Dim is the tuple dimension D.
	Dim int

	// Div is the number of divisions; each variable has Div+1 buckets.
	Div int

	// Cells is (Div+1)^Dim, the number of joint buckets per class.
	Cells int

	// Pseudo0 and Pseudo1 are the pseudo-counts added to every bucket of
	// class 0 and class 1.
	Pseudo0, Pseudo1 float32
}

// NewParams derives the kernel constants for one run. The pseudo-count mass
// is split between the classes in proportion to their sizes c0 and c1, then
// spread evenly over the buckets.
func NewParams(dim, div int, pseudo float32, c0, c1 int) Params {
	cells := Cells(div, dim)

	p0 := float32(c0) / float32(c0+c1)
	p0 *= pseudo
	p0 /= float32(cells)

	p1 := float32(c1) / float32(c0+c1)
	p1 *= pseudo
	p1 /= float32(cells)

	return Params{
		Dim:     dim,
		Div:     div,
		Cells:   cells,
		Pseudo0: p0,
		Pseudo1: p1,
	}
}

// ReducedCells returns the number of buckets after one axis is summed out.
func (p Params) ReducedCells() int {
	return p.Cells / (p.Div + 1)
}

// Cells returns (div+1)^dim.
func Cells(div, dim int) int {
	n := 1
	for range dim {
		n *= div + 1
	}
	return n
}

// Workspace holds the buffers of one unit of work: the joint counters of
// both classes, the reduced counters, and the bucket scratch of one object.
// A Workspace must not be shared between concurrent units.
type Workspace struct {
	lanes int

	class0, class1     hwy.LaneView
	reduced0, reduced1 hwy.LaneView
	buckets            []int32
}

// NewWorkspace allocates lane-aligned buffers for p and lane width lanes.
func NewWorkspace(p Params, lanes int) *Workspace {
	counters := hwy.NewLaneView(hwy.AlignedFloat32(2*p.Cells*lanes, lanes), lanes)
	rc := p.ReducedCells()
	reduced := hwy.NewLaneView(hwy.AlignedFloat32(2*rc*lanes, lanes), lanes)
	return &Workspace{
		lanes:    lanes,
		class0:   counters.Slice(0, p.Cells),
		class1:   counters.Slice(p.Cells, 2*p.Cells),
		reduced0: reduced.Slice(0, rc),
		reduced1: reduced.Slice(rc, 2*rc),
		buckets:  make([]int32, lanes),
	}
}

// Lanes returns the lane width the workspace was allocated for.
func (ws *Workspace) Lanes() int {
	return ws.lanes
}

// Counters returns the joint counters of class 0 and class 1.
func (ws *Workspace) Counters() (class0, class1 hwy.LaneView) {
	return ws.class0, ws.class1
}

// Reset zeroes the joint counters so the workspace can be reused.
func (ws *Workspace) Reset() {
	ws.class0.Clear()
	ws.class1.Clear()
}
