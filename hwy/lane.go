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

package hwy

import "unsafe"

// LaneView is the lane-to-scalar view of a buffer of lane vectors.
//
// Kernels keep vectors in flat []float32 buffers laid out cell by cell, the
// W lanes of one cell adjacent:
//
//	[cell0.lane0 .. cell0.laneW-1, cell1.lane0 .. cell1.laneW-1, ...]
//
// Backends move whole cells with Load and Store; LaneView is the only way
// to address a single lane of a cell, which the histogram scatter needs.
type LaneView struct {
	data  []float32
	lanes int
}

// NewLaneView wraps data, whose length must be a multiple of lanes.
func NewLaneView(data []float32, lanes int) LaneView {
	return LaneView{data: data, lanes: lanes}
}

// Lanes returns the lane width of the view.
func (v LaneView) Lanes() int {
	return v.lanes
}

// Cells returns the number of lane vectors in the view.
func (v LaneView) Cells() int {
	return len(v.data) / v.lanes
}

// Data returns the flat backing slice.
func (v LaneView) Data() []float32 {
	return v.data
}

// Vector returns the W scalars of one cell, suitable for Backend.Load.
func (v LaneView) Vector(cell int) []float32 {
	off := cell * v.lanes
	return v.data[off : off+v.lanes : off+v.lanes]
}

// At returns a pointer to one lane of one cell.
func (v LaneView) At(cell, lane int) *float32 {
	return &v.data[cell*v.lanes+lane]
}

// Lane copies lane lane of every cell into dst and returns the number of
// values written.
func (v LaneView) Lane(lane int, dst []float32) int {
	n := min(v.Cells(), len(dst))
	for c := range n {
		dst[c] = v.data[c*v.lanes+lane]
	}
	return n
}

// Slice returns the view of cells [from, to).
func (v LaneView) Slice(from, to int) LaneView {
	return LaneView{data: v.data[from*v.lanes : to*v.lanes], lanes: v.lanes}
}

// Clear sets every lane of every cell to zero.
func (v LaneView) Clear() {
	clear(v.data)
}

// AlignedFloat32 allocates n zeroed float32 values whose first element is
// aligned to a full lane vector of width lanes (4*lanes bytes).
func AlignedFloat32(n, lanes int) []float32 {
	if lanes <= 1 || n == 0 {
		return make([]float32, n)
	}
	buf := make([]float32, n+lanes-1)
	off := 0
	for !isAligned(buf[off:], lanes) {
		off++
	}
	return buf[off : off+n : off+n]
}

// isAligned reports whether the first element of buf is aligned to a lane
// vector of width lanes.
func isAligned(buf []float32, lanes int) bool {
	if len(buf) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&buf[0]))%uintptr(4*lanes) == 0
}
