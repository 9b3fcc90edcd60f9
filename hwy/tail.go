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

// Chunks returns the number of lane vectors of width lanes needed to cover
// size elements, counting a partial trailing vector.
func Chunks(size, lanes int) int {
	if lanes <= 0 {
		return 0
	}
	return (size + lanes - 1) / lanes
}

// ChunkLanes returns how many lanes of chunk carry real elements when size
// elements are split into vectors of width lanes. It is lanes for every chunk
// but possibly the last one.
func ChunkLanes(chunk, size, lanes int) int {
	return min(lanes, size-chunk*lanes)
}

// ProcessWithTail calls fullFn(offset) for each complete vector of width
// lanes in [0, size) and tailFn(offset, count) once for the remainder, if any.
//
// Example:
//
//	hwy.ProcessWithTail(len(data), 8,
//	    func(offset int) {
//	        v := b.Load(data[offset:])
//	        b.Store(b.Add(v, v), out[offset:])
//	    },
//	    func(offset, count int) {
//	        for i := offset; i < offset+count; i++ {
//	            out[i] = data[i] + data[i]
//	        }
//	    },
//	)
func ProcessWithTail(size, lanes int, fullFn func(offset int), tailFn func(offset, count int)) {
	// Process full vectors
	fullVectors := size / lanes
	for i := range fullVectors {
		fullFn(i * lanes)
	}

	// Process tail if any
	remaining := size % lanes
	if remaining > 0 {
		tailFn(fullVectors*lanes, remaining)
	}
}

// AlignedSize rounds up size to the next multiple of lanes.
func AlignedSize(size, lanes int) int {
	if lanes == 0 {
		return size
	}
	return ((size + lanes - 1) / lanes) * lanes
}
