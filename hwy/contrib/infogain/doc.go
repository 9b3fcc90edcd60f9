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

// Package infogain provides the histogram and information-gain kernels of
// multidimensional feature selection, written once against hwy.Backend.
//
// # Layout
//
// A D-tuple of variables, each discretized into DIV+1 buckets, spans
// (DIV+1)^D joint buckets. The bucket of an object is the mixed-radix number
// whose digit k is the code of tuple position k; position 0 is the least
// significant digit. Counters keep one lane vector per bucket and class, so a
// backend of width W evaluates W discretization trials at once:
//
//	class 0: [bucket0 lanes..., bucket1 lanes..., ...]
//	class 1: [bucket0 lanes..., bucket1 lanes..., ...]
//
// # Kernels
//
//   - Build folds codes into buckets, counts objects per class and bucket,
//     then adds the class-weighted pseudo-count to every cell.
//   - InformationGain sums c0*log2(c0/c) + c1*log2(c1/c) over cells.
//   - ReduceCounter sums one tuple axis out of a counter array.
//   - VariableGains returns, for every tuple position, the gain of the full
//     histogram minus the gain of the histogram with that position summed out.
//
// All cells are strictly positive after Build, so the logarithms never see a
// zero and the kernels carry no guards.
//
// # Example Usage
//
//	p := infogain.NewParams(2, 1, 0.25, c0, c1)
//	ws := infogain.NewWorkspace(p, 8)
//	infogain.Build[hwy.F32x8, hwy.I32x8](hwy.Wide8{}, p, ws, columns, decision)
//	gains := make([]float32, p.Dim*8)
//	infogain.VariableGains[hwy.F32x8, hwy.I32x8](hwy.Wide8{}, p, ws, gains)
package infogain
