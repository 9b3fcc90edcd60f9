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

import "math"

// This file provides the single-lane backend and the per-lane helpers shared
// by every array backend. All backends compute a lane exactly the way Scalar
// computes it, which keeps per-trial results identical across lane widths.

// Scalar is the W=1 backend. Its vector types are plain float32 and int32.
type Scalar struct{}

var _ Backend[float32, int32] = Scalar{}

// Lanes returns 1.
func (Scalar) Lanes() int { return 1 }

// Set returns x.
func (Scalar) Set(x float32) float32 { return x }

// Load returns src[0].
func (Scalar) Load(src []float32) float32 { return src[0] }

// Store writes v to dst[0].
func (Scalar) Store(v float32, dst []float32) { dst[0] = v }

func (Scalar) Add(a, b float32) float32 { return a + b }
func (Scalar) Sub(a, b float32) float32 { return a - b }
func (Scalar) Mul(a, b float32) float32 { return a * b }

// MulAdd returns a*b + c.
func (Scalar) MulAdd(a, b, c float32) float32 { return mulAdd32(a, b, c) }

// Log2 returns log2(a).
func (Scalar) Log2(a float32) float32 { return log2_32(a) }

func (Scalar) SetInt(x int32) int32 { return x }

func (Scalar) LoadInt(src []int32) int32 { return src[0] }

func (Scalar) AddInt(a, b int32) int32 { return a + b }

func (Scalar) MulInt(a, b int32) int32 { return a * b }

func (Scalar) StoreInt(v int32, dst []int32) { dst[0] = v }

// mulAdd32 is the fused multiply-add every array backend uses per lane.
// The float64 product of two float32 values is exact; the sum is rounded to
// float64 and then to float32, which can differ from a hardware float32 FMA
// in the last bit.
func mulAdd32(a, b, c float32) float32 {
	return float32(math.FMA(float64(a), float64(b), float64(c)))
}

// log2_32 is the per-lane logarithm of the scalar and array backends.
func log2_32(x float32) float32 {
	return float32(math.Log2(float64(x)))
}
