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

// This file provides the portable wide backends. Vectors are fixed-size
// arrays, so they live in registers or on the stack and never allocate.
// The Go compiler does not vectorize these loops; on amd64 builds with
// GOEXPERIMENT=simd the AVX2 backend replaces Wide8 (see backend_avx2.go).

// Wide4 is the W=4 array backend.
type Wide4 struct{}

var _ Backend[F32x4, I32x4] = Wide4{}

// Lanes returns 4.
func (Wide4) Lanes() int { return 4 }

// Set broadcasts x to all 4 lanes.
func (Wide4) Set(x float32) F32x4 { return F32x4{x, x, x, x} }

// Load reads src[0:4].
func (Wide4) Load(src []float32) F32x4 { return F32x4(src[:4]) }

// Store writes v to dst[0:4].
func (Wide4) Store(v F32x4, dst []float32) { copy(dst[:4], v[:]) }

func (Wide4) Add(a, b F32x4) F32x4 {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

func (Wide4) Sub(a, b F32x4) F32x4 {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

func (Wide4) Mul(a, b F32x4) F32x4 {
	for i := range a {
		a[i] *= b[i]
	}
	return a
}

func (Wide4) MulAdd(a, b, c F32x4) F32x4 {
	for i := range a {
		a[i] = mulAdd32(a[i], b[i], c[i])
	}
	return a
}

func (Wide4) Log2(a F32x4) F32x4 {
	for i := range a {
		a[i] = log2_32(a[i])
	}
	return a
}

func (Wide4) SetInt(x int32) I32x4 { return I32x4{x, x, x, x} }

func (Wide4) LoadInt(src []int32) I32x4 { return I32x4(src[:4]) }

func (Wide4) AddInt(a, b I32x4) I32x4 {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

func (Wide4) MulInt(a, b I32x4) I32x4 {
	for i := range a {
		a[i] *= b[i]
	}
	return a
}

func (Wide4) StoreInt(v I32x4, dst []int32) { copy(dst[:4], v[:]) }

// Wide8 is the W=8 array backend.
type Wide8 struct{}

var _ Backend[F32x8, I32x8] = Wide8{}

// Lanes returns 8.
func (Wide8) Lanes() int { return 8 }

// Set broadcasts x to all 8 lanes.
func (Wide8) Set(x float32) F32x8 { return F32x8{x, x, x, x, x, x, x, x} }

// Load reads src[0:8].
func (Wide8) Load(src []float32) F32x8 { return F32x8(src[:8]) }

// Store writes v to dst[0:8].
func (Wide8) Store(v F32x8, dst []float32) { copy(dst[:8], v[:]) }

func (Wide8) Add(a, b F32x8) F32x8 {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

func (Wide8) Sub(a, b F32x8) F32x8 {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

func (Wide8) Mul(a, b F32x8) F32x8 {
	for i := range a {
		a[i] *= b[i]
	}
	return a
}

func (Wide8) MulAdd(a, b, c F32x8) F32x8 {
	for i := range a {
		a[i] = mulAdd32(a[i], b[i], c[i])
	}
	return a
}

func (Wide8) Log2(a F32x8) F32x8 {
	for i := range a {
		a[i] = log2_32(a[i])
	}
	return a
}

func (Wide8) SetInt(x int32) I32x8 { return I32x8{x, x, x, x, x, x, x, x} }

func (Wide8) LoadInt(src []int32) I32x8 { return I32x8(src[:8]) }

func (Wide8) AddInt(a, b I32x8) I32x8 {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

func (Wide8) MulInt(a, b I32x8) I32x8 {
	for i := range a {
		a[i] *= b[i]
	}
	return a
}

func (Wide8) StoreInt(v I32x8, dst []int32) { copy(dst[:8], v[:]) }
