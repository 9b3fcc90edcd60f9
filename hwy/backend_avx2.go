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

//go:build amd64 && goexperiment.simd

package hwy

import "simd/archsimd"

// AVX2 is the W=8 backend on 256-bit AVX2 registers.
//
// Add, Sub, Mul and MulAdd are single instructions. Log2 is a vector
// polynomial kernel; it agrees with the scalar log2_32 to a few float32 ulps
// rather than bit for bit.
type AVX2 struct{}

var _ Backend[archsimd.Float32x8, archsimd.Int32x8] = AVX2{}

// Lanes returns 8.
func (AVX2) Lanes() int { return 8 }

// Set broadcasts x with VBROADCASTSS.
func (AVX2) Set(x float32) archsimd.Float32x8 { return archsimd.BroadcastFloat32x8(x) }

// Load reads src[0:8].
func (AVX2) Load(src []float32) archsimd.Float32x8 { return archsimd.LoadFloat32x8Slice(src) }

// Store writes v to dst[0:8].
func (AVX2) Store(v archsimd.Float32x8, dst []float32) { v.StoreSlice(dst) }

func (AVX2) Add(a, b archsimd.Float32x8) archsimd.Float32x8 { return a.Add(b) }

func (AVX2) Sub(a, b archsimd.Float32x8) archsimd.Float32x8 { return a.Sub(b) }

func (AVX2) Mul(a, b archsimd.Float32x8) archsimd.Float32x8 { return a.Mul(b) }

// MulAdd uses VFMADD213PS.
func (AVX2) MulAdd(a, b, c archsimd.Float32x8) archsimd.Float32x8 { return a.MulAdd(b, c) }

// Log2 splits a into exponent e and mantissa m in [sqrt(2)/2, sqrt(2)),
// then evaluates log2(m) = 2*atanh(y)/ln(2) with y = (m-1)/(m+1) as an odd
// polynomial in y. Powers of two are exact. Lanes must be positive normal
// numbers; zero, negative, subnormal, Inf and NaN lanes are not handled.
func (AVX2) Log2(a archsimd.Float32x8) archsimd.Float32x8 {
	bits := a.AsInt32x8()
	e := bits.ShiftAllRight(23).And(log2ExpMask).Sub(log2ExpBias).ConvertToFloat32()
	m := bits.And(log2MantMask).Or(log2NormBits).AsFloat32x8()

	// Merge returns the receiver where the mask is set.
	high := log2SqrtTwo.Less(m)
	m = m.Mul(log2Half).Merge(m, high)
	e = e.Add(log2One).Merge(e, high)

	y := m.Sub(log2One).Div(m.Add(log2One))
	y2 := y.Mul(y)
	p := log2C5.MulAdd(y2, log2C4)
	p = p.MulAdd(y2, log2C3)
	p = p.MulAdd(y2, log2C2)
	p = p.MulAdd(y2, log2C1)
	p = p.MulAdd(y2, log2One)

	return y.Mul(log2TwoOverLn2).MulAdd(p, e)
}

// Coefficients of ln((1+y)/(1-y)) = 2y(1 + y^2/3 + y^4/5 + ...), |y| <= 0.172.
var (
	log2C1 = archsimd.BroadcastFloat32x8(0.3333333333333367565)
	log2C2 = archsimd.BroadcastFloat32x8(0.1999999999970470954)
	log2C3 = archsimd.BroadcastFloat32x8(0.1428571437183119574)
	log2C4 = archsimd.BroadcastFloat32x8(0.1111109921607489198)
	log2C5 = archsimd.BroadcastFloat32x8(0.0909178608080902506)

	log2One        = archsimd.BroadcastFloat32x8(1)
	log2Half       = archsimd.BroadcastFloat32x8(0.5)
	log2SqrtTwo    = archsimd.BroadcastFloat32x8(1.4142135623730951)
	log2TwoOverLn2 = archsimd.BroadcastFloat32x8(2.8853900817779268) // 2/ln(2)

	log2ExpMask  = archsimd.BroadcastInt32x8(0xFF)
	log2ExpBias  = archsimd.BroadcastInt32x8(127)
	log2MantMask = archsimd.BroadcastInt32x8(0x007FFFFF)
	log2NormBits = archsimd.BroadcastInt32x8(0x3F800000) // 1.0
)

func (AVX2) SetInt(x int32) archsimd.Int32x8 { return archsimd.BroadcastInt32x8(x) }

func (AVX2) LoadInt(src []int32) archsimd.Int32x8 { return archsimd.LoadInt32x8Slice(src) }

func (AVX2) AddInt(a, b archsimd.Int32x8) archsimd.Int32x8 { return a.Add(b) }

// MulInt uses VPMULLD.
func (AVX2) MulInt(a, b archsimd.Int32x8) archsimd.Int32x8 { return a.Mul(b) }

func (AVX2) StoreInt(v archsimd.Int32x8, dst []int32) { v.StoreSlice(dst) }
