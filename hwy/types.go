// Package hwy provides the lane-level arithmetic backends used by the MDFS
// kernels.
//
// A backend exposes a fixed set of operations (broadcast, load/store, add,
// subtract, multiply, fused multiply-add, base-2 logarithm, and a small set of
// integer lane operations used for bucket folding) over a lane width W. The
// kernels in hwy/contrib are written once against the Backend interface and
// instantiated per backend, so the same control flow runs on W=1, W=4 and W=8.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-mdfs/hwy"
//
//	var b hwy.Wide8
//	x := b.Load(buf)
//	y := b.MulAdd(x, b.Set(2), b.Set(1))
//	b.Store(y, buf)
package hwy

// Backend is the set of lane operations a kernel may use.
//
// F is the float32 lane vector type and I the int32 lane vector type of the
// backend. Every lane is independent: lane k of a result depends only on lane
// k of the operands.
type Backend[F, I any] interface {
	// Lanes returns the lane width W.
	Lanes() int

	// Set broadcasts x to every lane.
	Set(x float32) F

	// Load reads W consecutive values from src.
	Load(src []float32) F

	// Store writes the W lanes of v to dst.
	Store(v F, dst []float32)

	Add(a, b F) F
	Sub(a, b F) F
	Mul(a, b F) F

	// MulAdd returns a*b + c without rounding the intermediate product.
	MulAdd(a, b, c F) F

	// Log2 returns the base-2 logarithm of every lane. Lanes must be positive.
	Log2(a F) F

	// SetInt broadcasts x to every integer lane.
	SetInt(x int32) I

	// LoadInt reads W consecutive values from src.
	LoadInt(src []int32) I

	AddInt(a, b I) I
	MulInt(a, b I) I

	// StoreInt writes the W lanes of v to dst.
	StoreInt(v I, dst []int32)
}

// F32x4 is a four-lane float32 vector.
type F32x4 [4]float32

// I32x4 is a four-lane int32 vector.
type I32x4 [4]int32

// F32x8 is an eight-lane float32 vector.
type F32x8 [8]float32

// I32x8 is an eight-lane int32 vector.
type I32x8 [8]int32
