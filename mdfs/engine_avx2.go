//go:build amd64 && goexperiment.simd

package mdfs

import (
	"simd/archsimd"

	"github.com/ajroetker/go-mdfs/hwy"
)

func init() {
	if hwy.NoSimdEnv() || !hwy.HasAVX2Backend() {
		return
	}
	kernels[8] = kernelFor[archsimd.Float32x8, archsimd.Int32x8](hwy.AVX2{})
	kernelNames[8] = "avx2"
}
