//go:build !amd64 && !arm64

package hwy

func init() {
	// Non-amd64 architectures fall back to scalar mode.
	setScalarMode()
}

// HasAVX2Backend returns false on architectures without AVX2.
func HasAVX2Backend() bool {
	return false
}
