// Package accel detects SIMD capabilities of the host CPU and turns
// them into batch-sizing hints for the search engine: an alignment
// width (how many hash lanes the hardware can drive in parallel) and a
// default batch count.
package accel

import (
	"strings"

	"golang.org/x/sys/cpu"
)

// defaultBatchCount is used when no SIMD acceleration is available.
const defaultBatchCount = 1000

// Oracle reports the host's optimal batch geometry. Detection runs once
// at construction.
type Oracle struct {
	width    int
	features []string
}

// Detect probes the CPU feature flags and builds an oracle.
func Detect() *Oracle {
	o := &Oracle{width: 1}

	switch {
	case cpu.X86.HasAVX512F:
		o.width = 16
	case cpu.X86.HasAVX2:
		o.width = 8
	case cpu.X86.HasAVX:
		o.width = 4
	case cpu.ARM64.HasASIMD:
		o.width = 2
	}

	if cpu.X86.HasSSE2 {
		o.features = append(o.features, "SSE2")
	}
	if cpu.X86.HasSSE41 {
		o.features = append(o.features, "SSE4.1")
	}
	if cpu.X86.HasAVX {
		o.features = append(o.features, "AVX")
	}
	if cpu.X86.HasAVX2 {
		o.features = append(o.features, "AVX2")
	}
	if cpu.X86.HasAVX512F {
		o.features = append(o.features, "AVX-512F")
	}
	if cpu.ARM64.HasASIMD {
		o.features = append(o.features, "NEON")
	}

	return o
}

// OptimalBatchWidth returns the SIMD alignment width, minimum 1. The
// batch controller rounds batch sizes to multiples of this.
func (o *Oracle) OptimalBatchWidth() int {
	return o.width
}

// OptimalBatchCount returns the default initial batch size: enough
// lanes to keep wide SIMD units busy, or a plain default without them.
func (o *Oracle) OptimalBatchCount() int {
	if o.width > 1 {
		return o.width * 128
	}
	return defaultBatchCount
}

// Features returns a printable summary of the detected capabilities.
func (o *Oracle) Features() string {
	if len(o.features) == 0 {
		return "none"
	}
	return strings.Join(o.features, ", ")
}
