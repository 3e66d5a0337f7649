package hdc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Amansingh-afk/hypervector/hdc"
)

const (
	words = 160  // binary vectors of 10240 bits
	dims  = 4096 // bipolar / real / complex components
	seed  = 42
)

func newSource() hdc.RandomSource { return hdc.NewSource(seed) }

// assertNearHalf checks a normalized Hamming distance looks quasi-orthogonal.
func assertNearHalf(t *testing.T, label string, d float64) {
	t.Helper()
	require.InDeltaf(t, 0.5, d, 0.05, "%s: expected distance ~0.5 (quasi-orthogonal), got %.4f", label, d)
}

// assertNearOne checks a cosine distance looks quasi-orthogonal.
func assertNearOne(t *testing.T, label string, d float64) {
	t.Helper()
	require.InDeltaf(t, 1.0, d, 0.1, "%s: expected distance ~1.0 (quasi-orthogonal), got %.4f", label, d)
}

func randoms[T hdc.HyperVector[T]](space hdc.Space[T], src hdc.RandomSource, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = space.Random(src)
	}
	return out
}
