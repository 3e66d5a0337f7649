// Package hdc implements a Hyperdimensional Computing algebra over four
// interchangeable vector representations: bit-packed binary, bipolar (±1),
// real-valued and complex-valued. Every representation implements the same
// operator contract (random generation, bind, unbind, permute, bundle,
// distance) with its own arithmetic.
//
// Vectors are immutable: every operator returns a fresh value. A Space fixes
// the dimension of a representation and acts as its factory:
//
//	space := hdc.NewBipolarSpace(10000)
//	src := hdc.NewSource(42)
//	role, filler := space.Random(src), space.Random(src)
//	pair := role.Bind(filler)
//	pair.Unbind(role).Distance(filler) // 0
//
// Mixing vectors of different dimensions is a programming error and panics.
package hdc

import (
	"io"
	"math"
)

// HyperVector is the operator set shared by every representation.
// T is the concrete vector type itself.
type HyperVector[T any] interface {
	// Dims returns the number of components (64-bit words for Binary).
	Dims() int

	// Distance is symmetric and 0 for identical non-zero vectors. A zero
	// vector (an empty Real or Complex Finalize) is at distance 1 from
	// everything, itself included.
	Distance(other T) float64

	// Bind combines two vectors into one dissimilar to both.
	Bind(other T) T

	// Unbind is the (approximate) inverse of Bind:
	// a.Bind(b).Unbind(b) ≈ a.
	Unbind(other T) T

	// Permute cyclically rotates components: out[i] = v[(i+k) mod N].
	Permute(k int) T

	// Unpermute exactly undoes Permute(k).
	Unpermute(k int) T

	// PBind binds Permute(pa) of the receiver with Permute(pb) of other.
	PBind(pa int, other T, pb int) T

	// PUnbind undoes PBind: v.PBind(pa, b, pb).PUnbind(pa, b, pb) ≈ v.
	PUnbind(pa int, other T, pb int) T

	// Equal reports exact component-wise equality.
	Equal(other T) bool

	// Unpack exports the vector losslessly as a flat float slice.
	Unpack() []float64

	// WriteTo writes the fixed-layout binary record of the vector.
	WriteTo(w io.Writer) (int64, error)
}

// Accumulator aggregates weighted vectors incrementally.
// Finalize never mutates the accumulator and may be interleaved with Add.
type Accumulator[T any] interface {
	// Add folds v into the aggregate with the given weight.
	// A zero weight is a no-op; a negative, NaN or infinite weight panics.
	Add(v T, weight float64)

	// Finalize returns the bundled vector for the current totals.
	Finalize() T

	// Weight returns the running total weight.
	Weight() float64

	// Reset clears the aggregate.
	Reset()
}

// Space is the factory for one representation at a fixed dimension.
type Space[T HyperVector[T]] interface {
	Dims() int

	// Random draws a vector from the representation's canonical distribution.
	Random(src RandomSource) T

	// Ident returns the binding identity.
	Ident() T

	// FromSlice builds a vector from caller-supplied values, coerced into the
	// representation's domain and padded to the dimension.
	FromSlice(values []float64) (T, error)

	// Bundle returns the majority/superposition of vs. Panics if vs is empty.
	Bundle(vs ...T) T

	NewAccumulator() Accumulator[T]

	// Read reads one fixed-layout record written by WriteTo.
	Read(r io.Reader) (T, error)
}

// BundleWeighted aggregates vs with per-vector weights through a fresh accumulator.
func BundleWeighted[T HyperVector[T]](space Space[T], vs []T, weights []float64) T {
	if len(vs) != len(weights) {
		panic("hdc: BundleWeighted needs one weight per vector")
	}
	acc := space.NewAccumulator()
	for i, v := range vs {
		acc.Add(v, weights[i])
	}
	return acc.Finalize()
}

// Nearest returns the index of the candidate closest to query and its distance.
// Returns (-1, +Inf) when candidates is empty.
func Nearest[T HyperVector[T]](query T, candidates []T) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i, c := range candidates {
		if d := query.Distance(c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// MustFromSlice is like Space.FromSlice but panics on error.
// Intended for tests and literal fixtures.
func MustFromSlice[T HyperVector[T]](space Space[T], values ...float64) T {
	v, err := space.FromSlice(values)
	if err != nil {
		panic(err)
	}
	return v
}

func requireSameDims(a, b int) {
	if a != b {
		panic("hdc: dimension mismatch")
	}
}

func requireWeight(w float64) {
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 1) {
		panic("hdc: accumulator weight must be finite and non-negative")
	}
}

func requirePositiveDims(n int) {
	if n <= 0 {
		panic("hdc: dims must be positive")
	}
}

// rotateIndex maps k onto [0, n) so negative shifts rotate the other way.
func rotateIndex(k, n int) int {
	k %= n
	if k < 0 {
		k += n
	}
	return k
}
