package hdc

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Projector maps dense feature vectors (embeddings, measurements) into a
// Space by random projection.
//
// Output component i is the dot product of the input with a random unit
// hyperplane, passed through the space's FromSlice coercion: a sign bit for
// Binary and Bipolar (random hyperplane LSH), the raw projection for Real,
// and interleaved (re, im) pairs for Complex. Nearby inputs map to nearby
// hypervectors. A Projector is immutable and safe for concurrent use.
type Projector[T HyperVector[T]] struct {
	space  Space[T]
	inDims int
	planes [][]float64 // one unit hyperplane per output value
}

// NewProjector creates a Projector from inDims-dimensional inputs into space,
// drawing its hyperplanes from src.
// Panics if inDims is not positive.
func NewProjector[T HyperVector[T]](space Space[T], inDims int, src RandomSource) *Projector[T] {
	if inDims <= 0 {
		panic("hdc: projector input dims must be positive")
	}
	outDims := len(space.Ident().Unpack())
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	planes := make([][]float64, outDims)
	for i := range planes {
		plane := make([]float64, inDims)
		for j := range plane {
			plane[j] = normal.Rand()
		}
		if norm := floats.Norm(plane, 2); norm > 0 {
			floats.Scale(1/norm, plane)
		}
		planes[i] = plane
	}
	return &Projector[T]{space: space, inDims: inDims, planes: planes}
}

// InDims returns the expected input length.
func (p *Projector[T]) InDims() int { return p.inDims }

// Project maps x into the space.
// Panics if len(x) does not match InDims.
func (p *Projector[T]) Project(x []float64) T {
	if len(x) != p.inDims {
		panic("hdc: projector input length does not match dims")
	}
	values := make([]float64, len(p.planes))
	for i, plane := range p.planes {
		values[i] = floats.Dot(x, plane)
	}
	return MustFromSlice(p.space, values...)
}
