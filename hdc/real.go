package hdc

import (
	"encoding/binary"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Real is an immutable real-valued hypervector bound by circular convolution.
type Real struct {
	data    []float64
	planner *Planner
}

func (v Real) Dims() int { return len(v.data) }

// At returns component i.
func (v Real) At(i int) float64 { return v.data[i] }

// Norm returns the Euclidean norm.
func (v Real) Norm() float64 { return floats.Norm(v.data, 2) }

// Dot returns the inner product.
func (v Real) Dot(other Real) float64 {
	requireSameDims(len(v.data), len(other.data))
	return floats.Dot(v.data, other.data)
}

// Distance returns 1 - cosine similarity, in [0, 2].
// A zero vector is treated as orthogonal to everything, itself included,
// so the empty Finalize of an accumulator is at distance 1 from itself.
func (v Real) Distance(other Real) float64 {
	dot := v.Dot(other)
	mag := v.Norm() * other.Norm()
	if mag == 0 {
		return 1
	}
	return 1 - dot/mag
}

// Bind returns the circular convolution of v and other.
func (v Real) Bind(other Real) Real {
	requireSameDims(len(v.data), len(other.data))
	p := v.plannerOr(other)
	return Real{data: p.convolveReal(v.data, other.data), planner: p}
}

// Unbind binds with the approximate inverse of other. The result carries
// convolution noise; it is close to, not equal to, the original operand.
func (v Real) Unbind(other Real) Real { return v.Bind(other.ApproxInverse()) }

// ApproxInverse keeps component 0 and reverses the rest: out[i] = v[N-i].
func (v Real) ApproxInverse() Real {
	n := len(v.data)
	out := make([]float64, n)
	out[0] = v.data[0]
	for i := 1; i < n; i++ {
		out[i] = v.data[n-i]
	}
	return Real{data: out, planner: v.planner}
}

func (v Real) Permute(k int) Real {
	n := len(v.data)
	k = rotateIndex(k, n)
	out := make([]float64, n)
	copy(out, v.data[k:])
	copy(out[n-k:], v.data[:k])
	return Real{data: out, planner: v.planner}
}

func (v Real) Unpermute(k int) Real { return v.Permute(-k) }

func (v Real) PBind(pa int, other Real, pb int) Real {
	return v.Permute(pa).Bind(other.Permute(pb))
}

func (v Real) PUnbind(pa int, other Real, pb int) Real {
	return v.Unbind(other.Permute(pb)).Unpermute(pa)
}

func (v Real) Equal(other Real) bool {
	return len(v.data) == len(other.data) && floats.Equal(v.data, other.data)
}

// EqualApprox reports whether every component differs by at most tol.
func (v Real) EqualApprox(other Real, tol float64) bool {
	return len(v.data) == len(other.data) && floats.EqualApprox(v.data, other.data, tol)
}

// Normalize returns a unit-norm copy of v. A zero vector is returned unchanged.
func (v Real) Normalize() Real {
	out := make([]float64, len(v.data))
	copy(out, v.data)
	if norm := floats.Norm(out, 2); norm > 0 {
		floats.Scale(1/norm, out)
	}
	return Real{data: out, planner: v.planner}
}

func (v Real) Unpack() []float64 {
	out := make([]float64, len(v.data))
	copy(out, v.data)
	return out
}

// WriteTo writes each component as a native-endian float64.
func (v Real) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 8*len(v.data))
	for i, x := range v.data {
		binary.NativeEndian.PutUint64(buf[8*i:], math.Float64bits(x))
	}
	return writeRecord(w, buf)
}

func (v Real) plannerOr(other Real) *Planner {
	switch {
	case v.planner != nil:
		return v.planner
	case other.planner != nil:
		return other.planner
	default:
		return NewPlanner()
	}
}

// RealSpace creates Real vectors of a fixed dimension.
type RealSpace struct {
	dims    int
	planner *Planner
}

// NewRealSpace panics if dims is not positive.
func NewRealSpace(dims int, opts ...Option) *RealSpace {
	requirePositiveDims(dims)
	o := applyOptions(opts)
	return &RealSpace{dims: dims, planner: o.planner}
}

func (s *RealSpace) Dims() int { return s.dims }

// Planner returns the spectral planner shared by this space's vectors.
func (s *RealSpace) Planner() *Planner { return s.planner }

// Zero returns the all-zero vector.
func (s *RealSpace) Zero() Real { return Real{data: make([]float64, s.dims), planner: s.planner} }

// Ident returns the unit impulse, the identity of circular convolution.
func (s *RealSpace) Ident() Real {
	v := s.Zero()
	v.data[0] = 1
	return v
}

// Random draws components from Normal(0, 1/√N), so E[‖v‖²] = 1.
func (s *RealSpace) Random(src RandomSource) Real {
	normal := distuv.Normal{Mu: 0, Sigma: 1 / math.Sqrt(float64(s.dims)), Src: src}
	v := s.Zero()
	for i := range v.data {
		v.data[i] = normal.Rand()
	}
	return v
}

// FromSlice copies values and pads with zeros.
func (s *RealSpace) FromSlice(values []float64) (Real, error) {
	if len(values) > s.dims {
		return Real{}, sliceTooLong(len(values), s.dims)
	}
	v := s.Zero()
	copy(v.data, values)
	return v, nil
}

// Bundle sums vs and rescales by 1/√len(vs) so the expected squared norm
// stays near 1.
func (s *RealSpace) Bundle(vs ...Real) Real {
	if len(vs) == 0 {
		panic("hdc: Bundle requires at least one vector")
	}
	out := s.Zero()
	for _, v := range vs {
		requireSameDims(s.dims, len(v.data))
		floats.Add(out.data, v.data)
	}
	floats.Scale(1/math.Sqrt(float64(len(vs))), out.data)
	return out
}

func (s *RealSpace) NewAccumulator() Accumulator[Real] {
	return &RealAccumulator{sum: make([]float64, s.dims), planner: s.planner}
}

// Read reads Dims() native-endian float64 values.
func (s *RealSpace) Read(r io.Reader) (Real, error) {
	buf, err := readRecord(r, 8*s.dims)
	if err != nil {
		return Real{}, err
	}
	v := s.Zero()
	for i := range v.data {
		v.data[i] = math.Float64frombits(binary.NativeEndian.Uint64(buf[8*i:]))
	}
	return v, nil
}

// RealAccumulator keeps a weighted running sum.
type RealAccumulator struct {
	sum     []float64
	total   float64
	planner *Planner
}

func (a *RealAccumulator) Add(v Real, weight float64) {
	requireSameDims(len(a.sum), len(v.data))
	requireWeight(weight)
	if weight == 0 {
		return
	}
	floats.AddScaled(a.sum, weight, v.data)
	a.total += weight
}

// Finalize returns sum/√(total weight), or the zero vector if nothing was added.
func (a *RealAccumulator) Finalize() Real {
	out := make([]float64, len(a.sum))
	if a.total > 0 {
		floats.ScaleTo(out, 1/math.Sqrt(a.total), a.sum)
	}
	return Real{data: out, planner: a.planner}
}

func (a *RealAccumulator) Weight() float64 { return a.total }

func (a *RealAccumulator) Reset() {
	clear(a.sum)
	a.total = 0
}
