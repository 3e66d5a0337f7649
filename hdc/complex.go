package hdc

import (
	"encoding/binary"
	"io"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/stat/distuv"
)

// Complex is an immutable complex-valued hypervector bound by circular
// convolution, compared with the Hermitian inner product.
type Complex struct {
	data    []complex128
	planner *Planner
}

func (v Complex) Dims() int { return len(v.data) }

// At returns component i.
func (v Complex) At(i int) complex128 { return v.data[i] }

// Norm returns the Euclidean norm √Σ|z|².
func (v Complex) Norm() float64 { return cmplxs.Norm(v.data, 2) }

// Hermitian returns Σ v[i]·conj(other[i]).
func (v Complex) Hermitian(other Complex) complex128 {
	requireSameDims(len(v.data), len(other.data))
	// cmplxs.Dot conjugates its first argument.
	return cmplx.Conj(cmplxs.Dot(v.data, other.data))
}

// Distance returns 1 - Re(Hermitian cosine similarity), in [0, 2].
// A zero vector is treated as orthogonal to everything, itself included,
// so the empty Finalize of an accumulator is at distance 1 from itself.
func (v Complex) Distance(other Complex) float64 {
	dot := v.Hermitian(other)
	mag := v.Norm() * other.Norm()
	if mag == 0 {
		return 1
	}
	return 1 - real(dot)/mag
}

// Bind returns the circular convolution of v and other.
func (v Complex) Bind(other Complex) Complex {
	requireSameDims(len(v.data), len(other.data))
	p := v.plannerOr(other)
	return Complex{data: p.convolveComplex(v.data, other.data), planner: p}
}

// Unbind binds with the Hermitian approximate inverse of other.
func (v Complex) Unbind(other Complex) Complex { return v.Bind(other.ApproxInverse()) }

// ApproxInverse conjugates and reverses all but component 0:
// out[0] = conj(v[0]), out[i] = conj(v[N-i]).
func (v Complex) ApproxInverse() Complex {
	n := len(v.data)
	out := make([]complex128, n)
	out[0] = cmplx.Conj(v.data[0])
	for i := 1; i < n; i++ {
		out[i] = cmplx.Conj(v.data[n-i])
	}
	return Complex{data: out, planner: v.planner}
}

func (v Complex) Permute(k int) Complex {
	n := len(v.data)
	k = rotateIndex(k, n)
	out := make([]complex128, n)
	copy(out, v.data[k:])
	copy(out[n-k:], v.data[:k])
	return Complex{data: out, planner: v.planner}
}

func (v Complex) Unpermute(k int) Complex { return v.Permute(-k) }

func (v Complex) PBind(pa int, other Complex, pb int) Complex {
	return v.Permute(pa).Bind(other.Permute(pb))
}

func (v Complex) PUnbind(pa int, other Complex, pb int) Complex {
	return v.Unbind(other.Permute(pb)).Unpermute(pa)
}

func (v Complex) Equal(other Complex) bool {
	return len(v.data) == len(other.data) && cmplxs.Equal(v.data, other.data)
}

// EqualApprox reports whether every component differs by at most tol in modulus.
func (v Complex) EqualApprox(other Complex, tol float64) bool {
	if len(v.data) != len(other.data) {
		return false
	}
	for i := range v.data {
		if cmplx.Abs(v.data[i]-other.data[i]) > tol {
			return false
		}
	}
	return true
}

// Normalize returns a unit-norm copy of v. A zero vector is returned unchanged.
func (v Complex) Normalize() Complex {
	out := make([]complex128, len(v.data))
	copy(out, v.data)
	if norm := cmplxs.Norm(out, 2); norm > 0 {
		cmplxs.Scale(complex(1/norm, 0), out)
	}
	return Complex{data: out, planner: v.planner}
}

// Unpack returns interleaved (re, im) pairs.
func (v Complex) Unpack() []float64 {
	out := make([]float64, 0, 2*len(v.data))
	for _, z := range v.data {
		out = append(out, real(z), imag(z))
	}
	return out
}

// WriteTo writes each component as two native-endian float64 values, re then im.
func (v Complex) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 16*len(v.data))
	for i, z := range v.data {
		binary.NativeEndian.PutUint64(buf[16*i:], math.Float64bits(real(z)))
		binary.NativeEndian.PutUint64(buf[16*i+8:], math.Float64bits(imag(z)))
	}
	return writeRecord(w, buf)
}

func (v Complex) plannerOr(other Complex) *Planner {
	switch {
	case v.planner != nil:
		return v.planner
	case other.planner != nil:
		return other.planner
	default:
		return NewPlanner()
	}
}

// ComplexSpace creates Complex vectors of a fixed dimension.
type ComplexSpace struct {
	dims    int
	planner *Planner
}

// NewComplexSpace panics if dims is not positive.
func NewComplexSpace(dims int, opts ...Option) *ComplexSpace {
	requirePositiveDims(dims)
	o := applyOptions(opts)
	return &ComplexSpace{dims: dims, planner: o.planner}
}

func (s *ComplexSpace) Dims() int { return s.dims }

// Planner returns the spectral planner shared by this space's vectors.
func (s *ComplexSpace) Planner() *Planner { return s.planner }

// Zero returns the all-zero vector.
func (s *ComplexSpace) Zero() Complex {
	return Complex{data: make([]complex128, s.dims), planner: s.planner}
}

// Ident returns the unit impulse, the identity of circular convolution.
func (s *ComplexSpace) Ident() Complex {
	v := s.Zero()
	v.data[0] = 1
	return v
}

// Random draws real and imaginary parts from Normal(0, 1/√(2N)),
// so E[‖v‖²] = 1.
func (s *ComplexSpace) Random(src RandomSource) Complex {
	normal := distuv.Normal{Mu: 0, Sigma: 1 / math.Sqrt(2*float64(s.dims)), Src: src}
	v := s.Zero()
	for i := range v.data {
		re := normal.Rand()
		im := normal.Rand()
		v.data[i] = complex(re, im)
	}
	return v
}

// FromSlice reads interleaved (re, im) pairs, matching Unpack, and pads
// with zeros. At most 2·Dims() values are accepted.
func (s *ComplexSpace) FromSlice(values []float64) (Complex, error) {
	if len(values) > 2*s.dims {
		return Complex{}, sliceTooLong(len(values), 2*s.dims)
	}
	v := s.Zero()
	for i := 0; i < len(values); i += 2 {
		re, im := values[i], 0.0
		if i+1 < len(values) {
			im = values[i+1]
		}
		v.data[i/2] = complex(re, im)
	}
	return v, nil
}

// FromComplex copies values and pads with zeros.
func (s *ComplexSpace) FromComplex(values []complex128) (Complex, error) {
	if len(values) > s.dims {
		return Complex{}, sliceTooLong(len(values), s.dims)
	}
	v := s.Zero()
	copy(v.data, values)
	return v, nil
}

// Bundle sums vs and rescales by 1/√len(vs).
func (s *ComplexSpace) Bundle(vs ...Complex) Complex {
	if len(vs) == 0 {
		panic("hdc: Bundle requires at least one vector")
	}
	out := s.Zero()
	for _, v := range vs {
		requireSameDims(s.dims, len(v.data))
		cmplxs.Add(out.data, v.data)
	}
	cmplxs.Scale(complex(1/math.Sqrt(float64(len(vs))), 0), out.data)
	return out
}

func (s *ComplexSpace) NewAccumulator() Accumulator[Complex] {
	return &ComplexAccumulator{sum: make([]complex128, s.dims), planner: s.planner}
}

// Read reads Dims() pairs of native-endian float64 values.
func (s *ComplexSpace) Read(r io.Reader) (Complex, error) {
	buf, err := readRecord(r, 16*s.dims)
	if err != nil {
		return Complex{}, err
	}
	v := s.Zero()
	for i := range v.data {
		re := math.Float64frombits(binary.NativeEndian.Uint64(buf[16*i:]))
		im := math.Float64frombits(binary.NativeEndian.Uint64(buf[16*i+8:]))
		v.data[i] = complex(re, im)
	}
	return v, nil
}

// ComplexAccumulator keeps a weighted running sum.
type ComplexAccumulator struct {
	sum     []complex128
	total   float64
	planner *Planner
}

func (a *ComplexAccumulator) Add(v Complex, weight float64) {
	requireSameDims(len(a.sum), len(v.data))
	requireWeight(weight)
	if weight == 0 {
		return
	}
	cmplxs.AddScaled(a.sum, complex(weight, 0), v.data)
	a.total += weight
}

// Finalize returns sum/√(total weight), or the zero vector if nothing was added.
func (a *ComplexAccumulator) Finalize() Complex {
	out := make([]complex128, len(a.sum))
	if a.total > 0 {
		copy(out, a.sum)
		cmplxs.Scale(complex(1/math.Sqrt(a.total), 0), out)
	}
	return Complex{data: out, planner: a.planner}
}

func (a *ComplexAccumulator) Weight() float64 { return a.total }

func (a *ComplexAccumulator) Reset() {
	clear(a.sum)
	a.total = 0
}
