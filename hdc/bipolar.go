package hdc

import "io"

// Bipolar is an immutable hypervector whose components are +1 or -1.
type Bipolar struct {
	data []int8
}

func (v Bipolar) Dims() int { return len(v.data) }

// At returns component i.
func (v Bipolar) At(i int) int8 { return v.data[i] }

// Dot returns the integer inner product.
func (v Bipolar) Dot(other Bipolar) int {
	requireSameDims(len(v.data), len(other.data))
	var dot int
	for i := range v.data {
		dot += int(v.data[i]) * int(other.data[i])
	}
	return dot
}

// Distance returns 1 - cosine similarity, in [0, 2].
// For ±1 vectors the cosine is dot/N.
func (v Bipolar) Distance(other Bipolar) float64 {
	return 1 - float64(v.Dot(other))/float64(len(v.data))
}

// Bind multiplies component-wise. Since components are ±1 it is self-inverse.
func (v Bipolar) Bind(other Bipolar) Bipolar {
	requireSameDims(len(v.data), len(other.data))
	out := make([]int8, len(v.data))
	for i := range out {
		out[i] = v.data[i] * other.data[i]
	}
	return Bipolar{data: out}
}

// Unbind is identical to Bind.
func (v Bipolar) Unbind(other Bipolar) Bipolar { return v.Bind(other) }

func (v Bipolar) Permute(k int) Bipolar {
	n := len(v.data)
	k = rotateIndex(k, n)
	out := make([]int8, n)
	copy(out, v.data[k:])
	copy(out[n-k:], v.data[:k])
	return Bipolar{data: out}
}

func (v Bipolar) Unpermute(k int) Bipolar { return v.Permute(-k) }

func (v Bipolar) PBind(pa int, other Bipolar, pb int) Bipolar {
	requireSameDims(len(v.data), len(other.data))
	n := len(v.data)
	pa, pb = rotateIndex(pa, n), rotateIndex(pb, n)
	out := make([]int8, n)
	for i := range out {
		out[i] = v.data[(i+pa)%n] * other.data[(i+pb)%n]
	}
	return Bipolar{data: out}
}

func (v Bipolar) PUnbind(pa int, other Bipolar, pb int) Bipolar {
	requireSameDims(len(v.data), len(other.data))
	n := len(v.data)
	pa, pb = rotateIndex(pa, n), rotateIndex(pb, n)
	out := make([]int8, n)
	for j := range out {
		i := (j - pa + n) % n
		out[j] = v.data[i] * other.data[(i+pb)%n]
	}
	return Bipolar{data: out}
}

func (v Bipolar) Equal(other Bipolar) bool {
	if len(v.data) != len(other.data) {
		return false
	}
	for i := range v.data {
		if v.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

func (v Bipolar) Unpack() []float64 {
	out := make([]float64, len(v.data))
	for i, x := range v.data {
		out[i] = float64(x)
	}
	return out
}

// WriteTo writes one signed byte per component.
func (v Bipolar) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, len(v.data))
	for i, x := range v.data {
		buf[i] = byte(x)
	}
	return writeRecord(w, buf)
}

// BipolarSpace creates Bipolar vectors of a fixed dimension.
type BipolarSpace struct {
	dims int
	tie  RandomSource
}

// NewBipolarSpace panics if dims is not positive.
func NewBipolarSpace(dims int, opts ...Option) *BipolarSpace {
	requirePositiveDims(dims)
	o := applyOptions(opts)
	return &BipolarSpace{dims: dims, tie: o.tie}
}

func (s *BipolarSpace) Dims() int { return s.dims }

// Ident returns the all +1 vector.
func (s *BipolarSpace) Ident() Bipolar {
	out := make([]int8, s.dims)
	for i := range out {
		out[i] = 1
	}
	return Bipolar{data: out}
}

// Random draws each component as an unbiased ±1.
func (s *BipolarSpace) Random(src RandomSource) Bipolar {
	out := make([]int8, s.dims)
	bs := bitStream{src: src}
	for i := range out {
		out[i] = sign(bs.next())
	}
	return Bipolar{data: out}
}

// FromSlice maps values >= 0 to +1 and negative values to -1.
// Missing components are +1.
func (s *BipolarSpace) FromSlice(values []float64) (Bipolar, error) {
	if len(values) > s.dims {
		return Bipolar{}, sliceTooLong(len(values), s.dims)
	}
	v := s.Ident()
	for i, x := range values {
		if x < 0 {
			v.data[i] = -1
		}
	}
	return v, nil
}

// Bundle returns the sign of the component-wise sum of vs.
// Zero sums are broken with the space's tie-break source.
func (s *BipolarSpace) Bundle(vs ...Bipolar) Bipolar {
	if len(vs) == 0 {
		panic("hdc: Bundle requires at least one vector")
	}
	acc := s.newAccumulator()
	for _, v := range vs {
		acc.Add(v, 1)
	}
	return acc.Finalize()
}

func (s *BipolarSpace) NewAccumulator() Accumulator[Bipolar] { return s.newAccumulator() }

func (s *BipolarSpace) newAccumulator() *BipolarAccumulator {
	return &BipolarAccumulator{sum: make([]float64, s.dims), tie: s.tie}
}

// Read reads Dims() signed bytes. Bytes other than ±1 yield ErrCorruptRecord.
func (s *BipolarSpace) Read(r io.Reader) (Bipolar, error) {
	buf, err := readRecord(r, s.dims)
	if err != nil {
		return Bipolar{}, err
	}
	out := make([]int8, s.dims)
	for i, b := range buf {
		x := int8(b)
		if x != 1 && x != -1 {
			return Bipolar{}, corruptRecord("bipolar component %d is %d", i, x)
		}
		out[i] = x
	}
	return Bipolar{data: out}, nil
}

// BipolarAccumulator keeps a weighted signed vote per component.
type BipolarAccumulator struct {
	sum   []float64
	total float64
	tie   RandomSource
}

func (a *BipolarAccumulator) Add(v Bipolar, weight float64) {
	requireSameDims(len(a.sum), len(v.data))
	requireWeight(weight)
	if weight == 0 {
		return
	}
	for i, x := range v.data {
		a.sum[i] += weight * float64(x)
	}
	a.total += weight
}

// Finalize takes the sign of each sum; zero sums draw a random sign in
// ascending component order.
func (a *BipolarAccumulator) Finalize() Bipolar {
	out := make([]int8, len(a.sum))
	ties := bitStream{src: a.tie}
	for i, s := range a.sum {
		switch {
		case s > 0:
			out[i] = 1
		case s < 0:
			out[i] = -1
		default:
			out[i] = sign(ties.next())
		}
	}
	return Bipolar{data: out}
}

func (a *BipolarAccumulator) Weight() float64 { return a.total }

func (a *BipolarAccumulator) Reset() {
	clear(a.sum)
	a.total = 0
}

func sign(positive bool) int8 {
	if positive {
		return 1
	}
	return -1
}
