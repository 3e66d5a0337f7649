package hdc

import (
	"encoding/binary"
	"io"
	"math/bits"
)

// Binary is an immutable bit-packed hypervector of 64·Dims() bits.
// Bit i lives in word i/64 at position i%64.
type Binary struct {
	data []uint64
}

// Dims returns the number of 64-bit words.
func (v Binary) Dims() int { return len(v.data) }

// Bits returns the number of bits, 64·Dims().
func (v Binary) Bits() int { return len(v.data) * 64 }

// Words returns a copy of the packed words.
func (v Binary) Words() []uint64 {
	out := make([]uint64, len(v.data))
	copy(out, v.data)
	return out
}

// Bit reports whether bit i is set.
func (v Binary) Bit(i int) bool { return v.data[i/64]>>uint(i%64)&1 == 1 }

// Hamming returns the number of differing bits.
func (v Binary) Hamming(other Binary) int {
	requireSameDims(len(v.data), len(other.data))
	var diff int
	for i := range v.data {
		diff += bits.OnesCount64(v.data[i] ^ other.data[i])
	}
	return diff
}

// Distance returns the normalized Hamming distance in [0, 1].
// 0 = identical, ~0.5 = unrelated random vectors, 1 = complement.
func (v Binary) Distance(other Binary) float64 {
	return float64(v.Hamming(other)) / float64(v.Bits())
}

// Bind associates two vectors via XOR. The operation is its own inverse:
// a.Bind(b).Bind(b) == a.
func (v Binary) Bind(other Binary) Binary {
	requireSameDims(len(v.data), len(other.data))
	out := make([]uint64, len(v.data))
	for i := range out {
		out[i] = v.data[i] ^ other.data[i]
	}
	return Binary{data: out}
}

// Unbind is XOR, identical to Bind.
func (v Binary) Unbind(other Binary) Binary { return v.Bind(other) }

// Permute rotates the word array: result.word[i] = v.word[(i+k) mod Dims()].
// Rotation is by whole words, not by bits.
func (v Binary) Permute(k int) Binary {
	n := len(v.data)
	k = rotateIndex(k, n)
	out := make([]uint64, n)
	copy(out, v.data[k:])
	copy(out[n-k:], v.data[:k])
	return Binary{data: out}
}

// Unpermute undoes Permute(k).
func (v Binary) Unpermute(k int) Binary { return v.Permute(-k) }

// PBind computes v.Permute(pa).Bind(other.Permute(pb)) in a single pass.
func (v Binary) PBind(pa int, other Binary, pb int) Binary {
	requireSameDims(len(v.data), len(other.data))
	n := len(v.data)
	pa, pb = rotateIndex(pa, n), rotateIndex(pb, n)
	out := make([]uint64, n)
	for i := range out {
		out[i] = v.data[(i+pa)%n] ^ other.data[(i+pb)%n]
	}
	return Binary{data: out}
}

// PUnbind computes v.Unbind(other.Permute(pb)).Unpermute(pa) in a single pass.
func (v Binary) PUnbind(pa int, other Binary, pb int) Binary {
	requireSameDims(len(v.data), len(other.data))
	n := len(v.data)
	pa, pb = rotateIndex(pa, n), rotateIndex(pb, n)
	out := make([]uint64, n)
	for j := range out {
		i := (j - pa + n) % n
		out[j] = v.data[i] ^ other.data[(i+pb)%n]
	}
	return Binary{data: out}
}

func (v Binary) Equal(other Binary) bool {
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

// Unpack returns one 0/1 value per bit.
func (v Binary) Unpack() []float64 {
	out := make([]float64, v.Bits())
	for w, word := range v.data {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			out[w*64+b] = 1
			word &= word - 1
		}
	}
	return out
}

// WriteTo writes the packed words in native byte order.
func (v Binary) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 8*len(v.data))
	for i, word := range v.data {
		binary.NativeEndian.PutUint64(buf[8*i:], word)
	}
	return writeRecord(w, buf)
}

// BinarySpace creates Binary vectors of a fixed number of words.
type BinarySpace struct {
	words int
	tie   RandomSource
}

// NewBinarySpace returns a space of words·64-bit vectors.
// Panics if words is not positive.
func NewBinarySpace(words int, opts ...Option) *BinarySpace {
	requirePositiveDims(words)
	o := applyOptions(opts)
	return &BinarySpace{words: words, tie: o.tie}
}

func (s *BinarySpace) Dims() int { return s.words }

// Zero returns the all-zero vector.
func (s *BinarySpace) Zero() Binary { return Binary{data: make([]uint64, s.words)} }

// Ident returns the XOR identity, the all-zero vector.
func (s *BinarySpace) Ident() Binary { return s.Zero() }

// Random fills every word from src.
func (s *BinarySpace) Random(src RandomSource) Binary {
	out := make([]uint64, s.words)
	for i := range out {
		out[i] = src.Uint64()
	}
	return Binary{data: out}
}

// FromWords constructs a vector from raw words. len(words) must equal Dims().
func (s *BinarySpace) FromWords(words []uint64) Binary {
	if len(words) != s.words {
		panic("hdc: data length does not match dims")
	}
	out := make([]uint64, s.words)
	copy(out, words)
	return Binary{data: out}
}

// FromSlice sets bit i when values[i] > 0. Missing bits are zero.
func (s *BinarySpace) FromSlice(values []float64) (Binary, error) {
	if len(values) > s.words*64 {
		return Binary{}, sliceTooLong(len(values), s.words*64)
	}
	v := s.Zero()
	for i, x := range values {
		if x > 0 {
			v.data[i/64] |= 1 << uint(i%64)
		}
	}
	return v, nil
}

// Bundle returns the majority-vote superposition of vs.
// Exact ties are broken with the space's tie-break source.
func (s *BinarySpace) Bundle(vs ...Binary) Binary {
	if len(vs) == 0 {
		panic("hdc: Bundle requires at least one vector")
	}
	acc := s.newAccumulator()
	for _, v := range vs {
		acc.Add(v, 1)
	}
	return acc.Finalize()
}

func (s *BinarySpace) NewAccumulator() Accumulator[Binary] { return s.newAccumulator() }

func (s *BinarySpace) newAccumulator() *BinaryAccumulator {
	return &BinaryAccumulator{ones: make([]float64, s.words*64), tie: s.tie}
}

// Read reads Dims() native-endian words.
func (s *BinarySpace) Read(r io.Reader) (Binary, error) {
	buf, err := readRecord(r, 8*s.words)
	if err != nil {
		return Binary{}, err
	}
	out := make([]uint64, s.words)
	for i := range out {
		out[i] = binary.NativeEndian.Uint64(buf[8*i:])
	}
	return Binary{data: out}, nil
}

// BinaryAccumulator keeps a weighted vote count for every bit.
type BinaryAccumulator struct {
	ones  []float64 // weighted votes for 1, per bit
	total float64
	tie   RandomSource
}

func (a *BinaryAccumulator) Add(v Binary, weight float64) {
	requireSameDims(len(a.ones), v.Bits())
	requireWeight(weight)
	if weight == 0 {
		return
	}
	for w, word := range v.data {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			a.ones[w*64+b] += weight
			word &= word - 1
		}
	}
	a.total += weight
}

// Finalize sets each bit whose votes for 1 strictly exceed its votes for 0.
// Ties draw a random bit, in ascending bit order.
func (a *BinaryAccumulator) Finalize() Binary {
	out := make([]uint64, len(a.ones)/64)
	ties := bitStream{src: a.tie}
	for i, one := range a.ones {
		// 2·one vs total is exact, unlike one vs total-one.
		twice := 2 * one
		if twice > a.total || (twice == a.total && ties.next()) {
			out[i/64] |= 1 << uint(i%64)
		}
	}
	return Binary{data: out}
}

func (a *BinaryAccumulator) Weight() float64 { return a.total }

func (a *BinaryAccumulator) Reset() {
	clear(a.ones)
	a.total = 0
}
