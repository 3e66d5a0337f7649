package hdc

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// Encoder converts a string to a hypervector.
type Encoder[T any] interface {
	Encode(text string) T
}

// Config holds parameters for an NGramEncoder.
type Config struct {
	NGramSize        int    // sliding window width in runes (default 3)
	StripPunctuation bool   // remove punctuation during normalization
	Seed             uint64 // namespace seed; same seed → same symbol table
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() Config {
	return Config{NGramSize: 3}
}

// NGramEncoder encodes text as the bundle of its character n-grams.
// Each n-gram window c0 c1 … cn-1 is encoded as
//
//	πⁿ⁻¹(c0) ⊛ πⁿ⁻²(c1) ⊛ … ⊛ cn-1
//
// where π is a fixed random shuffle of the unpacked components drawn from
// the encoder seed. Cyclic rotation commutes with circular convolution, so it
// cannot mark position for Real and Complex; a random shuffle does, and "hel"
// and "lhe" encode differently in every representation.
// It is safe for concurrent use.
type NGramEncoder[T HyperVector[T]] struct {
	cfg   Config
	space Space[T]
	sym   symbolTable[T]
}

// NewNGramEncoder creates an NGramEncoder over space.
// Panics if cfg.NGramSize is not positive.
func NewNGramEncoder[T HyperVector[T]](space Space[T], cfg Config) *NGramEncoder[T] {
	if cfg.NGramSize <= 0 {
		panic("hdc: Config.NGramSize must be positive")
	}
	n := len(space.Ident().Unpack())
	shuffle := rand.New(NewSource(cfg.Seed ^ shuffleSalt)).Perm(n)
	return &NGramEncoder[T]{
		cfg:   cfg,
		space: space,
		sym: symbolTable[T]{
			space:   space,
			seed:    cfg.Seed,
			shuffle: shuffle,
			table:   make(map[symbolKey]T),
		},
	}
}

// shuffleSalt separates the position shuffle's stream from the symbol streams.
const shuffleSalt = 0x9e3779b97f4a7c15

// Symbol returns the atomic vector assigned to r.
func (e *NGramEncoder[T]) Symbol(r rune) T { return e.sym.at(r, 0) }

// Encode returns a hypervector representing text.
// Text with no encodable runes returns the space's identity vector.
func (e *NGramEncoder[T]) Encode(text string) T {
	acc := e.space.NewAccumulator()
	if e.EncodeInto(acc, text, 1) == 0 {
		return e.space.Ident()
	}
	return acc.Finalize()
}

// EncodeInto streams every n-gram of text into acc with the given weight and
// returns the number of vectors added. Feeding many texts into one
// accumulator builds a prototype for all of them.
func (e *NGramEncoder[T]) EncodeInto(acc Accumulator[T], text string, weight float64) int {
	var added int
	// Lowercase before splitting so sentence delimiters are reliably detected.
	for _, s := range splitSentences(strings.ToLower(text)) {
		s = normalizeSegment(s, e.cfg.StripPunctuation)
		if s == "" {
			continue
		}
		added += e.encodeRunes(acc, []rune(s), weight)
	}
	return added
}

// encodeRunes adds each sliding n-gram window of runes to acc.
// Falls back to per-rune symbols when len(runes) < NGramSize.
func (e *NGramEncoder[T]) encodeRunes(acc Accumulator[T], runes []rune, weight float64) int {
	n := e.cfg.NGramSize
	if len(runes) < n {
		for _, r := range runes {
			acc.Add(e.sym.at(r, 0), weight)
		}
		return len(runes)
	}

	count := len(runes) - n + 1
	for i := 0; i < count; i++ {
		acc.Add(e.encodeWindow(runes[i:i+n]), weight)
	}
	return count
}

// encodeWindow binds each rune's symbol shuffled by its distance from the
// end of the window.
func (e *NGramEncoder[T]) encodeWindow(runes []rune) T {
	last := len(runes) - 1
	ngram := e.sym.at(runes[0], last)
	for i := 1; i <= last; i++ {
		ngram = ngram.Bind(e.sym.at(runes[i], last-i))
	}
	return ngram
}

type symbolKey struct {
	r   rune
	pos int
}

// symbolTable is a thread-safe lazy map from (rune, position) to a
// deterministic random vector. Position k is position 0 shuffled k times.
type symbolTable[T HyperVector[T]] struct {
	mu      sync.RWMutex
	space   Space[T]
	seed    uint64
	shuffle []int // out[i] = in[shuffle[i]] over Unpack components
	table   map[symbolKey]T
}

func (t *symbolTable[T]) at(r rune, pos int) T {
	t.mu.RLock()
	v, ok := t.table[symbolKey{r, pos}]
	t.mu.RUnlock()
	if ok {
		return v
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.atLocked(r, pos)
}

func (t *symbolTable[T]) atLocked(r rune, pos int) T {
	key := symbolKey{r, pos}
	if v, ok := t.table[key]; ok {
		return v
	}
	var v T
	if pos == 0 {
		// Knuth multiplicative hash mixed with the encoder seed for namespace isolation.
		v = t.space.Random(NewSource(t.seed ^ uint64(r)*2654435761 + 1))
	} else {
		v = t.shuffled(t.atLocked(r, pos-1))
	}
	t.table[key] = v
	return v
}

func (t *symbolTable[T]) shuffled(v T) T {
	in := v.Unpack()
	out := make([]float64, len(in))
	for i, j := range t.shuffle {
		out[i] = in[j]
	}
	return MustFromSlice(t.space, out...)
}
