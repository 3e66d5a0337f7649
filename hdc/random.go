package hdc

import (
	"math/rand/v2"
	"sync"
)

// RandomSource is the injectable bit generator consumed by Space.Random.
// Any math/rand/v2 Source satisfies it.
type RandomSource = rand.Source

// NewSource returns a deterministic source for the given seed.
// The same seed always yields the same sequence of vectors.
func NewSource(seed uint64) RandomSource {
	// Knuth multiplicative hash spreads small seeds over the second PCG word.
	return rand.NewPCG(seed, seed*2654435761+1)
}

// globalSource draws from the process-wide math/rand/v2 generator, which is
// safe for concurrent use and seeded non-deterministically.
type globalSource struct{}

func (globalSource) Uint64() uint64 { return rand.Uint64() }

// lockedSource serializes access to an injected source so a Space can be
// shared between goroutines.
type lockedSource struct {
	mu  sync.Mutex
	src RandomSource
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	n := s.src.Uint64()
	s.mu.Unlock()
	return n
}

// bitStream hands out single random bits, refilling from src 64 at a time.
type bitStream struct {
	src  RandomSource
	word uint64
	left int
}

func (b *bitStream) next() bool {
	if b.left == 0 {
		b.word = b.src.Uint64()
		b.left = 64
	}
	bit := b.word&1 == 1
	b.word >>= 1
	b.left--
	return bit
}

// Option configures a Space.
type Option func(*spaceOptions)

type spaceOptions struct {
	tie     RandomSource
	planner *Planner
}

func defaultSpaceOptions() spaceOptions {
	return spaceOptions{tie: globalSource{}}
}

func applyOptions(opts []Option) spaceOptions {
	o := defaultSpaceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.planner == nil {
		o.planner = NewPlanner()
	}
	return o
}

// WithTieBreaker sets the source used to resolve exact vote ties in Binary
// and Bipolar bundling. With a seeded source, ties are reproducible.
func WithTieBreaker(src RandomSource) Option {
	return func(o *spaceOptions) {
		if src == nil {
			o.tie = globalSource{}
			return
		}
		o.tie = &lockedSource{src: src}
	}
}

// WithPlanner sets the spectral Planner used by Real and Complex binding.
// Spaces sharing a Planner share its cached FFT plans.
func WithPlanner(p *Planner) Option { return func(o *spaceOptions) { o.planner = p } }
