// Package hypervector is a text-keyed associative store built on
// hyperdimensional computing. Keys are encoded to real-valued hypervectors by
// a character n-gram encoder; Get returns the value stored under the key
// whose encoding lies closest to the query's, within a distance threshold.
//
// Basic usage:
//
//	db := hypervector.New()
//	db.Set("what is the capital of india", "Delhi")
//	v, ok, dist := db.Get("what is the capitol of india") // typo-tolerant hit
//
// The algebra itself lives in package hdc; package memory provides the
// cleanup memory this store is built on.
package hypervector

import (
	"sync"

	"github.com/Amansingh-afk/hypervector/hdc"
	"github.com/Amansingh-afk/hypervector/memory"
)

// Stats is a point-in-time snapshot of DB metrics.
type Stats = memory.Stats

// DB is a semantic key/value store. It is safe for concurrent use.
type DB struct {
	enc hdc.Encoder[hdc.Real]
	mem *memory.Memory[hdc.Real]

	mu     sync.RWMutex
	values map[string]any
}

// Option configures a DB.
type Option func(*dbOptions)

type dbOptions struct {
	dims             int
	threshold        float64
	capacity         int
	ngram            int
	seed             uint64
	stripPunctuation bool
}

func defaultOptions() dbOptions {
	return dbOptions{
		dims:      10000,
		threshold: 0.3,
		capacity:  1024,
		ngram:     3,
	}
}

// WithDims sets the hypervector dimension (default 10000).
func WithDims(n int) Option { return func(o *dbOptions) { o.dims = n } }

// WithThreshold sets the maximum cosine distance for a hit (default 0.3).
// Lower it to require closer matches.
func WithThreshold(t float64) Option { return func(o *dbOptions) { o.threshold = t } }

// WithCapacity sets the maximum number of entries before LRU eviction (default 1024).
func WithCapacity(n int) Option { return func(o *dbOptions) { o.capacity = n } }

// WithNGramSize sets the character n-gram window (default 3).
// Larger windows are more precise but less typo-tolerant.
func WithNGramSize(n int) Option { return func(o *dbOptions) { o.ngram = n } }

// WithSeed sets the encoder namespace seed (default 0).
// DBs with different seeds produce incompatible vectors.
func WithSeed(s uint64) Option { return func(o *dbOptions) { o.seed = s } }

// WithStripPunctuation enables punctuation removal during key normalization.
func WithStripPunctuation(v bool) Option { return func(o *dbOptions) { o.stripPunctuation = v } }

// New creates a DB with the given options.
// Panics if any option value is invalid (e.g. capacity 0, threshold 0).
func New(opts ...Option) *DB {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.dims <= 0 {
		panic("hypervector: dims must be positive")
	}
	enc := hdc.NewNGramEncoder[hdc.Real](hdc.NewRealSpace(o.dims), hdc.Config{
		NGramSize:        o.ngram,
		StripPunctuation: o.stripPunctuation,
		Seed:             o.seed,
	})
	return newDB(enc, o)
}

// NewWithEncoder creates a DB that encodes keys with enc.
// Dimension, n-gram and seed options are ignored.
// Panics if enc is nil.
func NewWithEncoder(enc hdc.Encoder[hdc.Real], opts ...Option) *DB {
	if enc == nil {
		panic("hypervector: NewWithEncoder requires a non-nil encoder")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newDB(enc, o)
}

func newDB(enc hdc.Encoder[hdc.Real], o dbOptions) *DB {
	db := &DB{enc: enc, values: make(map[string]any)}
	mo := memory.DefaultOptions()
	mo.Threshold = o.threshold
	mo.Capacity = o.capacity
	// Evictions happen inside mem.Set, which Set calls with db.mu held.
	mo.OnEvict = func(key string) { delete(db.values, key) }
	db.mem = memory.New[hdc.Real](mo)
	return db
}

// Set stores value under key. If the exact key already exists its value is
// updated and the entry is promoted to most-recently-used.
func (db *DB) Set(key string, value any) {
	v := db.enc.Encode(key)

	db.mu.Lock()
	defer db.mu.Unlock()
	db.mem.Set(key, v)
	db.values[key] = value
}

// Get returns the value stored under the closest key within the threshold.
// Returns (value, true, distance) on a hit, or (nil, false, +Inf) on a miss.
func (db *DB) Get(key string) (any, bool, float64) {
	label, dist, ok := db.mem.Get(db.enc.Encode(key))
	if !ok {
		return nil, false, dist
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	value, ok := db.values[label]
	if !ok {
		// Evicted between the scan and the read.
		return nil, false, dist
	}
	return value, true, dist
}

// Delete removes the entry with the exact key string.
// Returns true if an entry was found and removed.
func (db *DB) Delete(key string) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.values, key)
	return db.mem.Delete(key)
}

// Len returns the current number of entries.
func (db *DB) Len() int { return db.mem.Len() }

// Stats returns a point-in-time snapshot of DB metrics.
func (db *DB) Stats() Stats { return db.mem.Stats() }
