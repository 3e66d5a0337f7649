// Package memory implements a thread-safe item ("cleanup") memory: labelled
// hypervectors with nearest-label lookup.
//
// A noisy vector produced by unbinding or bundling is cleaned up by asking the
// memory for the closest stored item:
//
//	mem := memory.New[hdc.Bipolar](memory.DefaultOptions())
//	mem.Set("usd", usd)
//	mem.Set("mpe", mpe)
//	label, dist, ok := mem.Get(noisy)
package memory

import (
	"container/list"
	"io"
	"math"
	"runtime"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Amansingh-afk/hypervector/hdc"
)

// parallelMin is the entry count below which scans stay on the calling goroutine.
const parallelMin = 512

// Options configures a Memory.
type Options struct {
	Threshold float64 // maximum distance for a hit (default +Inf)
	Capacity  int     // max entries before LRU eviction (default 1024)
	Workers   int     // goroutines used by large scans (default GOMAXPROCS)

	// Logger receives debug lines on eviction. Nil discards them.
	Logger log.FieldLogger

	// OnEvict, if set, is called with the label of each entry dropped by LRU
	// eviction. It runs inside Set with the memory locked and must not call
	// back into the Memory.
	OnEvict func(label string)
}

// DefaultOptions returns production-ready defaults.
func DefaultOptions() Options {
	return Options{
		Threshold: math.Inf(1),
		Capacity:  1024,
		Workers:   runtime.GOMAXPROCS(0),
	}
}

// Stats is a point-in-time snapshot of memory metrics.
type Stats struct {
	Entries      int
	Hits         uint64
	Misses       uint64
	Sets         uint64
	Evictions    uint64
	HitRate      float64
	AvgDistOnHit float64
}

// Match is one result of a Nearest query.
type Match struct {
	Label    string
	Distance float64
}

type entry[T any] struct {
	label string
	vec   T
}

// Memory maps labels to hypervectors. Get returns the label whose vector is
// closest to the query, within the configured threshold.
// It is safe for concurrent use.
type Memory[T hdc.HyperVector[T]] struct {
	mu        sync.Mutex
	lru       *list.List
	index     map[string]*list.Element // label → LRU element
	threshold float64
	capacity  int
	workers   int
	dims      int // shared by every entry; 0 while empty
	log       log.FieldLogger
	onEvict   func(label string)

	hits      uint64
	misses    uint64
	sets      uint64
	evictions uint64
	distSum   float64
}

// New creates an empty Memory.
// Panics if Capacity or Workers is not positive, or Threshold is not positive.
func New[T hdc.HyperVector[T]](opts Options) *Memory[T] {
	if opts.Capacity <= 0 {
		panic("memory: Options.Capacity must be positive")
	}
	if opts.Workers <= 0 {
		panic("memory: Options.Workers must be positive")
	}
	if !(opts.Threshold > 0) {
		panic("memory: Options.Threshold must be positive")
	}
	logger := opts.Logger
	if logger == nil {
		l := log.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Memory[T]{
		lru:       list.New(),
		index:     make(map[string]*list.Element),
		threshold: opts.Threshold,
		capacity:  opts.Capacity,
		workers:   opts.Workers,
		log:       logger,
		onEvict:   opts.OnEvict,
	}
}

// Set stores v under label.
// An existing label is overwritten and promoted to most-recently-used.
// If the memory is at capacity the least-recently-used entry is evicted first.
// Panics if v's dimension differs from the stored entries'.
func (m *Memory[T]) Set(label string, v T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lru.Len() == 0 {
		m.dims = v.Dims()
	}
	m.requireDimsLocked(v)
	m.sets++

	if elem, ok := m.index[label]; ok {
		elem.Value.(*entry[T]).vec = v
		m.lru.MoveToFront(elem)
		return
	}

	if m.lru.Len() >= m.capacity {
		m.evictLocked()
	}
	m.index[label] = m.lru.PushFront(&entry[T]{label: label, vec: v})
}

// Lookup returns the vector stored under the exact label.
func (m *Memory[T]) Lookup(label string) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.index[label]
	if !ok {
		var zero T
		return zero, false
	}
	return elem.Value.(*entry[T]).vec, true
}

// Get returns the label of the stored vector closest to query.
// Returns (label, distance, true) on a hit, or ("", +Inf, false) when the
// memory is empty or nothing lies within the threshold.
// The matched entry is promoted to most-recently-used.
func (m *Memory[T]) Get(query T) (string, float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elems, dists := m.scanLocked(query)
	best, bestDist := -1, math.Inf(1)
	for i, d := range dists {
		if d <= m.threshold && d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		m.misses++
		return "", math.Inf(1), false
	}

	m.lru.MoveToFront(elems[best])
	m.hits++
	m.distSum += bestDist
	return elems[best].Value.(*entry[T]).label, bestDist, true
}

// Nearest returns up to k stored labels ordered by increasing distance to
// query, ignoring the threshold. It does not touch LRU order or stats.
func (m *Memory[T]) Nearest(query T, k int) []Match {
	if k <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	elems, dists := m.scanLocked(query)
	matches := make([]Match, len(elems))
	for i, elem := range elems {
		matches[i] = Match{Label: elem.Value.(*entry[T]).label, Distance: dists[i]}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// Delete removes the entry stored under label.
// Returns true if an entry was found and removed.
func (m *Memory[T]) Delete(label string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.index[label]
	if !ok {
		return false
	}
	m.removeLocked(elem)
	return true
}

// Labels returns the stored labels from most to least recently used.
func (m *Memory[T]) Labels() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, m.lru.Len())
	for elem := m.lru.Front(); elem != nil; elem = elem.Next() {
		out = append(out, elem.Value.(*entry[T]).label)
	}
	return out
}

// Len returns the current number of entries.
func (m *Memory[T]) Len() int {
	m.mu.Lock()
	n := m.lru.Len()
	m.mu.Unlock()
	return n
}

// Stats returns a point-in-time snapshot of memory metrics.
func (m *Memory[T]) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := m.hits + m.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(m.hits) / float64(total)
	}
	avgDist := 0.0
	if m.hits > 0 {
		avgDist = m.distSum / float64(m.hits)
	}

	return Stats{
		Entries:      m.lru.Len(),
		Hits:         m.hits,
		Misses:       m.misses,
		Sets:         m.sets,
		Evictions:    m.evictions,
		HitRate:      hitRate,
		AvgDistOnHit: avgDist,
	}
}

// scanLocked computes the distance from query to every entry, in LRU order.
// Large memories are split into contiguous chunks scanned by m.workers
// goroutines. Must be called with m.mu held.
func (m *Memory[T]) scanLocked(query T) ([]*list.Element, []float64) {
	if m.lru.Len() > 0 {
		m.requireDimsLocked(query)
	}
	elems := make([]*list.Element, 0, m.lru.Len())
	for elem := m.lru.Front(); elem != nil; elem = elem.Next() {
		elems = append(elems, elem)
	}
	dists := make([]float64, len(elems))

	scan := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dists[i] = query.Distance(elems[i].Value.(*entry[T]).vec)
		}
	}

	if len(elems) < parallelMin || m.workers == 1 {
		scan(0, len(elems))
		return elems, dists
	}

	chunk := (len(elems) + m.workers - 1) / m.workers
	var g errgroup.Group
	for lo := 0; lo < len(elems); lo += chunk {
		hi := min(lo+chunk, len(elems))
		g.Go(func() error {
			scan(lo, hi)
			return nil
		})
	}
	_ = g.Wait() // scan never fails

	return elems, dists
}

func (m *Memory[T]) requireDimsLocked(v T) {
	if v.Dims() != m.dims {
		panic("memory: dimension mismatch")
	}
}

func (m *Memory[T]) evictLocked() {
	back := m.lru.Back()
	if back == nil {
		return
	}
	label := back.Value.(*entry[T]).label
	m.evictions++
	m.log.WithFields(log.Fields{
		"label":    label,
		"capacity": m.capacity,
	}).Debug("memory: evicting least recently used entry")
	m.removeLocked(back)
	if m.onEvict != nil {
		m.onEvict(label)
	}
}

func (m *Memory[T]) removeLocked(elem *list.Element) {
	e := elem.Value.(*entry[T])
	delete(m.index, e.label)
	m.lru.Remove(elem)
}
