package demo

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/Amansingh-afk/hypervector/hdc"
	"github.com/Amansingh-afk/hypervector/memory"
)

// Classifier labels text by the nearest of a set of trained prototypes, each
// the bundle of every character n-gram seen for that label. With one label
// per language this is n-gram language identification.
// It is safe for concurrent use.
type Classifier[T hdc.HyperVector[T]] struct {
	space hdc.Space[T]
	enc   *hdc.NGramEncoder[T]
	mem   *memory.Memory[T]

	mu     sync.Mutex
	protos map[string]hdc.Accumulator[T]
}

// NewClassifier creates a Classifier encoding text with cfg and storing
// prototypes in a memory configured by opts. A label evicted from the memory
// is forgotten entirely; training it again starts a fresh prototype.
func NewClassifier[T hdc.HyperVector[T]](space hdc.Space[T], cfg hdc.Config, opts memory.Options) *Classifier[T] {
	c := &Classifier[T]{
		space:  space,
		enc:    hdc.NewNGramEncoder(space, cfg),
		protos: make(map[string]hdc.Accumulator[T]),
	}
	onEvict := opts.OnEvict
	// Evictions happen inside mem.Set, which Train calls with c.mu held.
	opts.OnEvict = func(label string) {
		delete(c.protos, label)
		if onEvict != nil {
			onEvict(label)
		}
	}
	c.mem = memory.New[T](opts)
	return c
}

// Train reads r line by line into label's prototype and returns the number
// of n-grams added. Training the same label again extends its prototype.
// If reading fails the prototype is left untouched and 0 is returned.
func (c *Classifier[T]) Train(label string, r io.Reader) (int, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("demo: train %q: %w", label, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	acc, ok := c.protos[label]
	if !ok {
		acc = c.space.NewAccumulator()
		c.protos[label] = acc
	}

	var added int
	for _, line := range lines {
		added += c.enc.EncodeInto(acc, line, 1)
	}
	if acc.Weight() > 0 {
		c.mem.Set(label, acc.Finalize())
	}
	return added, nil
}

// Classify returns the label whose prototype is nearest to text.
// ok is false when nothing has been trained or no prototype is within the
// memory threshold.
func (c *Classifier[T]) Classify(text string) (label string, distance float64, ok bool) {
	return c.mem.Get(c.enc.Encode(text))
}

// ClassifyReader encodes everything read from r as one text, line by line,
// and returns the nearest label as Classify does.
func (c *Classifier[T]) ClassifyReader(r io.Reader) (label string, distance float64, ok bool, err error) {
	acc := c.space.NewAccumulator()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		c.enc.EncodeInto(acc, sc.Text(), 1)
	}
	if err := sc.Err(); err != nil {
		return "", math.Inf(1), false, fmt.Errorf("demo: classify: %w", err)
	}
	if acc.Weight() == 0 {
		label, distance, ok = c.mem.Get(c.space.Ident())
		return label, distance, ok, nil
	}
	label, distance, ok = c.mem.Get(acc.Finalize())
	return label, distance, ok, nil
}

// Rank returns up to k labels ordered by distance to text.
func (c *Classifier[T]) Rank(text string, k int) []memory.Match {
	return c.mem.Nearest(c.enc.Encode(text), k)
}

// Labels returns the trained labels.
func (c *Classifier[T]) Labels() []string { return c.mem.Labels() }

// Prototype returns the trained vector for label.
func (c *Classifier[T]) Prototype(label string) (T, bool) { return c.mem.Lookup(label) }
