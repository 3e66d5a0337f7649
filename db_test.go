package hypervector_test

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amansingh-afk/hypervector"
	"github.com/Amansingh-afk/hypervector/hdc"
)

// small keeps FFT binds cheap; the behaviour under test does not depend on size.
func small(opts ...hypervector.Option) *hypervector.DB {
	return hypervector.New(append([]hypervector.Option{hypervector.WithDims(2048)}, opts...)...)
}

// ── construction ──────────────────────────────────────────────────────────────

func TestNew_Defaults(t *testing.T) {
	db := hypervector.New()
	require.NotNil(t, db)
	assert.Equal(t, 0, db.Len())
}

func TestNew_AllOptions(t *testing.T) {
	db := hypervector.New(
		hypervector.WithDims(512),
		hypervector.WithThreshold(0.25),
		hypervector.WithCapacity(64),
		hypervector.WithNGramSize(4),
		hypervector.WithSeed(42),
		hypervector.WithStripPunctuation(true),
	)
	require.NotNil(t, db)
}

func TestNew_InvalidOptions_Panic(t *testing.T) {
	tests := []struct {
		name string
		opt  hypervector.Option
	}{
		{"capacity", hypervector.WithCapacity(0)},
		{"threshold", hypervector.WithThreshold(0)},
		{"dims", hypervector.WithDims(0)},
		{"ngram", hypervector.WithNGramSize(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { hypervector.New(tt.opt) })
		})
	}
}

// ── NewWithEncoder ────────────────────────────────────────────────────────────

func TestNewWithEncoder_CustomEncoder(t *testing.T) {
	enc := hdc.NewNGramEncoder[hdc.Real](hdc.NewRealSpace(1024), hdc.DefaultConfig())
	db := hypervector.NewWithEncoder(enc, hypervector.WithCapacity(64))
	db.Set("hello", "world")

	v, ok, _ := db.Get("hello")
	require.True(t, ok)
	assert.Equal(t, "world", v)
}

func TestNewWithEncoder_NilEncoder_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "hypervector: NewWithEncoder requires a non-nil encoder", func() {
		hypervector.NewWithEncoder(nil)
	})
}

// ── Set / Get ─────────────────────────────────────────────────────────────────

func TestDB_ExactHit(t *testing.T) {
	db := small()
	db.Set("what is the capital of india", "Delhi")

	v, ok, dist := db.Get("what is the capital of india")
	require.True(t, ok, "exact key must hit")
	assert.Equal(t, "Delhi", v)
	assert.InDelta(t, 0, dist, 1e-9)
}

func TestDB_Miss(t *testing.T) {
	db := small()
	db.Set("what is the capital of india", "Delhi")

	v, ok, dist := db.Get("how do you bake a chocolate cake")
	assert.False(t, ok, "unrelated query must miss at default threshold")
	assert.Nil(t, v)
	assert.Greater(t, dist, 0.3)
}

func TestDB_Empty_Miss(t *testing.T) {
	_, ok, dist := small().Get("anything")
	assert.False(t, ok)
	assert.True(t, math.IsInf(dist, 1))
}

func TestDB_TypoTolerantHit(t *testing.T) {
	db := small()
	db.Set("what is the capital of india", "Delhi")

	v, ok, dist := db.Get("what is the capitol of india")
	require.True(t, ok, "one-letter typo should still hit (distance %.4f)", dist)
	assert.Equal(t, "Delhi", v)
	assert.Greater(t, dist, 0.0)
}

func TestDB_ReorderedKeyMisses(t *testing.T) {
	db := small()
	db.Set("abc", "forward")

	_, ok, dist := db.Get("cba")
	assert.False(t, ok, "reversed key must not hit (distance %.4f)", dist)

	db.Set("stressed", "tense")
	_, ok, _ = db.Get("desserts")
	assert.False(t, ok)
}

func TestDB_BestMatch_Selected(t *testing.T) {
	db := small()
	db.Set("what is the capital of india", "Delhi")
	db.Set("what is the capital of nepal", "Kathmandu")

	v, ok, _ := db.Get("what is the capitol of nepal")
	require.True(t, ok)
	assert.Equal(t, "Kathmandu", v)
}

func TestDB_Set_UpdateExactKey(t *testing.T) {
	db := small()
	db.Set("key", "first")
	db.Set("key", "second")

	v, ok, _ := db.Get("key")
	require.True(t, ok)
	assert.Equal(t, "second", v)
	assert.Equal(t, 1, db.Len(), "update must not create a duplicate")
}

func TestDB_AnyValueType(t *testing.T) {
	db := small()

	type payload struct{ n int }
	db.Set("struct value", payload{42})
	db.Set("nil value", nil)

	v, ok, _ := db.Get("struct value")
	require.True(t, ok)
	assert.Equal(t, payload{42}, v)

	v, ok, _ = db.Get("nil value")
	require.True(t, ok)
	assert.Nil(t, v)
}

// ── Delete ────────────────────────────────────────────────────────────────────

func TestDB_Delete(t *testing.T) {
	db := small()
	db.Set("hello", "world")

	assert.True(t, db.Delete("hello"))
	assert.False(t, db.Delete("hello"))
	_, ok, _ := db.Get("hello")
	assert.False(t, ok, "deleted entry must not be returned")
	assert.Equal(t, 0, db.Len())
}

// ── Stats ─────────────────────────────────────────────────────────────────────

func TestDB_Stats(t *testing.T) {
	db := small()
	db.Set("some key", "value")
	db.Get("some key")                        // hit
	db.Get("an entirely different question") // miss
	db.Get("some key")                        // hit

	s := db.Stats()
	assert.Equal(t, 1, s.Entries)
	assert.EqualValues(t, 2, s.Hits)
	assert.EqualValues(t, 1, s.Misses)
	assert.EqualValues(t, 1, s.Sets)
	assert.InDelta(t, 2.0/3.0, s.HitRate, 0.001)
	assert.InDelta(t, 0, s.AvgDistOnHit, 1e-9)
}

func TestDB_Stats_Empty(t *testing.T) {
	s := small().Stats()
	assert.Zero(t, s.Entries)
	assert.Zero(t, s.HitRate)
	assert.Zero(t, s.AvgDistOnHit)
}

// ── LRU via WithCapacity ──────────────────────────────────────────────────────

func TestDB_LRU_Eviction(t *testing.T) {
	db := small(hypervector.WithCapacity(2))
	db.Set("alpha particle", 1)
	db.Set("beta decay", 2)
	db.Set("gamma ray", 3) // evicts alpha

	assert.Equal(t, 2, db.Len())
	_, ok, _ := db.Get("alpha particle")
	assert.False(t, ok, "alpha should have been evicted")

	v, ok, _ := db.Get("gamma ray")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

// ── options ───────────────────────────────────────────────────────────────────

func TestDB_WithStripPunctuation(t *testing.T) {
	db := small(hypervector.WithStripPunctuation(true))
	db.Set("hello, world!", "greeting")

	v, ok, dist := db.Get("hello world")
	require.True(t, ok)
	assert.Equal(t, "greeting", v)
	assert.InDelta(t, 0, dist, 1e-9)
}

func TestDB_WithSeed_Independent(t *testing.T) {
	db1 := small(hypervector.WithSeed(1))
	db2 := small(hypervector.WithSeed(2))
	db1.Set("hello", "from-db1")

	assert.Equal(t, 1, db1.Len())
	assert.Equal(t, 0, db2.Len())
}

// ── concurrency ───────────────────────────────────────────────────────────────

func TestDB_Concurrent(t *testing.T) {
	db := small(hypervector.WithCapacity(4))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("concurrent key %d", id%8)
			for j := 0; j < 20; j++ {
				if j%3 == 0 {
					db.Set(key, id*j)
				} else {
					db.Get(key)
				}
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, db.Len(), 4)
}

// ── benchmarks ────────────────────────────────────────────────────────────────

func BenchmarkDB_Set(b *testing.B) {
	db := hypervector.New(hypervector.WithCapacity(b.N + 1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		db.Set(fmt.Sprintf("benchmark key number %d", i), i)
	}
}

func BenchmarkDB_Get_1000Entries(b *testing.B) {
	db := hypervector.New(hypervector.WithCapacity(2000))
	for i := 0; i < 1000; i++ {
		db.Set(fmt.Sprintf("benchmark entry number %d", i), i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		db.Get("benchmark entry number 500")
	}
}
