package hdc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amansingh-afk/hypervector/hdc"
)

// directConvolution is the O(N²) time-domain definition of circular convolution:
// out[j] = Σ_k y[k]·x[(j-k) mod N].
func directConvolution(x, y []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		var sum float64
		for k := 0; k < n; k++ {
			sum += y[k] * x[((j-k)%n+n)%n]
		}
		out[j] = sum
	}
	return out
}

func TestReal_Ident_IsUnitImpulse(t *testing.T) {
	space := hdc.NewRealSpace(4)
	assert.Equal(t, []float64{1, 0, 0, 0}, space.Ident().Unpack())
}

func TestReal_FromSlice_CopiesAndPads(t *testing.T) {
	space := hdc.NewRealSpace(5)
	v := hdc.MustFromSlice[hdc.Real](space, 0.5, -2, 3)
	assert.Equal(t, []float64{0.5, -2, 3, 0, 0}, v.Unpack())
}

func TestReal_Random_UnitNorm(t *testing.T) {
	space := hdc.NewRealSpace(1024)
	v := space.Random(newSource())
	assert.InDelta(t, 1.0, v.Norm(), 0.1)
}

func TestReal_Bind_MatchesDirectConvolution(t *testing.T) {
	for _, n := range []int{2, 7, 64, 100} {
		space := hdc.NewRealSpace(n)
		src := newSource()
		a, b := space.Random(src), space.Random(src)
		want := directConvolution(a.Unpack(), b.Unpack())
		assert.InDeltaSlicef(t, want, a.Bind(b).Unpack(), 1e-9, "n=%d", n)
	}
}

func TestReal_Bind_SmallExample(t *testing.T) {
	space := hdc.NewRealSpace(4)
	a := hdc.MustFromSlice[hdc.Real](space, 1, 2, 0, 0)
	b := hdc.MustFromSlice[hdc.Real](space, 0, 1, 0, 0)
	// Convolving with a shifted impulse rotates a by one place.
	assert.InDeltaSlice(t, []float64{0, 1, 2, 0}, a.Bind(b).Unpack(), 1e-12)
}

func TestReal_Bind_Commutative(t *testing.T) {
	space := hdc.NewRealSpace(dims)
	src := newSource()
	a, b := space.Random(src), space.Random(src)
	assert.True(t, a.Bind(b).EqualApprox(b.Bind(a), 1e-12))
}

func TestReal_Unbind_RecoversWithinTolerance(t *testing.T) {
	space := hdc.NewRealSpace(2048)
	src := newSource()
	a, b := space.Random(src), space.Random(src)
	recovered := a.Bind(b).Unbind(a)
	assert.Less(t, b.Distance(recovered), 0.5)
}

func TestReal_Unbind_FromBundleOfPairs(t *testing.T) {
	space := hdc.NewRealSpace(dims)
	src := newSource()
	roles := randoms[hdc.Real](space, src, 3)
	fillers := randoms[hdc.Real](space, src, 3)

	pairs := make([]hdc.Real, 3)
	for i := range pairs {
		pairs[i] = roles[i].Bind(fillers[i])
	}
	record := space.Bundle(pairs...)

	for i, role := range roles {
		idx, _ := hdc.Nearest(record.Unbind(role), fillers)
		assert.Equalf(t, i, idx, "role %d must retrieve its own filler", i)
	}
}

func TestReal_ApproxInverse_Reversal(t *testing.T) {
	space := hdc.NewRealSpace(5)
	v := hdc.MustFromSlice[hdc.Real](space, 1, 2, 3, 4, 5)
	assert.Equal(t, []float64{1, 5, 4, 3, 2}, v.ApproxInverse().Unpack())
}

func TestReal_Random_NearOrthogonal(t *testing.T) {
	space := hdc.NewRealSpace(dims)
	src := newSource()
	for i := 0; i < 10; i++ {
		assertNearOne(t, "independent randoms", space.Random(src).Distance(space.Random(src)))
	}
}

func TestReal_Distance_ZeroVectorIsOrthogonal(t *testing.T) {
	space := hdc.NewRealSpace(8)
	assert.Equal(t, 1.0, space.Zero().Distance(space.Random(newSource())))
}

func TestReal_Bundle_RescalesNorm(t *testing.T) {
	space := hdc.NewRealSpace(dims)
	vs := randoms[hdc.Real](space, newSource(), 16)
	assert.InDelta(t, 1.0, space.Bundle(vs...).Norm(), 0.1)
}

func TestReal_Accumulator_EqualsBatchBundle(t *testing.T) {
	space := hdc.NewRealSpace(dims)
	vs := randoms[hdc.Real](space, newSource(), 7)

	acc := space.NewAccumulator()
	for _, v := range vs {
		acc.Add(v, 1)
	}
	assert.True(t, space.Bundle(vs...).EqualApprox(acc.Finalize(), 1e-12))
}

func TestReal_Accumulator_WeightedScaling(t *testing.T) {
	space := hdc.NewRealSpace(3)
	v := hdc.MustFromSlice[hdc.Real](space, 1, -2, 4)

	acc := space.NewAccumulator()
	acc.Add(v, 4)
	// 4·v / √4 = 2·v
	assert.InDeltaSlice(t, []float64{2, -4, 8}, acc.Finalize().Unpack(), 1e-12)
}

func TestReal_Accumulator_EmptyFinalizeIsZero(t *testing.T) {
	space := hdc.NewRealSpace(3)
	got := space.NewAccumulator().Finalize().Unpack()
	assert.Equal(t, []float64{0, 0, 0}, got)
	for _, x := range got {
		assert.False(t, math.IsNaN(x))
	}

	empty := space.NewAccumulator().Finalize()
	assert.Equal(t, 1.0, empty.Distance(empty), "zero vector is orthogonal to itself")
}

func TestReal_Normalize(t *testing.T) {
	space := hdc.NewRealSpace(2)
	v := hdc.MustFromSlice[hdc.Real](space, 3, 4).Normalize()
	assert.InDeltaSlice(t, []float64{0.6, 0.8}, v.Unpack(), 1e-12)
	assert.True(t, space.Zero().Normalize().Equal(space.Zero()))
}

func TestReal_SharedPlanner(t *testing.T) {
	planner := hdc.NewPlanner()
	a := hdc.NewRealSpace(32, hdc.WithPlanner(planner))
	b := hdc.NewRealSpace(32, hdc.WithPlanner(planner))
	src := newSource()
	a.Random(src).Bind(a.Random(src))
	b.Random(src).Bind(b.Random(src))
	require.Same(t, planner, a.Planner())
	assert.Equal(t, 1, planner.Sizes())
}

func BenchmarkReal_Bind(b *testing.B) {
	space := hdc.NewRealSpace(dims)
	src := newSource()
	x, y := space.Random(src), space.Random(src)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Bind(y)
	}
}
