package hdc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amansingh-afk/hypervector/hdc"
)

func embedding(src hdc.RandomSource, n int) []float64 {
	space := hdc.NewRealSpace(n)
	return space.Random(src).Unpack()
}

// perturb returns x with a small fraction of noise added.
func perturb(x []float64, src hdc.RandomSource, scale float64) []float64 {
	noise := embedding(src, len(x))
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] + scale*noise[i]
	}
	return out
}

func TestProjectorDeterministic(t *testing.T) {
	space := hdc.NewBinarySpace(16)
	a := hdc.NewProjector[hdc.Binary](space, 64, hdc.NewSource(7))
	b := hdc.NewProjector[hdc.Binary](space, 64, hdc.NewSource(7))
	x := embedding(newSource(), 64)

	assert.Equal(t, 64, a.InDims())
	assert.True(t, a.Project(x).Equal(b.Project(x)))
}

func TestProjectorPreservesLocality(t *testing.T) {
	src := newSource()
	x := embedding(src, 128)
	near := perturb(x, src, 0.1)
	far := embedding(src, 128)

	t.Run("binary", func(t *testing.T) {
		p := hdc.NewProjector[hdc.Binary](hdc.NewBinarySpace(32), 128, hdc.NewSource(1))
		px := p.Project(x)
		dNear, dFar := px.Distance(p.Project(near)), px.Distance(p.Project(far))
		assert.Less(t, dNear, 0.15)
		assert.InDelta(t, 0.5, dFar, 0.15, "unrelated embeddings")
	})

	t.Run("bipolar", func(t *testing.T) {
		p := hdc.NewProjector[hdc.Bipolar](hdc.NewBipolarSpace(2048), 128, hdc.NewSource(1))
		px := p.Project(x)
		assert.Less(t, px.Distance(p.Project(near)), px.Distance(p.Project(far)))
	})

	t.Run("real", func(t *testing.T) {
		p := hdc.NewProjector[hdc.Real](hdc.NewRealSpace(2048), 128, hdc.NewSource(1))
		px := p.Project(x)
		assert.Less(t, px.Distance(p.Project(near)), 0.05)
		assert.InDelta(t, 1.0, px.Distance(p.Project(far)), 0.35, "unrelated embeddings")
	})

	t.Run("complex", func(t *testing.T) {
		p := hdc.NewProjector[hdc.Complex](hdc.NewComplexSpace(1024), 128, hdc.NewSource(1))
		px := p.Project(x)
		assert.Less(t, px.Distance(p.Project(near)), px.Distance(p.Project(far)))
	})
}

func TestProjectorScaleInvariantForSigns(t *testing.T) {
	space := hdc.NewBipolarSpace(512)
	p := hdc.NewProjector[hdc.Bipolar](space, 32, hdc.NewSource(3))
	x := embedding(newSource(), 32)
	scaled := make([]float64, len(x))
	for i, v := range x {
		scaled[i] = 5 * v
	}
	assert.True(t, p.Project(x).Equal(p.Project(scaled)))
}

func TestProjectorPanics(t *testing.T) {
	space := hdc.NewRealSpace(64)
	assert.PanicsWithValue(t, "hdc: projector input dims must be positive", func() {
		hdc.NewProjector[hdc.Real](space, 0, newSource())
	})

	p := hdc.NewProjector[hdc.Real](space, 8, newSource())
	require.Equal(t, 8, p.InDims())
	assert.PanicsWithValue(t, "hdc: projector input length does not match dims", func() {
		p.Project(make([]float64, 9))
	})
}
