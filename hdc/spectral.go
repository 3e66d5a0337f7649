package hdc

import (
	"sync"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Planner caches prepared FFT plans keyed by transform size, for the circular
// convolution behind Real and Complex binding.
//
// Each size maps to a sync.Pool of plans. A plan, together with its scratch
// buffers, belongs to exactly one goroutine between get and put, so
// concurrent binds never share an entry. A Planner is safe for concurrent use.
type Planner struct {
	mu    sync.Mutex
	real  map[int]*sync.Pool // stores *realPlan
	cmplx map[int]*sync.Pool // stores *cmplxPlan
}

// NewPlanner returns an empty Planner. Plans are built lazily on first use.
func NewPlanner() *Planner {
	return &Planner{
		real:  make(map[int]*sync.Pool),
		cmplx: make(map[int]*sync.Pool),
	}
}

// Sizes returns the number of distinct transform sizes prepared so far.
func (p *Planner) Sizes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.real) + len(p.cmplx)
}

type realPlan struct {
	fft  *fourier.FFT
	a, b []complex128 // n/2+1 spectral coefficients
}

type cmplxPlan struct {
	fft  *fourier.CmplxFFT
	a, b []complex128
}

func (p *Planner) realPool(n int) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pool, ok := p.real[n]
	if !ok {
		pool = &sync.Pool{
			New: func() any {
				return &realPlan{
					fft: fourier.NewFFT(n),
					a:   make([]complex128, n/2+1),
					b:   make([]complex128, n/2+1),
				}
			},
		}
		p.real[n] = pool
	}
	return pool
}

func (p *Planner) cmplxPool(n int) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pool, ok := p.cmplx[n]
	if !ok {
		pool = &sync.Pool{
			New: func() any {
				return &cmplxPlan{
					fft: fourier.NewCmplxFFT(n),
					a:   make([]complex128, n),
					b:   make([]complex128, n),
				}
			},
		}
		p.cmplx[n] = pool
	}
	return pool
}

// convolveReal returns the circular convolution of x and y:
// out[j] = Σ_k x[k]·y[(j-k) mod n], computed as IFFT(FFT(x)·FFT(y))/n.
func (p *Planner) convolveReal(x, y []float64) []float64 {
	n := len(x)
	pool := p.realPool(n)
	plan := pool.Get().(*realPlan)
	defer pool.Put(plan)

	fx := plan.fft.Coefficients(plan.a, x)
	fy := plan.fft.Coefficients(plan.b, y)
	for i := range fx {
		fx[i] *= fy[i]
	}
	out := plan.fft.Sequence(nil, fx)
	// gonum's inverse transform is unnormalized.
	floats.Scale(1/float64(n), out)
	return out
}

// convolveComplex is convolveReal over complex sequences.
func (p *Planner) convolveComplex(x, y []complex128) []complex128 {
	n := len(x)
	pool := p.cmplxPool(n)
	plan := pool.Get().(*cmplxPlan)
	defer pool.Put(plan)

	fx := plan.fft.Coefficients(plan.a, x)
	fy := plan.fft.Coefficients(plan.b, y)
	for i := range fx {
		fx[i] *= fy[i]
	}
	out := plan.fft.Sequence(nil, fx)
	cmplxs.Scale(complex(1/float64(n), 0), out)
	return out
}
