package conformal

import (
	"gonum.org/v1/gonum/mat"
)

// Intervals holds paired (lower, upper) prediction bounds for every row at
// every requested miscoverage level. Conceptually it is an
// (n, 2, len(alpha)) array: axis 1 distinguishes lower from upper, axis 2
// indexes the alpha levels in request order.
type Intervals struct {
	lower  *mat.Dense // n × nAlpha
	upper  *mat.Dense // n × nAlpha
	alphas []float64
}

func newIntervals(n int, alphas []float64) *Intervals {
	cp := make([]float64, len(alphas))
	copy(cp, alphas)
	return &Intervals{
		lower:  mat.NewDense(n, len(alphas), nil),
		upper:  mat.NewDense(n, len(alphas), nil),
		alphas: cp,
	}
}

// Dims returns the number of rows and miscoverage levels.
func (p *Intervals) Dims() (n, nAlpha int) {
	r, c := p.lower.Dims()
	return r, c
}

// Alphas returns a copy of the miscoverage levels in request order.
func (p *Intervals) Alphas() []float64 {
	cp := make([]float64, len(p.alphas))
	copy(cp, p.alphas)
	return cp
}

// Lower returns the lower bound for row i at alpha index a.
func (p *Intervals) Lower(i, a int) float64 {
	return p.lower.At(i, a)
}

// Upper returns the upper bound for row i at alpha index a.
func (p *Intervals) Upper(i, a int) float64 {
	return p.upper.At(i, a)
}

// Width returns the interval width for row i at alpha index a.
func (p *Intervals) Width(i, a int) float64 {
	return p.upper.At(i, a) - p.lower.At(i, a)
}

// LowerVec returns a copy of the lower bounds at alpha index a.
func (p *Intervals) LowerVec(a int) *mat.VecDense {
	n, _ := p.Dims()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetVec(i, p.lower.At(i, a))
	}
	return out
}

// UpperVec returns a copy of the upper bounds at alpha index a.
func (p *Intervals) UpperVec(a int) *mat.VecDense {
	n, _ := p.Dims()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetVec(i, p.upper.At(i, a))
	}
	return out
}
