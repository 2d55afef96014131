package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/prayaggordy/bivarnet/pkg/errors"
)

// Grid is a dense Cartesian product over two predictor ranges, used only for
// decision-boundary visualization, never for evaluation.
type Grid struct {
	// X holds the grid points row-major: the first predictor varies slowest.
	X *mat.Dense

	// AValues and BValues are the evenly spaced axis values.
	AValues []float64
	BValues []float64
}

// NewGrid builds a steps x steps grid spanning [aMin, aMax] x [bMin, bMax]
// inclusive.
func NewGrid(aMin, aMax, bMin, bMax float64, steps int) (*Grid, error) {
	if steps < 2 {
		return nil, errors.NewValidationError("steps", "must be at least 2", steps)
	}
	if aMax <= aMin {
		return nil, errors.NewValueError("NewGrid", "aMax must exceed aMin")
	}
	if bMax <= bMin {
		return nil, errors.NewValueError("NewGrid", "bMax must exceed bMin")
	}

	aVals := linspace(aMin, aMax, steps)
	bVals := linspace(bMin, bMax, steps)

	X := mat.NewDense(steps*steps, 2, nil)
	row := 0
	for _, a := range aVals {
		for _, b := range bVals {
			X.Set(row, 0, a)
			X.Set(row, 1, b)
			row++
		}
	}

	return &Grid{X: X, AValues: aVals, BValues: bVals}, nil
}

// Steps returns the number of points along each axis.
func (g *Grid) Steps() int {
	return len(g.AValues)
}

// linspace returns n evenly spaced values from lo to hi inclusive.
func linspace(lo, hi float64, n int) []float64 {
	vals := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	vals[n-1] = hi
	return vals
}
