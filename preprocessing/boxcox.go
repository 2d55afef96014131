package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/prayaggordy/bivarnet/core/model"
	"github.com/prayaggordy/bivarnet/pkg/errors"
)

// lambdaZeroTol is the threshold below which a Box-Cox lambda is treated as
// zero and the transform falls back to the natural log.
const lambdaZeroTol = 1e-8

// BoxCoxTransformer applies a per-feature Box-Cox power transform. Fit
// estimates one lambda per feature by maximizing the Box-Cox log-likelihood;
// Transform applies (x^lambda - 1) / lambda, or ln(x) when lambda is zero.
//
// Inputs must be strictly positive; Fit and Transform return a ValueError
// otherwise.
type BoxCoxTransformer struct {
	state *model.StateManager

	// Lambdas holds the fitted per-feature power parameters.
	Lambdas []float64

	// NFeatures is the number of features seen during Fit.
	NFeatures int

	// LambdaMin and LambdaMax bound the search interval for each lambda.
	LambdaMin float64
	LambdaMax float64
}

// NewBoxCoxTransformer creates an unfitted BoxCoxTransformer with the
// conventional search interval [-2, 2].
func NewBoxCoxTransformer() *BoxCoxTransformer {
	return &BoxCoxTransformer{
		state:     model.NewStateManager(),
		LambdaMin: -2.0,
		LambdaMax: 2.0,
	}
}

// Fit estimates one lambda per feature from X by maximizing the profile
// log-likelihood with a golden-section search over [LambdaMin, LambdaMax].
func (b *BoxCoxTransformer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "BoxCoxTransformer.Fit")
	}

	if err := checkPositive("BoxCoxTransformer.Fit", X); err != nil {
		return err
	}

	b.NFeatures = c
	b.Lambdas = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			col[i] = X.At(i, j)
		}
		b.Lambdas[j] = maximizeLogLikelihood(col, b.LambdaMin, b.LambdaMax)
	}

	b.state.SetDimensions(c, r)
	b.state.SetFitted()
	return nil
}

// Transform applies the fitted per-feature power transform to X.
func (b *BoxCoxTransformer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !b.state.IsFitted() {
		return nil, errors.NewNotFittedError("BoxCoxTransformer", "Transform")
	}

	r, c := X.Dims()
	if c != b.NFeatures {
		return nil, errors.NewDimensionError("BoxCoxTransformer.Transform", b.NFeatures, c, 1)
	}

	if err := checkPositive("BoxCoxTransformer.Transform", X); err != nil {
		return nil, err
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, boxcox(X.At(i, j), b.Lambdas[j]))
		}
	}
	return result, nil
}

// FitTransform fits the transformer on X and returns the transformed X.
func (b *BoxCoxTransformer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := b.Fit(X); err != nil {
		return nil, err
	}
	return b.Transform(X)
}

// InverseTransform maps Box-Cox values back to the original scale. Values for
// which the inverse is undefined (lambda*y + 1 <= 0) produce a ValueError.
func (b *BoxCoxTransformer) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !b.state.IsFitted() {
		return nil, errors.NewNotFittedError("BoxCoxTransformer", "InverseTransform")
	}

	r, c := X.Dims()
	if c != b.NFeatures {
		return nil, errors.NewDimensionError("BoxCoxTransformer.InverseTransform", b.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			lambda := b.Lambdas[j]
			y := X.At(i, j)
			if math.Abs(lambda) < lambdaZeroTol {
				result.Set(i, j, math.Exp(y))
				continue
			}
			base := lambda*y + 1
			if base <= 0 {
				return nil, errors.NewValueError("BoxCoxTransformer.InverseTransform",
					fmt.Sprintf("value %g at (%d, %d) is outside the transform's range for lambda=%g", y, i, j, lambda))
			}
			result.Set(i, j, math.Pow(base, 1/lambda))
		}
	}
	return result, nil
}

// IsFitted reports whether Fit has been called.
func (b *BoxCoxTransformer) IsFitted() bool {
	return b.state.IsFitted()
}

// String returns a human-readable description of the transformer.
func (b *BoxCoxTransformer) String() string {
	if !b.state.IsFitted() {
		return "BoxCoxTransformer()"
	}
	return fmt.Sprintf("BoxCoxTransformer(n_features=%d, lambdas=%v)", b.NFeatures, b.Lambdas)
}

// boxcox applies the transform to a single positive value.
func boxcox(x, lambda float64) float64 {
	if math.Abs(lambda) < lambdaZeroTol {
		return math.Log(x)
	}
	return (math.Pow(x, lambda) - 1) / lambda
}

// checkPositive verifies every element of X is strictly positive.
func checkPositive(op string, X mat.Matrix) error {
	r, c := X.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := X.At(i, j); v <= 0 {
				return errors.NewValueError(op,
					fmt.Sprintf("Box-Cox requires strictly positive data, got %g at (%d, %d)", v, i, j))
			}
		}
	}
	return nil
}

// logLikelihood is the Box-Cox profile log-likelihood for one feature:
//
//	ll(lambda) = -n/2 * ln(var(y)) + (lambda - 1) * sum(ln(x))
//
// where y is the transformed sample.
func logLikelihood(x []float64, lambda float64) float64 {
	n := float64(len(x))

	var mean float64
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = boxcox(v, lambda)
		mean += y[i]
	}
	mean /= n

	var variance float64
	for _, v := range y {
		d := v - mean
		variance += d * d
	}
	variance /= n
	if variance < 1e-300 {
		variance = 1e-300
	}

	var logSum float64
	for _, v := range x {
		logSum += math.Log(v)
	}

	return -n/2*math.Log(variance) + (lambda-1)*logSum
}

// maximizeLogLikelihood runs a golden-section search for the lambda that
// maximizes the profile log-likelihood on [lo, hi].
func maximizeLogLikelihood(x []float64, lo, hi float64) float64 {
	const (
		invPhi = 0.6180339887498949
		tol    = 1e-6
	)

	a, b := lo, hi
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc := logLikelihood(x, c)
	fd := logLikelihood(x, d)

	for b-a > tol {
		if fc > fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc = logLikelihood(x, c)
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd = logLikelihood(x, d)
		}
	}
	return (a + b) / 2
}
