// Package ols fits ordinary least squares regressions through the normal
// equations.
package ols

import (
	"fmt"
	"math"

	"github.com/sartorproj/goregression/matrix"
)

// Errors surfaced by Fit and FitFlat. They are the matrix package
// sentinels, so errors.Is works against either name.
var (
	ErrDimensionMismatch = matrix.ErrDimensionMismatch
	ErrSingularMatrix    = matrix.ErrSingularMatrix
	ErrNotSquare         = matrix.ErrNotSquare
	ErrEmptyInput        = matrix.ErrEmptyInput
)

// Fit regresses y on the columns of the design matrix x.
// No intercept is added; include a column of ones (see AddIntercept) if
// one is wanted.
//
// When nobs <= nparams the coefficients and SSR are still returned but
// every standard error is +Inf.
func Fit(x *matrix.Matrix, y matrix.Vector) (*Result, error) {
	if x.IsEmpty() {
		return nil, ErrEmptyInput
	}
	nobs, nparams := x.Dims()
	if len(y) != nobs {
		return nil, ErrDimensionMismatch
	}

	xt := matrix.Transpose(x)
	xtx, err := matrix.Multiply(xt, x)
	if err != nil {
		return nil, err
	}
	xty, err := matrix.MulVec(xt, y)
	if err != nil {
		return nil, err
	}

	xtxInv, err := matrix.Invert(xtx)
	if err != nil {
		return nil, err
	}

	// beta = (X'X)^-1 X'y
	coeffs, err := matrix.MulVec(xtxInv, xty)
	if err != nil {
		return nil, err
	}

	fitted, err := matrix.MulVec(x, coeffs)
	if err != nil {
		return nil, err
	}
	residuals, err := matrix.Sub(y, fitted)
	if err != nil {
		return nil, err
	}
	ssr := residuals.SumSquares()

	mse := math.Inf(1)
	if df := nobs - nparams; df > 0 {
		mse = ssr / float64(df)
	}

	stdErrors := standardErrors(mse, xtxInv.Diag())

	return &Result{
		coefficients: coeffs,
		stdErrors:    stdErrors,
		ssr:          ssr,
		nobs:         nobs,
		nparams:      nparams,
		fitted:       fitted,
		residuals:    residuals,
		y:            append(matrix.Vector(nil), y...),
	}, nil
}

// standardErrors returns sqrt(mse*d) for each diagonal entry of (X'X)^-1,
// or +Inf where mse is not finite or d is negative or NaN.
func standardErrors(mse float64, diag []float64) []float64 {
	out := make([]float64, len(diag))
	for i, d := range diag {
		if math.IsInf(mse, 0) || math.IsNaN(mse) || !(d >= 0) || math.IsInf(d, 0) {
			out[i] = math.Inf(1)
			continue
		}
		out[i] = math.Sqrt(mse * d)
	}
	return out
}

// FitFlat fits a regression from a row-major flattened design matrix of
// nobs rows and nparams columns. All shape checks run before any algebra.
func FitFlat(x, y []float64, nobs, nparams int) (*Result, error) {
	if nobs <= 0 || nparams <= 0 {
		return nil, fmt.Errorf("ols: nobs=%d nparams=%d: %w", nobs, nparams, emptyDims)
	}
	if len(x) != nobs*nparams {
		return nil, fmt.Errorf("ols: design has %d values, want %d×%d: %w",
			len(x), nobs, nparams, ErrDimensionMismatch)
	}
	if len(y) != nobs {
		return nil, fmt.Errorf("ols: response has %d values, want %d: %w",
			len(y), nobs, ErrDimensionMismatch)
	}

	design, err := matrix.New(nobs, nparams, x)
	if err != nil {
		return nil, err
	}
	return Fit(design, y)
}

// InvertMatrix inverts an n×n matrix given in row-major order and returns
// the inverse in the same layout.
func InvertMatrix(a []float64, n int) ([]float64, error) {
	if n <= 0 || len(a) != n*n {
		return nil, fmt.Errorf("ols: %d values for %d×%d: %w", len(a), n, n, ErrNotSquare)
	}
	m, err := matrix.New(n, n, a)
	if err != nil {
		return nil, err
	}
	inv, err := matrix.Invert(m)
	if err != nil {
		return nil, err
	}
	return inv.RawData(), nil
}

// AddIntercept returns a copy of x with a leading column of ones.
func AddIntercept(x *matrix.Matrix) *matrix.Matrix {
	rows, cols := x.Dims()
	if rows == 0 {
		return matrix.Zeros(0, 0)
	}
	data := make([]float64, 0, rows*(cols+1))
	raw := x.RawData()
	for i := 0; i < rows; i++ {
		data = append(data, 1)
		data = append(data, raw[i*cols:(i+1)*cols]...)
	}
	out, _ := matrix.New(rows, cols+1, data)
	return out
}

// emptyDims matches both ErrDimensionMismatch and ErrEmptyInput.
var emptyDims = dimsError{}

type dimsError struct{}

func (dimsError) Error() string { return "ols: zero observations or parameters" }

func (dimsError) Is(target error) bool {
	return target == ErrDimensionMismatch || target == ErrEmptyInput
}
