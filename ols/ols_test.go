package ols

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/goregression/matrix"
)

func design(t *testing.T, rows [][]float64) *matrix.Matrix {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)
	return m
}

func TestFitClosedForm(t *testing.T) {
	x := design(t, [][]float64{{1, 1}, {1, 2}, {1, 3}})
	y := matrix.Vector{2, 4, 6}

	res, err := Fit(x, y)
	require.NoError(t, err)

	coeffs := res.Coefficients()
	assert.InDelta(t, 0.0, coeffs[0], 1e-9)
	assert.InDelta(t, 2.0, coeffs[1], 1e-9)
	assert.InDelta(t, 0.0, res.SSR(), 1e-12)
	assert.Equal(t, 3, res.NObs())
	assert.Equal(t, 2, res.NParams())
	assert.Equal(t, 1, res.DF())
}

func TestFitExactRecovery(t *testing.T) {
	beta := []float64{1.5, -2, 0.25, 4}
	rows := make([][]float64, 30)
	y := make(matrix.Vector, len(rows))
	for i := range rows {
		f := float64(i)
		rows[i] = []float64{1, f, math.Sin(f), f*f/10 - 3}
		for j, b := range beta {
			y[i] += rows[i][j] * b
		}
	}

	res, err := Fit(design(t, rows), y)
	require.NoError(t, err)

	for i, c := range res.Coefficients() {
		assert.InDelta(t, beta[i], c, 1e-9, "coefficient %d", i)
	}
	assert.InDelta(t, 0.0, res.SSR(), 1e-15*float64(len(rows))+1e-12)
}

func TestFitStandardErrors(t *testing.T) {
	rows := [][]float64{{1, 1}, {1, 2}, {1, 3}, {1, 4}}
	y := matrix.Vector{4, 4, 8, 8}

	res, err := Fit(design(t, rows), y)
	require.NoError(t, err)

	// slope = Sxy/Sxx = 8/5, intercept = 6 - 1.6*2.5 = 2
	coeffs := res.Coefficients()
	assert.InDelta(t, 2.0, coeffs[0], 1e-12)
	assert.InDelta(t, 1.6, coeffs[1], 1e-12)

	// residuals: 0.4, -1.2, 1.2, -0.4
	assert.InDelta(t, 3.2, res.SSR(), 1e-12)

	mse := res.SSR() / 2
	se := res.StdErrors()
	assert.InDelta(t, math.Sqrt(mse/5), se[1], 1e-12)
	assert.InDelta(t, math.Sqrt(mse*(1.0/4+2.5*2.5/5)), se[0], 1e-12)
}

func TestFitMatchesGonum(t *testing.T) {
	rows := [][]float64{
		{1, 0.5, 2.1},
		{1, 1.7, 0.3},
		{1, 2.2, 1.9},
		{1, 3.1, 4.2},
		{1, 4.8, 2.2},
		{1, 5.0, 3.3},
		{1, 6.4, 1.1},
	}
	y := []float64{1.2, 2.9, 3.1, 6.2, 5.3, 6.8, 5.9}

	res, err := Fit(design(t, rows), y)
	require.NoError(t, err)

	flat := make([]float64, 0, 21)
	for _, r := range rows {
		flat = append(flat, r...)
	}
	var beta mat.VecDense
	require.NoError(t, beta.SolveVec(mat.NewDense(7, 3, flat), mat.NewVecDense(7, y)))

	for i, c := range res.Coefficients() {
		assert.InDelta(t, beta.AtVec(i), c, 1e-9)
	}
}

func TestFitSingular(t *testing.T) {
	x := design(t, [][]float64{{1, 2, 2}, {1, 3, 3}, {1, 5, 5}, {1, 7, 7}})

	res, err := Fit(x, matrix.Vector{1, 2, 3, 4})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrSingularMatrix))
	assert.Equal(t, matrix.ErrSingularMatrix, err, "singular error is propagated unchanged")
}

func TestFitTooFewObservations(t *testing.T) {
	// nobs < nparams makes X'X rank deficient
	x := design(t, [][]float64{{1, 2, 3}, {1, 5, 7}})
	_, err := Fit(x, matrix.Vector{1, 2})
	assert.ErrorIs(t, err, ErrSingularMatrix)
}

func TestFitExactlyDetermined(t *testing.T) {
	x := design(t, [][]float64{{1, 1}, {1, 3}})
	res, err := Fit(x, matrix.Vector{3, 7})
	require.NoError(t, err)

	coeffs := res.Coefficients()
	assert.InDelta(t, 1.0, coeffs[0], 1e-12)
	assert.InDelta(t, 2.0, coeffs[1], 1e-12)
	for _, se := range res.StdErrors() {
		assert.True(t, math.IsInf(se, 1))
	}
	for _, p := range res.PValues() {
		assert.True(t, math.IsNaN(p))
	}
	assert.Equal(t, 0, res.DF())
}

func TestFitDimensionMismatch(t *testing.T) {
	x := design(t, [][]float64{{1, 1}, {1, 2}, {1, 3}})

	_, err := Fit(x, matrix.Vector{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Fit(nil, matrix.Vector{1})
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Fit(x, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestStandardErrors(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		name string
		mse  float64
		diag []float64
		want []float64
	}{
		{"finite", 4, []float64{1, 0.25, 0}, []float64{2, 1, 0}},
		{"negative diagonal", 4, []float64{1, -0.25}, []float64{2, inf}},
		{"nan diagonal", 4, []float64{math.NaN(), 1}, []float64{inf, 2}},
		{"infinite diagonal", 4, []float64{inf, 1}, []float64{inf, 2}},
		{"nan mse", math.NaN(), []float64{1, 1}, []float64{inf, inf}},
		{"infinite mse", inf, []float64{1}, []float64{inf}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, standardErrors(tt.mse, tt.diag))
		})
	}
}

func TestFitFlat(t *testing.T) {
	res, err := FitFlat([]float64{1, 1, 1, 2, 1, 3}, []float64{2, 4, 6}, 3, 2)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.Coefficients()[1], 1e-9)

	tests := []struct {
		name          string
		x, y          []float64
		nobs, nparams int
		want          error
	}{
		{"short design", []float64{1, 1, 1}, []float64{1, 2, 3}, 3, 2, ErrDimensionMismatch},
		{"short response", []float64{1, 1, 1, 2, 1, 3}, []float64{1, 2}, 3, 2, ErrDimensionMismatch},
		{"zero nobs", nil, nil, 0, 2, ErrDimensionMismatch},
		{"zero nparams", nil, []float64{1}, 1, 0, ErrEmptyInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FitFlat(tc.x, tc.y, tc.nobs, tc.nparams)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.NotErrorIs(t, err, ErrSingularMatrix)
		})
	}

	_, err = FitFlat([]float64{1, 1, 1, 1}, []float64{1, 2}, 2, 2)
	assert.ErrorIs(t, err, ErrSingularMatrix)
}

func TestInvertMatrix(t *testing.T) {
	inv, err := InvertMatrix([]float64{0, 1, 1, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 1, 0}, inv)

	_, err = InvertMatrix([]float64{1, 2, 3}, 2)
	assert.ErrorIs(t, err, ErrNotSquare)

	_, err = InvertMatrix([]float64{1, 2, 2, 4}, 2)
	assert.ErrorIs(t, err, ErrSingularMatrix)
}

func TestAddIntercept(t *testing.T) {
	x := design(t, [][]float64{{2}, {3}})
	xi := AddIntercept(x)
	assert.Equal(t, []float64{1, 2, 1, 3}, xi.RawData())
	assert.Equal(t, []float64{2, 3}, x.RawData())
}

func TestResultDiagnostics(t *testing.T) {
	rows := make([][]float64, 50)
	y := make(matrix.Vector, 50)
	for i := range rows {
		f := float64(i)
		rows[i] = []float64{1, f}
		y[i] = 5 + 0.5*f + float64(i%5-2)*0.3
	}

	res, err := Fit(design(t, rows), y)
	require.NoError(t, err)

	r2 := res.RSquared()
	assert.Greater(t, r2, 0.95)
	assert.LessOrEqual(t, r2, 1.0)
	assert.Less(t, res.AdjRSquared(), r2)

	pv := res.PValues()
	require.Len(t, pv, 2)
	for _, p := range pv {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
	assert.Less(t, pv[1], 1e-6, "slope is highly significant")

	ts := res.TStats()
	assert.InDelta(t, res.Coefficients()[1]/res.StdErrors()[1], ts[1], 1e-12)

	assert.Less(t, res.AIC(), res.BIC())
	assert.InDelta(t, res.SSR()/48, res.Sigma2(), 1e-12)

	resid := res.Residuals()
	fitted := res.Fitted()
	for i := range y {
		assert.InDelta(t, y[i], resid[i]+fitted[i], 1e-12)
	}

	p, err := res.Predict([]float64{1, 10})
	require.NoError(t, err)
	assert.InDelta(t, fitted[10], p, 1e-12)

	assert.Contains(t, res.String(), "nobs=50")
}

func TestResultIsImmutable(t *testing.T) {
	res, err := Fit(design(t, [][]float64{{1, 1}, {1, 2}, {1, 3}}), matrix.Vector{2, 4, 6})
	require.NoError(t, err)

	c := res.Coefficients()
	c[0] = 99
	assert.NotEqual(t, 99.0, res.Coefficients()[0])

	se := res.StdErrors()
	se[1] = -1
	assert.NotEqual(t, -1.0, res.StdErrors()[1])
}

func TestFitConcurrent(t *testing.T) {
	x := design(t, [][]float64{{1, 1}, {1, 2}, {1, 3}, {1, 4}})
	y := matrix.Vector{3, 5, 7, 9}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := Fit(x, y)
			if err != nil {
				errs <- err
				return
			}
			if math.Abs(res.Coefficients()[1]-2) > 1e-9 {
				errs <- errors.New("unexpected slope")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
