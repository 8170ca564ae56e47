// Package goregression is an ordinary least squares regression engine with
// Dickey-Fuller stationarity classification.
//
// The module is organised into several packages:
//
//   - matrix: dense row-major matrices and Gauss-Jordan inversion with
//     partial pivoting
//   - ols: normal-equation regression with standard errors and fit
//     diagnostics
//   - stats: ADF, KPSS and Phillips-Perron tests, the p-value lookup
//     table, and residual diagnostics
//   - pairs: hedge ratios, spreads, half-life and z-scores for two price
//     series
//   - timeseries: the Series type and CSV loading
//
// # Quick Start
//
//	x, _ := matrix.NewFromRows([][]float64{{1, 1}, {1, 2}, {1, 3}, {1, 4}})
//	res, err := ols.Fit(x, []float64{4, 4, 8, 8})
//	if errors.Is(err, matrix.ErrSingularMatrix) {
//	    // collinear regressors
//	}
//	fmt.Println(res.Coefficients(), res.StdErrors())
//
//	verdict := stats.ClassifyStationarity(-3.2)
//	fmt.Println(verdict.PValue, verdict.IsStationary)
//
// The goregression command (cmd/goregression) exposes the same
// operations over CSV files.
package goregression
