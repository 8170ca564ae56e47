// Package stats provides unit-root tests and residual diagnostics built on
// the ols regression engine.
//
// # Interpreting a Dickey-Fuller statistic
//
// ClassifyStationarity turns a test statistic into a p-value by linear
// interpolation in DefaultCriticalValues (clamped at both ends) and calls
// the series stationary when the statistic is below the 5% critical value:
//
//	res := stats.ClassifyStationarity(-3.2)
//	// res.PValue ≈ 0.04, res.IsStationary == true
//
// # Stationarity Tests
//
//	// Augmented Dickey-Fuller, H0: unit root
//	adf, err := stats.ADF(series, stats.DefaultADFOptions())
//
//	// KPSS, H0: stationary around a level ("c") or trend ("ct")
//	kpss, err := stats.KPSS(series, stats.RegressionConstant, 0)
//
//	// Phillips-Perron, H0: unit root
//	pp, err := stats.PhillipsPerron(series, 0)
//
//	// differences needed before the ADF test rejects a unit root
//	d, err := stats.IntegrationOrder(series, 2, stats.UnitRootADF)
//
// Every auxiliary regression is an ols.Fit, so a singular design surfaces
// as matrix.ErrSingularMatrix.
//
// # Residual Diagnostics
//
//	lb, err := stats.LjungBox(residuals, 10, 0)
//	dw := stats.DurbinWatson(residuals.Values)
package stats
