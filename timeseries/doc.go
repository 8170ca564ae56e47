// Package timeseries provides the Series type and CSV loading used by the
// stationarity tests, the pairs analysis and the command line tool.
//
// # Creating a Series
//
//	prices := timeseries.NewNamed("AAA", []float64{100, 102, 105, 103, 108})
//
// # Loading from CSV
//
// Load one column:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.ValueColumn = "close"
//	series, err := timeseries.LoadCSV("prices.csv", opts)
//
// Load several aligned columns, dropping rows where any of them is
// missing (NA, NaN, null or blank):
//
//	opts.Columns = []string{"AAA", "BBB"}
//	table, err := timeseries.LoadTable("prices.csv", opts)
//	a, _ := table.Series("AAA")
//
// # Transformations
//
//	diff := series.Diff()          // y[t] - y[t-1]
//	lagged := series.Lag(1)        // y[t-1], aligned with diff
//	logged := series.Log()         // natural log, NaN for non-positive values
//	z := series.Normalize()        // z-scores
//	clean := series.Finite()       // drop NaN and ±Inf
package timeseries
