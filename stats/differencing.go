package stats

import (
	"errors"
	"fmt"

	"github.com/sartorproj/goregression/timeseries"
)

// Unit-root tests accepted by IntegrationOrder.
const (
	UnitRootADF  = "adf"
	UnitRootKPSS = "kpss"
)

// IntegrationOrder returns the number of first differences needed before
// series passes the chosen stationarity test, at most maxD (default 2).
// testType is UnitRootADF (default) or UnitRootKPSS. If the differenced series
// becomes too short to test, the differences taken so far are returned.
func IntegrationOrder(series *timeseries.Series, maxD int, testType string) (int, error) {
	if maxD <= 0 {
		maxD = 2
	}
	if testType == "" {
		testType = UnitRootADF
	}

	current := series
	for d := 0; d < maxD; d++ {
		stationary, err := isStationary(current, testType)
		if errors.Is(err, ErrInsufficientData) {
			return d, nil
		}
		if err != nil {
			return 0, err
		}
		if stationary {
			return d, nil
		}
		current = current.Diff()
	}

	return maxD, nil
}

func isStationary(series *timeseries.Series, testType string) (bool, error) {
	switch testType {
	case UnitRootADF:
		res, err := ADF(series, DefaultADFOptions())
		if err != nil {
			return false, err
		}
		return res.IsStationary, nil
	case UnitRootKPSS:
		res, err := KPSS(series, RegressionConstant, 0)
		if err != nil {
			return false, err
		}
		return res.IsStationary, nil
	}
	return false, fmt.Errorf("stats: unknown test %q", testType)
}
