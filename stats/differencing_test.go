package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goregression/timeseries"
)

func TestIntegrationOrder(t *testing.T) {
	tests := []struct {
		name   string
		series *timeseries.Series
		test   string
		want   int
	}{
		{"stationary adf", ar1(1, 200, 0.3), UnitRootADF, 0},
		{"stationary kpss", ar1(1, 200, 0.3), UnitRootKPSS, 0},
		{"random walk adf", ar1(3, 200, 1.0), UnitRootADF, 1},
		{"random walk kpss", ar1(3, 200, 1.0), UnitRootKPSS, 1},
		{"default test", ar1(3, 200, 1.0), "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := IntegrationOrder(tt.series, 2, tt.test)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestIntegrationOrderLimits(t *testing.T) {
	// maxD caps the answer
	d, err := IntegrationOrder(ar1(3, 200, 1.0), 1, UnitRootADF)
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	// too short to test at all
	d, err = IntegrationOrder(timeseries.New([]float64{1, 2, 3}), 2, UnitRootADF)
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	_, err = IntegrationOrder(ar1(1, 50, 0.3), 2, "pp")
	assert.Error(t, err)
}
