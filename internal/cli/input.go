package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"k8s.io/klog/v2"

	"github.com/sartorproj/goregression/timeseries"
)

// loadColumns reads the named columns from a CSV file with a header row,
// dropping rows where any of them is missing.
func (a *app) loadColumns(path string, columns []string) (*timeseries.Table, error) {
	opts := timeseries.DefaultCSVOptions()
	opts.Columns = columns
	opts.Delimiter = a.cfg.Delimiter()

	table, err := timeseries.LoadTable(path, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	klog.V(1).InfoS("loaded table", "file", path, "columns", columns, "rows", table.Len())
	return table, nil
}

// readMatrix reads a headerless numeric CSV into rows.
func readMatrix(r io.Reader, delimiter rune) ([][]float64, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows [][]float64
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line, j+1, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readMatrixFile(path string, delimiter rune) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readMatrix(f, delimiter)
}

func splitColumns(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// flatten concatenates the named columns of t for hashing.
func flatten(t *timeseries.Table, columns []string) []float64 {
	var out []float64
	for _, c := range columns {
		out = append(out, t.Values[c]...)
	}
	return out
}
