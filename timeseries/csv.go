package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNoData is returned when a CSV yields no usable rows.
var ErrNoData = errors.New("no valid data found in CSV")

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string   // Column name for dates (optional)
	ValueColumn string   // Column name for values (default: "y")
	Columns     []string // Columns to load together (LoadTable)
	DateFormat  string   // Date format (default: "2006-01-02")
	HasHeader   bool     // Whether CSV has header row (default: true)
	Delimiter   rune     // Field delimiter (default: ',')
	SkipRows    int      // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueColumn: "y",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// Table is a set of equally long numeric columns read from one CSV.
// Rows where any requested column is missing or non-numeric are dropped,
// so columns stay aligned.
type Table struct {
	Columns    []string
	Values     map[string][]float64
	Timestamps []time.Time
}

// Len returns the number of aligned rows.
func (t *Table) Len() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Values[t.Columns[0]])
}

// Series returns the named column as a Series.
func (t *Table) Series(name string) (*Series, error) {
	values, ok := t.Values[name]
	if !ok {
		return nil, fmt.Errorf("column %q not loaded", name)
	}
	s := &Series{Values: values, Name: name}
	if len(t.Timestamps) == len(values) {
		s.Timestamps = t.Timestamps
	}
	return s, nil
}

// LoadCSV loads a single-column time series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a single-column time series from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	single := *opts
	single.Columns = []string{opts.ValueColumn}
	if opts.ValueColumn == "" {
		single.Columns = []string{"y"}
	}

	table, err := LoadTableFromReader(r, &single)
	if err != nil {
		return nil, err
	}
	s, err := table.Series(table.Columns[0])
	if err != nil {
		return nil, err
	}
	if s.Timestamps == nil {
		return NewNamed(s.Name, s.Values), nil
	}
	return s, nil
}

// LoadTable loads several aligned numeric columns from a CSV file.
func LoadTable(filename string, opts *CSVOptions) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadTableFromReader(file, opts)
}

// LoadTableFromReader loads opts.Columns from r. Without a header, columns
// are addressed by their zero-based index ("0", "1", ...).
func LoadTableFromReader(r io.Reader, opts *CSVOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	if len(opts.Columns) == 0 {
		return nil, errors.New("no columns requested")
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	index := make(map[string]int)
	dateIdx := -1

	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		for i, h := range header {
			h = clean(h)
			index[h] = i
			switch {
			case opts.DateColumn != "" && h == opts.DateColumn:
				dateIdx = i
			case opts.DateColumn == "" && dateIdx == -1 && isDateHeader(h):
				dateIdx = i
			}
		}
	}

	cols := make([]int, len(opts.Columns))
	for i, name := range opts.Columns {
		idx, ok := index[name]
		if !ok && !opts.HasHeader {
			n, err := strconv.Atoi(name)
			if err == nil && n >= 0 {
				idx, ok = n, true
			}
		}
		if !ok {
			return nil, fmt.Errorf("column %q not found", name)
		}
		cols[i] = idx
	}

	table := &Table{
		Columns: append([]string(nil), opts.Columns...),
		Values:  make(map[string][]float64, len(opts.Columns)),
	}
	allDated := dateIdx >= 0
	row := make([]float64, len(cols))

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		ok := true
		for i, idx := range cols {
			v, valid := parseValue(record, idx)
			if !valid {
				ok = false
				break
			}
			row[i] = v
		}
		if !ok {
			continue
		}

		for i, name := range table.Columns {
			table.Values[name] = append(table.Values[name], row[i])
		}

		if allDated {
			var ts time.Time
			err := errors.New("missing date")
			if dateIdx < len(record) {
				ts, err = parseDate(record[dateIdx], opts.DateFormat)
			}
			if err != nil {
				allDated = false
				table.Timestamps = nil
			} else {
				table.Timestamps = append(table.Timestamps, ts)
			}
		}
	}

	if table.Len() == 0 {
		return nil, ErrNoData
	}
	if !allDated {
		table.Timestamps = nil
	}
	return table, nil
}

// SaveCSV writes a series to a CSV file with a "ds,y" or "index,y" header.
func SaveCSV(series *Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCSV(series, file)
}

// WriteCSV writes a series to w with a "ds,y" or "index,y" header.
func WriteCSV(series *Series, w io.Writer) error {
	writer := bufio.NewWriter(w)
	dated := len(series.Timestamps) == len(series.Values)

	if dated {
		writer.WriteString("ds,y\n")
	} else {
		writer.WriteString("index,y\n")
	}

	for i, v := range series.Values {
		if dated {
			writer.WriteString(series.Timestamps[i].Format("2006-01-02"))
		} else {
			writer.WriteString(strconv.Itoa(i + 1))
		}
		writer.WriteString(",")
		writer.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		writer.WriteString("\n")
	}

	return writer.Flush()
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

func isDateHeader(h string) bool {
	switch h {
	case "ds", "date", "Date", "Month", "Year", "timestamp":
		return true
	}
	return false
}

func parseValue(record []string, idx int) (float64, bool) {
	if idx < 0 || idx >= len(record) {
		return 0, false
	}
	s := clean(record[idx])
	switch s {
	case "", "NA", "NaN", "null":
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseDate(s, preferred string) (time.Time, error) {
	s = clean(s)
	formats := []string{
		preferred,
		"2006-01-02",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006/01/02",
		"01/02/2006",
		"02-Jan-2006",
		"2006",
	}
	var lastErr error
	for _, layout := range formats {
		if layout == "" {
			continue
		}
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
