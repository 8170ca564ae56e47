package matrix

import (
	"strconv"
	"strings"
)

// Matrix is a dense row-major matrix of float64 values.
// Element (i, j) lives at data[i*cols+j].
type Matrix struct {
	rows, cols int
	data       []float64
}

// Vector is an ordered sequence of float64 values.
type Vector []float64

// New creates a rows×cols matrix from a row-major buffer.
// The buffer is copied.
func New(rows, cols int, data []float64) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyInput
	}
	if len(data) != rows*cols {
		return nil, ErrDimensionMismatch
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	return &Matrix{rows: rows, cols: cols, data: buf}, nil
}

// NewFromRows creates a matrix from a slice of equal-length rows.
func NewFromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyInput
	}
	r, c := len(rows), len(rows[0])
	data := make([]float64, 0, r*c)
	for _, row := range rows {
		if len(row) != c {
			return nil, ErrDimensionMismatch
		}
		data = append(data, row...)
	}
	return &Matrix{rows: r, cols: c, data: data}, nil
}

// Zeros returns a rows×cols matrix of zeros. Non-positive dimensions
// produce an empty matrix.
func Zeros(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		return &Matrix{}
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	m := Zeros(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	if m == nil {
		return 0
	}
	return m.rows
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	if m == nil {
		return 0
	}
	return m.cols
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) {
	return m.Rows(), m.Cols()
}

// IsEmpty reports whether the matrix has no elements.
func (m *Matrix) IsEmpty() bool {
	return m == nil || m.rows == 0 || m.cols == 0
}

// IsSquare reports whether the matrix is n×n with n >= 1.
func (m *Matrix) IsSquare() bool {
	return !m.IsEmpty() && m.rows == m.cols
}

// At returns element (i, j). It panics if the index is out of range,
// like a slice index would.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic("matrix: index out of range")
	}
	return m.data[i*m.cols+j]
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) Vector {
	out := make(Vector, m.cols)
	copy(out, m.data[i*m.cols:(i+1)*m.cols])
	return out
}

// Col returns a copy of column j.
func (m *Matrix) Col(j int) Vector {
	out := make(Vector, m.rows)
	for i := 0; i < m.rows; i++ {
		out[i] = m.data[i*m.cols+j]
	}
	return out
}

// Diag returns a copy of the main diagonal.
func (m *Matrix) Diag() Vector {
	n := min(m.rows, m.cols)
	out := make(Vector, n)
	for i := 0; i < n; i++ {
		out[i] = m.data[i*m.cols+i]
	}
	return out
}

// RawData returns a copy of the row-major backing buffer.
func (m *Matrix) RawData() []float64 {
	if m == nil {
		return nil
	}
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// ToRows returns the matrix as a slice of row copies.
func (m *Matrix) ToRows() [][]float64 {
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

// String renders the matrix one bracketed row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.Rows(); i++ {
		sb.WriteByte('[')
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.FormatFloat(m.data[i*m.cols+j], 'g', -1, 64))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

// Dot returns the inner product of two equal-length vectors.
func Dot(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum, nil
}

// Sub returns a - b element-wise.
func Sub(a, b Vector) (Vector, error) {
	if len(a) != len(b) {
		return nil, ErrDimensionMismatch
	}
	out := make(Vector, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out, nil
}

// SumSquares returns the sum of squared elements.
func (v Vector) SumSquares() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return sum
}
