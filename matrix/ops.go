package matrix

// Transpose returns the c×r transpose of an r×c matrix.
// A nil or empty matrix transposes to an empty matrix.
func Transpose(a *Matrix) *Matrix {
	if a.IsEmpty() {
		return &Matrix{}
	}
	out := &Matrix{rows: a.cols, cols: a.rows, data: make([]float64, len(a.data))}
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			out.data[j*a.rows+i] = a.data[i*a.cols+j]
		}
	}
	return out
}

// Multiply returns the product a·b. It requires a.Cols() == b.Rows().
func Multiply(a, b *Matrix) (*Matrix, error) {
	if a.IsEmpty() || b.IsEmpty() {
		return nil, ErrEmptyInput
	}
	if a.cols != b.rows {
		return nil, ErrDimensionMismatch
	}

	out := Zeros(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < b.cols; j++ {
			sum := 0.0
			for k := 0; k < a.cols; k++ {
				sum += a.data[i*a.cols+k] * b.data[k*b.cols+j]
			}
			out.data[i*b.cols+j] = sum
		}
	}
	return out, nil
}

// MulVec returns the matrix-vector product a·x. It requires len(x) == a.Cols().
func MulVec(a *Matrix, x Vector) (Vector, error) {
	if a.IsEmpty() {
		return nil, ErrEmptyInput
	}
	if len(x) != a.cols {
		return nil, ErrDimensionMismatch
	}

	out := make(Vector, a.rows)
	for i := 0; i < a.rows; i++ {
		row := a.data[i*a.cols : (i+1)*a.cols]
		sum := 0.0
		for k, v := range row {
			sum += v * x[k]
		}
		out[i] = sum
	}
	return out, nil
}
