package matrix

import "math"

// SingularTolerance is the smallest pivot magnitude Invert accepts.
const SingularTolerance = 1e-12

// Invert returns the inverse of a square matrix using Gauss-Jordan
// elimination with partial pivoting.
func Invert(a *Matrix) (*Matrix, error) {
	if !a.IsSquare() {
		return nil, ErrNotSquare
	}

	n := a.rows
	w := 2 * n

	// Augmented matrix [A|I], one flat buffer of n rows by 2n columns
	aug := make([]float64, n*w)
	for i := 0; i < n; i++ {
		copy(aug[i*w:i*w+n], a.data[i*n:(i+1)*n])
		aug[i*w+n+i] = 1
	}

	for i := 0; i < n; i++ {
		// Find pivot
		maxRow := i
		maxVal := math.Abs(aug[i*w+i])
		for k := i + 1; k < n; k++ {
			if v := math.Abs(aug[k*w+i]); v > maxVal {
				maxRow, maxVal = k, v
			}
		}
		if !(maxVal >= SingularTolerance) {
			return nil, ErrSingularMatrix
		}
		if maxRow != i {
			swapRows(aug, w, i, maxRow)
		}

		// Scale pivot row
		pivotRow := aug[i*w : (i+1)*w]
		pivot := pivotRow[i]
		for j := range pivotRow {
			pivotRow[j] /= pivot
		}

		// Eliminate column
		for k := 0; k < n; k++ {
			if k == i {
				continue
			}
			row := aug[k*w : (k+1)*w]
			factor := row[i]
			if factor == 0 {
				continue
			}
			for j := range row {
				row[j] -= factor * pivotRow[j]
			}
		}
	}

	// Extract inverse
	inv := Zeros(n, n)
	for i := 0; i < n; i++ {
		copy(inv.data[i*n:(i+1)*n], aug[i*w+n:(i+1)*w])
	}
	return inv, nil
}

func swapRows(buf []float64, width, i, j int) {
	ri := buf[i*width : (i+1)*width]
	rj := buf[j*width : (j+1)*width]
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}
