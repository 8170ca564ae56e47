// Package matrix provides the small dense linear algebra kernel used by the
// regression engine.
//
// Matrices are stored row-major in a single flat buffer. Every operation
// allocates its result, so inputs are never modified and a Matrix can be
// shared freely between goroutines once constructed.
//
// # Construction
//
//	a, err := matrix.New(2, 2, []float64{4, 7, 2, 6})
//	id := matrix.Identity(3)
//	b, err := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}})
//
// # Operations
//
//	at := matrix.Transpose(a)
//	c, err := matrix.Multiply(a, at)  // ErrDimensionMismatch if a.Cols() != at.Rows()
//	v, err := matrix.MulVec(a, []float64{1, 1})
//
// # Inversion
//
// Invert uses Gauss-Jordan elimination with partial pivoting on the
// augmented matrix [A | I]. A pivot smaller than SingularTolerance in
// magnitude stops the elimination with ErrSingularMatrix:
//
//	inv, err := matrix.Invert(a)
//	if errors.Is(err, matrix.ErrSingularMatrix) {
//	    // drop a collinear column and retry
//	}
package matrix
