package matrix

import "errors"

// Sentinel errors returned by the matrix package. Callers match them with
// errors.Is; they are returned unwrapped from this package.
var (
	// ErrDimensionMismatch indicates incompatible operand shapes, e.g.
	// Multiply where a.Cols() != b.Rows(), or a flat buffer whose length
	// does not equal rows*cols.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNotSquare is returned when a square matrix is required.
	ErrNotSquare = errors.New("matrix: matrix is not square")

	// ErrSingularMatrix is returned when the largest available pivot falls
	// below SingularTolerance during inversion.
	ErrSingularMatrix = errors.New("matrix: singular matrix")

	// ErrEmptyInput indicates a zero row or column count.
	ErrEmptyInput = errors.New("matrix: empty input")
)
