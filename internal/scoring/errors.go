package scoring

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySupplierSet is returned when a ranking is requested over zero suppliers.
	ErrEmptySupplierSet = errors.New("no suppliers to rank")

	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrNonFinite is returned when a total or matrix value is NaN or infinite.
	ErrNonFinite = errors.New("value is not finite")
)

// DegenerateInputError reports a criterion column that is all zero or a row
// whose distances to both the ideal and the nadir are zero. Row is -1 for
// column-level problems.
type DegenerateInputError struct {
	Criterion string
	Row       int
	Reason    string
}

func (e *DegenerateInputError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("degenerate input at row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("degenerate criterion %q: %s", e.Criterion, e.Reason)
}

// InvalidPairwiseEntryError reports a pairwise judgment that is non-positive
// or outside [1/9, 9].
type InvalidPairwiseEntryError struct {
	Row   int
	Col   int
	Value float64
}

func (e *InvalidPairwiseEntryError) Error() string {
	return fmt.Sprintf("pairwise entry [%d][%d] = %g outside [1/9, 9]", e.Row, e.Col, e.Value)
}
