// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// RowMax returns the index and value of the maximum entry of row i of
// a matrix. Ties are broken by the lowest column index.
func RowMax(m mat.RawRowViewer, i int) (int, float64) {
	row := m.RawRowView(i)
	idx := floats.MaxIdx(row)
	return idx, row[idx]
}
