package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// denseRows copies row-major data into a matrix. X must not be empty.
func denseRows(X [][]float64) *mat.Dense {
	d := mat.NewDense(len(X), len(X[0]), nil)
	for i, row := range X {
		d.SetRow(i, row)
	}
	return d
}

// columnStats returns per-column means and population standard deviations.
// Constant columns get a standard deviation of 1 so they standardise to 0.
func columnStats(X [][]float64) (means, stds []float64) {
	if len(X) == 0 {
		return nil, nil
	}
	d := denseRows(X)
	_, k := d.Dims()
	means = make([]float64, k)
	stds = make([]float64, k)
	col := make([]float64, len(X))
	for j := 0; j < k; j++ {
		mat.Col(col, j, d)
		means[j], stds[j] = stat.PopMeanStdDev(col, nil)
		if stds[j] == 0 {
			stds[j] = 1
		}
	}
	return means, stds
}

func standardize(X [][]float64, means, stds []float64) [][]float64 {
	Z := make([][]float64, len(X))
	for i, row := range X {
		Z[i] = make([]float64, len(row))
		for j, v := range row {
			Z[i][j] = (v - means[j]) / stds[j]
		}
	}
	return Z
}

// leastSquares solves min ||A x - b|| for x. A has one row per observation
// and must have at least as many rows as columns.
func leastSquares(A [][]float64, b []float64) ([]float64, error) {
	if len(A) == 0 || len(A) != len(b) {
		return nil, fmt.Errorf("least squares: %d rows for %d targets", len(A), len(b))
	}
	var x mat.VecDense
	if err := x.SolveVec(denseRows(A), mat.NewVecDense(len(b), append([]float64(nil), b...))); err != nil {
		return nil, err
	}
	return mat.Col(nil, 0, &x), nil
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
