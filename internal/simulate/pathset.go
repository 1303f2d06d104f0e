package simulate

import "gonum.org/v1/gonum/mat"

// PathSet holds simulated prices as an (M+1) x I matrix: row t is the
// price at step t for every path, row 0 is S0. A PathSet is never
// modified after Simulate returns it.
type PathSet struct {
	prices *mat.Dense
}

// Steps is M, the number of simulated steps.
func (ps *PathSet) Steps() int {
	r, _ := ps.prices.Dims()
	return r - 1
}

// Paths is I, the number of simulated paths.
func (ps *PathSet) Paths() int {
	_, c := ps.prices.Dims()
	return c
}

// At returns the price of path i at step t.
func (ps *PathSet) At(t, i int) float64 {
	return ps.prices.At(t, i)
}

// Terminal returns a copy of row M.
func (ps *PathSet) Terminal() []float64 {
	return mat.Row(nil, ps.Steps(), ps.prices)
}

// Path returns a copy of the trajectory of path i, steps 0..M.
func (ps *PathSet) Path(i int) []float64 {
	return mat.Col(nil, i, ps.prices)
}

// Matrix exposes the prices for read-only use.
func (ps *PathSet) Matrix() mat.Matrix {
	return ps.prices
}

// Equal reports whether both sets hold bit-identical prices.
func (ps *PathSet) Equal(other *PathSet) bool {
	return mat.Equal(ps.prices, other.prices)
}
