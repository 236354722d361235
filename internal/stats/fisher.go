// Package stats is the exact-test and multiple-testing engine consumed by
// the cohort analysis driver.
package stats

import (
	"fmt"
	"math/big"

	fet "github.com/glycerine/golang-fisher-exact"
)

// FisherExact2x2 returns the two-sided Fisher exact p-value for the table
// [[a, b], [c, d]].
func FisherExact2x2(a, b, c, d int) float64 {
	_, _, _, twop := fet.FisherExactTest(a, b, c, d)
	return clamp01(twop)
}

// probTolerance guards the inclusion comparison against floating-point
// noise at the boundary between "as extreme" and "less extreme" tables.
var probTolerance = big.NewRat(1, 100_000_000)

// FisherExactMultiWay computes a two-sided exact test for an m-by-n table
// of non-negative counts by enumerating every table consistent with the
// observed margins and summing the probabilities of tables no more likely
// than the observed one. Probabilities are exact rationals over factorials
// of the margins and cells, so large counts cannot overflow or underflow.
func FisherExactMultiWay(table [][]int) (float64, error) {
	rows := len(table)
	if rows < 2 {
		return 0, fmt.Errorf("need at least two rows, got %d", rows)
	}
	cols := len(table[0])
	if cols < 2 {
		return 0, fmt.Errorf("need at least two columns, got %d", cols)
	}
	rowSums := make([]int, rows)
	colSums := make([]int, cols)
	total := 0
	for i, row := range table {
		if len(row) != cols {
			return 0, fmt.Errorf("row %d has %d cells, want %d", i, len(row), cols)
		}
		for j, n := range row {
			if n < 0 {
				return 0, fmt.Errorf("cell [%d][%d] is negative", i, j)
			}
			rowSums[i] += n
			colSums[j] += n
			total += n
		}
	}
	if total == 0 {
		return 0, fmt.Errorf("table is empty")
	}

	e := &enumerator{
		rows:    rows,
		cols:    cols,
		rowSums: rowSums,
		colSums: colSums,
		facts:   factorials(total),
		cells:   make([]int, rows*cols),
	}
	pObserved := e.tableProb(flatten(table))
	limit := new(big.Rat).Add(pObserved, probTolerance)

	sum := new(big.Rat)
	e.enumerate(0, 0, func(cells []int) {
		p := e.tableProb(cells)
		if p.Cmp(limit) <= 0 {
			sum.Add(sum, p)
		}
	})
	p, _ := sum.Float64()
	return clamp01(p), nil
}

type enumerator struct {
	rows, cols int
	rowSums    []int
	colSums    []int
	facts      []*big.Int
	cells      []int
}

// enumerate performs depth-first search over the free cells (all but the
// last row and last column), deriving the dependent cells by subtraction
// and pruning branches that cannot satisfy the margins.
func (e *enumerator) enumerate(i, j int, visit func(cells []int)) {
	if i == e.rows-1 {
		// Last row is fixed by the column margins.
		for col := 0; col < e.cols; col++ {
			rest := e.colSums[col]
			for row := 0; row < e.rows-1; row++ {
				rest -= e.cells[row*e.cols+col]
			}
			if rest < 0 {
				return
			}
			e.cells[(e.rows-1)*e.cols+col] = rest
		}
		visit(e.cells)
		return
	}
	if j == e.cols-1 {
		// Last cell of the row is fixed by the row margin.
		rest := e.rowSums[i]
		for col := 0; col < e.cols-1; col++ {
			rest -= e.cells[i*e.cols+col]
		}
		if rest < 0 || rest > e.colSums[j] {
			return
		}
		e.cells[i*e.cols+j] = rest
		e.enumerate(i+1, 0, visit)
		return
	}
	used := 0
	for col := 0; col < j; col++ {
		used += e.cells[i*e.cols+col]
	}
	max := e.rowSums[i] - used
	if e.colSums[j] < max {
		max = e.colSums[j]
	}
	for n := 0; n <= max; n++ {
		e.cells[i*e.cols+j] = n
		e.enumerate(i, j+1, visit)
	}
}

// tableProb is the multivariate hypergeometric probability of the table:
// the product of row and column margin factorials over the grand total
// factorial times the product of cell factorials.
func (e *enumerator) tableProb(cells []int) *big.Rat {
	num := new(big.Int).Set(bigOne)
	for _, r := range e.rowSums {
		num.Mul(num, e.facts[r])
	}
	for _, c := range e.colSums {
		num.Mul(num, e.facts[c])
	}
	total := 0
	den := new(big.Int).Set(bigOne)
	for _, n := range cells {
		den.Mul(den, e.facts[n])
		total += n
	}
	den.Mul(den, e.facts[total])
	return new(big.Rat).SetFrac(num, den)
}

var bigOne = big.NewInt(1)

func factorials(n int) []*big.Int {
	facts := make([]*big.Int, n+1)
	facts[0] = big.NewInt(1)
	for i := 1; i <= n; i++ {
		facts[i] = new(big.Int).Mul(facts[i-1], big.NewInt(int64(i)))
	}
	return facts
}

func flatten(table [][]int) []int {
	var out []int
	for _, row := range table {
		out = append(out, row...)
	}
	return out
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
