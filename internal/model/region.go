// Package model holds the immutable domain records shared by the analysis
// layers: phenotypes, diseases, variants with transcript annotations,
// patients, cohorts, and protein metadata. Values are built once by
// preprocessing and never mutated afterwards.
package model

import "fmt"

// Region is a 0-based half-open coordinate span, used both for genomic
// intervals and for amino-acid spans on a protein.
type Region struct {
	Start int
	End   int
}

// NewRegion validates the coordinates and returns the region.
func NewRegion(start, end int) (Region, error) {
	if start < 0 {
		return Region{}, fmt.Errorf("region start must be non-negative, got %d", start)
	}
	if end < start {
		return Region{}, fmt.Errorf("region end %d is before start %d", end, start)
	}
	return Region{Start: start, End: end}, nil
}

// Len returns the number of positions spanned by the region.
func (r Region) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the region spans no positions.
func (r Region) IsEmpty() bool {
	return r.End == r.Start
}

// Contains returns true if pos falls within the region.
func (r Region) Contains(pos int) bool {
	return pos >= r.Start && pos < r.End
}

// OverlapsWith returns true if the two regions share at least one position.
// Empty regions overlap nothing, including themselves.
func (r Region) OverlapsWith(other Region) bool {
	return max(r.Start, other.Start) < min(r.End, other.End)
}

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}
