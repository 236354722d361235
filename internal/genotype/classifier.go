// Package genotype maps patients into mutually exclusive genotype
// categories, driven by variant predicates and an allele-counting policy.
package genotype

import (
	"fmt"
	"sort"
	"strings"

	"github.com/genophen/genophen/internal/model"
	"github.com/genophen/genophen/internal/predicate"
)

// Categorization is one category of a classifier's closed category set.
type Categorization struct {
	// ID is the category index, also the contingency-table column.
	ID          int
	Name        string
	Description string
}

// Classifier assigns a patient to exactly one of a declared category set.
//
// Test returns nil when the patient cannot be classified (unknown sex, no
// qualifying alleles for the configured partition, ...). Callers must treat
// nil as "exclude this patient from the table", never as a default category.
type Classifier interface {
	Test(p *model.Patient) *Categorization
	// Categories lists every possible categorization, in column order.
	Categories() []Categorization
	// Summary is a human-readable description of the partition.
	Summary() string
}

// countAlleles sums the patient's allele counts over variants matching the
// target predicate.
func countAlleles(p *model.Patient, target predicate.VariantPredicate) int {
	total := 0
	for _, v := range p.Variants {
		if !target.Test(v) {
			continue
		}
		if g, ok := v.GenotypeOf(p.ID); ok {
			total += g.AlleleCount()
		}
	}
	return total
}

// validatePartitions checks an allele-count partition configuration:
// every element non-negative, at least two partitions, and no element
// repeated across partitions. The error names each duplicated element.
func validatePartitions(partitions [][]int) error {
	if len(partitions) < 2 {
		return fmt.Errorf("at least two partitions are required, got %d", len(partitions))
	}
	counts := make(map[int]int)
	for i, part := range partitions {
		if len(part) == 0 {
			return fmt.Errorf("partition #%d is empty", i)
		}
		for _, n := range part {
			if n < 0 {
				return fmt.Errorf("partition #%d contains a negative allele count %d", i, n)
			}
			counts[n]++
		}
	}
	var dups []string
	for n, c := range counts {
		if c > 1 {
			dups = append(dups, fmt.Sprintf("%d (%dx)", n, c))
		}
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		return fmt.Errorf("allele counts assigned to more than one partition: %s", strings.Join(dups, ", "))
	}
	return nil
}

// partitionName renders "0 alleles", "1 allele", "1 allele OR 2 alleles".
func partitionName(part []int) string {
	names := make([]string, len(part))
	for i, n := range part {
		unit := "alleles"
		if n == 1 {
			unit = "allele"
		}
		names[i] = fmt.Sprintf("%d %s", n, unit)
	}
	return strings.Join(names, " OR ")
}

type alleleCountClassifier struct {
	partitions [][]int
	target     predicate.VariantPredicate
	categories []Categorization
}

// AlleleCount classifies patients by the number of alleles matching the
// target predicate. Each partition is the set of allele counts mapped to
// one category; an unlisted count leaves the patient unclassified.
func AlleleCount(partitions [][]int, target predicate.VariantPredicate) (Classifier, error) {
	if err := validatePartitions(partitions); err != nil {
		return nil, fmt.Errorf("invalid allele count partitions: %w", err)
	}
	if target == nil {
		target = predicate.True()
	}
	c := &alleleCountClassifier{partitions: partitions, target: target}
	for i, part := range partitions {
		c.categories = append(c.categories, Categorization{
			ID:          i,
			Name:        partitionName(part),
			Description: fmt.Sprintf("allele count in %v for %s", part, target.Question()),
		})
	}
	return c, nil
}

func (c *alleleCountClassifier) Test(p *model.Patient) *Categorization {
	count := countAlleles(p, c.target)
	for i, part := range c.partitions {
		for _, n := range part {
			if n == count {
				return &c.categories[i]
			}
		}
	}
	return nil
}

func (c *alleleCountClassifier) Categories() []Categorization {
	return c.categories
}

// Target returns the variant predicate driving the partition.
func (c *alleleCountClassifier) Target() predicate.VariantPredicate {
	return c.target
}

func (c *alleleCountClassifier) Summary() string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return "Allele count: " + strings.Join(names, ", ")
}

// AutosomalDominant classifies patients into the canonical dominant
// partition: zero qualifying alleles vs at least one.
func AutosomalDominant(target predicate.VariantPredicate) Classifier {
	c, err := AlleleCount([][]int{{0}, {1, 2}}, target)
	if err != nil {
		// The fixed partition is valid; an error here is a programming bug.
		panic(err)
	}
	return c
}

// AutosomalRecessive classifies patients into the canonical recessive
// partition: zero or one qualifying allele vs two.
func AutosomalRecessive(target predicate.VariantPredicate) Classifier {
	c, err := AlleleCount([][]int{{0, 1}, {2}}, target)
	if err != nil {
		panic(err)
	}
	return c
}
