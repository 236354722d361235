package genotype

import (
	"fmt"
	"strings"

	"github.com/genophen/genophen/internal/model"
	"github.com/genophen/genophen/internal/predicate"
)

type monoallelicClassifier struct {
	a, b       predicate.VariantPredicate
	categories []Categorization
}

// Monoallelic classifies patients carrying exactly one qualifying allele by
// whether that allele satisfies predicate A or predicate B. Patients with
// zero or more than one qualifying allele are left unclassified, as are
// alleles matching both predicates.
func Monoallelic(a, b predicate.VariantPredicate, nameA, nameB string) Classifier {
	return &monoallelicClassifier{
		a: a,
		b: b,
		categories: []Categorization{
			{ID: 0, Name: nameA, Description: fmt.Sprintf("one allele matching %s", a.Question())},
			{ID: 1, Name: nameB, Description: fmt.Sprintf("one allele matching %s", b.Question())},
		},
	}
}

func (c *monoallelicClassifier) Test(p *model.Patient) *Categorization {
	countA := countAlleles(p, predicate.And(c.a, predicate.Not(c.b)))
	countB := countAlleles(p, predicate.And(c.b, predicate.Not(c.a)))
	if countA+countB != 1 {
		return nil
	}
	if countA == 1 {
		return &c.categories[0]
	}
	return &c.categories[1]
}

func (c *monoallelicClassifier) Categories() []Categorization {
	return c.categories
}

// Target returns the union of the two allele predicates.
func (c *monoallelicClassifier) Target() predicate.VariantPredicate {
	return predicate.Or(c.a, c.b)
}

func (c *monoallelicClassifier) Summary() string {
	return fmt.Sprintf("Monoallelic: %s, %s", c.categories[0].Name, c.categories[1].Name)
}

type biallelicClassifier struct {
	a, b       predicate.VariantPredicate
	partitions [][]int
	categories []Categorization
}

// Biallelic classifies patients carrying exactly two qualifying alleles
// (homozygous or compound heterozygous) by testing each allele against
// predicates A and B, yielding A/A, A/B and B/B genotype groups.
//
// partitions groups the three genotype indices (0 = A/A, 1 = A/B, 2 = B/B)
// into categories; nil keeps the default three-way split. The same
// validation rules apply as for AlleleCount.
func Biallelic(a, b predicate.VariantPredicate, nameA, nameB string, partitions [][]int) (Classifier, error) {
	if partitions == nil {
		partitions = [][]int{{0}, {1}, {2}}
	}
	if err := validatePartitions(partitions); err != nil {
		return nil, fmt.Errorf("invalid biallelic partitions: %w", err)
	}
	for i, part := range partitions {
		for _, n := range part {
			if n > 2 {
				return nil, fmt.Errorf("invalid biallelic partitions: partition #%d refers to genotype index %d, the only indices are 0 (%s/%s), 1 (%s/%s) and 2 (%s/%s)",
					i, n, nameA, nameA, nameA, nameB, nameB, nameB)
			}
		}
	}
	cellNames := []string{nameA + "/" + nameA, nameA + "/" + nameB, nameB + "/" + nameB}
	c := &biallelicClassifier{a: a, b: b, partitions: partitions}
	for i, part := range partitions {
		names := make([]string, len(part))
		for j, n := range part {
			names[j] = cellNames[n]
		}
		c.categories = append(c.categories, Categorization{
			ID:          i,
			Name:        strings.Join(names, " OR "),
			Description: fmt.Sprintf("two alleles partitioned by %s vs %s", a.Question(), b.Question()),
		})
	}
	return c, nil
}

func (c *biallelicClassifier) Test(p *model.Patient) *Categorization {
	countA := countAlleles(p, predicate.And(c.a, predicate.Not(c.b)))
	countB := countAlleles(p, predicate.And(c.b, predicate.Not(c.a)))
	if countA+countB != 2 {
		return nil
	}
	// countB is the genotype index: 0 -> A/A, 1 -> A/B, 2 -> B/B.
	for i, part := range c.partitions {
		for _, n := range part {
			if n == countB {
				return &c.categories[i]
			}
		}
	}
	return nil
}

func (c *biallelicClassifier) Categories() []Categorization {
	return c.categories
}

// Target returns the union of the two allele predicates.
func (c *biallelicClassifier) Target() predicate.VariantPredicate {
	return predicate.Or(c.a, c.b)
}

func (c *biallelicClassifier) Summary() string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return "Biallelic genotype: " + strings.Join(names, ", ")
}
