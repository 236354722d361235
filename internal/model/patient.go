package model

import (
	"fmt"
	"strings"
)

// Patient is one individual of the cohort: identifying labels, sex, and the
// phenotype, disease and variant records produced by preprocessing.
// Patients are read-only once constructed.
type Patient struct {
	// ID is the sample label used to look up genotypes on variants.
	ID string
	// MetaLabel is an optional secondary label, e.g. the source cohort ID.
	MetaLabel  string
	Sex        Sex
	Phenotypes []Phenotype
	Diseases   []Disease
	Variants   []*Variant
}

// PresentPhenotypes returns the phenotype records marked observed.
func (p *Patient) PresentPhenotypes() []Phenotype {
	var out []Phenotype
	for _, ph := range p.Phenotypes {
		if ph.IsPresent {
			out = append(out, ph)
		}
	}
	return out
}

// ExcludedPhenotypes returns the phenotype records marked excluded.
func (p *Patient) ExcludedPhenotypes() []Phenotype {
	var out []Phenotype
	for _, ph := range p.Phenotypes {
		if !ph.IsPresent {
			out = append(out, ph)
		}
	}
	return out
}

// identity renders the full record tuple; two patients with the same
// identity are the same member for cohort set semantics.
func (p *Patient) identity() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%s", p.ID, p.MetaLabel, p.Sex)
	for _, ph := range p.Phenotypes {
		fmt.Fprintf(&b, "|P:%s:%t", ph.ID, ph.IsPresent)
	}
	for _, d := range p.Diseases {
		fmt.Fprintf(&b, "|D:%s:%t", d.ID, d.IsPresent)
	}
	for _, v := range p.Variants {
		g, _ := v.GenotypeOf(p.ID)
		fmt.Fprintf(&b, "|V:%s:%s", v.VariantKey(), g)
	}
	return b.String()
}

func (p *Patient) String() string {
	return fmt.Sprintf("Patient(%s, %d phenotypes, %d variants)", p.ID, len(p.Phenotypes), len(p.Variants))
}
