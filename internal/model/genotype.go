package model

import "sort"

// Genotype is the zygosity call for one sample at one variant.
type Genotype int8

const (
	NoCall Genotype = iota
	HomozygousReference
	Heterozygous
	HomozygousAlternate
	Hemizygous
)

func (g Genotype) String() string {
	switch g {
	case HomozygousReference:
		return "0/0"
	case Heterozygous:
		return "0/1"
	case HomozygousAlternate:
		return "1/1"
	case Hemizygous:
		return "1"
	default:
		return "."
	}
}

// AlleleCount returns the number of alternate alleles implied by the call.
func (g Genotype) AlleleCount() int {
	switch g {
	case Heterozygous, Hemizygous:
		return 1
	case HomozygousAlternate:
		return 2
	default:
		return 0
	}
}

// Genotypes is an immutable sample-to-genotype map with O(log n) lookup.
// Sample labels are kept sorted; build it once with NewGenotypes.
type Genotypes struct {
	samples []string
	calls   []Genotype
}

// NewGenotypes builds the map from per-sample calls. The input map is copied.
func NewGenotypes(calls map[string]Genotype) Genotypes {
	samples := make([]string, 0, len(calls))
	for s := range calls {
		samples = append(samples, s)
	}
	sort.Strings(samples)
	gs := Genotypes{samples: samples, calls: make([]Genotype, len(samples))}
	for i, s := range samples {
		gs.calls[i] = calls[s]
	}
	return gs
}

// Of returns the genotype for the given sample label and whether the sample
// was genotyped at this variant at all.
func (gs Genotypes) Of(sample string) (Genotype, bool) {
	i := sort.SearchStrings(gs.samples, sample)
	if i < len(gs.samples) && gs.samples[i] == sample {
		return gs.calls[i], true
	}
	return NoCall, false
}

// Len returns the number of genotyped samples.
func (gs Genotypes) Len() int {
	return len(gs.samples)
}

// Samples returns the sample labels in sorted order.
func (gs Genotypes) Samples() []string {
	out := make([]string, len(gs.samples))
	copy(out, gs.samples)
	return out
}

// Sex is the phenotypic sex recorded for a patient.
type Sex int8

const (
	UnknownSex Sex = iota
	Female
	Male
)

func (s Sex) String() string {
	switch s {
	case Female:
		return "FEMALE"
	case Male:
		return "MALE"
	default:
		return "UNKNOWN"
	}
}
