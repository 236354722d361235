// Package summary computes descriptive statistics over a cohort, for
// sanity-checking the input before running an analysis.
package summary

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/genophen/genophen/internal/model"
)

// Distribution summarizes a per-patient count distribution.
type Distribution struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// Summary is the descriptive overview of a cohort.
type Summary struct {
	Patients             int
	Excluded             int
	Females              int
	Males                int
	UnknownSex           int
	DistinctTerms        int
	DistinctDiseases     int
	DistinctVariants     int
	PhenotypesPerPatient Distribution
	VariantsPerPatient   Distribution
}

// Summarize computes the cohort overview.
func Summarize(cohort *model.Cohort) (Summary, error) {
	s := Summary{
		Patients: cohort.Size(),
		Excluded: cohort.ExcludedCount(),
	}
	terms := map[string]bool{}
	for _, ph := range cohort.AllPhenotypes() {
		terms[ph.ID] = true
	}
	s.DistinctTerms = len(terms)
	s.DistinctDiseases = len(cohort.AllDiseases())
	s.DistinctVariants = len(cohort.AllVariants())

	var phenoCounts, variantCounts []float64
	for _, p := range cohort.Members() {
		phenoCounts = append(phenoCounts, float64(len(p.Phenotypes)))
		variantCounts = append(variantCounts, float64(len(p.Variants)))
		switch p.Sex {
		case model.Female:
			s.Females++
		case model.Male:
			s.Males++
		default:
			s.UnknownSex++
		}
	}

	var err error
	s.PhenotypesPerPatient, err = describe(phenoCounts)
	if err != nil {
		return Summary{}, fmt.Errorf("phenotype counts: %w", err)
	}
	s.VariantsPerPatient, err = describe(variantCounts)
	if err != nil {
		return Summary{}, fmt.Errorf("variant counts: %w", err)
	}
	return s, nil
}

func describe(values []float64) (Distribution, error) {
	if len(values) == 0 {
		return Distribution{}, fmt.Errorf("no values")
	}
	var d Distribution
	var err error
	if d.Mean, err = stats.Mean(values); err != nil {
		return Distribution{}, err
	}
	if d.Median, err = stats.Median(values); err != nil {
		return Distribution{}, err
	}
	if d.Min, err = stats.Min(values); err != nil {
		return Distribution{}, err
	}
	if d.Max, err = stats.Max(values); err != nil {
		return Distribution{}, err
	}
	return d, nil
}

// Format renders the summary as a human-readable block.
func (s Summary) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Patients: %d (%d excluded during construction)\n", s.Patients, s.Excluded)
	fmt.Fprintf(&b, "Sex: %d female, %d male, %d unknown\n", s.Females, s.Males, s.UnknownSex)
	fmt.Fprintf(&b, "Distinct HPO terms: %d\n", s.DistinctTerms)
	fmt.Fprintf(&b, "Distinct diseases: %d\n", s.DistinctDiseases)
	fmt.Fprintf(&b, "Distinct variants: %d\n", s.DistinctVariants)
	fmt.Fprintf(&b, "Phenotypes per patient: mean %.1f, median %.1f, range %g-%g\n",
		s.PhenotypesPerPatient.Mean, s.PhenotypesPerPatient.Median, s.PhenotypesPerPatient.Min, s.PhenotypesPerPatient.Max)
	fmt.Fprintf(&b, "Variants per patient: mean %.1f, median %.1f, range %g-%g\n",
		s.VariantsPerPatient.Mean, s.VariantsPerPatient.Median, s.VariantsPerPatient.Min, s.VariantsPerPatient.Max)
	return b.String()
}
