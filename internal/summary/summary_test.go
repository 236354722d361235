package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genophen/genophen/internal/model"
)

func fixtureCohort(t *testing.T) *model.Cohort {
	t.Helper()
	seizure, err := model.NewPhenotype("HP:0001250", true)
	require.NoError(t, err)
	arachnodactyly, err := model.NewPhenotype("HP:0001166", true)
	require.NoError(t, err)
	marfan, err := model.NewDisease("OMIM:154700", "Marfan syndrome", true)
	require.NoError(t, err)

	info, err := model.NewVariantInfo(&model.VariantCoordinates{
		Contig: "15", Start: 48500000, End: 48500001, Strand: -1, Ref: "G", Alt: "A",
	}, nil)
	require.NoError(t, err)
	variant := &model.Variant{
		Info:      info,
		Genotypes: model.NewGenotypes(map[string]model.Genotype{"p1": model.Heterozygous}),
	}

	return model.NewCohort([]*model.Patient{
		{ID: "p1", Sex: model.Female, Phenotypes: []model.Phenotype{seizure, arachnodactyly}, Diseases: []model.Disease{marfan}, Variants: []*model.Variant{variant}},
		{ID: "p2", Sex: model.Male, Phenotypes: []model.Phenotype{seizure}},
		{ID: "p3", Phenotypes: []model.Phenotype{arachnodactyly}},
	}, 1)
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(fixtureCohort(t))
	require.NoError(t, err)

	assert.Equal(t, 3, s.Patients)
	assert.Equal(t, 1, s.Excluded)
	assert.Equal(t, 1, s.Females)
	assert.Equal(t, 1, s.Males)
	assert.Equal(t, 1, s.UnknownSex)
	assert.Equal(t, 2, s.DistinctTerms)
	assert.Equal(t, 1, s.DistinctDiseases)
	assert.Equal(t, 1, s.DistinctVariants)

	assert.InDelta(t, 4.0/3, s.PhenotypesPerPatient.Mean, 1e-9)
	assert.InDelta(t, 1.0, s.PhenotypesPerPatient.Median, 1e-9)
	assert.Equal(t, 1.0, s.PhenotypesPerPatient.Min)
	assert.Equal(t, 2.0, s.PhenotypesPerPatient.Max)

	assert.InDelta(t, 1.0/3, s.VariantsPerPatient.Mean, 1e-9)
	assert.Equal(t, 0.0, s.VariantsPerPatient.Min)
	assert.Equal(t, 1.0, s.VariantsPerPatient.Max)
}

func TestSummarize_EmptyCohort(t *testing.T) {
	_, err := Summarize(model.NewCohort(nil, 0))
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	s, err := Summarize(fixtureCohort(t))
	require.NoError(t, err)

	out := s.Format()
	assert.Contains(t, out, "Patients: 3 (1 excluded during construction)")
	assert.Contains(t, out, "Sex: 1 female, 1 male, 1 unknown")
	assert.Contains(t, out, "Distinct HPO terms: 2")
	assert.Contains(t, out, "Distinct variants: 1")
}
