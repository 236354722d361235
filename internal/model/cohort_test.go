package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeVariant(t *testing.T, contig string, pos int, ref, alt, txID, sample string, g Genotype) *Variant {
	t.Helper()
	info, err := NewVariantInfo(&VariantCoordinates{
		Contig: contig, Start: pos, End: pos + len(ref), Strand: 1,
		Ref: ref, Alt: alt, ChangeLength: len(alt) - len(ref),
	}, nil)
	require.NoError(t, err)
	return &Variant{
		Info: info,
		Annotations: []TranscriptAnnotation{
			{GeneID: "HGNC:12403", TranscriptID: txID, IsPreferred: true, Effects: []VariantEffect{MissenseVariant}},
		},
		Genotypes: NewGenotypes(map[string]Genotype{sample: g}),
	}
}

func TestNewCohort_DropsDuplicates(t *testing.T) {
	seizure, err := NewPhenotype("HP:0001250", true)
	require.NoError(t, err)

	a := &Patient{ID: "alice", Phenotypes: []Phenotype{seizure}}
	aCopy := &Patient{ID: "alice", Phenotypes: []Phenotype{seizure}}
	b := &Patient{ID: "bob"}

	c := NewCohort([]*Patient{a, aCopy, b}, 1)
	assert.Equal(t, 2, c.Size())
	assert.Equal(t, 1, c.ExcludedCount())
}

func TestNewCohort_SamePatientIDDifferentRecordsKept(t *testing.T) {
	seizure, err := NewPhenotype("HP:0001250", true)
	require.NoError(t, err)

	a := &Patient{ID: "alice", Phenotypes: []Phenotype{seizure}}
	b := &Patient{ID: "alice"}

	c := NewCohort([]*Patient{a, b}, 0)
	assert.Equal(t, 2, c.Size())
}

func TestCohort_MembersSortedByID(t *testing.T) {
	c := NewCohort([]*Patient{{ID: "carol"}, {ID: "alice"}, {ID: "bob"}}, 0)
	var ids []string
	for _, m := range c.Members() {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, ids)
}

func TestCohort_MembersIsACopy(t *testing.T) {
	c := NewCohort([]*Patient{{ID: "carol"}, {ID: "alice"}, {ID: "bob"}}, 0)

	got := c.Members()
	got[0], got[2] = got[2], got[0]
	got[1] = &Patient{ID: "mallory"}

	var ids []string
	for _, m := range c.Members() {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, ids)
}

func TestCohort_AllVariantsDeduplicated(t *testing.T) {
	shared := makeVariant(t, "17", 100, "C", "T", "NM_000546.6", "alice", Heterozygous)
	only := makeVariant(t, "17", 200, "G", "A", "NM_000546.6", "bob", HomozygousAlternate)

	a := &Patient{ID: "alice", Variants: []*Variant{shared}}
	b := &Patient{ID: "bob", Variants: []*Variant{shared, only}}

	c := NewCohort([]*Patient{a, b}, 0)
	variants := c.AllVariants()
	require.Len(t, variants, 2)
	assert.Equal(t, "17_101_101_C_T", variants[0].VariantKey())
	assert.Equal(t, "17_201_201_G_A", variants[1].VariantKey())
	assert.True(t, c.HasTranscript("NM_000546.6"))
	assert.False(t, c.HasTranscript("NM_000546.5"))
}

func TestCohort_AllPhenotypes(t *testing.T) {
	seizure, err := NewPhenotype("HP:0001250", true)
	require.NoError(t, err)
	noSpasticity, err := NewPhenotype("HP:0001257", false)
	require.NoError(t, err)

	a := &Patient{ID: "alice", Phenotypes: []Phenotype{seizure, noSpasticity}}
	b := &Patient{ID: "bob", Phenotypes: []Phenotype{seizure}}

	all := NewCohort([]*Patient{a, b}, 0).AllPhenotypes()
	require.Len(t, all, 2)
	assert.Equal(t, "HP:0001250", all[0].ID)
	assert.Equal(t, "HP:0001257", all[1].ID)
}

func TestPatient_PhenotypeSplit(t *testing.T) {
	seizure, err := NewPhenotype("HP:0001250", true)
	require.NoError(t, err)
	noSpasticity, err := NewPhenotype("HP:0001257", false)
	require.NoError(t, err)

	p := &Patient{ID: "alice", Phenotypes: []Phenotype{seizure, noSpasticity}}
	require.Len(t, p.PresentPhenotypes(), 1)
	assert.Equal(t, "HP:0001250", p.PresentPhenotypes()[0].ID)
	require.Len(t, p.ExcludedPhenotypes(), 1)
	assert.Equal(t, "HP:0001257", p.ExcludedPhenotypes()[0].ID)
}
