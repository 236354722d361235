package phenotype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genophen/genophen/internal/model"
	"github.com/genophen/genophen/internal/ontology"
)

// toyHPO is a small slice of the real ontology: a seizure branch, a
// spasticity branch and an arachnodactyly branch under one root.
func toyHPO() *ontology.Graph {
	return ontology.NewGraph(
		map[string]string{
			"HP:0000001": "All",
			"HP:0000118": "Phenotypic abnormality",
			"HP:0012638": "Abnormal nervous system physiology",
			"HP:0001250": "Seizure",
			"HP:0002266": "Focal clonic seizure",
			"HP:0001257": "Spasticity",
			"HP:0002061": "Lower limb spasticity",
			"HP:0001166": "Arachnodactyly",
			"HP:0006280": "Chronic pancreatitis",
		},
		map[string][]string{
			"HP:0000118": {"HP:0000001"},
			"HP:0012638": {"HP:0000118"},
			"HP:0001250": {"HP:0012638"},
			"HP:0002266": {"HP:0001250"},
			"HP:0001257": {"HP:0012638"},
			"HP:0002061": {"HP:0001257"},
			"HP:0001166": {"HP:0000118"},
			"HP:0006280": {"HP:0000118"},
		},
	)
}

func recordedPatient(t *testing.T) *model.Patient {
	t.Helper()
	arachnodactyly, err := model.NewPhenotype("HP:0001166", true)
	require.NoError(t, err)
	focalClonic, err := model.NewPhenotype("HP:0002266", true)
	require.NoError(t, err)
	noSpasticity, err := model.NewPhenotype("HP:0001257", false)
	require.NoError(t, err)
	return &model.Patient{
		ID:         "proband",
		Phenotypes: []model.Phenotype{arachnodactyly, focalClonic, noSpasticity},
	}
}

func TestClassify_DirectObservation(t *testing.T) {
	c := NewClassifier(toyHPO())
	obs, ok := c.Classify(recordedPatient(t), "HP:0001166")
	require.True(t, ok)
	assert.Equal(t, Observed, obs)
}

func TestClassify_PresentRecordPropagatesUp(t *testing.T) {
	// Focal clonic seizure is recorded, Seizure is queried: the record's
	// ancestor closure contains the query, so the query is observed.
	c := NewClassifier(toyHPO())
	obs, ok := c.Classify(recordedPatient(t), "HP:0001250")
	require.True(t, ok)
	assert.Equal(t, Observed, obs)
}

func TestClassify_ExcludedRecordPropagatesDown(t *testing.T) {
	c := NewClassifier(toyHPO())

	obs, ok := c.Classify(recordedPatient(t), "HP:0001257")
	require.True(t, ok)
	assert.Equal(t, NotObserved, obs)

	// Lower limb spasticity is a descendant of the excluded Spasticity.
	obs, ok = c.Classify(recordedPatient(t), "HP:0002061")
	require.True(t, ok)
	assert.Equal(t, NotObserved, obs)
}

func TestClassify_ExclusionDoesNotPropagateUp(t *testing.T) {
	// Excluding Spasticity says nothing about its ancestors; the nervous
	// system term is still answered by the present seizure record.
	c := NewClassifier(toyHPO())
	obs, ok := c.Classify(recordedPatient(t), "HP:0012638")
	require.True(t, ok)
	assert.Equal(t, Observed, obs)
}

func TestClassify_UnrelatedTermNotMeasured(t *testing.T) {
	c := NewClassifier(toyHPO())
	obs, ok := c.Classify(recordedPatient(t), "HP:0006280")
	require.True(t, ok)
	assert.Equal(t, NotMeasured, obs)
}

func TestClassify_NoRecordsExcludesPatient(t *testing.T) {
	c := NewClassifier(toyHPO())
	obs, ok := c.Classify(&model.Patient{ID: "blank"}, "HP:0001250")
	assert.False(t, ok)
	assert.Equal(t, NotMeasured, obs)
}

func TestClassify_NonMatchingRecordOrderIrrelevant(t *testing.T) {
	c := NewClassifier(toyHPO())

	p := recordedPatient(t)
	reversed := &model.Patient{ID: p.ID, Phenotypes: []model.Phenotype{
		p.Phenotypes[2], p.Phenotypes[1], p.Phenotypes[0],
	}}

	for _, term := range []string{"HP:0001166", "HP:0001250", "HP:0001257", "HP:0002061", "HP:0006280"} {
		obs1, ok1 := c.Classify(p, term)
		obs2, ok2 := c.Classify(reversed, term)
		assert.Equal(t, ok1, ok2, term)
		assert.Equal(t, obs1, obs2, term)
	}
}

func TestObservation_String(t *testing.T) {
	assert.Equal(t, "OBSERVED", Observed.String())
	assert.Equal(t, "NOT_OBSERVED", NotObserved.String())
	assert.Equal(t, "NOT_MEASURED", NotMeasured.String())
}
