package hpostore

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genophen/genophen/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_OntologyRoundTrip(t *testing.T) {
	s := openTestStore(t)

	labels := map[string]string{
		"HP:0000001": "All",
		"HP:0001250": "Seizure",
		"HP:0002266": "Focal clonic seizure",
	}
	parents := map[string][]string{
		"HP:0001250": {"HP:0000001"},
		"HP:0002266": {"HP:0001250"},
	}
	require.NoError(t, s.PutTerms(labels, parents))

	g, err := s.LoadOntology()
	require.NoError(t, err)
	assert.Equal(t, 3, g.TermCount())
	assert.Equal(t, "Seizure", g.Label("HP:0001250"))
	assert.Equal(t, []string{"HP:0000001", "HP:0001250"}, g.Ancestors("HP:0002266", false))
}

func TestStore_PutTermsReplacesLabels(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.PutTerms(map[string]string{"HP:0001250": "Seizures"}, nil))
	require.NoError(t, s.PutTerms(map[string]string{"HP:0001250": "Seizure"}, nil))

	g, err := s.LoadOntology()
	require.NoError(t, err)
	assert.Equal(t, 1, g.TermCount())
	assert.Equal(t, "Seizure", g.Label("HP:0001250"))
}

func TestStore_ProteinRoundTrip(t *testing.T) {
	s := openTestStore(t)

	meta := model.ProteinMetadata{
		ID:     "NP_000129.3",
		Label:  "fibrillin-1",
		Length: 2871,
		Features: []model.ProteinFeature{
			{Info: model.FeatureInfo{Name: "EGF-like 1", Region: model.Region{Start: 113, End: 148}}, Type: model.FeatureDomain},
			{Info: model.FeatureInfo{Name: "TB 1", Region: model.Region{Start: 450, End: 510}}, Type: model.FeatureRegion},
		},
	}
	require.NoError(t, s.PutProtein(meta))

	got, ok, err := s.GetProtein("NP_000129.3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, meta, got)

	_, ok, err = s.GetProtein("NP_999999.1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PutProteinReplacesFeatures(t *testing.T) {
	s := openTestStore(t)

	first := model.ProteinMetadata{
		ID: "NP_000129.3", Label: "fibrillin-1", Length: 2871,
		Features: []model.ProteinFeature{
			{Info: model.FeatureInfo{Name: "stale", Region: model.Region{Start: 1, End: 2}}, Type: model.FeatureMotif},
		},
	}
	require.NoError(t, s.PutProtein(first))

	second := first
	second.Features = []model.ProteinFeature{
		{Info: model.FeatureInfo{Name: "fresh", Region: model.Region{Start: 10, End: 20}}, Type: model.FeatureDomain},
	}
	require.NoError(t, s.PutProtein(second))

	got, ok, err := s.GetProtein("NP_000129.3")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Features, 1)
	assert.Equal(t, "fresh", got.Features[0].Info.Name)
}

func TestStore_PersistsToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "genophen.duckdb")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.PutTerms(map[string]string{"HP:0001250": "Seizure"}, nil))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	g, err := reopened.LoadOntology()
	require.NoError(t, err)
	assert.Equal(t, "Seizure", g.Label("HP:0001250"))
}

// recordingService counts Annotate calls so tests can observe cache hits.
type recordingService struct {
	metadata map[string]model.ProteinMetadata
	calls    int
}

func (r *recordingService) Annotate(proteinID string) (model.ProteinMetadata, error) {
	r.calls++
	meta, ok := r.metadata[proteinID]
	if !ok {
		return model.ProteinMetadata{}, fmt.Errorf("unknown protein %q", proteinID)
	}
	return meta, nil
}

func TestCachedProteinService_WritesBackOnMiss(t *testing.T) {
	s := openTestStore(t)
	fallback := &recordingService{metadata: map[string]model.ProteinMetadata{
		"NP_000129.3": {ID: "NP_000129.3", Label: "fibrillin-1", Length: 2871},
	}}
	cached := NewCachedProteinService(s, fallback)

	meta, err := cached.Annotate("NP_000129.3")
	require.NoError(t, err)
	assert.Equal(t, "fibrillin-1", meta.Label)
	assert.Equal(t, 1, fallback.calls)

	// Second lookup is served from the store.
	meta, err = cached.Annotate("NP_000129.3")
	require.NoError(t, err)
	assert.Equal(t, "fibrillin-1", meta.Label)
	assert.Equal(t, 1, fallback.calls)
}

func TestCachedProteinService_FallbackErrorPropagates(t *testing.T) {
	s := openTestStore(t)
	cached := NewCachedProteinService(s, &recordingService{})

	_, err := cached.Annotate("NP_999999.1")
	assert.ErrorContains(t, err, "unknown protein")
}
