package predicate

import (
	"fmt"

	"github.com/genophen/genophen/internal/model"
)

// ProteinMetadataService resolves a protein accession to its metadata. The
// implementation is injected by the caller; a caching wrapper around a
// remote service satisfies it just as well as a fixed in-memory table.
type ProteinMetadataService interface {
	Annotate(proteinID string) (model.ProteinMetadata, error)
}

// annotationForProtein picks the annotation whose protein features are
// queried: the one on txID when given, otherwise the preferred transcript.
func annotationForProtein(v *model.Variant, txID string) *model.TranscriptAnnotation {
	if txID != "" {
		return v.AnnotationFor(txID)
	}
	return v.PreferredAnnotation()
}

type proteinFeatureTypePredicate struct {
	featureType model.FeatureType
	txID        string
	service     ProteinMetadataService
}

func (p proteinFeatureTypePredicate) Test(v *model.Variant) bool {
	ann := annotationForProtein(v, p.txID)
	if ann == nil || ann.ProteinID == "" || ann.ProteinEffect == nil {
		return false
	}
	meta, err := p.service.Annotate(ann.ProteinID)
	if err != nil {
		return false
	}
	for _, f := range meta.FeaturesOfType(p.featureType) {
		if f.Info.Region.OverlapsWith(*ann.ProteinEffect) {
			return true
		}
	}
	return false
}

func (p proteinFeatureTypePredicate) Question() string {
	return fmt.Sprintf("affects a %s feature on the protein of %s", p.featureType, p.txID)
}

// ProteinFeatureType matches variants whose protein-effect region overlaps
// any feature of the given type. txID selects the transcript annotation to
// inspect; pass "" to use the preferred transcript.
func ProteinFeatureType(ft model.FeatureType, txID string, service ProteinMetadataService) VariantPredicate {
	return proteinFeatureTypePredicate{featureType: ft, txID: txID, service: service}
}

type proteinFeaturePredicate struct {
	name    string
	txID    string
	service ProteinMetadataService
}

func (p proteinFeaturePredicate) Test(v *model.Variant) bool {
	ann := annotationForProtein(v, p.txID)
	if ann == nil || ann.ProteinID == "" || ann.ProteinEffect == nil {
		return false
	}
	meta, err := p.service.Annotate(ann.ProteinID)
	if err != nil {
		return false
	}
	for _, f := range meta.FeaturesNamed(p.name) {
		if f.Info.Region.OverlapsWith(*ann.ProteinEffect) {
			return true
		}
	}
	return false
}

func (p proteinFeaturePredicate) Question() string {
	return fmt.Sprintf("affects the %q feature on the protein of %s", p.name, p.txID)
}

// ProteinFeature matches variants whose protein-effect region overlaps the
// named feature. txID selects the transcript annotation to inspect; pass ""
// to use the preferred transcript.
func ProteinFeature(name, txID string, service ProteinMetadataService) VariantPredicate {
	return proteinFeaturePredicate{name: name, txID: txID, service: service}
}

// FixedProteinMetadata is a ProteinMetadataService over a fixed table,
// useful when features were resolved ahead of the analysis.
type FixedProteinMetadata map[string]model.ProteinMetadata

// Annotate returns the stored metadata for the protein.
func (f FixedProteinMetadata) Annotate(proteinID string) (model.ProteinMetadata, error) {
	meta, ok := f[proteinID]
	if !ok {
		return model.ProteinMetadata{}, fmt.Errorf("no metadata for protein %q", proteinID)
	}
	return meta, nil
}
