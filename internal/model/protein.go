package model

import (
	"fmt"
	"strings"
)

// FeatureType is the UniProt-style category of a protein feature.
type FeatureType string

const (
	FeatureRepeat FeatureType = "REPEAT"
	FeatureMotif  FeatureType = "MOTIF"
	FeatureDomain FeatureType = "DOMAIN"
	FeatureRegion FeatureType = "REGION"
)

// ParseFeatureType maps a feature type name to a FeatureType.
func ParseFeatureType(name string) (FeatureType, error) {
	switch FeatureType(strings.ToUpper(name)) {
	case FeatureRepeat, FeatureMotif, FeatureDomain, FeatureRegion:
		return FeatureType(strings.ToUpper(name)), nil
	}
	return "", fmt.Errorf("unknown protein feature type %q", name)
}

// FeatureInfo names a span of amino acids on a protein.
type FeatureInfo struct {
	Name string
	// Region is the 0-based half-open amino-acid span of the feature.
	Region Region
}

// ProteinFeature is one annotated feature of a protein.
type ProteinFeature struct {
	Info FeatureInfo
	Type FeatureType
}

// ProteinMetadata describes a protein and its annotated features, consumed
// read-only by overlap queries in the predicate layer.
type ProteinMetadata struct {
	ID    string
	Label string
	// Length is the total protein length in amino acids.
	Length   int
	Features []ProteinFeature
}

// FeaturesOfType returns the features carrying the given type.
func (pm ProteinMetadata) FeaturesOfType(ft FeatureType) []ProteinFeature {
	var out []ProteinFeature
	for _, f := range pm.Features {
		if f.Type == ft {
			out = append(out, f)
		}
	}
	return out
}

// FeaturesNamed returns the features carrying the given name.
func (pm ProteinMetadata) FeaturesNamed(name string) []ProteinFeature {
	var out []ProteinFeature
	for _, f := range pm.Features {
		if f.Info.Name == name {
			out = append(out, f)
		}
	}
	return out
}
