package model

import (
	"fmt"
	"strings"
)

// Phenotype is one clinical sign recorded for a patient: an HPO term that was
// either observed or explicitly excluded during the clinical workup.
type Phenotype struct {
	// ID is the ontology term CURIE, e.g. "HP:0001250".
	ID string
	// IsPresent distinguishes an observed term from an excluded one.
	IsPresent bool
}

// NewPhenotype validates the CURIE shape and returns the record.
func NewPhenotype(id string, isPresent bool) (Phenotype, error) {
	if !strings.HasPrefix(id, "HP:") {
		return Phenotype{}, fmt.Errorf("phenotype identifier %q is not an HPO CURIE", id)
	}
	return Phenotype{ID: id, IsPresent: isPresent}, nil
}

func (p Phenotype) String() string {
	state := "excluded"
	if p.IsPresent {
		state = "present"
	}
	return fmt.Sprintf("%s (%s)", p.ID, state)
}

// diseasePrefixes is the accepted identifier namespace set for diseases.
var diseasePrefixes = map[string]bool{
	"OMIM":     true,
	"MONDO":    true,
	"ORPHA":    true,
	"DECIPHER": true,
}

// Disease is a diagnosis recorded for a patient.
type Disease struct {
	ID        string
	Name      string
	IsPresent bool
}

// NewDisease validates the identifier prefix and returns the record.
func NewDisease(id, name string, isPresent bool) (Disease, error) {
	prefix, _, ok := strings.Cut(id, ":")
	if !ok || !diseasePrefixes[prefix] {
		return Disease{}, fmt.Errorf("disease identifier %q must use one of the OMIM/MONDO/ORPHA/DECIPHER prefixes", id)
	}
	return Disease{ID: id, Name: name, IsPresent: isPresent}, nil
}

func (d Disease) String() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.ID)
}
