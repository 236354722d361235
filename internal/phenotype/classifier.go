// Package phenotype classifies a patient's status for a queried HPO term,
// honoring ontology annotation propagation: observing a specific term
// implies observing its ancestors, and excluding a general term implies
// excluding its descendants.
package phenotype

import (
	"github.com/genophen/genophen/internal/model"
	"github.com/genophen/genophen/internal/ontology"
)

// Observation is a patient's status for one queried term.
type Observation int8

const (
	// Observed means the term or one of its descendants was recorded present.
	Observed Observation = iota
	// NotObserved means the term or one of its ancestors was recorded excluded.
	NotObserved
	// NotMeasured means no record of the patient speaks to the term.
	NotMeasured
)

func (o Observation) String() string {
	switch o {
	case Observed:
		return "OBSERVED"
	case NotObserved:
		return "NOT_OBSERVED"
	default:
		return "NOT_MEASURED"
	}
}

// Classifier maps (patient, HPO term) to an Observation.
type Classifier struct {
	hpo ontology.Ontology
}

// NewClassifier builds a classifier over the given ontology.
func NewClassifier(hpo ontology.Ontology) *Classifier {
	return &Classifier{hpo: hpo}
}

// Classify returns the patient's status for the queried term. The second
// return value is false when the patient has no phenotype records at all;
// such patients are excluded from analysis rather than counted as
// NotMeasured.
//
// The evaluation is a single first-match pass over the patient's own
// annotation list: a present record whose ancestor closure (inclusive)
// contains the query wins as Observed; an excluded record whose descendant
// closure (inclusive) contains the query wins as NotObserved.
func (c *Classifier) Classify(p *model.Patient, termID string) (Observation, bool) {
	if len(p.Phenotypes) == 0 {
		return NotMeasured, false
	}
	for _, record := range p.Phenotypes {
		if record.IsPresent {
			if containsTerm(c.hpo.Ancestors(record.ID, true), termID) {
				return Observed, true
			}
		} else {
			if containsTerm(c.hpo.Descendants(record.ID, true), termID) {
				return NotObserved, true
			}
		}
	}
	return NotMeasured, true
}

func containsTerm(terms []string, termID string) bool {
	for _, t := range terms {
		if t == termID {
			return true
		}
	}
	return false
}
