package genotype

import (
	"fmt"
	"strings"

	"github.com/genophen/genophen/internal/model"
	"github.com/genophen/genophen/internal/predicate"
)

type sexClassifier struct {
	categories []Categorization
}

// Sex classifies patients by recorded sex. Patients with unknown sex are
// left unclassified.
func Sex() Classifier {
	return &sexClassifier{
		categories: []Categorization{
			{ID: 0, Name: "FEMALE", Description: "patient sex recorded as female"},
			{ID: 1, Name: "MALE", Description: "patient sex recorded as male"},
		},
	}
}

func (c *sexClassifier) Test(p *model.Patient) *Categorization {
	switch p.Sex {
	case model.Female:
		return &c.categories[0]
	case model.Male:
		return &c.categories[1]
	default:
		return nil
	}
}

func (c *sexClassifier) Categories() []Categorization {
	return c.categories
}

func (c *sexClassifier) Summary() string {
	return "Sex: FEMALE, MALE"
}

type groupsClassifier struct {
	predicates []predicate.VariantPredicate
	categories []Categorization
}

// Groups assigns a patient to the first named group whose predicate matches
// at least one of the patient's variants. Groups are tested in declaration
// order; when a patient's variants satisfy more than one group's predicate,
// the first declared group wins.
func Groups(predicates []predicate.VariantPredicate, names []string) (Classifier, error) {
	if len(predicates) != len(names) {
		return nil, fmt.Errorf("got %d predicates but %d group names", len(predicates), len(names))
	}
	if len(predicates) < 2 {
		return nil, fmt.Errorf("at least two groups are required, got %d", len(predicates))
	}
	c := &groupsClassifier{predicates: predicates}
	for i, name := range names {
		c.categories = append(c.categories, Categorization{
			ID:          i,
			Name:        name,
			Description: predicates[i].Question(),
		})
	}
	return c, nil
}

func (c *groupsClassifier) Test(p *model.Patient) *Categorization {
	for i, pred := range c.predicates {
		for _, v := range p.Variants {
			if pred.Test(v) {
				return &c.categories[i]
			}
		}
	}
	return nil
}

func (c *groupsClassifier) Categories() []Categorization {
	return c.categories
}

// Target returns the union of the group predicates.
func (c *groupsClassifier) Target() predicate.VariantPredicate {
	target := c.predicates[0]
	for _, p := range c.predicates[1:] {
		target = predicate.Or(target, p)
	}
	return target
}

func (c *groupsClassifier) Summary() string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return "Groups (first match wins): " + strings.Join(names, ", ")
}
