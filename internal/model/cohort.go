package model

import "sort"

// Cohort is a de-duplicated collection of patients with set semantics:
// membership is by full record equality, not insertion order. The derived
// unions (variants, phenotypes, diseases) are recomputed on demand rather
// than cached, so they can never drift from the member list.
type Cohort struct {
	members []*Patient
	// excluded counts individuals dropped during cohort construction,
	// e.g. zero-phenotype or zero-variant records under the active policy.
	excluded int
}

// NewCohort builds a cohort from patients, dropping duplicate members.
// excluded is the number of individuals removed during preprocessing.
func NewCohort(patients []*Patient, excluded int) *Cohort {
	seen := make(map[string]bool, len(patients))
	members := make([]*Patient, 0, len(patients))
	for _, p := range patients {
		id := p.identity()
		if seen[id] {
			continue
		}
		seen[id] = true
		members = append(members, p)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return &Cohort{members: members, excluded: excluded}
}

// Members returns the patients sorted by sample label. The slice is a
// copy, so callers cannot disturb the cohort's membership or order.
func (c *Cohort) Members() []*Patient {
	out := make([]*Patient, len(c.members))
	copy(out, c.members)
	return out
}

// Size returns the number of cohort members.
func (c *Cohort) Size() int {
	return len(c.members)
}

// ExcludedCount returns the number of individuals dropped at construction.
func (c *Cohort) ExcludedCount() int {
	return c.excluded
}

// AllVariants returns the union of member variants, de-duplicated by
// variant key and sorted for deterministic iteration.
func (c *Cohort) AllVariants() []*Variant {
	seen := make(map[string]*Variant)
	for _, p := range c.members {
		for _, v := range p.Variants {
			if _, ok := seen[v.VariantKey()]; !ok {
				seen[v.VariantKey()] = v
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*Variant, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}

// AllPhenotypes returns the union of member phenotype records, sorted by
// term then presence.
func (c *Cohort) AllPhenotypes() []Phenotype {
	seen := make(map[Phenotype]bool)
	for _, p := range c.members {
		for _, ph := range p.Phenotypes {
			seen[ph] = true
		}
	}
	out := make([]Phenotype, 0, len(seen))
	for ph := range seen {
		out = append(out, ph)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].IsPresent && !out[j].IsPresent
	})
	return out
}

// AllDiseases returns the union of member disease records, sorted by ID.
func (c *Cohort) AllDiseases() []Disease {
	seen := make(map[Disease]bool)
	for _, p := range c.members {
		for _, d := range p.Diseases {
			seen[d] = true
		}
	}
	out := make([]Disease, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// HasTranscript returns true if any cohort variant carries an annotation on
// the given transcript.
func (c *Cohort) HasTranscript(txID string) bool {
	for _, v := range c.AllVariants() {
		if v.AnnotationFor(txID) != nil {
			return true
		}
	}
	return false
}
