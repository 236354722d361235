package analysis

import (
	"fmt"
	"sort"

	"github.com/genophen/genophen/internal/model"
	"github.com/genophen/genophen/internal/phenotype"
)

// selectTerms returns the phenotype terms whose observed fraction across
// the cohort meets the support threshold, sorted by CURIE for determinism.
// Zero passing terms is a data-sufficiency error, not an empty result.
func (a *Analyzer) selectTerms(cohort *model.Cohort, opts Options) ([]string, error) {
	candidates := map[string]bool{}
	for _, ph := range cohort.AllPhenotypes() {
		if ph.IsPresent && a.hpo.Contains(ph.ID) {
			candidates[ph.ID] = true
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no phenotype term is observed in the cohort")
	}

	sorted := make([]string, 0, len(candidates))
	for term := range candidates {
		sorted = append(sorted, term)
	}
	sort.Strings(sorted)

	var kept []string
	for _, term := range sorted {
		observed, notObserved := 0, 0
		denominator := 0
		for _, p := range cohort.Members() {
			obs, ok := a.pheno.Classify(p, term)
			if !ok {
				continue
			}
			switch obs {
			case phenotype.Observed:
				observed++
			case phenotype.NotObserved:
				notObserved++
			}
			denominator++
		}
		if opts.Policy == ExcludeNotMeasured {
			denominator = observed + notObserved
		}
		if denominator == 0 {
			continue
		}
		if 100*float64(observed)/float64(denominator) >= opts.MinTermFrequency {
			kept = append(kept, term)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no phenotype term is observed in at least %g%% of the cohort", opts.MinTermFrequency)
	}
	return kept, nil
}

// groupSimilarTerms merges terms that are ancestors/descendants of each
// other into one test, keeping the member with the fewest ancestors (the
// one closest to the ontology root). Two candidate representatives with the
// same ancestor count are an error: there is no defensible automatic choice
// between them, so the caller must resolve the collision.
func (a *Analyzer) groupSimilarTerms(terms []string) ([]string, error) {
	parent := make(map[string]string, len(terms))
	for _, t := range terms {
		parent[t] = t
	}
	var find func(string) string
	find = func(t string) string {
		if parent[t] != t {
			parent[t] = find(parent[t])
		}
		return parent[t]
	}
	for i, t1 := range terms {
		related := map[string]bool{}
		for _, anc := range a.hpo.Ancestors(t1, false) {
			related[anc] = true
		}
		for _, desc := range a.hpo.Descendants(t1, false) {
			related[desc] = true
		}
		for _, t2 := range terms[i+1:] {
			if related[t2] {
				parent[find(t1)] = find(t2)
			}
		}
	}

	groups := map[string][]string{}
	for _, t := range terms {
		root := find(t)
		groups[root] = append(groups[root], t)
	}

	var representatives []string
	for _, members := range groups {
		rep, err := a.pickRepresentative(members)
		if err != nil {
			return nil, err
		}
		representatives = append(representatives, rep)
	}
	sort.Strings(representatives)
	return representatives, nil
}

// pickRepresentative returns the group member with the fewest ancestors,
// failing when the two smallest counts tie.
func (a *Analyzer) pickRepresentative(members []string) (string, error) {
	if len(members) == 1 {
		return members[0], nil
	}
	sort.Strings(members)
	smallest, second := "", ""
	smallestCount, secondCount := -1, -1
	for _, t := range members {
		count := len(a.hpo.Ancestors(t, false))
		switch {
		case smallestCount == -1 || count < smallestCount:
			second, secondCount = smallest, smallestCount
			smallest, smallestCount = t, count
		case secondCount == -1 || count < secondCount:
			second, secondCount = t, count
		}
	}
	if smallestCount == secondCount {
		return "", fmt.Errorf("cannot pick a representative among similar terms: %s and %s both have %d ancestors", smallest, second, smallestCount)
	}
	return smallest, nil
}
