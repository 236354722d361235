// Package ontology provides the phenotype-ontology collaborator used for
// annotation propagation: term membership, ancestor/descendant closures and
// display labels over the HPO graph.
package ontology

import "sort"

// Ontology is the read-only graph view consumed by the phenotype classifier
// and the analysis driver.
type Ontology interface {
	// Contains reports whether the term CURIE is known to the ontology.
	Contains(termID string) bool
	// Ancestors returns the ancestor closure of the term, including the
	// term itself when includeSource is true.
	Ancestors(termID string, includeSource bool) []string
	// Descendants returns the descendant closure of the term, including
	// the term itself when includeSource is true.
	Descendants(termID string, includeSource bool) []string
	// Label returns the display name for the term, or "" if unknown.
	Label(termID string) string
}

// Graph is an in-memory Ontology backed by child-to-parent edges.
type Graph struct {
	labels   map[string]string
	parents  map[string][]string
	children map[string][]string
}

// NewGraph builds a graph from term labels and child-to-parent edges.
// Terms referenced only by edges are added without labels.
func NewGraph(labels map[string]string, parents map[string][]string) *Graph {
	g := &Graph{
		labels:   make(map[string]string, len(labels)),
		parents:  make(map[string][]string, len(parents)),
		children: make(map[string][]string),
	}
	for id, label := range labels {
		g.labels[id] = label
	}
	for child, ps := range parents {
		if _, ok := g.labels[child]; !ok {
			g.labels[child] = ""
		}
		for _, parent := range ps {
			if _, ok := g.labels[parent]; !ok {
				g.labels[parent] = ""
			}
			g.parents[child] = append(g.parents[child], parent)
			g.children[parent] = append(g.children[parent], child)
		}
	}
	return g
}

// Contains reports whether the term is part of the graph.
func (g *Graph) Contains(termID string) bool {
	_, ok := g.labels[termID]
	return ok
}

// Label returns the display name of the term.
func (g *Graph) Label(termID string) string {
	return g.labels[termID]
}

// TermCount returns the number of terms in the graph.
func (g *Graph) TermCount() int {
	return len(g.labels)
}

// Ancestors returns the ancestor closure of the term in sorted order.
func (g *Graph) Ancestors(termID string, includeSource bool) []string {
	return g.closure(termID, includeSource, g.parents)
}

// Descendants returns the descendant closure of the term in sorted order.
func (g *Graph) Descendants(termID string, includeSource bool) []string {
	return g.closure(termID, includeSource, g.children)
}

// IsAncestorOf reports whether candidate is an ancestor of termID
// (exclusive of the term itself).
func (g *Graph) IsAncestorOf(candidate, termID string) bool {
	for _, a := range g.Ancestors(termID, false) {
		if a == candidate {
			return true
		}
	}
	return false
}

func (g *Graph) closure(termID string, includeSource bool, edges map[string][]string) []string {
	if !g.Contains(termID) {
		return nil
	}
	visited := map[string]bool{termID: true}
	queue := []string{termID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range edges[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	if !includeSource {
		delete(visited, termID)
	}
	out := make([]string, 0, len(visited))
	for id := range visited {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
