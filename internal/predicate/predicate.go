// Package predicate implements boolean conditions over a single variant,
// composable with AND/OR/NOT. Predicates are pure: configuration is fixed at
// construction and Test never mutates the variant.
package predicate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/genophen/genophen/internal/model"
)

// VariantPredicate decides whether one variant matches a condition.
type VariantPredicate interface {
	Test(v *model.Variant) bool
	// Question is the human-readable description of the condition.
	Question() string
}

// equal reports value equality between two predicates.
func equal(a, b VariantPredicate) bool {
	return reflect.DeepEqual(a, b)
}

type andPredicate struct {
	left, right VariantPredicate
}

func (p *andPredicate) Test(v *model.Variant) bool {
	// && short-circuits, so the right side is skipped once the left fails;
	// that matters when the right side does a protein lookup.
	return p.left.Test(v) && p.right.Test(v)
}

func (p *andPredicate) Question() string {
	return fmt.Sprintf("(%s AND %s)", p.left.Question(), p.right.Question())
}

type orPredicate struct {
	left, right VariantPredicate
}

func (p *orPredicate) Test(v *model.Variant) bool {
	return p.left.Test(v) || p.right.Test(v)
}

func (p *orPredicate) Question() string {
	return fmt.Sprintf("(%s OR %s)", p.left.Question(), p.right.Question())
}

type notPredicate struct {
	inner VariantPredicate
}

func (p *notPredicate) Test(v *model.Variant) bool {
	return !p.inner.Test(v)
}

func (p *notPredicate) Question() string {
	return fmt.Sprintf("NOT %s", p.inner.Question())
}

// And combines two predicates conjunctively. Combining a predicate with an
// equal one returns the left operand itself.
func And(left, right VariantPredicate) VariantPredicate {
	if equal(left, right) {
		return left
	}
	return &andPredicate{left: left, right: right}
}

// Or combines two predicates disjunctively. Combining a predicate with an
// equal one returns the left operand itself.
func Or(left, right VariantPredicate) VariantPredicate {
	if equal(left, right) {
		return left
	}
	return &orPredicate{left: left, right: right}
}

// Not inverts a predicate. Inverting an inverted predicate returns the
// original object, not a new equal one.
func Not(p VariantPredicate) VariantPredicate {
	if n, ok := p.(*notPredicate); ok {
		return n.inner
	}
	return &notPredicate{inner: p}
}

// AllOf folds predicates with And. At least one predicate is required.
func AllOf(predicates ...VariantPredicate) (VariantPredicate, error) {
	if len(predicates) == 0 {
		return nil, fmt.Errorf("allof requires at least one predicate")
	}
	out := predicates[0]
	for _, p := range predicates[1:] {
		out = And(out, p)
	}
	return out, nil
}

// AnyOf folds predicates with Or. At least one predicate is required.
func AnyOf(predicates ...VariantPredicate) (VariantPredicate, error) {
	if len(predicates) == 0 {
		return nil, fmt.Errorf("anyof requires at least one predicate")
	}
	out := predicates[0]
	for _, p := range predicates[1:] {
		out = Or(out, p)
	}
	return out, nil
}

type truePredicate struct{}

func (truePredicate) Test(*model.Variant) bool {
	return true
}

func (truePredicate) Question() string {
	return "true"
}

// True returns the predicate that matches every variant.
func True() VariantPredicate {
	return truePredicate{}
}

// Questions renders the questions of several predicates, joined for display.
func Questions(predicates []VariantPredicate) string {
	qs := make([]string, len(predicates))
	for i, p := range predicates {
		qs[i] = p.Question()
	}
	return strings.Join(qs, ", ")
}
