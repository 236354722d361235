package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Multiple-testing correction method names accepted by AdjustPValues.
const (
	Bonferroni = "bonferroni"
	Sidak      = "sidak"
	Holm       = "holm"
	HolmSidak  = "holm-sidak"
	Hommel     = "hommel"
	FdrBH      = "fdr_bh"
	FdrBY      = "fdr_by"
)

var methodAliases = map[string]string{
	"bonferroni":          Bonferroni,
	"sidak":               Sidak,
	"holm":                Holm,
	"holm-sidak":          HolmSidak,
	"hommel":              Hommel,
	"fdr_bh":              FdrBH,
	"bh":                  FdrBH,
	"benjamini-hochberg":  FdrBH,
	"fdr_by":              FdrBY,
	"by":                  FdrBY,
	"benjamini-yekutieli": FdrBY,
}

// CanonicalMethod resolves a correction method name or alias, failing on
// unknown names.
func CanonicalMethod(name string) (string, error) {
	if m, ok := methodAliases[strings.ToLower(name)]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown multiple testing correction method %q", name)
}

// AdjustPValues applies the named multiple-testing correction and returns
// the adjusted p-values in the input order. A single p-value is handled by
// every method without special-casing.
func AdjustPValues(pvals []float64, method string) ([]float64, error) {
	m, err := CanonicalMethod(method)
	if err != nil {
		return nil, err
	}
	n := len(pvals)
	if n == 0 {
		return nil, nil
	}
	switch m {
	case Bonferroni:
		out := make([]float64, n)
		for i, p := range pvals {
			out[i] = math.Min(1, p*float64(n))
		}
		return out, nil
	case Sidak:
		out := make([]float64, n)
		for i, p := range pvals {
			out[i] = 1 - math.Pow(1-p, float64(n))
		}
		return out, nil
	case Holm:
		return stepDown(pvals, func(p float64, rank int) float64 {
			return p * float64(n-rank)
		}), nil
	case HolmSidak:
		return stepDown(pvals, func(p float64, rank int) float64 {
			return 1 - math.Pow(1-p, float64(n-rank))
		}), nil
	case Hommel:
		return hommel(pvals), nil
	case FdrBH:
		return stepUp(pvals, func(p float64, rank int) float64 {
			return p * float64(n) / float64(rank+1)
		}), nil
	case FdrBY:
		cm := 0.0
		for i := 1; i <= n; i++ {
			cm += 1 / float64(i)
		}
		return stepUp(pvals, func(p float64, rank int) float64 {
			return p * cm * float64(n) / float64(rank+1)
		}), nil
	}
	return nil, fmt.Errorf("unknown multiple testing correction method %q", method)
}

// stepDown implements Holm-style corrections: ascending p-values, running
// maximum of the scaled values, clamped to 1.
func stepDown(pvals []float64, scale func(p float64, rank int) float64) []float64 {
	order := sortedOrder(pvals)
	out := make([]float64, len(pvals))
	running := 0.0
	for rank, idx := range order {
		v := scale(pvals[idx], rank)
		if v > running {
			running = v
		}
		out[idx] = math.Min(1, running)
	}
	return out
}

// stepUp implements BH-style corrections: descending ranks, running minimum
// of the scaled values, clamped to 1.
func stepUp(pvals []float64, scale func(p float64, rank int) float64) []float64 {
	order := sortedOrder(pvals)
	out := make([]float64, len(pvals))
	running := math.Inf(1)
	for rank := len(order) - 1; rank >= 0; rank-- {
		idx := order[rank]
		v := scale(pvals[idx], rank)
		if v < running {
			running = v
		}
		out[idx] = math.Min(1, running)
	}
	return out
}

// hommel ports the closed testing procedure as implemented by R's p.adjust.
func hommel(pvals []float64) []float64 {
	n := len(pvals)
	order := sortedOrder(pvals)
	p := make([]float64, n)
	for rank, idx := range order {
		p[rank] = pvals[idx]
	}

	q := make([]float64, n)
	pa := make([]float64, n)
	minNP := math.Inf(1)
	for i := 0; i < n; i++ {
		if v := float64(n) * p[i] / float64(i+1); v < minNP {
			minNP = v
		}
	}
	for i := range q {
		q[i] = minNP
		pa[i] = minNP
	}
	for m := n - 1; m >= 2; m-- {
		// Tail indices n-m+1 .. n-1 (0-based), head 0 .. n-m.
		q1 := math.Inf(1)
		for k := 2; k <= m; k++ {
			i := n - m + k - 1
			if v := float64(m) * p[i] / float64(k); v < q1 {
				q1 = v
			}
		}
		for i := 0; i <= n-m; i++ {
			q[i] = math.Min(float64(m)*p[i], q1)
		}
		for i := n - m + 1; i < n; i++ {
			q[i] = q[n-m]
		}
		for i := 0; i < n; i++ {
			if q[i] > pa[i] {
				pa[i] = q[i]
			}
		}
	}

	out := make([]float64, n)
	for rank, idx := range order {
		out[idx] = math.Min(1, math.Max(pa[rank], p[rank]))
	}
	return out
}

// sortedOrder returns the indices of pvals in ascending order of value,
// breaking ties by index for determinism.
func sortedOrder(pvals []float64) []int {
	order := make([]int, len(pvals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return pvals[order[a]] < pvals[order[b]]
	})
	return order
}
