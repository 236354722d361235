package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// SurvivalObservation is one time-to-event measurement: the observed time
// and whether the observation was censored (event not seen).
type SurvivalObservation struct {
	Time     float64
	Censored bool
}

// LogRank compares the survival of two groups of censored/uncensored
// observations and returns the log-rank statistic and its p-value under the
// one-degree-of-freedom chi-squared distribution.
func LogRank(groupA, groupB []SurvivalObservation) (statistic, p float64, err error) {
	if len(groupA) == 0 || len(groupB) == 0 {
		return 0, 0, fmt.Errorf("both groups must be non-empty, got %d and %d observations", len(groupA), len(groupB))
	}

	// Distinct event times across both groups, ascending.
	eventTimes := map[float64]bool{}
	for _, o := range groupA {
		if !o.Censored {
			eventTimes[o.Time] = true
		}
	}
	for _, o := range groupB {
		if !o.Censored {
			eventTimes[o.Time] = true
		}
	}
	if len(eventTimes) == 0 {
		return 0, 0, fmt.Errorf("no uncensored events in either group")
	}
	times := make([]float64, 0, len(eventTimes))
	for t := range eventTimes {
		times = append(times, t)
	}
	sort.Float64s(times)

	observedA, expectedA, variance := 0.0, 0.0, 0.0
	for _, t := range times {
		atRiskA, eventsA := riskAndEvents(groupA, t)
		atRiskB, eventsB := riskAndEvents(groupB, t)
		atRisk := atRiskA + atRiskB
		events := eventsA + eventsB
		if atRisk < 2 || events == 0 {
			continue
		}
		observedA += eventsA
		expectedA += events * atRiskA / atRisk
		variance += events * (atRiskA / atRisk) * (1 - atRiskA/atRisk) * (atRisk - events) / (atRisk - 1)
	}
	if variance == 0 {
		// All events concentrated where one group had no subjects at risk.
		return 0, 1, nil
	}

	d := observedA - expectedA
	statistic = d * d / variance
	chi2 := distuv.ChiSquared{K: 1}
	return statistic, clamp01(chi2.Survival(statistic)), nil
}

// riskAndEvents returns the number of subjects still at risk at time t and
// the number of events occurring exactly at t.
func riskAndEvents(group []SurvivalObservation, t float64) (atRisk, events float64) {
	for _, o := range group {
		if o.Time >= t {
			atRisk++
		}
		if !o.Censored && o.Time == t {
			events++
		}
	}
	return atRisk, events
}
