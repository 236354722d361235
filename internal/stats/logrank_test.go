package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRank_IdenticalGroups(t *testing.T) {
	group := []SurvivalObservation{{Time: 1}, {Time: 2}, {Time: 3}}
	statistic, p, err := LogRank(group, group)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, statistic, 1e-12)
	assert.InDelta(t, 1.0, p, 1e-12)
}

func TestLogRank_SeparatedGroups(t *testing.T) {
	early := []SurvivalObservation{{Time: 1}, {Time: 2}, {Time: 3}}
	late := []SurvivalObservation{{Time: 4}, {Time: 5}, {Time: 6}}
	statistic, p, err := LogRank(early, late)
	require.NoError(t, err)
	assert.InDelta(t, 5.05166, statistic, 1e-4)
	assert.InDelta(t, 0.0246, p, 5e-4)
}

func TestLogRank_CensoredObservationsStayAtRisk(t *testing.T) {
	a := []SurvivalObservation{{Time: 1}, {Time: 5, Censored: true}}
	b := []SurvivalObservation{{Time: 2}, {Time: 3}}
	statistic, p, err := LogRank(a, b)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, statistic, 0.0)
	assert.Greater(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
}

func TestLogRank_Validation(t *testing.T) {
	group := []SurvivalObservation{{Time: 1}}
	_, _, err := LogRank(group, nil)
	assert.ErrorContains(t, err, "non-empty")

	censored := []SurvivalObservation{{Time: 1, Censored: true}}
	_, _, err = LogRank(censored, censored)
	assert.ErrorContains(t, err, "no uncensored events")
}
