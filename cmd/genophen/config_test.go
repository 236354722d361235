package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigValue(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  any
	}{
		{"analysis.correction", "BH", "fdr_bh"},
		{"analysis.correction", "bonferroni", "bonferroni"},
		{"analysis.min_frequency", "12.5", 12.5},
		{"analysis.exclude_unmeasured", "yes", true},
		{"analysis.group_similar", "off", false},
	}
	for _, tt := range tests {
		got, err := parseConfigValue(tt.key, tt.value)
		require.NoError(t, err, "%s = %s", tt.key, tt.value)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseConfigValue_Rejections(t *testing.T) {
	_, err := parseConfigValue("analysis.typo", "x")
	assert.ErrorContains(t, err, `unknown configuration key "analysis.typo"`)
	assert.ErrorContains(t, err, "analysis.correction")

	_, err = parseConfigValue("analysis.correction", "fdr")
	assert.ErrorContains(t, err, "invalid value for analysis.correction")

	_, err = parseConfigValue("analysis.min_frequency", "150")
	assert.ErrorContains(t, err, "between 1 and 100")

	_, err = parseConfigValue("analysis.group_similar", "maybe")
	assert.ErrorContains(t, err, "want true or false")
}
