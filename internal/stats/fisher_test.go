package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFisherExact2x2(t *testing.T) {
	// 13 of 14 missense carriers with the phenotype vs 3 of 12 others.
	p := FisherExact2x2(13, 1, 3, 9)
	assert.InDelta(t, 0.000781, p, 1e-6)
}

func TestFisherExact2x2_BalancedTable(t *testing.T) {
	assert.InDelta(t, 1.0, FisherExact2x2(5, 5, 5, 5), 1e-9)
}

func TestFisherExactMultiWay_AgreesWith2x2(t *testing.T) {
	tables := [][4]int{
		{13, 1, 3, 9},
		{2, 7, 8, 2},
		{1, 0, 0, 1},
		{10, 10, 10, 10},
	}
	for _, c := range tables {
		got, err := FisherExactMultiWay([][]int{{c[0], c[1]}, {c[2], c[3]}})
		require.NoError(t, err)
		want := FisherExact2x2(c[0], c[1], c[2], c[3])
		assert.InDelta(t, want, got, 1e-6, "table %v", c)
	}
}

func TestFisherExactMultiWay_2x3(t *testing.T) {
	// Row margins (2, 4), column margins (2, 2, 2). The three concentrated
	// tables each have probability 1/15, the three mixed ones 4/15, so the
	// two-sided tail of the observed table is 3/15.
	p, err := FisherExactMultiWay([][]int{{2, 0, 0}, {0, 2, 2}})
	require.NoError(t, err)
	assert.InDelta(t, 0.2, p, 1e-9)
}

func TestFisherExactMultiWay_UniformRowIsCertain(t *testing.T) {
	p, err := FisherExactMultiWay([][]int{{1, 0, 0}, {0, 1, 1}})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p, 1e-9)
}

func TestFisherExactMultiWay_Validation(t *testing.T) {
	_, err := FisherExactMultiWay([][]int{{1, 2}})
	assert.ErrorContains(t, err, "two rows")

	_, err = FisherExactMultiWay([][]int{{1}, {2}})
	assert.ErrorContains(t, err, "two columns")

	_, err = FisherExactMultiWay([][]int{{1, 2}, {3, 4, 5}})
	assert.ErrorContains(t, err, "row 1 has 3 cells")

	_, err = FisherExactMultiWay([][]int{{1, -2}, {3, 4}})
	assert.ErrorContains(t, err, "negative")

	_, err = FisherExactMultiWay([][]int{{0, 0}, {0, 0}})
	assert.ErrorContains(t, err, "empty")
}

func TestFisherExactMultiWay_LargeCountsStayFinite(t *testing.T) {
	p, err := FisherExactMultiWay([][]int{{120, 5}, {30, 95}})
	require.NoError(t, err)
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1e-10)
}
