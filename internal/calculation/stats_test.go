package calculation

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	sorted := []int{2040, 2045, 2050, 2052, 2055, 2060, 2061, 2070, 2094, 2094}

	assert.InDelta(t, 2057.5, percentile(sorted, 50), 1e-9)
	assert.InDelta(t, 2042.25, percentile(sorted, 5), 1e-9)
	assert.InDelta(t, 2050.5, percentile(sorted, 25), 1e-9)
	assert.InDelta(t, 2067.75, percentile(sorted, 75), 1e-9)
	assert.InDelta(t, 2094.0, percentile(sorted, 95), 1e-9)
	assert.InDelta(t, 2040.0, percentile(sorted, 0), 1e-9)
	assert.InDelta(t, 2094.0, percentile(sorted, 100), 1e-9)

	assert.Equal(t, 2056.0, percentile([]int{2056}, 5))
}

func TestHistogram(t *testing.T) {
	values := []int{2050, 2052, 2055, 2060, 2061, 2070, 2094, 2094, 2040, 2045}
	sort.Ints(values)

	counts, edges := histogram(values)
	assert.Equal(t, []int{2040, 2045, 2050, 2055, 2060, 2065, 2070, 2075, 2080, 2085, 2090, 2095}, edges)
	assert.Equal(t, []int{1, 1, 2, 1, 2, 0, 1, 0, 0, 0, 2}, counts)
}

func TestHistogramClampsBounds(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		edges  []int
		counts []int
	}{
		{
			name:   "early values excluded",
			values: []int{2020, 2028, 2031, 2036},
			edges:  []int{2030, 2035, 2040},
			counts: []int{1, 1},
		},
		{
			name:   "late values excluded",
			values: []int{2095, 2099, 2120},
			edges:  []int{2095, 2100},
			counts: []int{2},
		},
		{
			name:   "last bin includes right edge",
			values: []int{2040, 2045},
			edges:  []int{2040, 2045},
			counts: []int{2},
		},
		{
			name:   "single value",
			values: []int{2056, 2056},
			edges:  []int{2056, 2061},
			counts: []int{2},
		},
		{
			name:   "last edge past window",
			values: []int{2031, 2050, 2101, 2101},
			edges:  []int{2031, 2036, 2041, 2046, 2051, 2056, 2061, 2066, 2071, 2076, 2081, 2086, 2091, 2096, 2101},
			counts: []int{1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name:   "all values before window",
			values: []int{2025, 2029},
			edges:  []int{},
			counts: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts, edges := histogram(tt.values)
			assert.Equal(t, tt.edges, edges)
			assert.Equal(t, tt.counts, counts)
		})
	}
}
