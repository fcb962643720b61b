package calculation

import (
	"math"
	"sort"
)

// Histogram bounds for depletion-year distributions.
const (
	histogramMinYear  = 2030
	histogramMaxYear  = 2100
	histogramBinWidth = 5
)

// percentile returns the p-th percentile (0-100) of sorted values with linear
// interpolation between closest ranks. sorted must not be empty.
func percentile(sorted []int, p float64) float64 {
	if len(sorted) == 1 {
		return float64(sorted[0])
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	frac := rank - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[hi]-sorted[lo])
}

// histogram bins sorted values into 5-year bins starting at max(2030, min) and
// covering up to min(2100, max). Bin i is [edges[i], edges[i+1]); the last bin
// also includes its right edge. Values outside [lo, hi] are not counted even
// when the last edge runs past hi.
func histogram(sorted []int) (counts []int, edges []int) {
	if len(sorted) == 0 {
		return []int{}, []int{}
	}
	lo := max(histogramMinYear, sorted[0])
	hi := min(histogramMaxYear, sorted[len(sorted)-1])
	if lo > hi {
		return []int{}, []int{}
	}

	for e := lo; e < hi+histogramBinWidth; e += histogramBinWidth {
		edges = append(edges, e)
	}
	if len(edges) < 2 {
		edges = append(edges, lo+histogramBinWidth)
	}

	counts = make([]int, len(edges)-1)
	for _, v := range sorted {
		if v < lo || v > hi {
			continue
		}
		bin := sort.SearchInts(edges, v+1) - 1
		if bin >= len(counts) {
			bin = len(counts) - 1
		}
		counts[bin]++
	}
	return counts, edges
}
