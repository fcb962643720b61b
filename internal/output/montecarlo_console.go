package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/npfs/pension-simulator/internal/domain"
)

const histogramWidth = 40

// FormatMonteCarloSummary renders the depletion-year distribution for a terminal.
func FormatMonteCarloSummary(summary *domain.MonteCarloSummary) []byte {
	var buf bytes.Buffer
	model := "normal returns"
	if summary.RegimeSwitching {
		model = "regime switching"
	}
	fmt.Fprintln(&buf, "MONTE CARLO DEPLETION ANALYSIS")
	fmt.Fprintln(&buf, "==============================")
	fmt.Fprintf(&buf, "Simulations: %d (%s)\n", summary.NSimulations, model)
	fmt.Fprintf(&buf, "Median depletion year: %d\n", summary.MedianDepletionYear)
	fmt.Fprintf(&buf, "50%% interval: %d-%d\n", summary.CI50Lower, summary.CI50Upper)
	fmt.Fprintf(&buf, "90%% interval: %d-%d\n", summary.CI90Lower, summary.CI90Upper)

	if len(summary.Distribution) == 0 {
		fmt.Fprintln(&buf, "No depletion years inside the charted range.")
		return buf.Bytes()
	}
	fmt.Fprintln(&buf)
	peak := 0
	for _, c := range summary.Distribution {
		peak = max(peak, c)
	}
	for i, c := range summary.Distribution {
		bar := 0
		if peak > 0 {
			bar = c * histogramWidth / peak
		}
		fmt.Fprintf(&buf, "%d-%d %6d %s\n", summary.BinEdges[i], summary.BinEdges[i+1], c, strings.Repeat("#", bar))
	}
	return buf.Bytes()
}
