package stats

import (
	"strings"

	"github.com/aybabtme/uniplot/histogram"
)

const histogramWidth = 40

// HistogramText renders values as a text histogram with the given number
// of bins.
func HistogramText(values []float64, bins int) string {
	if len(values) == 0 {
		return "(no data)\n"
	}
	h := histogram.Hist(bins, values)
	var sb strings.Builder
	if err := histogram.Fprint(&sb, h, histogram.Linear(histogramWidth)); err != nil {
		return err.Error() + "\n"
	}
	return sb.String()
}
