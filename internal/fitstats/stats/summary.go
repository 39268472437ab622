package stats

import (
	"math"

	"github.com/2beens/fittrack/internal/fitstats/weights"
)

// RateStatus tells a real 0% completion rate apart from having nothing to
// rate.
type RateStatus string

const (
	RateStatusNoData      RateStatus = "no_data"
	RateStatusDataPresent RateStatus = "data_present"
)

type Summary struct {
	CurrentWeight        *float64   `json:"currentWeight"`
	StartWeight          *float64   `json:"startWeight"`
	WeightChange         *float64   `json:"weightChange"`
	TotalActivities      int        `json:"totalActivities"`
	CompletionRate       int        `json:"completionRate"`
	CompletionRateStatus RateStatus `json:"completionRateStatus"`
	TotalWorkouts        int        `json:"totalWorkouts"`
}

// CompletionRate is the rounded percentage of done activity-days over the
// days that had any activity to do.
func CompletionRate(calendar Calendar) (int, RateStatus) {
	var completed, total int
	for _, count := range calendar {
		if count.Total <= 0 {
			continue
		}
		completed += count.Completed
		total += count.Total
	}
	if total == 0 {
		return 0, RateStatusNoData
	}
	return int(math.Round(100 * float64(completed) / float64(total))), RateStatusDataPresent
}

// TotalCompleted sums the completed activity-days of the calendar.
func TotalCompleted(calendar Calendar) int {
	var completed int
	for _, count := range calendar {
		completed += count.Completed
	}
	return completed
}

type WeightSummary struct {
	Current *float64
	Start   *float64
	Change  *float64
}

// SummarizeWeights reads the start weight from the earliest entry of the
// window and the current weight from its latest one. latest stands in for
// the current weight when the window is empty.
func SummarizeWeights(window []weights.Entry, latest *weights.Entry) WeightSummary {
	var summary WeightSummary
	if len(window) > 0 {
		start := window[0].Weight
		current := window[len(window)-1].Weight
		change := roundTo(current-start, 2)
		summary.Start = &start
		summary.Current = &current
		summary.Change = &change
		return summary
	}

	if latest != nil {
		current := latest.Weight
		summary.Current = &current
	}
	return summary
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
