package stats

import (
	"time"

	"github.com/2beens/fittrack/internal/fitstats"
	"github.com/2beens/fittrack/internal/fitstats/weights"
)

type WeightPoint struct {
	Date   fitstats.Day `json:"date"`
	Weight float64      `json:"weight"`
	Trend  float64      `json:"trend"`
}

// LinearFit fits y = slope*x + intercept by ordinary least squares over
// x = 0..n-1. ok is false for fewer than two points.
func LinearFit(ys []float64) (slope, intercept float64, ok bool) {
	n := float64(len(ys))
	if len(ys) < 2 {
		return 0, 0, false
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0, 0, false
	}

	slope = (n*sumXY - sumX*sumY) / denominator
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, true
}

// TrendLine evaluates the fitted line at every index. When no line can be
// fitted the values themselves are the trend.
func TrendLine(ys []float64) []float64 {
	trend := make([]float64, len(ys))
	slope, intercept, ok := LinearFit(ys)
	if !ok {
		copy(trend, ys)
		return trend
	}
	for i := range ys {
		trend[i] = slope*float64(i) + intercept
	}
	return trend
}

// WeightSeries turns entries, already ordered by recording time, into
// points carrying their trend value.
func WeightSeries(entries []weights.Entry, loc *time.Location) []WeightPoint {
	ys := make([]float64, len(entries))
	for i, e := range entries {
		ys[i] = e.Weight
	}
	trend := TrendLine(ys)

	points := make([]WeightPoint, len(entries))
	for i, e := range entries {
		points[i] = WeightPoint{
			Date:   fitstats.DayOf(e.RecordedAt, loc),
			Weight: e.Weight,
			Trend:  trend[i],
		}
	}
	return points
}
