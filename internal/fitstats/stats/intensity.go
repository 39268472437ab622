package stats

import (
	"fmt"

	"github.com/2beens/fittrack/internal/fitstats"
)

// Bucket is the heatmap intensity of a day. Its numeric value is the
// heatmap level.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketLow
	BucketModerate
	BucketGood
	BucketExcellent
)

func (b Bucket) String() string {
	switch b {
	case BucketNone:
		return "none"
	case BucketLow:
		return "low"
	case BucketModerate:
		return "moderate"
	case BucketGood:
		return "good"
	case BucketExcellent:
		return "excellent"
	default:
		return fmt.Sprintf("bucket(%d)", int(b))
	}
}

func (b Bucket) Level() int {
	return int(b)
}

func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bucket) UnmarshalText(text []byte) error {
	for candidate := BucketNone; candidate <= BucketExcellent; candidate++ {
		if candidate.String() == string(text) {
			*b = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown bucket %q", text)
}

// IntensityBucket buckets the completed/total ratio of a day. The lower
// edge of every bucket is inclusive: 0.5 is moderate, 0.75 is good and 1
// is excellent. A day with nothing done, or nothing to do, is none.
func IntensityBucket(completed, total int) Bucket {
	if completed <= 0 || total <= 0 {
		return BucketNone
	}
	// integer cross multiplication keeps the edges exact
	switch {
	case completed >= total:
		return BucketExcellent
	case 4*completed >= 3*total:
		return BucketGood
	case 2*completed >= total:
		return BucketModerate
	default:
		return BucketLow
	}
}

type HeatmapCell struct {
	Date   fitstats.Day `json:"date"`
	Level  int          `json:"level"`
	Bucket Bucket       `json:"bucket"`
}

// Heatmap returns the date ordered cells of the days with any completion.
// Days bucketed as none are left out.
func Heatmap(calendar Calendar) []HeatmapCell {
	cells := []HeatmapCell{}
	for _, day := range calendar.Days() {
		bucket := IntensityBucket(day.Completed, day.Total)
		if bucket == BucketNone {
			continue
		}
		cells = append(cells, HeatmapCell{
			Date:   day.Date,
			Level:  bucket.Level(),
			Bucket: bucket,
		})
	}
	return cells
}
