package weights

import (
	"math"
	"time"

	"github.com/2beens/fittrack/internal/fitstats"
)

// Entry is a single body weight measurement, in kilos.
type Entry struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"-"`
	Weight     float64   `json:"weight"`
	RecordedAt time.Time `json:"recordedAt"`
}

func ValidateWeight(weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return fitstats.InvalidInput("weight must be a positive number")
	}
	return nil
}
