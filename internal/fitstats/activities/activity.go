package activities

import (
	"strings"
	"time"

	"github.com/2beens/fittrack/internal/fitstats"
)

// ActivityType can be one of:
//   - cardio
//   - strength
//   - stretching
//   - other
type ActivityType string

const (
	ActivityTypeCardio     ActivityType = "cardio"
	ActivityTypeStrength   ActivityType = "strength"
	ActivityTypeStretching ActivityType = "stretching"
	ActivityTypeOther      ActivityType = "other"
)

func (at ActivityType) String() string {
	return string(at)
}

func (at ActivityType) IsValid() bool {
	switch at {
	case ActivityTypeCardio,
		ActivityTypeStrength,
		ActivityTypeStretching,
		ActivityTypeOther:
		return true
	default:
		return false
	}
}

// Unit is what RepetitionsOrDuration counts.
type Unit string

const (
	UnitMinutes     Unit = "minutes"
	UnitRepetitions Unit = "repetitions"
	UnitSeconds     Unit = "seconds"
)

func (u Unit) String() string {
	return string(u)
}

func (u Unit) IsValid() bool {
	switch u {
	case UnitMinutes, UnitRepetitions, UnitSeconds:
		return true
	default:
		return false
	}
}

// Activity is a recurring workout item defined by its owner.
type Activity struct {
	ID                    string       `json:"id"`
	OwnerID               string       `json:"-"`
	Name                  string       `json:"name"`
	Type                  ActivityType `json:"type"`
	Sets                  int          `json:"sets"`
	RepetitionsOrDuration int          `json:"repetitionsOrDuration"`
	Unit                  Unit         `json:"unit"`
	CreatedAt             time.Time    `json:"createdAt"`
}

// Validate checks the user editable fields.
func (a *Activity) Validate() error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return fitstats.InvalidInput("activity name empty")
	}
	if !a.Type.IsValid() {
		return fitstats.InvalidInput("unknown activity type %q", a.Type)
	}
	if !a.Unit.IsValid() {
		return fitstats.InvalidInput("unknown unit %q", a.Unit)
	}
	if a.Sets < 1 {
		return fitstats.InvalidInput("sets must be at least 1")
	}
	if a.RepetitionsOrDuration < 1 {
		return fitstats.InvalidInput("repetitions or duration must be at least 1")
	}
	return nil
}

// Completion marks an activity as done on a calendar day.
type Completion struct {
	ActivityID string       `json:"activityId"`
	Day        fitstats.Day `json:"day"`
}

// ActivityWithStatus is an activity as listed to its owner.
type ActivityWithStatus struct {
	Activity
	CompletedToday bool `json:"completedToday"`
}
