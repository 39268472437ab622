package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fittrack/internal/fitstats"
	"github.com/2beens/fittrack/internal/fitstats/activities"
	"github.com/2beens/fittrack/internal/fitstats/weights"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=aggregator_mocks_test.go -package=stats_test

const (
	DefaultCalendarDays        = 365
	DefaultCompactCalendarDays = 90
	DefaultWeightDays          = 30
	MaxCalendarDays            = 730
)

type activityStore interface {
	ListActivities(ctx context.Context, ownerID string) ([]activities.Activity, error)
	ListCompletions(ctx context.Context, ownerID string, from, to fitstats.Day) ([]activities.Completion, error)
}

type weightStore interface {
	ListWeightEntries(ctx context.Context, ownerID string, from, to *time.Time) ([]weights.Entry, error)
	LatestWeightEntry(ctx context.Context, ownerID string, since *time.Time) (*weights.Entry, error)
}

// Params selects the windows of an aggregation. WeightDays 0 means the
// whole weight history.
type Params struct {
	CalendarDays int
	WeightDays   int
}

type Response struct {
	WeightData   []WeightPoint `json:"weightData"`
	ActivityData []CalendarDay `json:"activityData"`
	CalendarData Calendar      `json:"calendarData"`
	HeatmapData  []HeatmapCell `json:"heatmapData"`
	Stats        Summary       `json:"stats"`
}

// Aggregator derives the statistics of one owner from the entry store.
// It keeps no state between calls.
type Aggregator struct {
	activities activityStore
	weights    weightStore
	loc        *time.Location

	NowFunc func() time.Time
}

func NewAggregator(activityStore activityStore, weightStore weightStore, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{
		activities: activityStore,
		weights:    weightStore,
		loc:        loc,
		NowFunc:    time.Now,
	}
}

// Aggregate loads the owner's activities, completions and weight entries
// and derives every statistic from them. Any failed load fails the whole
// aggregation.
func (a *Aggregator) Aggregate(ctx context.Context, ownerID string, params Params) (_ *Response, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.aggregate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("calendar.days", params.CalendarDays))
	span.SetAttributes(attribute.Int("weight.days", params.WeightDays))

	if ownerID == "" {
		return nil, fitstats.ErrUnauthenticated
	}
	if params.CalendarDays < 1 || params.CalendarDays > MaxCalendarDays {
		return nil, fitstats.InvalidInput("calendar window must be between 1 and %d days", MaxCalendarDays)
	}
	if params.WeightDays < 0 {
		return nil, fitstats.InvalidInput("weight window must not be negative")
	}

	now := a.NowFunc()
	today := fitstats.DayOf(now, a.loc)
	window := fitstats.TrailingWindow(today, params.CalendarDays)

	acts, err := a.activities.ListActivities(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	completions, err := a.activities.ListCompletions(ctx, ownerID, window.From, window.To)
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}

	var weightsFrom *time.Time
	if params.WeightDays > 0 {
		from := fitstats.TrailingWindow(today, params.WeightDays).From.Start(a.loc)
		weightsFrom = &from
	}
	entries, err := a.weights.ListWeightEntries(ctx, ownerID, weightsFrom, nil)
	if err != nil {
		return nil, fmt.Errorf("load weight entries: %w", err)
	}

	var latest *weights.Entry
	if len(entries) == 0 && weightsFrom != nil {
		latest, err = a.weights.LatestWeightEntry(ctx, ownerID, nil)
		if err != nil && !errors.Is(err, fitstats.ErrNotFound) {
			return nil, fmt.Errorf("load latest weight entry: %w", err)
		}
	}

	calendar := BuildCalendar(window, acts, completions)
	rate, rateStatus := CompletionRate(calendar)
	weightSummary := SummarizeWeights(entries, latest)

	return &Response{
		WeightData:   WeightSeries(entries, a.loc),
		ActivityData: calendar.Days(),
		CalendarData: calendar,
		HeatmapData:  Heatmap(calendar),
		Stats: Summary{
			CurrentWeight:        weightSummary.Current,
			StartWeight:          weightSummary.Start,
			WeightChange:         weightSummary.Change,
			TotalActivities:      TotalCompleted(calendar),
			CompletionRate:       rate,
			CompletionRateStatus: rateStatus,
			TotalWorkouts:        len(acts),
		},
	}, nil
}
