package activities

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fittrack/internal/fitstats"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=activities_test

type activitiesRepo interface {
	AddActivity(ctx context.Context, activity Activity) (*Activity, error)
	UpdateActivity(ctx context.Context, activity *Activity) error
	DeleteActivity(ctx context.Context, ownerID, id string) error
	GetActivity(ctx context.Context, ownerID, id string) (*Activity, error)
	ListActivities(ctx context.Context, ownerID string) ([]Activity, error)
	ListCompletions(ctx context.Context, ownerID string, from, to fitstats.Day) ([]Completion, error)
	CompletionExists(ctx context.Context, ownerID, activityID string, day fitstats.Day) (bool, error)
	UpsertCompletion(ctx context.Context, ownerID, activityID string, day fitstats.Day) error
	DeleteCompletion(ctx context.Context, ownerID, activityID string, day fitstats.Day) error
}

// Service holds activity CRUD and the daily completion toggle. "Today" is
// the current calendar day in the configured location.
type Service struct {
	repo           activitiesRepo
	loc            *time.Location
	metricsManager *metrics.Manager

	NowFunc func() time.Time
}

func NewService(repo activitiesRepo, loc *time.Location, metricsManager *metrics.Manager) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:           repo,
		loc:            loc,
		metricsManager: metricsManager,
		NowFunc:        time.Now,
	}
}

func (s *Service) Today() fitstats.Day {
	return fitstats.DayOf(s.NowFunc(), s.loc)
}

func (s *Service) List(ctx context.Context, ownerID string) (_ []ActivityWithStatus, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activities.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if ownerID == "" {
		return nil, fitstats.ErrUnauthenticated
	}

	activities, err := s.repo.ListActivities(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	completions, err := s.repo.ListCompletions(ctx, ownerID, today, today)
	if err != nil {
		return nil, err
	}
	doneToday := make(map[string]bool, len(completions))
	for _, c := range completions {
		doneToday[c.ActivityID] = true
	}

	list := make([]ActivityWithStatus, 0, len(activities))
	for _, a := range activities {
		list = append(list, ActivityWithStatus{
			Activity:       a,
			CompletedToday: doneToday[a.ID],
		})
	}

	return list, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activities.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := checkIDs(ownerID, id); err != nil {
		return nil, err
	}

	return s.repo.GetActivity(ctx, ownerID, id)
}

func (s *Service) Create(ctx context.Context, ownerID string, activity Activity) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activities.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if ownerID == "" {
		return nil, fitstats.ErrUnauthenticated
	}
	if err := activity.Validate(); err != nil {
		return nil, err
	}

	activity.ID = uuid.NewString()
	activity.OwnerID = ownerID
	activity.CreatedAt = s.NowFunc()

	return s.repo.AddActivity(ctx, activity)
}

func (s *Service) Update(ctx context.Context, ownerID, id string, activity Activity) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activities.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := checkIDs(ownerID, id); err != nil {
		return nil, err
	}
	if err := activity.Validate(); err != nil {
		return nil, err
	}

	activity.ID = id
	activity.OwnerID = ownerID
	if err := s.repo.UpdateActivity(ctx, &activity); err != nil {
		return nil, err
	}

	return s.repo.GetActivity(ctx, ownerID, id)
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activities.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := checkIDs(ownerID, id); err != nil {
		return err
	}

	return s.repo.DeleteActivity(ctx, ownerID, id)
}

// IsCompletedToday reports whether the activity has a completion for today.
func (s *Service) IsCompletedToday(ctx context.Context, ownerID, activityID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activities.completed.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := checkIDs(ownerID, activityID); err != nil {
		return false, err
	}
	if _, err := s.repo.GetActivity(ctx, ownerID, activityID); err != nil {
		return false, err
	}

	return s.repo.CompletionExists(ctx, ownerID, activityID, s.Today())
}

// SetCompletedToday creates or removes today's completion of the activity
// and returns the new state. Repeating a call with the same value changes
// nothing.
func (s *Service) SetCompletedToday(ctx context.Context, ownerID, activityID string, completed bool) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activities.completed.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Bool("completed", completed))

	if err := checkIDs(ownerID, activityID); err != nil {
		return false, err
	}
	if _, err := s.repo.GetActivity(ctx, ownerID, activityID); err != nil {
		return false, err
	}

	today := s.Today()
	if completed {
		err = s.repo.UpsertCompletion(ctx, ownerID, activityID, today)
	} else {
		err = s.repo.DeleteCompletion(ctx, ownerID, activityID, today)
	}
	if err != nil {
		return false, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterCompletionToggles.WithLabelValues(strconv.FormatBool(completed)).Inc()
	}

	return completed, nil
}

// checkIDs rejects anonymous callers and ids that cannot name an activity.
func checkIDs(ownerID, activityID string) error {
	if ownerID == "" {
		return fitstats.ErrUnauthenticated
	}
	if _, err := uuid.Parse(activityID); err != nil {
		return ErrActivityNotFound
	}
	return nil
}
