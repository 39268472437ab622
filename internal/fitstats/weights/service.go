package weights

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/2beens/fittrack/internal/fitstats"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=weights_test

type weightsRepo interface {
	CreateWeightEntry(ctx context.Context, entry Entry) (*Entry, error)
	ListWeightEntries(ctx context.Context, ownerID string, from, to *time.Time) ([]Entry, error)
	LatestWeightEntry(ctx context.Context, ownerID string, since *time.Time) (*Entry, error)
}

type Service struct {
	repo           weightsRepo
	loc            *time.Location
	metricsManager *metrics.Manager

	NowFunc func() time.Time
}

func NewService(repo weightsRepo, loc *time.Location, metricsManager *metrics.Manager) *Service {
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

// Add records a new weight. recordedAt defaults to now.
func (s *Service) Add(ctx context.Context, ownerID string, weight float64, recordedAt *time.Time) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.weights.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if ownerID == "" {
		return nil, fitstats.ErrUnauthenticated
	}
	if err := ValidateWeight(weight); err != nil {
		return nil, err
	}

	entry := Entry{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Weight:     weight,
		RecordedAt: s.NowFunc(),
	}
	if recordedAt != nil && !recordedAt.IsZero() {
		entry.RecordedAt = *recordedAt
	}

	created, err := s.repo.CreateWeightEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterWeightEntries.Inc()
	}

	return created, nil
}

// List returns all of the owner's entries, newest first.
func (s *Service) List(ctx context.Context, ownerID string) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.weights.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if ownerID == "" {
		return nil, fitstats.ErrUnauthenticated
	}

	entries, err := s.repo.ListWeightEntries(ctx, ownerID, nil, nil)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return entries, nil
}

// Today returns the latest entry recorded since midnight of the current
// day, or ErrEntryNotFound.
func (s *Service) Today(ctx context.Context, ownerID string) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.weights.today")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if ownerID == "" {
		return nil, fitstats.ErrUnauthenticated
	}

	todayStart := fitstats.DayOf(s.NowFunc(), s.loc).Start(s.loc)
	return s.repo.LatestWeightEntry(ctx, ownerID, &todayStart)
}
