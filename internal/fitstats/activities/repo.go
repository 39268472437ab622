package activities

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fittrack/internal/fitstats"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

var ErrActivityNotFound = fmt.Errorf("activity %w", fitstats.ErrNotFound)

// Repo persists activities and their daily completions. Every query is
// scoped by the owner id, completions through their activity.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddActivity(ctx context.Context, activity Activity) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	span.SetAttributes(attribute.String("activity.id", activity.ID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO activity
				(id, owner_id, name, type, sets, repetitions_or_duration, unit, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		activity.ID, activity.OwnerID, activity.Name, string(activity.Type),
		activity.Sets, activity.RepetitionsOrDuration, string(activity.Unit), activity.CreatedAt,
	)
	if err != nil {
		// the owning user is gone while its session still lives
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fitstats.ErrUnauthenticated
		}
		return nil, fitstats.StoreFailure("add activity", err)
	}

	return &activity, nil
}

func (r *Repo) UpdateActivity(ctx context.Context, activity *Activity) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("activity.id", activity.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE activity
			SET name = $1, type = $2, sets = $3, repetitions_or_duration = $4, unit = $5
			WHERE id = $6 AND owner_id = $7;`,
		activity.Name, string(activity.Type), activity.Sets, activity.RepetitionsOrDuration,
		string(activity.Unit), activity.ID, activity.OwnerID,
	)
	if err != nil {
		if pkg.IsInvalidTextRepresentationError(err) {
			return ErrActivityNotFound
		}
		return fitstats.StoreFailure("update activity", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrActivityNotFound
	}

	return nil
}

// DeleteActivity removes the activity. Its completions go with it
// (ON DELETE CASCADE).
func (r *Repo) DeleteActivity(ctx context.Context, ownerID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("activity.id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM activity WHERE id = $1 AND owner_id = $2;`,
		id, ownerID,
	)
	if err != nil {
		if pkg.IsInvalidTextRepresentationError(err) {
			return ErrActivityNotFound
		}
		return fitstats.StoreFailure("delete activity", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *Repo) GetActivity(ctx context.Context, ownerID, id string) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("activity.id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id::text, owner_id::text, name, type, sets, repetitions_or_duration, unit, created_at
			FROM activity
			WHERE id = $1 AND owner_id = $2;`,
		id, ownerID,
	)
	if err != nil {
		if pkg.IsInvalidTextRepresentationError(err) {
			return nil, ErrActivityNotFound
		}
		return nil, fitstats.StoreFailure("get activity", err)
	}

	activities, err := rows2activities(rows)
	if err != nil {
		if pkg.IsInvalidTextRepresentationError(err) {
			return nil, ErrActivityNotFound
		}
		return nil, fitstats.StoreFailure("get activity", err)
	}

	if len(activities) != 1 {
		return nil, ErrActivityNotFound
	}

	return &activities[0], nil
}

// ListActivities returns the owner's activities, oldest first.
func (r *Repo) ListActivities(ctx context.Context, ownerID string) (_ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id::text, owner_id::text, name, type, sets, repetitions_or_duration, unit, created_at
			FROM activity
			WHERE owner_id = $1
			ORDER BY created_at, id;`,
		ownerID,
	)
	if err != nil {
		return nil, fitstats.StoreFailure("list activities", err)
	}

	activities, err := rows2activities(rows)
	if err != nil {
		return nil, fitstats.StoreFailure("list activities", err)
	}
	span.SetAttributes(attribute.Int("activities.count", len(activities)))

	return activities, nil
}

// ListCompletions returns completions of the owner's activities for days in
// [from, to], ordered by day.
func (r *Repo) ListCompletions(ctx context.Context, ownerID string, from, to fitstats.Day) (_ []Completion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.completions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("from", from.String()))
	span.SetAttributes(attribute.String("to", to.String()))

	rows, err := r.db.Query(
		ctx,
		`SELECT c.activity_id::text, c.day
			FROM daily_completion c
			JOIN activity a ON a.id = c.activity_id
			WHERE a.owner_id = $1 AND c.day >= $2 AND c.day <= $3
			ORDER BY c.day, c.activity_id;`,
		ownerID, from.Time(), to.Time(),
	)
	if err != nil {
		return nil, fitstats.StoreFailure("list completions", err)
	}
	defer rows.Close()

	var completions []Completion
	for rows.Next() {
		var c Completion
		var day time.Time
		if err := rows.Scan(&c.ActivityID, &day); err != nil {
			return nil, fitstats.StoreFailure("list completions", fmt.Errorf("rows scan: %w", err))
		}
		c.Day = fitstats.DayOf(day, time.UTC)
		completions = append(completions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fitstats.StoreFailure("list completions", err)
	}

	return completions, nil
}

func (r *Repo) CompletionExists(ctx context.Context, ownerID, activityID string, day fitstats.Day) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.completions.exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("activity.id", activityID))

	var exists bool
	err = r.db.QueryRow(
		ctx,
		`SELECT EXISTS (
			SELECT 1 FROM daily_completion c
			JOIN activity a ON a.id = c.activity_id
			WHERE c.activity_id = $1 AND a.owner_id = $2 AND c.day = $3
		);`,
		activityID, ownerID, day.Time(),
	).Scan(&exists)
	if err != nil {
		if pkg.IsInvalidTextRepresentationError(err) {
			return false, ErrActivityNotFound
		}
		return false, fitstats.StoreFailure("completion exists", err)
	}

	return exists, nil
}

// UpsertCompletion records the activity as done on day. An existing record
// is left untouched; a foreign or missing activity inserts nothing.
func (r *Repo) UpsertCompletion(ctx context.Context, ownerID, activityID string, day fitstats.Day) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.completions.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("activity.id", activityID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO daily_completion (activity_id, day, created_at)
			SELECT a.id, $3::date, now()
			FROM activity a
			WHERE a.id = $1 AND a.owner_id = $2
			ON CONFLICT (activity_id, day) DO NOTHING;`,
		activityID, ownerID, day.Time(),
	)
	if err != nil {
		if pkg.IsInvalidTextRepresentationError(err) {
			return ErrActivityNotFound
		}
		return fitstats.StoreFailure("upsert completion", err)
	}

	return nil
}

// DeleteCompletion removes the completion of day, if present.
func (r *Repo) DeleteCompletion(ctx context.Context, ownerID, activityID string, day fitstats.Day) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.completions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("activity.id", activityID))

	_, err = r.db.Exec(
		ctx,
		`DELETE FROM daily_completion c
			USING activity a
			WHERE c.activity_id = a.id AND a.owner_id = $2
			AND c.activity_id = $1 AND c.day = $3;`,
		activityID, ownerID, day.Time(),
	)
	if err != nil {
		if pkg.IsInvalidTextRepresentationError(err) {
			return ErrActivityNotFound
		}
		return fitstats.StoreFailure("delete completion", err)
	}

	return nil
}

func rows2activities(rows pgx.Rows) ([]Activity, error) {
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var a Activity
		var activityType, unit string
		if err := rows.Scan(
			&a.ID, &a.OwnerID, &a.Name, &activityType,
			&a.Sets, &a.RepetitionsOrDuration, &unit, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		a.Type = ActivityType(activityType)
		a.Unit = Unit(unit)
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return activities, nil
}
