package weights

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

var ErrEntryNotFound = fmt.Errorf("weight entry %w", fitstats.ErrNotFound)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) CreateWeightEntry(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	span.SetAttributes(attribute.String("weight.id", entry.ID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO weight_entry (id, owner_id, weight, recorded_at)
			VALUES ($1, $2, $3, $4);`,
		entry.ID, entry.OwnerID, entry.Weight, entry.RecordedAt,
	)
	if err != nil {
		// the owning user is gone while its session still lives
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fitstats.ErrUnauthenticated
		}
		return nil, fitstats.StoreFailure("add weight entry", err)
	}

	return &entry, nil
}

// ListWeightEntries returns the owner's entries recorded in [from, to],
// oldest first. A nil bound is open.
func (r *Repo) ListWeightEntries(ctx context.Context, ownerID string, from, to *time.Time) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if from != nil {
		span.SetAttributes(attribute.String("from", from.String()))
	}
	if to != nil {
		span.SetAttributes(attribute.String("to", to.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id::text, owner_id::text, weight, recorded_at
			FROM weight_entry
			WHERE owner_id = $1
				AND ($2::timestamptz IS NULL OR recorded_at >= $2)
				AND ($3::timestamptz IS NULL OR recorded_at <= $3)
			ORDER BY recorded_at, id;`,
		ownerID, from, to,
	)
	if err != nil {
		return nil, fitstats.StoreFailure("list weight entries", err)
	}

	entries, err := rows2entries(rows)
	if err != nil {
		return nil, fitstats.StoreFailure("list weight entries", err)
	}
	span.SetAttributes(attribute.Int("entries.count", len(entries)))

	return entries, nil
}

// LatestWeightEntry returns the most recent entry recorded at or after
// since (any time when since is nil).
func (r *Repo) LatestWeightEntry(ctx context.Context, ownerID string, since *time.Time) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id::text, owner_id::text, weight, recorded_at
			FROM weight_entry
			WHERE owner_id = $1
				AND ($2::timestamptz IS NULL OR recorded_at >= $2)
			ORDER BY recorded_at DESC, id DESC
			LIMIT 1;`,
		ownerID, since,
	)
	if err != nil {
		return nil, fitstats.StoreFailure("latest weight entry", err)
	}

	entries, err := rows2entries(rows)
	if err != nil {
		return nil, fitstats.StoreFailure("latest weight entry", err)
	}
	if len(entries) == 0 {
		return nil, ErrEntryNotFound
	}

	return &entries[0], nil
}

func rows2entries(rows pgx.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Weight, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
