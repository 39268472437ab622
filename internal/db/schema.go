package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Schema creates every table the service needs. Statements are idempotent.
// A completion belongs to its activity and goes away with it.
const Schema = `
CREATE TABLE IF NOT EXISTS app_user
(
    id            UUID PRIMARY KEY,
    email         VARCHAR     NOT NULL UNIQUE,
    password_hash VARCHAR     NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS activity
(
    id                      UUID PRIMARY KEY,
    owner_id                UUID        NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    name                    VARCHAR     NOT NULL,
    type                    VARCHAR     NOT NULL,
    sets                    INTEGER     NOT NULL CHECK (sets >= 1),
    repetitions_or_duration INTEGER     NOT NULL CHECK (repetitions_or_duration >= 1),
    unit                    VARCHAR     NOT NULL,
    created_at              TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS ix_activity_owner ON activity (owner_id, created_at);

CREATE TABLE IF NOT EXISTS daily_completion
(
    activity_id  UUID        NOT NULL REFERENCES activity (id) ON DELETE CASCADE,
    day          DATE        NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (activity_id, day)
);
CREATE INDEX IF NOT EXISTS ix_daily_completion_day ON daily_completion (day);

CREATE TABLE IF NOT EXISTS weight_entry
(
    id          UUID PRIMARY KEY,
    owner_id    UUID             NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    weight      DOUBLE PRECISION NOT NULL CHECK (weight > 0),
    recorded_at TIMESTAMPTZ      NOT NULL
);
CREATE INDEX IF NOT EXISTS ix_weight_entry_owner_recorded ON weight_entry (owner_id, recorded_at);
`

func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	log.Debugln("db schema in place")
	return nil
}
