// Package testinternals brings up the Postgres the integration tests run
// against.
package testinternals

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fittrack/internal/db"
)

const (
	testDBName     = "fittrack_test"
	testDBUser     = "postgres"
	testDBPassword = "postgres"
)

// NewTestDB returns a pool on a migrated database with all tables emptied.
// With POSTGRES_HOST set, a server already running there is used (as in CI);
// otherwise a throwaway container is started and removed after the test.
func NewTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	host, port := os.Getenv("POSTGRES_HOST"), os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}
	if host == "" {
		host, port = "localhost", runPostgresContainer(t)
	}
	t.Logf("using postgres at %s:%s", host, port)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     host,
		DBPort:     port,
		DBName:     testDBName,
		DBUser:     testDBUser,
		DBPassword: testDBPassword,
	})
	require.NoError(t, err)
	t.Cleanup(dbPool.Close)

	require.NoError(t, db.Migrate(ctx, dbPool))
	require.NoError(t, TruncateAll(ctx, dbPool))

	return dbPool
}

func runPostgresContainer(t *testing.T) string {
	t.Helper()

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "could not create new dockertest pool")
	require.NoError(t, pool.Client.Ping(), "could not ping dockertest pool")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=" + testDBUser,
			"POSTGRES_PASSWORD=" + testDBPassword,
			"POSTGRES_DB=" + testDBName,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	require.NoError(t, err, "dockerpool run postgres")
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("postgres teardown: %s", err)
		}
	})
	// a killed test run must not leave the container behind
	_ = resource.Expire(300)

	port := resource.GetPort("5432/tcp")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@localhost:%s/%s?sslmode=disable",
		testDBUser, testDBPassword, port, testDBName,
	)
	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()

	pool.MaxWait = time.Minute
	require.NoError(t, pool.Retry(sqlDB.Ping), "connect to postgres")

	return port
}

func TruncateAll(ctx context.Context, dbPool *pgxpool.Pool) error {
	_, err := dbPool.Exec(ctx, `TRUNCATE daily_completion, weight_entry, activity, app_user CASCADE;`)
	return err
}

// AddTestUser inserts a user with a random email and returns its id.
func AddTestUser(ctx context.Context, t *testing.T, dbPool *pgxpool.Pool) string {
	t.Helper()

	id := uuid.NewString()
	_, err := dbPool.Exec(
		ctx,
		`INSERT INTO app_user (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4);`,
		id, gofakeit.Email(), "not-a-real-hash", time.Now(),
	)
	require.NoError(t, err)

	return id
}
