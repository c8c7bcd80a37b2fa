package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/database"
)

// TestDatabaseSetup holds the connection used by repository integration tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS branches (
	id        TEXT PRIMARY KEY,
	timezone  TEXT NOT NULL DEFAULT 'Asia/Jakarta'
);

CREATE TABLE IF NOT EXISTS employees (
	employee_code TEXT PRIMARY KEY,
	branch_id     TEXT REFERENCES branches(id),
	deleted_at    TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS shift_schedules (
	user_code        TEXT NOT NULL,
	work_date        DATE NOT NULL,
	shift_code       TEXT NOT NULL,
	shift_name       TEXT NOT NULL,
	scheduled_start  TIME NOT NULL,
	scheduled_end    TIME NOT NULL,
	check_in_at      TIMESTAMPTZ,
	check_out_at     TIMESTAMPTZ,
	status           TEXT NOT NULL,
	scheduled_hours  NUMERIC(5,2) NOT NULL DEFAULT 0,
	actual_hours     NUMERIC(5,2),
	PRIMARY KEY (user_code, work_date, shift_code)
);
`

// NewTestDatabase connects to TEST_DATABASE_URL. ok is false when the variable
// is unset so callers can skip.
func NewTestDatabase(ctx context.Context) (setup *TestDatabaseSetup, ok bool, err error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, false, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	if err != nil {
		return nil, true, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if _, err := db.Exec(ctx, schemaDDL); err != nil {
		db.Close()
		return nil, true, fmt.Errorf("failed to create schema: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, true, nil
}

// TruncateAllTables removes every row written by the tests.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"shift_schedules",
		"employees",
		"branches",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
