package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/xxxsen/remindme/internal/config"
	"github.com/xxxsen/remindme/internal/db"
)

// OpenTestDB connects to the postgres instance named by TEST_DB_HOST and
// applies migrations. The test is skipped when the variable is unset.
func OpenTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	driver := os.Getenv("TEST_DB_DRIVER")
	conn, err := db.Open(config.DatabaseConfig{
		Driver:   driver,
		Host:     host,
		Port:     5432,
		User:     "remindme",
		Password: "remindme_pass",
		DBName:   "remindme_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(context.Background(), conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return conn, func() {
		_, _ = conn.Exec("TRUNCATE reminders, users RESTART IDENTITY CASCADE")
		_ = conn.Close()
	}
}
