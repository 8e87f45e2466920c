// Package testsupport holds helpers shared by package tests.
package testsupport

import (
	"context"
	"database/sql"
	"testing"

	"go.uber.org/zap"

	"github.com/iliyamo/lateshow-api/internal/config"
	"github.com/iliyamo/lateshow-api/internal/database"
	"github.com/iliyamo/lateshow-api/internal/seed"
)

// OpenDB opens an in-memory SQLite catalog with the schema applied and
// registers cleanup.
func OpenDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("database.OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	if err := database.Migrate(context.Background(), db, config.DriverSQLite); err != nil {
		t.Fatalf("database.Migrate: %v", err)
	}
	return db
}

// OpenSeededDB is OpenDB followed by a fallback seed run (5 episodes,
// 5 guests, 6 appearances).  Seed files are looked up in an empty temp dir
// so the fallback data is always used.
func OpenSeededDB(t testing.TB) *sql.DB {
	t.Helper()

	db := OpenDB(t)
	if _, err := seed.New(db, config.DriverSQLite, zap.NewNop()).Run(context.Background(), t.TempDir()); err != nil {
		t.Fatalf("seed.Run: %v", err)
	}
	return db
}
