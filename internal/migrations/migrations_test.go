package migrations_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/wheretogo/compass/internal/database"
	"github.com/wheretogo/compass/internal/migrations"
)

func TestMigrations(t *testing.T) {
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(db, nil); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	var name string
	err = db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", "kv",
	).Scan(&name)
	if err != nil {
		t.Errorf("table %q not found: %v", "kv", err)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(db, nil); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := migrations.Run(db, nil); err != nil {
		t.Fatalf("second run (should be no-op): %v", err)
	}
}

func TestMigrationsVersion(t *testing.T) {
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(db, slog.New(slog.DiscardHandler)); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	var version int64
	err = db.QueryRow("SELECT MAX(version_id) FROM goose_db_version WHERE is_applied = 1").Scan(&version)
	if err != nil {
		t.Fatalf("reading goose version: %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}
}
