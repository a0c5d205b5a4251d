// Package migrations owns the SQLite schema behind the kv store.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var fs embed.FS

// Run applies all pending migrations against db. Goose output goes to
// logger at debug level; a nil logger discards it.
func Run(db *sql.DB, logger *slog.Logger) error {
	goose.SetBaseFS(fs)
	if logger == nil {
		goose.SetLogger(goose.NopLogger())
	} else {
		goose.SetLogger(gooseLogger{logger})
	}

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if logger != nil {
		logger.Info("schema up to date", "version", version)
	}
	return nil
}

// gooseLogger adapts *slog.Logger to goose.Logger.
type gooseLogger struct{ l *slog.Logger }

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
