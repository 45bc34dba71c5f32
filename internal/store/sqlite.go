package store

import (
	"database/sql"
	"embed"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/Mikkelka/gametrack/internal/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLite is the shipped Store backend. It keeps the document-store contract
// local: one writer connection, WAL journaling, and an in-process watch hub
// standing in for the remote push subscription.
type SQLite struct {
	db  *sql.DB
	hub *watchHub
	log *logger.Logger
}

var _ Store = (*SQLite)(nil)

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gametrack"
	}
	return filepath.Join(home, ".local", "share", "gametrack")
}

// DefaultDBPath returns the default database file path
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "gametrack.db")
}

// Open opens the database, runs migrations and prepares the watch hub
func Open(dbPath string, lg *logger.Logger) (*SQLite, error) {
	if lg == nil {
		lg = logger.NewDiscard()
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// WAL mode for safer concurrent access from a second process
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", dbPath)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &SQLite{db: sqlDB, hub: newWatchHub(), log: lg}

	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// migrate runs database migrations using embedded SQL files
func (s *SQLite) migrate() error {
	// Silence goose logging (it corrupts TUI output)
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection and drops all watchers
func (s *SQLite) Close() error {
	s.hub.closeAll()
	return s.db.Close()
}

// transaction executes a function within a transaction
func (s *SQLite) transaction(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
