// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/exchange"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/logging"
	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Keys of the persisted entries.
const (
	NotebookKey = "cdp-data"
	ThemeKey    = "cdp-theme"
	corruptKey  = NotebookKey + ".corrupt"
)

// ErrCorrupt is returned when the stored notebook cannot be decoded. The raw
// value is kept under a separate key before the error is returned.
var ErrCorrupt = errors.New("stored notebook is corrupt")

// Store is a small key-value table holding the notebook and the UI theme.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	store := &Store{db: db, logger: logger}
	if err := store.migrate(context.Background()); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	goose.SetLogger(logging.Goose{L: s.logger})
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Get returns the raw value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// Put replaces the value stored under key.
func (s *Store) Put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// LoadNotebook returns the stored notebook, normalized. The boolean is false
// when nothing has been saved yet.
func (s *Store) LoadNotebook(ctx context.Context) (model.Notebook, bool, error) {
	raw, ok, err := s.Get(ctx, NotebookKey)
	if err != nil || !ok {
		return model.Notebook{Days: []model.Day{}}, false, err
	}
	nb, err := exchange.Unmarshal([]byte(raw))
	if err != nil {
		s.logger.Printf("stored notebook is unreadable: %v", err)
		if perr := s.Put(ctx, corruptKey, raw); perr != nil {
			s.logger.Printf("failed to keep corrupt notebook: %v", perr)
		}
		return model.Notebook{Days: []model.Day{}}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return nb, true, nil
}

// SaveNotebook replaces the stored notebook.
func (s *Store) SaveNotebook(ctx context.Context, nb model.Notebook) error {
	data, err := exchange.Marshal(nb)
	if err != nil {
		return err
	}
	return s.Put(ctx, NotebookKey, string(data))
}

// LoadTheme returns the stored theme, dark when unset.
func (s *Store) LoadTheme(ctx context.Context) (model.Theme, error) {
	raw, _, err := s.Get(ctx, ThemeKey)
	if err != nil {
		return model.ThemeDark, err
	}
	return model.ParseTheme(raw), nil
}

// SaveTheme stores the theme.
func (s *Store) SaveTheme(ctx context.Context, theme model.Theme) error {
	return s.Put(ctx, ThemeKey, string(model.ParseTheme(string(theme))))
}
