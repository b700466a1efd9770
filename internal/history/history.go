// Package history keeps a local SQLite record of programs generated offline.
package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/claude/coachgen/internal/models"
)

// ErrNotFound is returned when a program is not in the history.
var ErrNotFound = errors.New("not found")

// Entry is a program recorded in the history.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"nom"`
	Sex         string    `json:"sexe"`
	Level       string    `json:"niveau"`
	Sessions    int       `json:"nb_seances"`
	Objective   string    `json:"objectif"`
	Variant     string    `json:"variante"`
	CatalogHash string    `json:"catalog_hash"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is the SQLite history database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dir/history.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS programs (
		id           TEXT PRIMARY KEY,
		nom          TEXT NOT NULL,
		sexe         TEXT NOT NULL,
		niveau       TEXT NOT NULL,
		nb_seances   INTEGER NOT NULL,
		objectif     TEXT NOT NULL,
		variante     TEXT NOT NULL,
		catalog_hash TEXT NOT NULL,
		document     TEXT NOT NULL,
		created_at   TIMESTAMP NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the history database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a generated program. Programs without an ID get one.
func (s *Store) Record(ctx context.Context, p *models.Program, catalogHash string) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding program %s: %w", p.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO programs
		 (id, nom, sexe, niveau, nb_seances, objectif, variante, catalog_hash, document, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.Name, p.Sex, p.Level, len(p.Sessions), p.Objective, p.Variant,
		catalogHash, string(doc), p.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("recording program %s: %w", p.ID, err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nom, sexe, niveau, nb_seances, objectif, variante, catalog_hash, created_at
		 FROM programs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var id string
		if err := rows.Scan(&id, &e.Name, &e.Sex, &e.Level, &e.Sessions, &e.Objective,
			&e.Variant, &e.CatalogHash, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing history id %q: %w", id, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get returns a recorded program.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM programs WHERE id = ?`, id.String()).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("program %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying program %s: %w", id, err)
	}
	var p models.Program
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decoding program %s: %w", id, err)
	}
	return &p, nil
}

// HashCatalog fingerprints a raw catalog so history entries can be traced back
// to the catalog they were drawn from.
func HashCatalog(c *models.RawCatalog) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
