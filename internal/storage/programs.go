package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/coachgen/internal/models"
)

// ProgramRecord is a stored program with the request that produced it.
type ProgramRecord struct {
	ID             uuid.UUID      `json:"id"`
	Sex            string         `json:"sexe"`
	Level          string         `json:"niveau"`
	Sessions       int            `json:"nb_seances"`
	Objective      string         `json:"objectif"`
	AutoRegenerate bool           `json:"auto_regenerate"`
	CreatedAt      time.Time      `json:"created_at"`
	RegeneratedAt  *time.Time     `json:"regenerated_at,omitempty"`
	Program        models.Program `json:"program"`
}

// ProgramSummary is a program listing entry without the session document.
type ProgramSummary struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"nom"`
	Sex            string     `json:"sexe"`
	Level          string     `json:"niveau"`
	Sessions       int        `json:"nb_seances"`
	Objective      string     `json:"objectif"`
	AutoRegenerate bool       `json:"auto_regenerate"`
	CreatedAt      time.Time  `json:"created_at"`
	RegeneratedAt  *time.Time `json:"regenerated_at,omitempty"`
}

// InsertProgram stores a generated program.
func (db *DB) InsertProgram(ctx context.Context, rec ProgramRecord) error {
	doc, err := json.Marshal(rec.Program)
	if err != nil {
		return fmt.Errorf("encoding program %s: %w", rec.ID, err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO programs (id, sexe, niveau, nb_seances, objectif, auto_regenerate, document, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		rec.ID, rec.Sex, rec.Level, rec.Sessions, rec.Objective, rec.AutoRegenerate, doc, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting program %s: %w", rec.ID, err)
	}
	return nil
}

const programColumns = `id, sexe, niveau, nb_seances, objectif, auto_regenerate, created_at, regenerated_at, document`

func scanProgram(row pgx.Row) (*ProgramRecord, error) {
	var rec ProgramRecord
	var doc []byte
	if err := row.Scan(&rec.ID, &rec.Sex, &rec.Level, &rec.Sessions, &rec.Objective,
		&rec.AutoRegenerate, &rec.CreatedAt, &rec.RegeneratedAt, &doc); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(doc, &rec.Program); err != nil {
		return nil, fmt.Errorf("decoding program %s: %w", rec.ID, err)
	}
	return &rec, nil
}

// GetProgram returns a stored program or ErrNotFound.
func (db *DB) GetProgram(ctx context.Context, id uuid.UUID) (*ProgramRecord, error) {
	rec, err := scanProgram(db.Pool.QueryRow(ctx,
		`SELECT `+programColumns+` FROM programs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("program %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying program %s: %w", id, err)
	}
	return rec, nil
}

// ListPrograms returns the most recent programs, newest first.
func (db *DB) ListPrograms(ctx context.Context, limit int) ([]ProgramSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, coalesce(document->>'nom', ''), sexe, niveau, nb_seances, objectif,
		 auto_regenerate, created_at, regenerated_at
		 FROM programs
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer rows.Close()

	var result []ProgramSummary
	for rows.Next() {
		var s ProgramSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Sex, &s.Level, &s.Sessions, &s.Objective,
			&s.AutoRegenerate, &s.CreatedAt, &s.RegeneratedAt); err != nil {
			return nil, fmt.Errorf("scanning program: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// ListAutoRegeneratePrograms returns every program flagged for periodic
// regeneration.
func (db *DB) ListAutoRegeneratePrograms(ctx context.Context) ([]ProgramRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+programColumns+` FROM programs WHERE auto_regenerate ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying auto-regenerate programs: %w", err)
	}
	defer rows.Close()

	var result []ProgramRecord
	for rows.Next() {
		rec, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning program: %w", err)
		}
		result = append(result, *rec)
	}
	return result, rows.Err()
}

// UpdateProgramDocument replaces the sessions of a stored program and stamps
// regenerated_at.
func (db *DB) UpdateProgramDocument(ctx context.Context, id uuid.UUID, program models.Program) error {
	doc, err := json.Marshal(program)
	if err != nil {
		return fmt.Errorf("encoding program %s: %w", id, err)
	}
	tag, err := db.Pool.Exec(ctx,
		`UPDATE programs SET document = $2, regenerated_at = now() WHERE id = $1`, id, doc)
	if err != nil {
		return fmt.Errorf("updating program %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("program %s: %w", id, ErrNotFound)
	}
	return nil
}
