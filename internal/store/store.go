// Package store persists screening outcomes in Postgres and answers the
// search queries the CLI exposes. The screener itself is stateless; storage
// is strictly optional.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Store wraps a Postgres connection pool.
type Store struct {
	db *sql.DB
}

// Record is a persisted screening outcome.
type Record struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Education []string  `json:"education,omitempty"`
	Skills    []string  `json:"skills,omitempty"`
	JobFit    float64   `json:"job_fit_percent"`
	Text      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter narrows Search results. At least one field must be set.
type Filter struct {
	Skill     string
	Education string
}

const schema = `
CREATE TABLE IF NOT EXISTS screenings (
	id UUID PRIMARY KEY,
	file TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	education TEXT[] NOT NULL DEFAULT '{}',
	skills TEXT[] NOT NULL DEFAULT '{}',
	job_fit DOUBLE PRECISION NOT NULL,
	resume_text TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Open connects to Postgres with the provided DSN and verifies the
// connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates the screenings table when it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create screenings table: %w", err)
	}
	return nil
}

// Save inserts the record and returns its generated id.
func (s *Store) Save(ctx context.Context, r *Record) (string, error) {
	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO screenings (id, file, name, email, phone, education, skills, job_fit, resume_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, r.File, r.Name, r.Email, r.Phone,
		pq.Array(r.Education), pq.Array(r.Skills), r.JobFit, r.Text,
	)
	if err != nil {
		return "", fmt.Errorf("insert screening: %w", err)
	}

	return id, nil
}

// Search returns records matching the filter, newest first.
func (s *Store) Search(ctx context.Context, f Filter) ([]*Record, error) {
	query, args, err := searchQuery(f)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search screenings: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		r := &Record{}
		err := rows.Scan(
			&r.ID, &r.File, &r.Name, &r.Email, &r.Phone,
			pq.Array(&r.Education), pq.Array(&r.Skills), &r.JobFit, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan screening: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// Delete removes the record with the given id, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM screenings WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete screening: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// searchQuery builds the SQL for the filter. Skills are stored lower-cased,
// so the skill filter compares lower-cased too; education matches any stored
// line containing the given substring.
func searchQuery(f Filter) (string, []any, error) {
	base := `
		SELECT id, file, name, email, phone, education, skills, job_fit, created_at
		FROM screenings`

	var clauses []string
	var args []any

	if f.Skill != "" {
		args = append(args, f.Skill)
		clauses = append(clauses, fmt.Sprintf("lower($%d) = ANY(skills)", len(args)))
	}
	if f.Education != "" {
		args = append(args, f.Education)
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM unnest(education) AS edu WHERE edu ILIKE '%%' || $%d || '%%')", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil, errors.New("at least one search filter is required")
	}

	query := base + " WHERE " + clauses[0]
	for _, clause := range clauses[1:] {
		query += " AND " + clause
	}
	query += " ORDER BY created_at DESC"

	return query, args, nil
}
