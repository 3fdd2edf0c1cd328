// Package mysql provides a durable form.Store implementation on MySQL.
// Documents and submission values are stored as JSON columns; the schema is
// created on first connect.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/formforge/formforge/form"
	"github.com/formforge/formforge/schema"
)

// Config controls the database connection.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store implements form.Store on a MySQL database.
type Store struct {
	db *sql.DB
}

const createForms = `CREATE TABLE IF NOT EXISTS forms (
	id         VARCHAR(64) PRIMARY KEY,
	prompt     TEXT NOT NULL,
	document   JSON NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

const createSubmissions = `CREATE TABLE IF NOT EXISTS submissions (
	id           VARCHAR(64) PRIMARY KEY,
	form_id      VARCHAR(64) NOT NULL,
	payload      JSON NOT NULL,
	submitted_at TIMESTAMP NOT NULL,
	INDEX idx_submissions_form (form_id)
)`

// Open connects to MySQL, applies pool settings, verifies the connection and
// ensures the tables exist.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("mysql: dsn must not be empty")
	}
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	} else {
		db.SetMaxOpenConns(20)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	} else {
		db.SetMaxIdleConns(10)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}

	for _, ddl := range []string{createForms, createSubmissions} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("mysql: ensure schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// SaveForm implements form.Store.
func (s *Store) SaveForm(ctx context.Context, f form.StoredForm) error {
	doc, err := json.Marshal(f.Document)
	if err != nil {
		return fmt.Errorf("mysql: encode document: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`REPLACE INTO forms (id, prompt, document, created_at) VALUES (?, ?, ?, ?)`,
		f.ID, f.Prompt, doc, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("mysql: save form: %w", err)
	}
	return nil
}

// GetForm implements form.Store.
func (s *Store) GetForm(ctx context.Context, id string) (*form.StoredForm, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, prompt, document, created_at FROM forms WHERE id = ?`, id)

	stored, err := scanForm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, form.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mysql: get form: %w", err)
	}
	return stored, nil
}

// ListForms implements form.Store.
func (s *Store) ListForms(ctx context.Context, limit int) ([]form.StoredForm, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, prompt, document, created_at FROM forms ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("mysql: list forms: %w", err)
	}
	defer rows.Close()

	var forms []form.StoredForm
	for rows.Next() {
		stored, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("mysql: list forms: %w", err)
		}
		forms = append(forms, *stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mysql: list forms: %w", err)
	}
	return forms, nil
}

// SaveSubmission implements form.Store.
func (s *Store) SaveSubmission(ctx context.Context, sub form.SubmissionRecord) error {
	if _, err := s.GetForm(ctx, sub.FormID); err != nil {
		return err
	}
	payload, err := json.Marshal(sub.Values)
	if err != nil {
		return fmt.Errorf("mysql: encode submission: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, form_id, payload, submitted_at) VALUES (?, ?, ?, ?)`,
		sub.ID, sub.FormID, payload, sub.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("mysql: save submission: %w", err)
	}
	return nil
}

// ListSubmissions implements form.Store.
func (s *Store) ListSubmissions(ctx context.Context, formID string) ([]form.SubmissionRecord, error) {
	if _, err := s.GetForm(ctx, formID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, form_id, payload, submitted_at FROM submissions WHERE form_id = ? ORDER BY submitted_at`, formID)
	if err != nil {
		return nil, fmt.Errorf("mysql: list submissions: %w", err)
	}
	defer rows.Close()

	var subs []form.SubmissionRecord
	for rows.Next() {
		var (
			rec     form.SubmissionRecord
			payload []byte
		)
		if err := rows.Scan(&rec.ID, &rec.FormID, &payload, &rec.SubmittedAt); err != nil {
			return nil, fmt.Errorf("mysql: list submissions: %w", err)
		}
		if err := json.Unmarshal(payload, &rec.Values); err != nil {
			return nil, fmt.Errorf("mysql: decode submission %s: %w", rec.ID, err)
		}
		subs = append(subs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mysql: list submissions: %w", err)
	}
	return subs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanForm(row rowScanner) (*form.StoredForm, error) {
	var (
		stored form.StoredForm
		doc    []byte
	)
	if err := row.Scan(&stored.ID, &stored.Prompt, &doc, &stored.CreatedAt); err != nil {
		return nil, err
	}
	var document schema.Document
	if err := json.Unmarshal(doc, &document); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	stored.Document = document
	return &stored, nil
}
