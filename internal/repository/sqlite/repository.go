package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
	"github.com/mamadbah2/livestock-gva/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS gva_reports (
	id           TEXT PRIMARY KEY,
	created_at   INTEGER NOT NULL,
	author_id    TEXT NOT NULL,
	author       TEXT NOT NULL,
	inputs       TEXT NOT NULL,
	results      TEXT NOT NULL,
	settings     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_gva_reports_author_created ON gva_reports(author_id, created_at DESC);
`

// SQLiteRepository stores each report as one row with JSON encoded
// sections.
type SQLiteRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteRepository opens (or creates) the database at path and applies
// the schema.
func NewSQLiteRepository(ctx context.Context, path string, logger *zap.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	// A single connection serialises writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	return &SQLiteRepository{db: db, logger: logger}, nil
}

// Save inserts the report in a single statement.
func (r *SQLiteRepository) Save(ctx context.Context, report models.Report) (string, error) {
	author, err := json.Marshal(report.Author)
	if err != nil {
		return "", fmt.Errorf("encode report author: %w", err)
	}
	inputs, err := json.Marshal(report.Inputs)
	if err != nil {
		return "", fmt.Errorf("encode report inputs: %w", err)
	}
	results, err := json.Marshal(report.Results)
	if err != nil {
		return "", fmt.Errorf("encode report results: %w", err)
	}
	settings, err := json.Marshal(report.SettingsUsed)
	if err != nil {
		return "", fmt.Errorf("encode report settings: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO gva_reports (id, created_at, author_id, author, inputs, results, settings) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.CreatedAt.UnixNano(), report.Author.ID, string(author), string(inputs), string(results), string(settings))
	if err != nil {
		return "", fmt.Errorf("failed to insert gva report: %w", err)
	}

	r.logger.Debug("gva report inserted", zap.String("report_id", report.ID))
	return report.ID, nil
}

// Get loads one report by id.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (models.Report, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, created_at, author, inputs, results, settings FROM gva_reports WHERE id = ?`, id)

	report, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Report{}, repository.ErrNotFound
	}
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to load gva report %s: %w", id, err)
	}
	return report, nil
}

// List returns matching reports, newest first.
func (r *SQLiteRepository) List(ctx context.Context, filter models.ReportFilter) ([]models.Report, error) {
	query := `SELECT id, created_at, author, inputs, results, settings FROM gva_reports WHERE 1=1`
	var args []any
	if filter.AuthorID != "" {
		query += ` AND author_id = ?`
		args = append(args, filter.AuthorID)
	}
	if !filter.Since.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, filter.Since.UnixNano())
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, filter.EffectiveLimit())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query gva reports: %w", err)
	}
	defer rows.Close()

	reports := make([]models.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to decode gva report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate gva reports: %w", err)
	}
	return reports, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(s scanner) (models.Report, error) {
	var (
		report                            models.Report
		createdAt                         int64
		author, inputs, results, settings string
	)
	if err := s.Scan(&report.ID, &createdAt, &author, &inputs, &results, &settings); err != nil {
		return models.Report{}, err
	}

	report.CreatedAt = time.Unix(0, createdAt).UTC()
	if err := json.Unmarshal([]byte(author), &report.Author); err != nil {
		return models.Report{}, fmt.Errorf("author: %w", err)
	}
	if err := json.Unmarshal([]byte(inputs), &report.Inputs); err != nil {
		return models.Report{}, fmt.Errorf("inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(results), &report.Results); err != nil {
		return models.Report{}, fmt.Errorf("results: %w", err)
	}
	if err := json.Unmarshal([]byte(settings), &report.SettingsUsed); err != nil {
		return models.Report{}, fmt.Errorf("settings: %w", err)
	}
	return report, nil
}
