package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-builder/internal/types"
)

// rowScanner covers pgx.Row and pgx.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (*ResumeRecord, error) {
	var rec ResumeRecord
	var raw []byte
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.Status, &raw, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan resume: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &rec.Data); err != nil {
			return nil, fmt.Errorf("failed to decode resume data: %w", err)
		}
	}
	return &rec, nil
}

// CreateResume inserts a new resume document and returns the stored record
func (db *DB) CreateResume(ctx context.Context, userID *uuid.UUID, title, status string, data types.ResumeData) (*ResumeRecord, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume data: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, title, status, data)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, title, status, data, created_at, updated_at`,
		userID, title, status, raw,
	)
	rec, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return rec, nil
}

// GetResume retrieves a resume by ID. Returns nil when no row matches.
func (db *DB) GetResume(ctx context.Context, resumeID uuid.UUID) (*ResumeRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, user_id, title, status, data, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		resumeID,
	)
	return scanResume(row)
}

// UpdateResume replaces a resume's document and status in place. The row keeps
// its ID across draft/completed transitions. Returns nil when no row matches.
func (db *DB) UpdateResume(ctx context.Context, resumeID uuid.UUID, status string, data types.ResumeData) (*ResumeRecord, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume data: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE resumes SET status = $1, data = $2, updated_at = NOW()
		 WHERE id = $3
		 RETURNING id, user_id, title, status, data, created_at, updated_at`,
		status, raw, resumeID,
	)
	return scanResume(row)
}

// ResumeFilters holds optional filters and paging for listing resumes
type ResumeFilters struct {
	UserID *uuid.UUID
	Status string
	Limit  int
	Offset int
}

// filterClause builds the shared WHERE tail for list and count queries.
func (f ResumeFilters) filterClause() (string, []any) {
	clause := " WHERE 1=1"
	args := []any{}
	argNum := 1

	if f.UserID != nil {
		clause += fmt.Sprintf(" AND user_id = $%d", argNum)
		args = append(args, *f.UserID)
		argNum++
	}
	if f.Status != "" {
		clause += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, f.Status)
	}
	return clause, args
}

// ListResumes retrieves one page of resumes, most recently updated first
func (db *DB) ListResumes(ctx context.Context, filters ResumeFilters) ([]ResumeRecord, error) {
	if filters.Limit == 0 {
		filters.Limit = 100
	}

	clause, args := filters.filterClause()
	query := `SELECT id, user_id, title, status, data, created_at, updated_at
		FROM resumes` + clause
	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var records []ResumeRecord
	for rows.Next() {
		rec, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

// CountResumes returns how many resumes match the filters, ignoring paging.
func (db *DB) CountResumes(ctx context.Context, filters ResumeFilters) (int, error) {
	clause, args := filters.filterClause()

	var total int
	err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resumes`+clause, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count resumes: %w", err)
	}
	return total, nil
}

// DeleteResume deletes a resume by ID
func (db *DB) DeleteResume(ctx context.Context, resumeID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, resumeID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", resumeID)
	}
	return nil
}
