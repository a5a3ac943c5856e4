package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeRecord is a stored resume row. The document sections live in a single
// JSONB column and travel together through every write.
type ResumeRecord struct {
	ID        uuid.UUID        `json:"id"`
	UserID    *uuid.UUID       `json:"user_id,omitempty"` // Nullable for anonymous saves
	Title     string           `json:"title"`
	Status    string           `json:"status"`
	Data      types.ResumeData `json:"data"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Saved converts a storage record to the wire envelope returned by the API.
func (r *ResumeRecord) Saved() types.SavedResume {
	saved := types.SavedResume{
		ID:        r.ID.String(),
		Title:     r.Title,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if r.UserID != nil {
		id := r.UserID.String()
		saved.UserID = &id
	}
	saved.SetData(r.Data)
	return saved
}

// User represents a user account row
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set" db:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
