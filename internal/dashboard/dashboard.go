// Package dashboard lists previously saved resumes, supports client-side
// filtering, and launches deletions against the persistence service.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// StatusAll disables the status filter.
const StatusAll = "all"

// Lister is the slice of the persistence layer the dashboard consumes.
type Lister interface {
	List(ctx context.Context) (*types.ResumeList, error)
	Delete(ctx context.Context, id string) error
}

// Dashboard loads and filters saved resume envelopes.
type Dashboard struct {
	svc Lister
}

// New creates a dashboard over the persistence service.
func New(svc Lister) *Dashboard {
	return &Dashboard{svc: svc}
}

// Load fetches all saved resumes.
func (d *Dashboard) Load(ctx context.Context) ([]types.SavedResume, error) {
	list, err := d.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load resumes: %w", err)
	}
	return list.Resumes, nil
}

// Filter applies a case-insensitive substring match on title and first/last
// name, and an exact status match. StatusAll (or "") disables the status
// filter; an empty query disables the text filter.
func Filter(resumes []types.SavedResume, query, status string) []types.SavedResume {
	query = strings.ToLower(strings.TrimSpace(query))

	matched := make([]types.SavedResume, 0, len(resumes))
	for _, r := range resumes {
		if status != "" && status != StatusAll && r.Status != status {
			continue
		}
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

func matchesQuery(r types.SavedResume, query string) bool {
	for _, field := range []string{r.Title, r.PersonalInfo.FirstName, r.PersonalInfo.LastName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Delete removes a resume after interactive confirmation and returns the
// refreshed list. A declined confirmation returns the current list unchanged.
func (d *Dashboard) Delete(ctx context.Context, id string, confirm func() bool) ([]types.SavedResume, error) {
	if confirm == nil || !confirm() {
		return d.Load(ctx)
	}
	if err := d.svc.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete resume %s: %w", id, err)
	}
	return d.Load(ctx)
}
