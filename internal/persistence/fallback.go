package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/kvstore"
	"github.com/jonathan/resume-builder/internal/types"
)

// Fallback store keys, one serialized list per logical collection.
const (
	KeyDrafts    = "resume_drafts"
	KeyCompleted = "saved_resumes"
)

// Fallback persists resumes in two key-value collections, drafts and
// completed, mirroring what the remote API would have stored. It has no
// cross-tab locking; concurrent writers to the same profile can lose updates.
type Fallback struct {
	store kvstore.Store
	now   func() time.Time
}

// NewFallback creates a fallback over the given key-value store.
func NewFallback(store kvstore.Store) *Fallback {
	return &Fallback{store: store, now: time.Now}
}

// load reads one collection, treating a never-written key as empty.
func (f *Fallback) load(ctx context.Context, key string) ([]types.SavedResume, error) {
	raw, err := f.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return []types.SavedResume{}, nil
		}
		return nil, fmt.Errorf("failed to load collection %s: %w", key, err)
	}

	var resumes []types.SavedResume
	if err := json.Unmarshal(raw, &resumes); err != nil {
		return nil, fmt.Errorf("failed to parse collection %s: %w", key, err)
	}
	return resumes, nil
}

// save writes one collection back as a serialized list.
func (f *Fallback) save(ctx context.Context, key string, resumes []types.SavedResume) error {
	raw, err := json.Marshal(resumes)
	if err != nil {
		return fmt.Errorf("failed to marshal collection %s: %w", key, err)
	}
	if err := f.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to store collection %s: %w", key, err)
	}
	return nil
}

func collectionKey(status string) string {
	if status == types.StatusDraft {
		return KeyDrafts
	}
	return KeyCompleted
}

// Create generates a new identifier and appends the resume to the collection
// for the given status.
func (f *Fallback) Create(ctx context.Context, data types.ResumeData, title, status string) (*types.SavedResume, error) {
	key := collectionKey(status)
	resumes, err := f.load(ctx, key)
	if err != nil {
		return nil, err
	}

	now := f.now().UTC().Format(time.RFC3339)
	saved := types.SavedResume{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	saved.SetData(data)

	resumes = append(resumes, saved)
	if err := f.save(ctx, key, resumes); err != nil {
		return nil, err
	}
	return &saved, nil
}

// Update locates the record by id across both collections, rewrites its
// mutable fields and timestamp, and moves it between collections when the
// status changed. The identifier is preserved across the move.
func (f *Fallback) Update(ctx context.Context, id string, data types.ResumeData, status string) (*types.SavedResume, error) {
	drafts, err := f.load(ctx, KeyDrafts)
	if err != nil {
		return nil, err
	}
	completed, err := f.load(ctx, KeyCompleted)
	if err != nil {
		return nil, err
	}

	apply := func(r types.SavedResume) types.SavedResume {
		r.SetData(data)
		r.Status = status
		r.UpdatedAt = f.now().UTC().Format(time.RFC3339)
		return r
	}

	var updated *types.SavedResume
	if i := indexByID(drafts, id); i >= 0 {
		resume := apply(drafts[i])
		updated = &resume
		if status == types.StatusCompleted {
			drafts = append(drafts[:i], drafts[i+1:]...)
			completed = append(completed, resume)
		} else {
			drafts[i] = resume
		}
	} else if i := indexByID(completed, id); i >= 0 {
		resume := apply(completed[i])
		updated = &resume
		if status == types.StatusDraft {
			completed = append(completed[:i], completed[i+1:]...)
			drafts = append(drafts, resume)
		} else {
			completed[i] = resume
		}
	}

	if updated == nil {
		return nil, &NotFoundError{ID: id}
	}

	if err := f.save(ctx, KeyDrafts, drafts); err != nil {
		return nil, err
	}
	if err := f.save(ctx, KeyCompleted, completed); err != nil {
		return nil, err
	}
	return updated, nil
}

// List merges both collections sorted by update timestamp descending.
func (f *Fallback) List(ctx context.Context) (*types.ResumeList, error) {
	var drafts, completed []types.SavedResume

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		drafts, err = f.load(gCtx, KeyDrafts)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = f.load(gCtx, KeyCompleted)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]types.SavedResume, 0, len(drafts)+len(completed))
	all = append(all, drafts...)
	all = append(all, completed...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UpdatedTime().After(all[j].UpdatedTime())
	})

	return &types.ResumeList{Resumes: all, Total: len(all)}, nil
}

// Get searches both collections by id.
func (f *Fallback) Get(ctx context.Context, id string) (*types.SavedResume, error) {
	for _, key := range []string{KeyDrafts, KeyCompleted} {
		resumes, err := f.load(ctx, key)
		if err != nil {
			return nil, err
		}
		if i := indexByID(resumes, id); i >= 0 {
			resume := resumes[i]
			return &resume, nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

// Delete removes the id from both collections. Deleting an absent id is a no-op.
func (f *Fallback) Delete(ctx context.Context, id string) error {
	for _, key := range []string{KeyDrafts, KeyCompleted} {
		resumes, err := f.load(ctx, key)
		if err != nil {
			return err
		}
		kept := resumes[:0]
		for _, r := range resumes {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		if err := f.save(ctx, key, kept); err != nil {
			return err
		}
	}
	return nil
}

func indexByID(resumes []types.SavedResume, id string) int {
	for i, r := range resumes {
		if r.ID == id {
			return i
		}
	}
	return -1
}
