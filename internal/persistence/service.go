package persistence

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/kvstore"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultTimeout bounds each remote API request.
const DefaultTimeout = 10 * time.Second

// Options configures a Service.
type Options struct {
	// BaseURL of the resume API, e.g. http://localhost:5000/api/v1.
	BaseURL string
	// Timeout per remote request. Zero means DefaultTimeout.
	Timeout time.Duration
	// Store backs the local fallback collections.
	Store kvstore.Store
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Service exposes the six persistence operations of the resume builder.
// Every operation tries the remote API first and degrades silently to the
// fallback store; callers cannot distinguish a remote save from a local one.
// The only failure ever surfaced is NotFound from the fallback path.
type Service struct {
	remote   *remote
	fallback *Fallback
}

// NewService creates a persistence service over the remote API and the
// injected fallback store.
func NewService(opts Options) *Service {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &Service{
		remote: &remote{
			baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
			timeout: timeout,
			client:  client,
		},
		fallback: NewFallback(opts.Store),
	}
}

// DefaultTitle builds the title used when the caller supplies none.
func DefaultTitle(data types.ResumeData) string {
	return fmt.Sprintf("%s %s Resume", data.PersonalInfo.FirstName, data.PersonalInfo.LastName)
}

// CreateDraft saves a new draft resume.
func (s *Service) CreateDraft(ctx context.Context, data types.ResumeData, title string) (*types.SavedResume, error) {
	return s.create(ctx, data, title, types.StatusDraft)
}

// CreateCompleted saves a new completed resume.
func (s *Service) CreateCompleted(ctx context.Context, data types.ResumeData, title string) (*types.SavedResume, error) {
	return s.create(ctx, data, title, types.StatusCompleted)
}

func (s *Service) create(ctx context.Context, data types.ResumeData, title, status string) (*types.SavedResume, error) {
	if title == "" {
		title = DefaultTitle(data)
	}

	saved, err := s.remote.create(ctx, data, title, status)
	if err == nil {
		return saved, nil
	}
	log.Printf("[PERSISTENCE] create falling back to local store: %v", err)
	return s.fallback.Create(ctx, data, title, status)
}

// Update rewrites an existing resume's document and status. A status change
// moves the record between the draft and completed collections in place,
// preserving its identifier.
func (s *Service) Update(ctx context.Context, id string, data types.ResumeData, status string) (*types.SavedResume, error) {
	saved, err := s.remote.update(ctx, id, data, status)
	if err == nil {
		return saved, nil
	}
	log.Printf("[PERSISTENCE] update falling back to local store: %v", err)
	return s.fallback.Update(ctx, id, data, status)
}

// List returns all saved resumes sorted by update timestamp descending.
func (s *Service) List(ctx context.Context) (*types.ResumeList, error) {
	list, err := s.remote.list(ctx)
	if err == nil {
		return list, nil
	}
	log.Printf("[PERSISTENCE] list falling back to local store: %v", err)
	return s.fallback.List(ctx)
}

// Get fetches a single resume by id. Returns *NotFoundError when the id is
// absent from the fallback store.
func (s *Service) Get(ctx context.Context, id string) (*types.SavedResume, error) {
	saved, err := s.remote.get(ctx, id)
	if err == nil {
		return saved, nil
	}
	log.Printf("[PERSISTENCE] get falling back to local store: %v", err)
	return s.fallback.Get(ctx, id)
}

// Delete removes a resume by id. A remote failure falls back silently; an
// absent id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.remote.delete(ctx, id)
	if err == nil {
		return nil
	}
	log.Printf("[PERSISTENCE] delete falling back to local store: %v", err)
	return s.fallback.Delete(ctx, id)
}
