package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

// remote issues requests against the resume API with a bounded per-request
// timeout. A non-success response or any transport failure is returned as a
// *RemoteError for the service to absorb.
type remote struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// createRequest is the body for POST /resume/resumes and /resume/resumes/draft.
type createRequest struct {
	Title  string           `json:"title"`
	Data   types.ResumeData `json:"data"`
	Status string           `json:"status"`
}

// updateRequest is the body for PUT /resume/resumes/{id}.
type updateRequest struct {
	Data      types.ResumeData `json:"data"`
	Status    string           `json:"status"`
	UpdatedAt string           `json:"updatedAt"`
}

// do issues one request and decodes the envelope's data field into out.
// The request is aborted when the configured timeout elapses.
func (r *remote) do(ctx context.Context, operation, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Operation: operation, Cause: fmt.Errorf("failed to marshal request: %w", err)}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return &RemoteError{Operation: operation, Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return &RemoteError{Operation: operation, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RemoteError{Operation: operation, StatusCode: resp.StatusCode}
	}

	if out == nil {
		return nil
	}

	var envelope types.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &RemoteError{Operation: operation, Cause: fmt.Errorf("failed to decode response: %w", err)}
	}
	if !envelope.Success {
		return &RemoteError{Operation: operation, Cause: fmt.Errorf("api reported failure: %s", envelope.Message)}
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &RemoteError{Operation: operation, Cause: fmt.Errorf("failed to decode response data: %w", err)}
	}
	return nil
}

func (r *remote) create(ctx context.Context, data types.ResumeData, title, status string) (*types.SavedResume, error) {
	path := "/resume/resumes"
	if status == types.StatusDraft {
		path = "/resume/resumes/draft"
	}

	var saved types.SavedResume
	req := createRequest{Title: title, Data: data.Normalized(), Status: status}
	if err := r.do(ctx, "create", http.MethodPost, path, req, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *remote) update(ctx context.Context, id string, data types.ResumeData, status string) (*types.SavedResume, error) {
	var saved types.SavedResume
	req := updateRequest{
		Data:      data.Normalized(),
		Status:    status,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := r.do(ctx, "update", http.MethodPut, "/resume/resumes/"+id, req, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *remote) list(ctx context.Context) (*types.ResumeList, error) {
	var list types.ResumeList
	if err := r.do(ctx, "list", http.MethodGet, "/resume/resumes", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *remote) get(ctx context.Context, id string) (*types.SavedResume, error) {
	var saved types.SavedResume
	if err := r.do(ctx, "get", http.MethodGet, "/resume/resumes/"+id, nil, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *remote) delete(ctx context.Context, id string) error {
	return r.do(ctx, "delete", http.MethodDelete, "/resume/resumes/"+id, nil, nil)
}
