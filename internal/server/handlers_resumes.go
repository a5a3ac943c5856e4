package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// CreateResumeRequest is the body for POST /resume/resumes and /resume/resumes/draft.
// Data stays raw until it has passed schema validation.
type CreateResumeRequest struct {
	Title  string          `json:"title"`
	Data   json.RawMessage `json:"data"`
	Status string          `json:"status"`
}

// UpdateResumeRequest is the body for PUT /resume/resumes/{id}
type UpdateResumeRequest struct {
	Data      json.RawMessage `json:"data"`
	Status    string          `json:"status"`
	UpdatedAt string          `json:"updatedAt"`
}

// decodeResumeData unmarshals a raw document, applying full schema validation
// for completed saves. Drafts are partial by nature and only need to decode
// structurally. Failures map to 400 responses.
func decodeResumeData(raw json.RawMessage, status string) (types.ResumeData, error) {
	var data types.ResumeData
	if len(raw) == 0 {
		return data, &ErrValidation{Field: "data", Message: "resume data is required"}
	}
	if status == types.StatusCompleted {
		if err := schemas.ValidateResumeDocument(raw); err != nil {
			if _, ok := err.(*schemas.ValidationError); ok {
				return data, &ErrValidation{Field: "data", Message: err.Error()}
			}
			return data, err
		}
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, &ErrValidation{Field: "data", Message: "resume data is malformed"}
	}
	return data, nil
}

// resumeTitle falls back to "{First} {Last} Resume" when no title is supplied
func resumeTitle(title string, data types.ResumeData) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	name := strings.TrimSpace(data.PersonalInfo.FirstName + " " + data.PersonalInfo.LastName)
	if name == "" {
		return "Untitled Resume"
	}
	return name + " Resume"
}

// optionalUserID extracts a user ID when a valid bearer token accompanies the
// request. Anonymous requests save without an owner.
func (s *Server) optionalUserID(r *http.Request) *uuid.UUID {
	token := middleware.BearerToken(r)
	if token == "" {
		return nil
	}
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}
	userID := claims.UserID
	return &userID
}

// createResume is shared by the draft and completed create endpoints
func (s *Server) createResume(w http.ResponseWriter, r *http.Request, status string) {
	var req CreateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.envelopeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	data, err := decodeResumeData(req.Data, status)
	if err != nil {
		s.envelopeError(w, HTTPStatus(err), err.Error())
		return
	}

	rec, err := s.store.CreateResume(r.Context(), s.optionalUserID(r), resumeTitle(req.Title, data), status, data)
	if err != nil {
		s.envelopeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.envelopeResponse(w, http.StatusCreated, "Resume saved", rec.Saved())
}

// handleCreateResume creates a completed resume
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	s.createResume(w, r, types.StatusCompleted)
}

// handleCreateDraft creates a draft resume
func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	s.createResume(w, r, types.StatusDraft)
}

// Paging bounds for the list endpoint.
const (
	defaultPageSize = 100
	maxPageSize     = 500
)

// listPage parses the page and limit query parameters, clamping bad values
// to the defaults rather than rejecting the request.
func listPage(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return page, limit
}

// handleListResumes returns one page of stored resumes, most recently
// updated first. Total counts all matches, not just the returned page.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	page, limit := listPage(r)
	filters := db.ResumeFilters{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	records, err := s.store.ListResumes(r.Context(), filters)
	if err != nil {
		s.envelopeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	total, err := s.store.CountResumes(r.Context(), filters)
	if err != nil {
		s.envelopeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	list := types.ResumeList{
		Resumes:    make([]types.SavedResume, 0, len(records)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}
	for i := range records {
		list.Resumes = append(list.Resumes, records[i].Saved())
	}

	s.envelopeResponse(w, http.StatusOK, "Resumes retrieved", list)
}

// handleGetResume returns a single resume by ID
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.envelopeError(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	rec, err := s.store.GetResume(r.Context(), resumeID)
	if err != nil {
		s.envelopeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if rec == nil {
		s.envelopeError(w, http.StatusNotFound, "Resume not found")
		return
	}

	s.envelopeResponse(w, http.StatusOK, "Resume retrieved", rec.Saved())
}

// handleUpdateResume replaces a resume's document and status. The row keeps
// its ID when a draft completes or a completed resume reverts to draft.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.envelopeError(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	var req UpdateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.envelopeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Status != types.StatusDraft && req.Status != types.StatusCompleted {
		s.envelopeError(w, http.StatusBadRequest, "Status must be draft or completed")
		return
	}

	data, err := decodeResumeData(req.Data, req.Status)
	if err != nil {
		s.envelopeError(w, HTTPStatus(err), err.Error())
		return
	}

	rec, err := s.store.UpdateResume(r.Context(), resumeID, req.Status, data)
	if err != nil {
		s.envelopeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if rec == nil {
		s.envelopeError(w, http.StatusNotFound, "Resume not found")
		return
	}

	s.envelopeResponse(w, http.StatusOK, "Resume updated", rec.Saved())
}

// handleDeleteResume removes a resume by ID
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.envelopeError(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	rec, err := s.store.GetResume(r.Context(), resumeID)
	if err != nil {
		s.envelopeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if rec == nil {
		s.envelopeError(w, http.StatusNotFound, "Resume not found")
		return
	}

	if err := s.store.DeleteResume(r.Context(), resumeID); err != nil {
		s.envelopeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.envelopeResponse(w, http.StatusOK, "Resume deleted", nil)
}
