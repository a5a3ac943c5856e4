package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// fakeStore is an in-memory ResumeStore double.
type fakeStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]db.ResumeRecord
	order   []uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[uuid.UUID]db.ResumeRecord)}
}

func (f *fakeStore) CreateResume(_ context.Context, userID *uuid.UUID, title, status string, data types.ResumeData) (*db.ResumeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	rec := db.ResumeRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Status:    status,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.records[rec.ID] = rec
	f.order = append(f.order, rec.ID)
	return &rec, nil
}

func (f *fakeStore) GetResume(_ context.Context, resumeID uuid.UUID) (*db.ResumeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[resumeID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStore) UpdateResume(_ context.Context, resumeID uuid.UUID, status string, data types.ResumeData) (*db.ResumeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[resumeID]
	if !ok {
		return nil, nil
	}
	rec.Status = status
	rec.Data = data
	rec.UpdatedAt = time.Now().UTC()
	f.records[resumeID] = rec
	return &rec, nil
}

func (f *fakeStore) matching(filters db.ResumeFilters) []db.ResumeRecord {
	var records []db.ResumeRecord
	for _, id := range f.order {
		rec, ok := f.records[id]
		if !ok {
			continue
		}
		if filters.Status != "" && rec.Status != filters.Status {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func (f *fakeStore) ListResumes(_ context.Context, filters db.ResumeFilters) ([]db.ResumeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records := f.matching(filters)
	if filters.Offset >= len(records) {
		return nil, nil
	}
	records = records[filters.Offset:]
	if filters.Limit > 0 && len(records) > filters.Limit {
		records = records[:filters.Limit]
	}
	return records, nil
}

func (f *fakeStore) CountResumes(_ context.Context, filters db.ResumeFilters) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.matching(filters)), nil
}

func (f *fakeStore) DeleteResume(_ context.Context, resumeID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, resumeID)
	return nil
}

func newTestServer(store ResumeStore, users DBClient) *Server {
	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret-key", ExpirationHours: 1})
	s := &Server{store: store, jwtService: jwtService}
	if users != nil {
		passwordConfig := &config.PasswordConfig{BcryptCost: bcrypt.MinCost}
		s.userService = NewUserService(users, passwordConfig)
		s.authHandler = NewAuthHandler(s.userService, jwtService)
	}
	return s
}

func doRequest(t *testing.T, s *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, out any) types.Envelope {
	t.Helper()

	var envelope types.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	if out != nil && envelope.Data != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return envelope
}

func resumePayload() types.ResumeData {
	return types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.org",
			Phone:     "+12025550123",
			Location:  "London",
		},
		WorkExperience: []types.WorkExperience{
			{ID: "w1", Company: "Analytical Engines Ltd", Position: "Analyst", StartDate: "1840-01"},
		},
		Education: []types.Education{
			{ID: "e1", Institution: "Home Tutoring", Degree: "Mathematics", StartDate: "1830-01"},
		},
		Skills: []types.Skill{
			{ID: "s1", Name: "Mathematics", Category: "Other", Level: types.LevelExpert},
		},
		Summary: types.Summary{Content: "Mathematician and analyst."},
	}
}

func createBody(t *testing.T, title string) CreateResumeRequest {
	t.Helper()
	raw, err := json.Marshal(resumePayload())
	require.NoError(t, err)
	return CreateResumeRequest{Title: title, Data: raw}
}

func TestCreateDraft(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes/draft", createBody(t, ""), "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved types.SavedResume
	envelope := decodeEnvelope(t, rec, &saved)
	assert.True(t, envelope.Success)
	assert.Equal(t, types.StatusDraft, saved.Status)
	assert.Equal(t, "Ada Lovelace Resume", saved.Title)
	assert.NotEmpty(t, saved.ID)
	assert.Nil(t, saved.UserID)
}

func TestCreateCompleted(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes", createBody(t, "My Resume"), "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved types.SavedResume
	decodeEnvelope(t, rec, &saved)
	assert.Equal(t, types.StatusCompleted, saved.Status)
	assert.Equal(t, "My Resume", saved.Title)
}

func TestCreateResume_InvalidDocument(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	body := createBody(t, "")
	bad := resumePayload()
	bad.PersonalInfo.Email = ""
	raw, err := json.Marshal(bad)
	require.NoError(t, err)
	body.Data = raw

	rec := doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes", body, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec, nil)
	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Message, "email")
}

func TestCreateResume_MissingData(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes", CreateResumeRequest{Title: "x"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateResume_AllowsNullOptionalSections(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	// A document with never-touched sections marshals them as null.
	payload := resumePayload()
	payload.Education = nil
	payload.Skills = nil
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"education":null`)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes", CreateResumeRequest{Data: raw}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var saved types.SavedResume
	decodeEnvelope(t, rec, &saved)
	assert.Equal(t, types.StatusCompleted, saved.Status)
	assert.Equal(t, "Ada Lovelace Resume", saved.Title)
}

func TestCreateDraft_AllowsPartialDocument(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	// Drafts save from any wizard step, so most fields may still be empty.
	partial := types.ResumeData{PersonalInfo: types.PersonalInfo{FirstName: "Ada"}}
	raw, err := json.Marshal(partial)
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes/draft", CreateResumeRequest{Data: raw}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var saved types.SavedResume
	decodeEnvelope(t, rec, &saved)
	assert.Equal(t, types.StatusDraft, saved.Status)
	assert.Equal(t, "Ada Resume", saved.Title)
}

func TestCreateResume_AttachesAuthenticatedUser(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	userID := uuid.New()
	token, err := s.jwtService.GenerateToken(userID)
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes", createBody(t, ""), token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved types.SavedResume
	decodeEnvelope(t, rec, &saved)
	require.NotNil(t, saved.UserID)
	assert.Equal(t, userID.String(), *saved.UserID)
}

func TestListResumes(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes/draft", createBody(t, "First"), "")
	doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes", createBody(t, "Second"), "")

	rec := doRequest(t, s, http.MethodGet, "/api/v1/resume/resumes", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list types.ResumeList
	decodeEnvelope(t, rec, &list)
	assert.Equal(t, 2, list.Total)
	assert.Len(t, list.Resumes, 2)
}

func TestListResumes_StatusFilter(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes/draft", createBody(t, "Draft"), "")
	doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes", createBody(t, "Done"), "")

	rec := doRequest(t, s, http.MethodGet, "/api/v1/resume/resumes?status=draft", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list types.ResumeList
	decodeEnvelope(t, rec, &list)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Draft", list.Resumes[0].Title)
}

func TestListResumes_Pagination(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	for _, title := range []string{"First", "Second", "Third"} {
		doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes", createBody(t, title), "")
	}

	rec := doRequest(t, s, http.MethodGet, "/api/v1/resume/resumes?page=2&limit=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list types.ResumeList
	decodeEnvelope(t, rec, &list)
	assert.Len(t, list.Resumes, 1)
	assert.Equal(t, 3, list.Total, "total counts all matches, not the page")
	assert.Equal(t, 2, list.Page)
	assert.Equal(t, 2, list.Limit)
	assert.Equal(t, 2, list.TotalPages)
}

func TestGetResume_NotFound(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/resume/resumes/"+uuid.NewString(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	envelope := decodeEnvelope(t, rec, nil)
	assert.False(t, envelope.Success)
}

func TestGetResume_InvalidID(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/resume/resumes/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateResume_CompletesDraftInPlace(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes/draft", createBody(t, ""), "")
	var created types.SavedResume
	decodeEnvelope(t, rec, &created)

	raw, err := json.Marshal(resumePayload())
	require.NoError(t, err)
	update := UpdateResumeRequest{Data: raw, Status: types.StatusCompleted}

	rec = doRequest(t, s, http.MethodPut, "/api/v1/resume/resumes/"+created.ID, update, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var updated types.SavedResume
	decodeEnvelope(t, rec, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, types.StatusCompleted, updated.Status)
}

func TestUpdateResume_DraftAcceptsPartialDocument(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes/draft", createBody(t, ""), "")
	var created types.SavedResume
	decodeEnvelope(t, rec, &created)

	partial := types.ResumeData{PersonalInfo: types.PersonalInfo{FirstName: "Ada"}}
	raw, err := json.Marshal(partial)
	require.NoError(t, err)
	update := UpdateResumeRequest{Data: raw, Status: types.StatusDraft}

	rec = doRequest(t, s, http.MethodPut, "/api/v1/resume/resumes/"+created.ID, update, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestUpdateResume_RejectsUnknownStatus(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes/draft", createBody(t, ""), "")
	var created types.SavedResume
	decodeEnvelope(t, rec, &created)

	raw, err := json.Marshal(resumePayload())
	require.NoError(t, err)
	update := UpdateResumeRequest{Data: raw, Status: "archived"}

	rec = doRequest(t, s, http.MethodPut, "/api/v1/resume/resumes/"+created.ID, update, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateResume_NotFound(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	raw, err := json.Marshal(resumePayload())
	require.NoError(t, err)
	update := UpdateResumeRequest{Data: raw, Status: types.StatusDraft}

	rec := doRequest(t, s, http.MethodPut, "/api/v1/resume/resumes/"+uuid.NewString(), update, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteResume(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/resume/resumes", createBody(t, ""), "")
	var created types.SavedResume
	decodeEnvelope(t, rec, &created)

	rec = doRequest(t, s, http.MethodDelete, "/api/v1/resume/resumes/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/resume/resumes/"+created.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteResume_NotFound(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	rec := doRequest(t, s, http.MethodDelete, "/api/v1/resume/resumes/"+uuid.NewString(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	rec := doRequest(t, s, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
