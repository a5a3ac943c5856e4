package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

// fakeService records persistence calls and can simulate a slow save.
type fakeService struct {
	createDraftCalls     int
	createCompletedCalls int
	updateCalls          int
	lastUpdateID         string
	lastUpdateStatus     string
	onCall               func()
	err                  error
}

func (f *fakeService) CreateDraft(_ context.Context, data types.ResumeData, title string) (*types.SavedResume, error) {
	f.createDraftCalls++
	if f.onCall != nil {
		f.onCall()
	}
	if f.err != nil {
		return nil, f.err
	}
	saved := &types.SavedResume{ID: "saved-draft", Title: title, Status: types.StatusDraft}
	saved.SetData(data)
	return saved, nil
}

func (f *fakeService) CreateCompleted(_ context.Context, data types.ResumeData, title string) (*types.SavedResume, error) {
	f.createCompletedCalls++
	if f.err != nil {
		return nil, f.err
	}
	saved := &types.SavedResume{ID: "saved-completed", Title: title, Status: types.StatusCompleted}
	saved.SetData(data)
	return saved, nil
}

func (f *fakeService) Update(_ context.Context, id string, data types.ResumeData, status string) (*types.SavedResume, error) {
	f.updateCalls++
	f.lastUpdateID = id
	f.lastUpdateStatus = status
	if f.err != nil {
		return nil, f.err
	}
	saved := &types.SavedResume{ID: id, Status: status}
	saved.SetData(data)
	return saved, nil
}

func validPersonal() types.PersonalInfo {
	return types.PersonalInfo{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@x.org",
		Phone:     "+12025550123",
		Location:  "London",
	}
}

func completableData() types.ResumeData {
	return types.ResumeData{
		PersonalInfo: validPersonal(),
		WorkExperience: []types.WorkExperience{
			{ID: "e1", Company: "Analytical Engines Ltd", Position: "Programmer", Location: "London", StartDate: "1842-01", Current: true, Description: "Algorithms."},
		},
		Summary: types.Summary{Content: "Pioneer of computing."},
	}
}

func newTestWizard(initial *types.ResumeData, editingID string) (*Wizard, *fakeService) {
	svc := &fakeService{}
	store := NewStore(StoreOptions{Initial: initial, EditingID: editingID})
	return New(store, svc), svc
}

func TestWizard_NextRefusedWithInvalidPersonalInfo(t *testing.T) {
	w, _ := newTestWizard(nil, "")

	err := w.Next()
	var stepErr *StepValidationError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepPersonal, stepErr.Step)
	assert.NotEmpty(t, stepErr.Errors)
	assert.Zero(t, w.Store().Step(), "refused transition must not advance")
}

func TestWizard_NextAdvancesByExactlyOne(t *testing.T) {
	data := types.ResumeData{PersonalInfo: validPersonal()}
	w, _ := newTestWizard(&data, "")

	require.NoError(t, w.Next())
	assert.Equal(t, StepExperience, w.Store().Step())
}

func TestWizard_NextUnconditionalPastPersonalStep(t *testing.T) {
	// Later steps advance even with an otherwise empty document.
	data := types.ResumeData{PersonalInfo: validPersonal()}
	w, _ := newTestWizard(&data, "")

	for i := 0; i < stepCount-1; i++ {
		require.NoError(t, w.Next())
	}
	assert.Equal(t, StepSummary, w.Store().Step())

	// Next on the last step stays put.
	require.NoError(t, w.Next())
	assert.Equal(t, StepSummary, w.Store().Step())
}

func TestWizard_PreviousStopsAtFirstStep(t *testing.T) {
	w, _ := newTestWizard(nil, "")

	w.Previous()
	assert.Zero(t, w.Store().Step())

	w.Store().SetStep(StepSkills)
	w.Previous()
	assert.Equal(t, StepEducation, w.Store().Step())
}

func TestWizard_SaveDraftHasNoValidationGate(t *testing.T) {
	w, svc := newTestWizard(nil, "")

	saved, err := w.SaveDraft(context.Background())
	require.NoError(t, err, "draft saves are callable with an empty document")
	assert.Equal(t, 1, svc.createDraftCalls)
	assert.Equal(t, types.StatusDraft, saved.Status)
}

func TestWizard_SaveCompletedGateOrder(t *testing.T) {
	// First failing condition wins: invalid personal info focuses step 0
	// even though experience and summary are also missing.
	w, svc := newTestWizard(nil, "")
	w.Store().SetStep(StepSummary)

	_, err := w.SaveCompleted(context.Background())
	var gate *GateError
	require.ErrorAs(t, err, &gate)
	assert.Equal(t, StepPersonal, gate.FocusStep)
	assert.Equal(t, StepPersonal, w.Store().Step(), "focus jumps to the offending step")
	assert.Zero(t, svc.createCompletedCalls)

	// Personal fixed, no experience: focus step 1.
	w.Store().SetPersonalInfo(validPersonal())
	_, err = w.SaveCompleted(context.Background())
	require.ErrorAs(t, err, &gate)
	assert.Equal(t, StepExperience, gate.FocusStep)
	assert.Equal(t, StepExperience, w.Store().Step())

	// Experience added, blank summary: focus step 4.
	_, aerr := w.Store().AddWorkExperience(types.WorkExperience{Company: "Acme"})
	require.NoError(t, aerr)
	w.Store().SetSummary(types.Summary{Content: "   \n"})
	_, err = w.SaveCompleted(context.Background())
	require.ErrorAs(t, err, &gate)
	assert.Equal(t, StepSummary, gate.FocusStep)
	assert.Equal(t, StepSummary, w.Store().Step())

	assert.Zero(t, svc.createCompletedCalls, "no gated save may reach persistence")
}

func TestWizard_SaveCompletedSucceedsWhenGatePasses(t *testing.T) {
	data := completableData()
	w, svc := newTestWizard(&data, "")

	saved, err := w.SaveCompleted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, svc.createCompletedCalls)
	assert.Equal(t, types.StatusCompleted, saved.Status)
}

func TestWizard_UpdateDispatchesWithEditingID(t *testing.T) {
	data := completableData()
	w, svc := newTestWizard(&data, "resume-7")

	_, err := w.UpdateCompleted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "resume-7", svc.lastUpdateID)
	assert.Equal(t, types.StatusCompleted, svc.lastUpdateStatus)

	_, err = w.UpdateDraft(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.StatusDraft, svc.lastUpdateStatus)
	assert.Equal(t, 2, svc.updateCalls)
}

func TestWizard_UpdateRequiresEditingSession(t *testing.T) {
	data := completableData()
	w, _ := newTestWizard(&data, "")

	_, err := w.UpdateDraft(context.Background())
	assert.Error(t, err)
	_, err = w.UpdateCompleted(context.Background())
	assert.Error(t, err)
}

func TestWizard_UpdateCompletedGated(t *testing.T) {
	w, svc := newTestWizard(nil, "resume-7")

	_, err := w.UpdateCompleted(context.Background())
	var gate *GateError
	require.ErrorAs(t, err, &gate)
	assert.Zero(t, svc.updateCalls)
}

func TestWizard_BusyFlagHeldDuringSave(t *testing.T) {
	w, svc := newTestWizard(nil, "")
	svc.onCall = func() {
		assert.True(t, w.Store().Busy(), "busy must be set while the call is in flight")
	}

	_, err := w.SaveDraft(context.Background())
	require.NoError(t, err)
	assert.False(t, w.Store().Busy(), "busy must clear after the call returns")
}

func TestWizard_SecondSaveWhileBusyRefused(t *testing.T) {
	w, svc := newTestWizard(nil, "")
	svc.onCall = func() {
		_, err := w.SaveDraft(context.Background())
		assert.ErrorIs(t, err, ErrBusy)
	}

	_, err := w.SaveDraft(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, svc.createDraftCalls)
}

func TestWizard_BusyClearsAfterFailedSave(t *testing.T) {
	w, svc := newTestWizard(nil, "")
	svc.err = context.DeadlineExceeded

	_, err := w.SaveDraft(context.Background())
	require.Error(t, err)
	assert.False(t, w.Store().Busy())
}
