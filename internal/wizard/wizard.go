package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

// Wizard step indexes, in form order.
const (
	StepPersonal = iota
	StepExperience
	StepEducation
	StepSkills
	StepSummary

	stepCount
)

// StepLabels names each step for display.
var StepLabels = []string{"Personal", "Experience", "Education", "Skills", "Summary"}

// ErrBusy indicates a save was invoked while another is in flight. The busy
// flag is an advisory re-entrancy guard for the UI, not an enforced lock.
var ErrBusy = errors.New("a save operation is already in flight")

// StepValidationError refuses a forward transition because the current
// step's section failed validation.
type StepValidationError struct {
	Step   int
	Errors validation.FormErrors
}

func (e *StepValidationError) Error() string {
	return fmt.Sprintf("step %s has %d validation error(s)", StepLabels[e.Step], len(e.Errors))
}

// GateError refuses a completed save. FocusStep is the step the wizard has
// jumped to so the user can fix the offending section.
type GateError struct {
	FocusStep int
	Message   string
}

func (e *GateError) Error() string {
	return e.Message
}

// PersistenceService is the slice of the persistence layer the wizard
// dispatches save and update operations to.
type PersistenceService interface {
	CreateDraft(ctx context.Context, data types.ResumeData, title string) (*types.SavedResume, error)
	CreateCompleted(ctx context.Context, data types.ResumeData, title string) (*types.SavedResume, error)
	Update(ctx context.Context, id string, data types.ResumeData, status string) (*types.SavedResume, error)
}

// Wizard sequences the form steps over a session store, enforcing the
// validation gate before advancing and the completion gate before a
// completed save. It assumes a single in-flight operation; it is not
// reentrant-safe.
type Wizard struct {
	store *Store
	svc   PersistenceService
}

// New creates a wizard over an editing session store.
func New(store *Store, svc PersistenceService) *Wizard {
	return &Wizard{store: store, svc: svc}
}

// Store returns the underlying session store.
func (w *Wizard) Store() *Store {
	return w.store
}

// Next advances to the following step. Leaving the personal step requires
// personal validation to pass; other steps advance unconditionally. On the
// last step Next is a no-op.
func (w *Wizard) Next() error {
	step := w.store.Step()
	if step == StepPersonal {
		errs := validation.ValidatePersonalInfo(w.store.Data().PersonalInfo)
		if !errs.IsValid() {
			return &StepValidationError{Step: StepPersonal, Errors: errs}
		}
	}
	if step < stepCount-1 {
		w.store.SetStep(step + 1)
	}
	return nil
}

// Previous moves back one step; a no-op on the first step.
func (w *Wizard) Previous() {
	if step := w.store.Step(); step > 0 {
		w.store.SetStep(step - 1)
	}
}

// SaveDraft persists the document as a new draft. Callable from any step
// with no validation gate.
func (w *Wizard) SaveDraft(ctx context.Context) (*types.SavedResume, error) {
	return w.run(func() (*types.SavedResume, error) {
		return w.svc.CreateDraft(ctx, w.store.Data(), "")
	})
}

// UpdateDraft rewrites the resume being edited with status draft. No
// validation gate.
func (w *Wizard) UpdateDraft(ctx context.Context) (*types.SavedResume, error) {
	if !w.store.IsEditing() {
		return nil, fmt.Errorf("update-draft requires an editing session")
	}
	return w.run(func() (*types.SavedResume, error) {
		return w.svc.Update(ctx, w.store.EditingID(), w.store.Data(), types.StatusDraft)
	})
}

// SaveCompleted persists the document as a new completed resume, subject to
// the completion gate.
func (w *Wizard) SaveCompleted(ctx context.Context) (*types.SavedResume, error) {
	if err := w.completionGate(); err != nil {
		return nil, err
	}
	return w.run(func() (*types.SavedResume, error) {
		return w.svc.CreateCompleted(ctx, w.store.Data(), "")
	})
}

// UpdateCompleted rewrites the resume being edited with status completed,
// subject to the completion gate.
func (w *Wizard) UpdateCompleted(ctx context.Context) (*types.SavedResume, error) {
	if !w.store.IsEditing() {
		return nil, fmt.Errorf("update-completed requires an editing session")
	}
	if err := w.completionGate(); err != nil {
		return nil, err
	}
	return w.run(func() (*types.SavedResume, error) {
		return w.svc.Update(ctx, w.store.EditingID(), w.store.Data(), types.StatusCompleted)
	})
}

// completionGate checks the three completed-save preconditions in order;
// the first failing condition wins and moves focus to its step.
func (w *Wizard) completionGate() error {
	data := w.store.Data()

	if errs := validation.ValidatePersonalInfo(data.PersonalInfo); !errs.IsValid() {
		w.store.SetStep(StepPersonal)
		return &GateError{FocusStep: StepPersonal, Message: "Please complete the Personal Information section before saving."}
	}
	if len(data.WorkExperience) == 0 {
		w.store.SetStep(StepExperience)
		return &GateError{FocusStep: StepExperience, Message: "Please add at least one work experience before saving."}
	}
	if strings.TrimSpace(data.Summary.Content) == "" {
		w.store.SetStep(StepSummary)
		return &GateError{FocusStep: StepSummary, Message: "Please add a professional summary before saving."}
	}
	return nil
}

// run executes one persistence call with the busy flag held.
func (w *Wizard) run(op func() (*types.SavedResume, error)) (*types.SavedResume, error) {
	if w.store.Busy() {
		return nil, ErrBusy
	}
	w.store.SetBusy(true)
	defer w.store.SetBusy(false)
	return op()
}
