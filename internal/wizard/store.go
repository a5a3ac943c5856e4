// Package wizard implements the multi-step resume editing session: a data
// store holding the in-progress document and an orchestrator sequencing the
// form steps with validation gates and save dispatch.
package wizard

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/types"
)

// Limits bounds the collection sizes and summary length of an editing session.
type Limits struct {
	MaxWorkExperiences  int
	MaxEducationEntries int
	MaxSkills           int
	MaxSummaryLength    int
}

// DefaultLimits returns the standard session bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxWorkExperiences:  10,
		MaxEducationEntries: 5,
		MaxSkills:           50,
		MaxSummaryLength:    500,
	}
}

// LimitsFromConfig builds session limits from the loaded configuration.
func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{
		MaxWorkExperiences:  cfg.MaxWorkExperiences,
		MaxEducationEntries: cfg.MaxEducationEntries,
		MaxSkills:           cfg.MaxSkills,
		MaxSummaryLength:    cfg.MaxSummaryLength,
	}
}

// ErrLimitReached indicates a collection is at its configured maximum.
type ErrLimitReached struct {
	Collection string
	Limit      int
}

func (e *ErrLimitReached) Error() string {
	return fmt.Sprintf("%s limit reached (%d)", e.Collection, e.Limit)
}

// StoreOptions configures a new editing session store.
type StoreOptions struct {
	// Initial hydrates the session from a previously saved document.
	// Nil starts an all-empty create session.
	Initial *types.ResumeData
	// EditingID is set when the session edits an existing SavedResume.
	EditingID string
	// Limits default to DefaultLimits when zero.
	Limits Limits
}

// Store holds one resume document plus the wizard position and busy flag.
// It performs no validation; callers validate before transitions and saves.
// A Store belongs to a single editing session and is not safe for concurrent
// use.
type Store struct {
	data      types.ResumeData
	step      int
	busy      bool
	editingID string
	limits    Limits
}

// NewStore creates an editing session store.
func NewStore(opts StoreOptions) *Store {
	limits := opts.Limits
	if limits == (Limits{}) {
		limits = DefaultLimits()
	}

	s := &Store{editingID: opts.EditingID, limits: limits}
	s.Reset(opts.Initial)
	return s
}

// Reset re-initializes the document, either from an externally supplied
// document (edit mode) or to an all-empty one. The wizard position is reset
// to the first step.
func (s *Store) Reset(initial *types.ResumeData) {
	if initial != nil {
		s.data = *initial
	} else {
		s.data = types.ResumeData{}
	}
	s.step = 0
}

// Data returns the current resume document.
func (s *Store) Data() types.ResumeData {
	return s.data
}

// SetPersonalInfo replaces the personal info section.
func (s *Store) SetPersonalInfo(info types.PersonalInfo) {
	s.data.PersonalInfo = info
}

// SetWorkExperience replaces the whole work experience collection.
func (s *Store) SetWorkExperience(experience []types.WorkExperience) {
	s.data.WorkExperience = experience
}

// SetEducation replaces the whole education collection.
func (s *Store) SetEducation(education []types.Education) {
	s.data.Education = education
}

// SetSkills replaces the whole skills collection.
func (s *Store) SetSkills(skills []types.Skill) {
	s.data.Skills = skills
}

// SetSummary replaces the summary section, capping the content at the
// configured maximum the way the form input does. A zero limit means
// unbounded.
func (s *Store) SetSummary(summary types.Summary) {
	if max := s.limits.MaxSummaryLength; max > 0 {
		if runes := []rune(summary.Content); len(runes) > max {
			summary.Content = string(runes[:max])
		}
	}
	s.data.Summary = summary
}

// Step returns the current wizard position.
func (s *Store) Step() int {
	return s.step
}

// SetStep moves the wizard position.
func (s *Store) SetStep(step int) {
	s.step = step
}

// Busy reports whether a save operation is in flight.
func (s *Store) Busy() bool {
	return s.busy
}

// SetBusy sets the advisory in-flight flag.
func (s *Store) SetBusy(busy bool) {
	s.busy = busy
}

// IsEditing reports whether the session edits an existing saved resume.
func (s *Store) IsEditing() bool {
	return s.editingID != ""
}

// EditingID returns the id of the saved resume being edited, or "".
func (s *Store) EditingID() string {
	return s.editingID
}

// AddWorkExperience appends an entry, assigning a fresh identifier per add.
func (s *Store) AddWorkExperience(entry types.WorkExperience) (types.WorkExperience, error) {
	if len(s.data.WorkExperience) >= s.limits.MaxWorkExperiences {
		return types.WorkExperience{}, &ErrLimitReached{Collection: "work experience", Limit: s.limits.MaxWorkExperiences}
	}
	entry.ID = uuid.New().String()
	s.data.WorkExperience = append(s.data.WorkExperience, entry)
	return entry, nil
}

// RemoveWorkExperience deletes the entry with the given id, if present.
func (s *Store) RemoveWorkExperience(id string) {
	s.data.WorkExperience = removeByID(s.data.WorkExperience, id, func(e types.WorkExperience) string { return e.ID })
}

// AddEducation appends an entry, assigning a fresh identifier per add.
func (s *Store) AddEducation(entry types.Education) (types.Education, error) {
	if len(s.data.Education) >= s.limits.MaxEducationEntries {
		return types.Education{}, &ErrLimitReached{Collection: "education", Limit: s.limits.MaxEducationEntries}
	}
	entry.ID = uuid.New().String()
	s.data.Education = append(s.data.Education, entry)
	return entry, nil
}

// RemoveEducation deletes the entry with the given id, if present.
func (s *Store) RemoveEducation(id string) {
	s.data.Education = removeByID(s.data.Education, id, func(e types.Education) string { return e.ID })
}

// AddSkill appends a skill, assigning a fresh identifier per add.
func (s *Store) AddSkill(skill types.Skill) (types.Skill, error) {
	if len(s.data.Skills) >= s.limits.MaxSkills {
		return types.Skill{}, &ErrLimitReached{Collection: "skills", Limit: s.limits.MaxSkills}
	}
	skill.ID = uuid.New().String()
	s.data.Skills = append(s.data.Skills, skill)
	return skill, nil
}

// RemoveSkill deletes the skill with the given id, if present.
func (s *Store) RemoveSkill(id string) {
	s.data.Skills = removeByID(s.data.Skills, id, func(e types.Skill) string { return e.ID })
}

func removeByID[T any](entries []T, id string, idOf func(T) string) []T {
	kept := entries[:0]
	for _, e := range entries {
		if idOf(e) != id {
			kept = append(kept, e)
		}
	}
	return kept
}
