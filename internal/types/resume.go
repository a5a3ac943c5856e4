// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"time"
)

// PersonalInfo holds the contact section of a resume. All scalar fields are
// required except the optional link fields.
type PersonalInfo struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Website   string `json:"website,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
}

// WorkExperience represents a single employment entry.
// When Current is true, EndDate may be empty.
type WorkExperience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education represents a single education entry. GPA is optional.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	GPA         string `json:"gpa,omitempty"`
}

// SkillLevel is the 4-value ordinal proficiency scale.
type SkillLevel string

// Skill proficiency levels, lowest to highest.
const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
	LevelExpert       SkillLevel = "Expert"
)

// SkillLevels lists the valid proficiency levels in ascending order.
var SkillLevels = []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

// SkillCategories is the fixed set of valid skill categories.
var SkillCategories = []string{
	"Programming Languages",
	"Web Technologies",
	"Databases",
	"Tools & Frameworks",
	"Soft Skills",
	"Languages",
	"Other",
}

// Skill represents a single named skill with category and proficiency.
type Skill struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Level    SkillLevel `json:"level"`
}

// Summary holds the free-text professional summary section.
type Summary struct {
	Content string `json:"content"`
}

// ResumeData is the aggregate document edited by the wizard. It is owned by
// a single editing session and mutated only through whole-section replacement.
type ResumeData struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         []Skill          `json:"skills"`
	Summary        Summary          `json:"summary"`
}

// Normalized returns a copy with nil section collections replaced by empty
// ones, so the document always serializes them as arrays rather than null.
func (d ResumeData) Normalized() ResumeData {
	if d.WorkExperience == nil {
		d.WorkExperience = []WorkExperience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills == nil {
		d.Skills = []Skill{}
	}
	return d
}

// Resume statuses a SavedResume may hold.
const (
	StatusDraft     = "draft"
	StatusCompleted = "completed"
)

// SavedResume is the persisted envelope wrapping a resume document. The
// section fields sit directly on the envelope rather than nested under a
// "data" key, matching the wire shape of the resume API.
type SavedResume struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Status    string  `json:"status"`
	UserID    *string `json:"userId,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`

	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         []Skill          `json:"skills"`
	Summary        Summary          `json:"summary"`
}

// Data extracts the editable resume document from the envelope.
func (r *SavedResume) Data() ResumeData {
	return ResumeData{
		PersonalInfo:   r.PersonalInfo,
		WorkExperience: r.WorkExperience,
		Education:      r.Education,
		Skills:         r.Skills,
		Summary:        r.Summary,
	}
}

// SetData replaces the envelope's section fields from a resume document.
func (r *SavedResume) SetData(data ResumeData) {
	r.PersonalInfo = data.PersonalInfo
	r.WorkExperience = data.WorkExperience
	r.Education = data.Education
	r.Skills = data.Skills
	r.Summary = data.Summary
}

// UpdatedTime parses the UpdatedAt timestamp. Unparseable values sort to the
// zero time rather than failing a list operation.
func (r *SavedResume) UpdatedTime() time.Time {
	t, err := time.Parse(time.RFC3339, r.UpdatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ResumeList is the payload returned by the list operation. The paging
// fields are set by the remote API; the local fallback returns everything
// and leaves them zero.
type ResumeList struct {
	Resumes    []SavedResume `json:"resumes"`
	Total      int           `json:"total"`
	Page       int           `json:"page,omitempty"`
	Limit      int           `json:"limit,omitempty"`
	TotalPages int           `json:"totalPages,omitempty"`
}

// Envelope is the standard response wrapper used by the resume API.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}
