// Package validation provides pure field-level validation for resume sections.
// Each validator returns a FormErrors map from field name to a human-readable
// message; an empty map means the section is valid. Validators have no side
// effects and are deterministic.
package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

// FormErrors maps a field name to a human-readable error message.
type FormErrors map[string]string

// IsValid reports whether no field failed validation.
func (e FormErrors) IsValid() bool {
	return len(e) == 0
}

var (
	emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegexp = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	phoneStrip  = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// ValidateEmail reports whether the email matches a simple local@domain.tld pattern.
func ValidateEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// ValidatePhone reports whether the phone number is valid after stripping
// spaces, dashes, and parentheses.
func ValidatePhone(phone string) bool {
	return phoneRegexp.MatchString(phoneStrip.Replace(phone))
}

// ValidatePersonalInfo checks the required contact fields and the email and
// phone formats. The optional link fields are not validated.
func ValidatePersonalInfo(info types.PersonalInfo) FormErrors {
	errors := FormErrors{}

	if strings.TrimSpace(info.FirstName) == "" {
		errors["firstName"] = "First name is required"
	}
	if strings.TrimSpace(info.LastName) == "" {
		errors["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(info.Email) == "" {
		errors["email"] = "Email is required"
	} else if !ValidateEmail(info.Email) {
		errors["email"] = "Please enter a valid email address"
	}
	if strings.TrimSpace(info.Phone) == "" {
		errors["phone"] = "Phone number is required"
	} else if !ValidatePhone(info.Phone) {
		errors["phone"] = "Please enter a valid phone number"
	}
	if strings.TrimSpace(info.Location) == "" {
		errors["location"] = "Location is required"
	}

	return errors
}

// ValidateWorkExperience checks a single work experience entry. The end date
// is required unless the entry is marked current.
func ValidateWorkExperience(experience types.WorkExperience) FormErrors {
	errors := FormErrors{}

	if strings.TrimSpace(experience.Company) == "" {
		errors["company"] = "Company name is required"
	}
	if strings.TrimSpace(experience.Position) == "" {
		errors["position"] = "Position is required"
	}
	if strings.TrimSpace(experience.Location) == "" {
		errors["location"] = "Location is required"
	}
	if experience.StartDate == "" {
		errors["startDate"] = "Start date is required"
	}
	if !experience.Current && experience.EndDate == "" {
		errors["endDate"] = "End date is required"
	}
	if strings.TrimSpace(experience.Description) == "" {
		errors["description"] = "Description is required"
	}

	return errors
}

// ValidateEducation checks a single education entry. GPA is optional and not
// validated. The end date is required unless the entry is marked current.
func ValidateEducation(education types.Education) FormErrors {
	errors := FormErrors{}

	if strings.TrimSpace(education.Institution) == "" {
		errors["institution"] = "Institution name is required"
	}
	if strings.TrimSpace(education.Degree) == "" {
		errors["degree"] = "Degree is required"
	}
	if strings.TrimSpace(education.Field) == "" {
		errors["field"] = "Field of study is required"
	}
	if strings.TrimSpace(education.Location) == "" {
		errors["location"] = "Location is required"
	}
	if education.StartDate == "" {
		errors["startDate"] = "Start date is required"
	}
	if !education.Current && education.EndDate == "" {
		errors["endDate"] = "End date is required"
	}

	return errors
}

// FormatDate formats a YYYY-MM or YYYY-MM-DD date string as "January 2006"
// for display. Empty or unparseable input is returned unchanged.
func FormatDate(dateString string) string {
	if dateString == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, dateString); err == nil {
			return t.Format("January 2006")
		}
	}
	return dateString
}
