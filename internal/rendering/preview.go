package rendering

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

// previewTemplate lays out the resume sections in wizard order. Styling is
// intentionally minimal; the preview is a structured document, not a theme.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
  body { font-family: Georgia, serif; margin: 40px; color: #1a1a1a; }
  h1 { margin-bottom: 0; }
  h2 { border-bottom: 1px solid #999; padding-bottom: 4px; margin-top: 28px; }
  .contact { color: #444; }
  .entry { margin-bottom: 14px; }
  .entry .dates { color: #666; font-style: italic; }
  .category { font-weight: bold; margin-top: 8px; }
</style>
</head>
<body id="resume-preview">
<h1>{{.Name}}</h1>
<p class="contact">{{.Contact}}</p>
{{if .Links}}<p class="links">{{range .Links}}<span class="link">{{.}}</span> {{end}}</p>{{end}}
{{if .Summary}}
<h2>Professional Summary</h2>
<p class="summary">{{.Summary}}</p>
{{end}}
{{if .Experience}}
<h2>Work Experience</h2>
{{range .Experience}}
<div class="entry experience">
  <strong>{{.Position}}</strong> &mdash; {{.Company}}, {{.Location}}
  <div class="dates">{{.Dates}}</div>
  <p>{{.Description}}</p>
</div>
{{end}}
{{end}}
{{if .Education}}
<h2>Education</h2>
{{range .Education}}
<div class="entry education">
  <strong>{{.Degree}} in {{.Field}}</strong> &mdash; {{.Institution}}, {{.Location}}
  <div class="dates">{{.Dates}}</div>
  {{if .GPA}}<p>GPA: {{.GPA}}</p>{{end}}
</div>
{{end}}
{{end}}
{{if .SkillGroups}}
<h2>Skills</h2>
{{range .SkillGroups}}
<div class="category">{{.Category}}</div>
<p class="skills">{{range $i, $s := .Skills}}{{if $i}}, {{end}}{{$s.Name}} ({{$s.Level}}){{end}}</p>
{{end}}
{{end}}
</body>
</html>`

var preview = template.Must(template.New("preview").Parse(previewTemplate))

type previewEntry struct {
	Position    string
	Company     string
	Location    string
	Dates       string
	Description string
}

type previewEducation struct {
	Degree      string
	Field       string
	Institution string
	Location    string
	Dates       string
	GPA         string
}

type previewSkillGroup struct {
	Category string
	Skills   []types.Skill
}

type previewModel struct {
	Name        string
	Contact     string
	Links       []string
	Summary     string
	Experience  []previewEntry
	Education   []previewEducation
	SkillGroups []previewSkillGroup
}

// RenderHTML renders the resume document as a standalone HTML page. It is a
// pure function of the document and performs no mutation.
func RenderHTML(data types.ResumeData) (string, error) {
	model := buildModel(data)

	var buf bytes.Buffer
	if err := preview.Execute(&buf, model); err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return buf.String(), nil
}

func buildModel(data types.ResumeData) previewModel {
	info := data.PersonalInfo
	model := previewModel{
		Name:    fmt.Sprintf("%s %s", info.FirstName, info.LastName),
		Contact: fmt.Sprintf("%s | %s | %s", info.Email, info.Phone, info.Location),
		Summary: data.Summary.Content,
	}
	for _, link := range []string{info.Website, info.LinkedIn, info.GitHub} {
		if link != "" {
			model.Links = append(model.Links, link)
		}
	}

	for _, exp := range data.WorkExperience {
		model.Experience = append(model.Experience, previewEntry{
			Position:    exp.Position,
			Company:     exp.Company,
			Location:    exp.Location,
			Dates:       dateRange(exp.StartDate, exp.EndDate, exp.Current),
			Description: exp.Description,
		})
	}

	for _, edu := range data.Education {
		model.Education = append(model.Education, previewEducation{
			Degree:      edu.Degree,
			Field:       edu.Field,
			Institution: edu.Institution,
			Location:    edu.Location,
			Dates:       dateRange(edu.StartDate, edu.EndDate, edu.Current),
			GPA:         edu.GPA,
		})
	}

	model.SkillGroups = groupSkills(data.Skills)
	return model
}

// dateRange formats "January 2020 - Present" style ranges.
func dateRange(start, end string, current bool) string {
	from := validation.FormatDate(start)
	if current {
		return from + " - Present"
	}
	return from + " - " + validation.FormatDate(end)
}

// groupSkills buckets skills by category, categories in first-seen order
// within the fixed category set ordering, skills in insertion order.
func groupSkills(skills []types.Skill) []previewSkillGroup {
	if len(skills) == 0 {
		return nil
	}

	byCategory := map[string][]types.Skill{}
	for _, s := range skills {
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}

	rank := map[string]int{}
	for i, c := range types.SkillCategories {
		rank[c] = i
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		ri, iKnown := rank[categories[i]]
		rj, jKnown := rank[categories[j]]
		if iKnown && jKnown {
			return ri < rj
		}
		if iKnown != jKnown {
			return iKnown
		}
		return categories[i] < categories[j]
	})

	groups := make([]previewSkillGroup, 0, len(categories))
	for _, c := range categories {
		groups = append(groups, previewSkillGroup{Category: c, Skills: byCategory[c]})
	}
	return groups
}
