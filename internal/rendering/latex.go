// Package rendering provides functionality to render LaTeX resumes from templates.
package rendering

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/resumeforge/tailor/internal/types"
)

//go:embed templates/resume.tex.tmpl
var defaultTemplateFS embed.FS

const defaultTemplatePath = "templates/resume.tex.tmpl"

// TemplateData is the flattened view of a ResumeDocument passed to the
// LaTeX template; every string field arrives pre-escaped.
type TemplateData struct {
	Name  string
	Email string
	Phone string

	ExperienceSections []SectionData
	ProjectSections    []SectionData

	Skills         string
	Education      []SectionData
	Certifications []string
	Achievements   []string
}

// SectionData is one rendered Title/Subtitle/Bullets group.
type SectionData struct {
	Title    string
	Subtitle string
	Bullets  []string
}

// RenderLaTeX renders a ResumeDocument into a LaTeX source string.
// templatePath == "" uses the embedded default template.
func RenderLaTeX(doc types.ResumeDocument, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	data := buildTemplateData(doc)

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}

	return result.String(), nil
}

func parseTemplate(templatePath string) (*template.Template, error) {
	var content []byte
	var err error

	if templatePath == "" {
		content, err = defaultTemplateFS.ReadFile(defaultTemplatePath)
		if err != nil {
			return nil, &TemplateError{Message: "failed to read embedded default template", Cause: err}
		}
	} else {
		content, err = os.ReadFile(templatePath)
		if err != nil {
			return nil, &TemplateError{Message: fmt.Sprintf("failed to read template file: %s", templatePath), Cause: err}
		}
	}

	tmpl, err := template.New("resume").Parse(string(content))
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse template", Cause: err}
	}
	return tmpl, nil
}

func buildTemplateData(doc types.ResumeDocument) TemplateData {
	data := TemplateData{
		ExperienceSections: toSectionData(doc.ExperienceSections),
		ProjectSections:    toSectionData(doc.ProjectSections),
		Skills:             EscapeLaTeX(strings.Join(doc.SelectedSkills, ", ")),
	}

	if doc.PersonalInfo != nil {
		data.Name = EscapeLaTeX(doc.PersonalInfo.Name)
		data.Email = EscapeLaTeX(doc.PersonalInfo.Email)
		data.Phone = EscapeLaTeX(doc.PersonalInfo.Phone)
	}

	for _, edu := range doc.Education {
		data.Education = append(data.Education, SectionData{
			Title:    EscapeLaTeX(fmt.Sprintf("%s, %s", edu.Institution, edu.Degree)),
			Subtitle: EscapeLaTeX(eduDateRange(edu)),
		})
	}

	for _, cert := range doc.Certifications {
		data.Certifications = append(data.Certifications, EscapeLaTeX(cert.Name))
	}

	for _, ach := range doc.Achievements {
		data.Achievements = append(data.Achievements, EscapeLaTeX(ach.Title))
	}

	return data
}

func toSectionData(sections []types.DocumentSection) []SectionData {
	out := make([]SectionData, len(sections))
	for i, s := range sections {
		bullets := make([]string, len(s.Bullets))
		for j, b := range s.Bullets {
			bullets[j] = EscapeLaTeX(b)
		}
		out[i] = SectionData{
			Title:    EscapeLaTeX(s.Title),
			Subtitle: EscapeLaTeX(s.Subtitle),
			Bullets:  bullets,
		}
	}
	return out
}

func eduDateRange(edu types.Education) string {
	if edu.EndDate == "" {
		return edu.StartDate
	}
	return edu.StartDate + " - " + edu.EndDate
}
