package rendering

import (
	"embed"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/resumeforge/tailor/internal/types"
)

//go:embed templates/resume_template.docx
var defaultDocxTemplateFS embed.FS

const defaultDocxTemplatePath = "templates/resume_template.docx"

// RenderDOCX writes a Word document for doc to outPath, filling the
// embedded template's {{NAME}}/{{EMAIL}}/{{PHONE}}/{{BODY}} placeholders.
// Section structure inside {{BODY}} is expressed as raw paragraph/run XML
// since the underlying library replaces text, not document structure.
func RenderDOCX(doc types.ResumeDocument, outPath string) error {
	templateBytes, err := defaultDocxTemplateFS.ReadFile(defaultDocxTemplatePath)
	if err != nil {
		return &RenderError{Message: "failed to read embedded docx template", Cause: err}
	}

	tmpFile, err := os.CreateTemp("", "resumeforge-docx-template-*.docx")
	if err != nil {
		return &RenderError{Message: "failed to stage docx template", Cause: err}
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	if _, err := tmpFile.Write(templateBytes); err != nil {
		_ = tmpFile.Close()
		return &RenderError{Message: "failed to write staged docx template", Cause: err}
	}
	if err := tmpFile.Close(); err != nil {
		return &RenderError{Message: "failed to close staged docx template", Cause: err}
	}

	reader, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return &RenderError{Message: "failed to open docx template", Cause: err}
	}
	defer func() { _ = reader.Close() }()

	editable := reader.Editable()

	if pi := doc.PersonalInfo; pi != nil {
		_ = editable.Replace("{{NAME}}", xmlEscape(pi.Name), 1)
		_ = editable.Replace("{{EMAIL}}", xmlEscape(pi.Email), 1)
		_ = editable.Replace("{{PHONE}}", xmlEscape(pi.Phone), 1)
	} else {
		_ = editable.Replace("{{NAME}}", "", 1)
		_ = editable.Replace("{{EMAIL}}", "", 1)
		_ = editable.Replace("{{PHONE}}", "", 1)
	}
	_ = editable.Replace("{{BODY}}", docxBodyXML(doc), 1)

	if err := editable.WriteToFile(outPath); err != nil {
		return &RenderError{Message: "failed to write docx output", Cause: err}
	}
	return nil
}

// docxBodyXML renders every section as paragraph/run XML, since the
// replacement target sits inside a single <w:t> and only raw markup
// can reintroduce paragraph breaks.
func docxBodyXML(doc types.ResumeDocument) string {
	var b strings.Builder

	writeHeading := func(title string) {
		b.WriteString(`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">`)
		b.WriteString(xmlEscape(title))
		b.WriteString(`</w:t></w:r></w:p>`)
	}
	writeLine := func(text string) {
		b.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		b.WriteString(xmlEscape(text))
		b.WriteString(`</w:t></w:r></w:p>`)
	}

	writeSections := func(heading string, sections []types.DocumentSection) {
		if len(sections) == 0 {
			return
		}
		writeHeading(heading)
		for _, s := range sections {
			writeLine(fmt.Sprintf("%s — %s", s.Title, s.Subtitle))
			for _, bullet := range s.Bullets {
				writeLine("• " + bullet)
			}
		}
	}

	writeSections("Experience", doc.ExperienceSections)
	writeSections("Projects", doc.ProjectSections)

	if len(doc.SelectedSkills) > 0 {
		writeHeading("Skills")
		writeLine(strings.Join(doc.SelectedSkills, ", "))
	}

	if len(doc.Education) > 0 {
		writeHeading("Education")
		for _, edu := range doc.Education {
			writeLine(fmt.Sprintf("%s, %s (%s)", edu.Institution, edu.Degree, eduDateRange(edu)))
		}
	}

	if len(doc.Certifications) > 0 {
		writeHeading("Certifications")
		for _, cert := range doc.Certifications {
			writeLine(cert.Name)
		}
	}

	if len(doc.Achievements) > 0 {
		writeHeading("Achievements")
		for _, ach := range doc.Achievements {
			writeLine(ach.Title)
		}
	}

	return b.String()
}

func xmlEscape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
