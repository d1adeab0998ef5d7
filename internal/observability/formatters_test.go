package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/resumeforge/tailor/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintJDData(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	jd := &types.JDData{
		RoleTitle:        "Senior Backend Engineer",
		RoleCategory:     "engineering",
		ExperienceLevel:  types.LevelSenior,
		MustHaveSkills:   []string{"Go", "PostgreSQL"},
		NiceToHaveSkills: []string{"Kubernetes"},
	}

	p.PrintJDData(jd)
	output := buf.String()

	assert.Contains(t, output, "JD INTERPRETATION")
	assert.Contains(t, output, "Senior Backend Engineer")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Kubernetes")
}

func TestPrintJDData_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJDData(nil)

	assert.Empty(t, buf.String())
}

func TestPrintResumeDraft(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	draft := &types.ResumeDraft{
		ExperienceSections: []types.ScoredSection{
			{Title: "Engineer at Acme", Score: 0.82, Bullets: []types.ScoredBullet{{OriginalText: "Built X"}}},
		},
		SelectedSkills: []string{"Go", "PostgreSQL"},
	}

	p.PrintResumeDraft(draft)
	output := buf.String()

	assert.Contains(t, output, "SELECTED RESUME DRAFT")
	assert.Contains(t, output, "Engineer at Acme")
	assert.Contains(t, output, "0.82")
	assert.Contains(t, output, "Go, PostgreSQL")
}

func TestPrintResumeDraft_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeDraft(nil)

	assert.Empty(t, buf.String())
}

func TestPrintResumeDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := &types.ResumeDocument{
		ExperienceSections: []types.DocumentSection{
			{Title: "Engineer at Acme", Bullets: []string{"Built a distributed cache"}},
		},
	}

	p.PrintResumeDocument(doc)
	output := buf.String()

	assert.Contains(t, output, "ASSEMBLED RESUME DOCUMENT")
	assert.Contains(t, output, "Engineer at Acme")
	assert.Contains(t, output, "Built a distributed cache")
}

func TestPrintResumeDocument_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeDocument(nil)

	assert.Empty(t, buf.String())
}

func TestPrintKeywordCoverage(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintKeywordCoverage(map[string]bool{"Go": true, "Rust": false})
	output := buf.String()

	assert.Contains(t, output, "KEYWORD COVERAGE")
	assert.Contains(t, output, "Covered 1/2 keywords")
}

func TestPrintKeywordCoverage_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintKeywordCoverage(nil)
	output := buf.String()

	assert.Contains(t, output, "NO KEYWORDS TO COVER")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	jd := &types.JDData{
		RoleTitle:    "Senior Staff Principal Distinguished Engineer Level 99",
		RoleCategory: "A Very Long Role Category That Should Be Truncated To Fit",
	}

	p.PrintJDData(jd)
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
