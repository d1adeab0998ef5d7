// Package scoring implements the Scoring Engine (C3): two scalar-valued
// functions — score_bullet and score_section — over a shared weight table.
// Each factor is computed independently into a ScoreComponents breakdown,
// then combined.
package scoring

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/resumeforge/tailor/internal/embedding"
	"github.com/resumeforge/tailor/internal/types"
)

// sectionPriority weights a section's type. Unknown types default to 0.70.
var sectionPriority = map[types.SectionType]float64{
	types.SectionExperience:    1.00,
	types.SectionProject:       0.85,
	types.SectionSkill:         0.70,
	types.SectionEducation:     0.60,
	types.SectionCertification: 0.50,
}

const defaultSectionPriority = 0.70

// skillImportance factors. A bullet mentioning a must-have skill outweighs
// one mentioning only a nice-to-have, which is itself neutral.
const (
	skillImportanceMustHave = 1.5
	skillImportanceOther    = 1.0
)

// constantSemantic substitutes for cosine similarity whenever a vector is
// unavailable (e.g. projects carry no section vector, per SPEC_FULL.md §9).
const constantSemantic = 0.30

const (
	keywordBonusPerMatch = 0.05
	keywordBonusCap      = 0.30
)

const (
	recencyFloor       = 0.6
	recencyDecayPerYr  = 0.05
	recencyMalformed   = 0.8
	recencyFullWeight  = 1.0
	approxDaysPerYear  = 365.25
)

// ScoreComponents holds the individual factors behind a bullet or section
// score, retained for diagnostics and testing.
type ScoreComponents struct {
	Semantic   float64
	Importance float64
	Priority   float64
	Recency    float64
	KeywordBonus float64
}

// Combine applies the score_bullet/score_section formula:
// semantic × importance × priority × recency + kw_bonus.
func (c ScoreComponents) Combine() float64 {
	return c.Semantic*c.Importance*c.Priority*c.Recency + c.KeywordBonus
}

// Round4 rounds to 4 decimal places for display/persistence. Sort
// comparisons must use the raw, unrounded value instead.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// ScoreBullet implements score_bullet(text, bullet_vec?, jd_vec, jdData,
// section_type, end_date?). bulletVec and jdVec may be nil/empty, in which
// case semantic similarity falls back to constantSemantic.
func ScoreBullet(text string, bulletVec, jdVec []float64, jd types.JDData, sectionType types.SectionType, endDate string) ScoreComponents {
	return ScoreComponents{
		Semantic:     semanticScore(bulletVec, jdVec),
		Importance:   importanceScore(text, jd),
		Priority:     priorityScore(sectionType),
		Recency:      recencyScore(endDate),
		KeywordBonus: keywordBonus(text, jd.Keywords),
	}
}

// ScoreSection implements score_section: identical to ScoreBullet but omits
// importance (skill importance is a bullet-level signal), so Importance is
// fixed at 1.0 — a neutral multiplier.
func ScoreSection(text string, sectionVec, jdVec []float64, jd types.JDData, sectionType types.SectionType, endDate string) ScoreComponents {
	return ScoreComponents{
		Semantic:     semanticScore(sectionVec, jdVec),
		Importance:   1.0,
		Priority:     priorityScore(sectionType),
		Recency:      recencyScore(endDate),
		KeywordBonus: keywordBonus(text, jd.Keywords),
	}
}

func semanticScore(vec, jdVec []float64) float64 {
	if len(vec) == 0 || len(jdVec) == 0 {
		return constantSemantic
	}
	return embedding.Cosine(vec, jdVec)
}

func importanceScore(text string, jd types.JDData) float64 {
	lower := strings.ToLower(text)
	for _, s := range jd.MustHaveSkills {
		if s != "" && strings.Contains(lower, strings.ToLower(s)) {
			return skillImportanceMustHave
		}
	}
	return skillImportanceOther
}

func priorityScore(sectionType types.SectionType) float64 {
	if p, ok := sectionPriority[sectionType]; ok {
		return p
	}
	return defaultSectionPriority
}

// recencyScore applies the decay rule: empty/Present → full weight; a
// parseable "YYYY-MM" end date decays by 0.05 per elapsed year down to a
// floor of 0.6; anything unparseable is treated as malformed (0.8).
func recencyScore(endDate string) float64 {
	if endDate == "" || endDate == types.Present {
		return recencyFullWeight
	}
	t, err := time.Parse("2006-01", endDate)
	if err != nil {
		return recencyMalformed
	}
	years := time.Since(t).Hours() / 24 / approxDaysPerYear
	if years < 0 {
		years = 0
	}
	weight := recencyFullWeight - recencyDecayPerYr*years
	if weight < recencyFloor {
		return recencyFloor
	}
	return weight
}

func keywordBonus(text string, keywords []string) float64 {
	lower := strings.ToLower(text)
	count := 0
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			count++
		}
	}
	bonus := float64(count) * keywordBonusPerMatch
	if bonus > keywordBonusCap {
		return keywordBonusCap
	}
	return bonus
}

// FormatYearsSinceEnd is a small diagnostic helper used by logging call
// sites to report the decay input without re-parsing the date.
func FormatYearsSinceEnd(endDate string) string {
	if endDate == "" || endDate == types.Present {
		return "n/a"
	}
	t, err := time.Parse("2006-01", endDate)
	if err != nil {
		return "malformed"
	}
	years := time.Since(t).Hours() / 24 / approxDaysPerYear
	return strconv.FormatFloat(years, 'f', 2, 64)
}
