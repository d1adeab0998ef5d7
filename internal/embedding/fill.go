package embedding

import (
	"context"
	"strings"

	"github.com/resumeforge/tailor/internal/types"
)

// EnsureProfileEmbeddings walks the profile and embeds any bullet missing a
// vector, then recomputes each experience's SectionVector. Per
// SPEC_FULL.md §4.2 this repo adopts the stricter invalidation rule: a
// section vector is recomputed whenever it is missing OR whenever any of
// its bullets' vectors were just (re)computed in this walk, not only
// "compute if missing". Writes are batched: embedding calls happen during
// the walk, but the caller persists the mutated profile once, after this
// function returns (see internal/pipeline).
func EnsureProfileEmbeddings(ctx context.Context, backend Backend, profile *types.Profile) error {
	for i := range profile.Experience {
		exp := &profile.Experience[i]
		anyBulletRecomputed := false

		for j := range exp.Bullets {
			b := &exp.Bullets[j]
			if len(b.Vector) == 0 {
				v, err := backend.Embed(ctx, b.Text)
				if err != nil {
					return err
				}
				b.Vector = v
				anyBulletRecomputed = true
			}
		}

		if len(exp.Bullets) == 0 {
			continue
		}
		if len(exp.SectionVector) == 0 || anyBulletRecomputed {
			vecs := make([][]float64, 0, len(exp.Bullets))
			for _, b := range exp.Bullets {
				if len(b.Vector) > 0 {
					vecs = append(vecs, b.Vector)
				}
			}
			if len(vecs) > 0 {
				exp.SectionVector = Mean(vecs)
			}
		}
	}

	for i := range profile.Projects {
		proj := &profile.Projects[i]
		for j := range proj.Bullets {
			b := &proj.Bullets[j]
			if len(b.Vector) == 0 {
				v, err := backend.Embed(ctx, b.Text)
				if err != nil {
					return err
				}
				b.Vector = v
			}
		}
	}

	return nil
}

// JDVectorText builds the text embedded to produce the JD vector, per
// spec.md §4.2: role_title + " " + must_have_skills + " " + keywords,
// joined with spaces.
func JDVectorText(jd types.JDData) string {
	var sb strings.Builder
	sb.WriteString(jd.RoleTitle)
	for _, s := range jd.MustHaveSkills {
		sb.WriteString(" ")
		sb.WriteString(s)
	}
	for _, k := range jd.Keywords {
		sb.WriteString(" ")
		sb.WriteString(k)
	}
	return sb.String()
}

// EmbedJD computes the JD vector from a JDData.
func EmbedJD(ctx context.Context, backend Backend, jd types.JDData) ([]float64, error) {
	return backend.Embed(ctx, JDVectorText(jd))
}
