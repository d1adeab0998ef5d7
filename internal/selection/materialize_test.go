package selection

import (
	"context"
	"testing"

	"github.com/resumeforge/tailor/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestSelectSkills_PassAPrioritizesJDMatches(t *testing.T) {
	jd := types.JDData{MustHaveSkills: []string{"Python"}}
	skills := []types.Skill{{Name: "Go"}, {Name: "Python"}, {Name: "Rust"}}

	got := selectSkills(skills, jd, 2)
	assert.Equal(t, []string{"Python", "Go"}, got)
}

func TestSelectSkills_EnforcesCaseInsensitiveUniqueness(t *testing.T) {
	jd := types.JDData{}
	skills := []types.Skill{{Name: "python"}, {Name: "Python"}}
	got := selectSkills(skills, jd, 5)
	assert.Equal(t, []string{"python"}, got)
}

func TestSelectSkills_FillsRemainderInProfileOrder(t *testing.T) {
	jd := types.JDData{}
	skills := []types.Skill{{Name: "Go"}, {Name: "Rust"}, {Name: "SQL"}}
	got := selectSkills(skills, jd, 2)
	assert.Equal(t, []string{"Go", "Rust"}, got)
}

func TestGradeSkillConfidence_StrongOnDirectMatch(t *testing.T) {
	profileSkills := []types.Skill{{Name: "Python"}}
	got := gradeSkillConfidence(context.Background(), []string{"Python"}, profileSkills, nil, nil, nil)
	assert.Equal(t, types.ConfidenceStrong, got["Python"])
}

func TestGradeSkillConfidence_InferredFromBulletSubstring(t *testing.T) {
	bullets := []types.ScoredBullet{{OriginalText: "Built services using Kubernetes clusters"}}
	got := gradeSkillConfidence(context.Background(), []string{"Kubernetes"}, nil, bullets, nil, nil)
	assert.Equal(t, types.ConfidenceInferred, got["Kubernetes"])
}

func TestGradeSkillConfidence_WeakWhenNoEvidence(t *testing.T) {
	got := gradeSkillConfidence(context.Background(), []string{"Rust"}, nil, nil, nil, nil)
	assert.Equal(t, types.ConfidenceWeak, got["Rust"])
}

type fakeEmbedBackend struct {
	vec []float64
	err error
}

func (f *fakeEmbedBackend) Embed(_ context.Context, _ string) ([]float64, error) {
	return f.vec, f.err
}
func (f *fakeEmbedBackend) EmbedBatch(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = f.vec
	}
	return out, f.err
}
func (f *fakeEmbedBackend) Close() error { return nil }

func TestGradeSkillConfidence_InferredViaSemanticProbe(t *testing.T) {
	vec := []float64{1, 0}
	backend := &fakeEmbedBackend{vec: vec}
	bullets := []types.ScoredBullet{{OriginalText: "Something unrelated to the skill word"}}
	vectors := [][]float64{vec}

	got := gradeSkillConfidence(context.Background(), []string{"Rust"}, nil, bullets, vectors, backend)
	assert.Equal(t, types.ConfidenceInferred, got["Rust"])
}

func TestGradeSkillConfidence_EmbeddingFailureDowngradesToWeak(t *testing.T) {
	backend := &fakeEmbedBackend{err: assert.AnError}
	got := gradeSkillConfidence(context.Background(), []string{"Rust"}, nil, nil, nil, backend)
	assert.Equal(t, types.ConfidenceWeak, got["Rust"])
}
