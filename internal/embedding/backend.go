// Package embedding implements the Embedding Cache (C2): it produces and
// persists unit-normalized vectors for bullets and JD text, with lazy
// refill for missing entries.
//
// Per SPEC_FULL.md §4.2 (resolving the "two embedding backends, not
// disambiguated" open question), the backend is a pluggable interface
// constructed once by the caller (never a lazy process-wide singleton) and
// passed explicitly down through the pipeline.
package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Dim is the expected vector dimensionality. Vectors are not checked
// against it, and mixing dimensions raises no error: Cosine returns 0 for
// two vectors of unequal length.
const Dim = 384

// Backend produces L2-normalized embedding vectors for text.
type Backend interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
	Close() error
}

// Normalize returns the L2-normalized form of v. A zero vector is returned
// unchanged (cosine against it is defined as 0 by Cosine below).
func Normalize(v []float64) []float64 {
	var sumSq float64
	for _, x := range v {
		sumSq += x * x
	}
	norm := math.Sqrt(sumSq)
	if norm == 0 {
		return v
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// Cosine computes cosine similarity between two vectors. Since vectors
// produced by this package are L2-normalized, cosine equals dot product.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}

// Mean returns the arithmetic mean of a set of equal-length vectors. The
// caller must ensure vs is non-empty.
func Mean(vs [][]float64) []float64 {
	if len(vs) == 0 {
		return nil
	}
	out := make([]float64, len(vs[0]))
	for _, v := range vs {
		for i, x := range v {
			out[i] += x
		}
	}
	for i := range out {
		out[i] /= float64(len(vs))
	}
	return out
}

// GeminiBackend embeds text via the Gemini hosted embedding model.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend constructs a GeminiBackend. Construction is explicit and
// idempotent to call once; the orchestrator owns the resulting handle.
func NewGeminiBackend(ctx context.Context, apiKey, model string) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &BackendError{Message: "failed to create Gemini client", Cause: err}
	}
	if model == "" {
		model = "text-embedding-004"
	}
	return &GeminiBackend{client: client, model: model}, nil
}

func (g *GeminiBackend) Embed(ctx context.Context, text string) ([]float64, error) {
	em := g.client.EmbeddingModel(g.model)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &BackendError{Message: "embedding call failed", Cause: err}
	}
	if resp == nil || resp.Embedding == nil {
		return nil, &BackendError{Message: "empty embedding response"}
	}
	out := make([]float64, len(resp.Embedding.Values))
	for i, v := range resp.Embedding.Values {
		out[i] = float64(v)
	}
	return Normalize(out), nil
}

func (g *GeminiBackend) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, err := g.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (g *GeminiBackend) Close() error {
	return g.client.Close()
}

// HashBackend is a deterministic, local, dependency-free embedding used
// whenever LLM_API_KEY is empty. It hashes text into a fixed-dimension
// vector so that the fallback-equivalence law in SPEC_FULL.md §8 holds
// (two runs with the same JD/profile and no API key produce identical
// scores) without any network call.
type HashBackend struct{}

func NewHashBackend() *HashBackend { return &HashBackend{} }

func (h *HashBackend) Embed(_ context.Context, text string) ([]float64, error) {
	return hashEmbed(text), nil
}

func (h *HashBackend) EmbedBatch(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		out[i] = hashEmbed(t)
	}
	return out, nil
}

func (h *HashBackend) Close() error { return nil }

// hashEmbed derives a Dim-length vector from repeated SHA-256 hashing of
// text, then L2-normalizes it. Deterministic and collision-resistant
// enough for relative-similarity purposes in tests and offline mode.
func hashEmbed(text string) []float64 {
	out := make([]float64, Dim)
	block := []byte(text)
	idx := 0
	for idx < Dim {
		sum := sha256.Sum256(block)
		for i := 0; i < len(sum) && idx < Dim; i += 4 {
			bits := binary.BigEndian.Uint32(sum[i : i+4])
			out[idx] = (float64(bits) / float64(math.MaxUint32)) - 0.5
			idx++
		}
		block = sum[:]
	}
	return Normalize(out)
}
