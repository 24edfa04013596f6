// Package ranker selects the messages most relevant to a question. It
// operates on raw, unredacted text: ranking fidelity is prioritized over
// redaction at this stage, and redaction happens strictly after
// selection at the projection boundary.
package ranker

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/crimson-sun/aurora/internal/model"
)

// Embedder produces fixed-length vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Defaults mirroring the retrieval heuristics: a wider net when ranking
// the whole corpus, a tighter one when the question names an author.
const (
	DefaultTopK         = 10
	NameMatchTopK       = 7
	DefaultCandidateCap = 100
)

// Ranker scores candidate messages against a question.
type Ranker struct {
	embedder     Embedder
	topK         int
	nameTopK     int
	candidateCap int
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithTopK overrides the top-K sizes for the general and name-matched
// candidate pools.
func WithTopK(general, nameMatched int) Option {
	return func(r *Ranker) {
		r.topK = general
		r.nameTopK = nameMatched
	}
}

// WithCandidateCap overrides the cap applied to the general pool.
func WithCandidateCap(n int) Option {
	return func(r *Ranker) { r.candidateCap = n }
}

// New creates a Ranker backed by the given embedder.
func New(emb Embedder, opts ...Option) *Ranker {
	r := &Ranker{
		embedder:     emb,
		topK:         DefaultTopK,
		nameTopK:     NameMatchTopK,
		candidateCap: DefaultCandidateCap,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result holds the ranked selection plus the name-match pre-filter
// outcome, which the synthesizer needs for its override path.
type Result struct {
	// Top is the selected context, best match first, at most K entries.
	Top []model.RawMessage
	// NameMatched holds the pre-filter qualifiers in original order;
	// empty when the filter did not fire.
	NameMatched []model.RawMessage
}

// Rank applies the name-match pre-filter, embeds the question and every
// candidate, and returns the top K by cosine similarity. Embedding
// failure is fatal: without embeddings no ranking is possible.
func (r *Ranker) Rank(ctx context.Context, question string, messages []model.RawMessage) (Result, error) {
	named := nameMatches(question, messages)

	candidates := named
	k := r.nameTopK
	if len(named) == 0 {
		candidates = messages
		if len(candidates) > r.candidateCap {
			candidates = candidates[:r.candidateCap]
		}
		k = r.topK
	}
	if len(candidates) == 0 {
		return Result{}, nil
	}

	texts := make([]string, 0, len(candidates)+1)
	texts = append(texts, question)
	for _, m := range candidates {
		texts = append(texts, m.Text)
	}

	vecs, err := r.embedder.Embed(ctx, texts)
	if err != nil {
		return Result{}, fmt.Errorf("ranker: embed: %w", err)
	}
	if len(vecs) != len(texts) {
		return Result{}, fmt.Errorf("ranker: expected %d embeddings, got %d", len(texts), len(vecs))
	}

	qv := vecs[0]
	scored := make([]model.ScoredCandidate, len(candidates))
	for i, m := range candidates {
		scored[i] = model.ScoredCandidate{
			Message:    m,
			Similarity: cosineSimilarity(qv, vecs[i+1]),
		}
	}

	// Stable: ties keep original message order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > k {
		scored = scored[:k]
	}

	top := make([]model.RawMessage, len(scored))
	for i, sc := range scored {
		top[i] = sc.Message
	}
	return Result{Top: top, NameMatched: named}, nil
}

// nameMatches returns the messages whose author name appears,
// case-insensitively, as a substring of the question. Matching is exact
// substring with no accent or punctuation normalization. Messages with
// an empty author name never qualify: the empty string is a substring
// of every question and would hijack the candidate pool.
func nameMatches(question string, msgs []model.RawMessage) []model.RawMessage {
	q := strings.ToLower(question)
	var out []model.RawMessage
	for _, m := range msgs {
		name := strings.ToLower(strings.TrimSpace(m.UserName))
		if name == "" {
			continue
		}
		if strings.Contains(q, name) {
			out = append(out, m)
		}
	}
	return out
}

// cosineSimilarity is defined as 0 when either vector has zero
// magnitude, avoiding a division by zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
