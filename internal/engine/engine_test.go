package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/aurora/internal/connector"
	"github.com/crimson-sun/aurora/internal/engine/projector"
	"github.com/crimson-sun/aurora/internal/engine/ranker"
	"github.com/crimson-sun/aurora/internal/engine/redactor"
	"github.com/crimson-sun/aurora/internal/engine/synth"
	"github.com/crimson-sun/aurora/internal/llm"
	"github.com/crimson-sun/aurora/internal/model"
)

type fakeSource struct {
	msgs []model.RawMessage
	err  error
}

func (f *fakeSource) Fetch(_ context.Context, _ connector.Config) ([]model.RawMessage, error) {
	return f.msgs, f.err
}

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	// Identical vectors: scores tie, stable sort keeps original order.
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

type fakeGenerator struct {
	answer  string
	err     error
	lastReq llm.ChatRequest
}

func (f *fakeGenerator) Complete(_ context.Context, req llm.ChatRequest) (string, error) {
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func newTestEngine(src connector.Connector, emb ranker.Embedder, gen synth.Generator) *Engine {
	return New(src, connector.Config{},
		ranker.New(emb),
		projector.New(redactor.New()),
		synth.New(gen))
}

func TestAnswerRedactsBeforeSynthesis(t *testing.T) {
	src := &fakeSource{msgs: []model.RawMessage{{
		ID:        "m1",
		UserID:    "u1",
		UserName:  "Sophia",
		Text:      "Call me at 415-555-1234 or email me at a@b.com",
		Timestamp: "2024-05-01T10:00:00Z",
	}}}
	gen := &fakeGenerator{answer: "You can reach Sophia."}

	eng := newTestEngine(src, &fakeEmbedder{}, gen)
	res, err := eng.Answer(context.Background(), "How do I reach anyone?")
	require.NoError(t, err)
	assert.Equal(t, synth.Answered, res.Outcome)

	// The generator's prompt must contain placeholders, never the raw
	// phone or email, and never the internal identifiers.
	assert.Contains(t, gen.lastReq.User, redactor.PhoneMark)
	assert.Contains(t, gen.lastReq.User, redactor.EmailMark)
	assert.NotContains(t, gen.lastReq.User, "415")
	assert.NotContains(t, gen.lastReq.User, "@b.com")
	assert.NotContains(t, gen.lastReq.User, "m1")
	assert.NotContains(t, gen.lastReq.User, "u1")
	assert.Contains(t, gen.lastReq.User, "(date: 2024-05-01)")
}

func TestAnswerNameMatchRestrictsCandidates(t *testing.T) {
	var msgs []model.RawMessage
	for i := 0; i < 10; i++ {
		msgs = append(msgs, model.RawMessage{UserName: "Sophia", Text: "sophia note"})
	}
	msgs = append(msgs, model.RawMessage{UserName: "Vikram", Text: "vikram note"})
	src := &fakeSource{msgs: msgs}
	gen := &fakeGenerator{answer: "answered"}

	eng := newTestEngine(src, &fakeEmbedder{}, gen)
	_, err := eng.Answer(context.Background(), "What did Sophia say?")
	require.NoError(t, err)

	assert.NotContains(t, gen.lastReq.User, "vikram note")
	// K caps at 7 for the name-matched pool.
	assert.Equal(t, 7, strings.Count(gen.lastReq.User, "- Sophia: sophia note"))
}

func TestAnswerGeneratorFailureFallsBack(t *testing.T) {
	src := &fakeSource{msgs: []model.RawMessage{
		{UserName: "Amira", Text: "sushi on 2nd street"},
	}}
	gen := &fakeGenerator{err: errors.New("quota")}

	eng := newTestEngine(src, &fakeEmbedder{}, gen)
	res, err := eng.Answer(context.Background(), "Where does Amira eat?")
	require.NoError(t, err, "generation failure must not fail the request")
	assert.Equal(t, synth.FallbackAnswered, res.Outcome)
	assert.Equal(t, "Based on available information: Amira mentioned: sushi on 2nd street", res.Answer)
}

func TestAnswerNoMessagesApologizes(t *testing.T) {
	src := &fakeSource{}
	gen := &fakeGenerator{answer: "unused"}

	eng := newTestEngine(src, &fakeEmbedder{}, gen)
	res, err := eng.Answer(context.Background(), "anything?")
	require.NoError(t, err)
	assert.Equal(t, synth.Apologized, res.Outcome)
	assert.Equal(t, "Sorry, I couldn't find a relevant answer.", res.Answer)
}

func TestAnswerEmptyQuestion(t *testing.T) {
	eng := newTestEngine(&fakeSource{}, &fakeEmbedder{}, &fakeGenerator{})
	_, err := eng.Answer(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestAnswerUpstreamFailure(t *testing.T) {
	cause := errors.New("connection refused")
	eng := newTestEngine(&fakeSource{err: cause}, &fakeEmbedder{}, &fakeGenerator{})

	_, err := eng.Answer(context.Background(), "q")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.ErrorIs(t, err, cause)
}

func TestAnswerEmbeddingFailure(t *testing.T) {
	cause := errors.New("embedding service down")
	src := &fakeSource{msgs: []model.RawMessage{{UserName: "a", Text: "x"}}}
	eng := newTestEngine(src, &fakeEmbedder{err: cause}, &fakeGenerator{})

	_, err := eng.Answer(context.Background(), "q")
	var ee *EmbedError
	require.ErrorAs(t, err, &ee)
	assert.ErrorIs(t, err, cause)
}
