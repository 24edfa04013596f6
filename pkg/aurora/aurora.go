// Package aurora provides an embeddable question-answering client over
// member messages, with PII redaction between retrieval and generation.
//
// Quick start:
//
//	client, err := aurora.New(os.Getenv("OPENAI_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ans, err := client.Ask(ctx, "When is Layla's trip to London?")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ans.Text)
//
// The Client is safe for concurrent use. Create once, reuse across
// requests; messages are re-fetched from the source on every Ask.
package aurora

import (
	"context"
	"fmt"

	"github.com/crimson-sun/aurora/internal/connector"
	"github.com/crimson-sun/aurora/internal/engine"
	"github.com/crimson-sun/aurora/internal/engine/projector"
	"github.com/crimson-sun/aurora/internal/engine/ranker"
	"github.com/crimson-sun/aurora/internal/engine/redactor"
	"github.com/crimson-sun/aurora/internal/engine/synth"
	"github.com/crimson-sun/aurora/internal/llm"

	// Register connector implementations.
	_ "github.com/crimson-sun/aurora/internal/connector/dump"
	_ "github.com/crimson-sun/aurora/internal/connector/memberapi"
)

// Outcome describes how an answer was produced.
// This is the stable public type — internal representations may evolve
// independently without breaking consumers.
type Outcome string

const (
	// Answered means the language model produced the answer.
	Answered Outcome = "answered"
	// Fallback means a templated sentence was built from the most
	// relevant message instead of a generated one.
	Fallback Outcome = "fallback"
	// Apologized means no relevant messages were found.
	Apologized Outcome = "apologized"
)

// Answer is the result of one question.
type Answer struct {
	Text    string  `json:"answer"`
	Outcome Outcome `json:"outcome"`
}

// Client answers questions over member messages.
type Client struct {
	engine *engine.Engine
}

// New creates a Client with the given OpenAI API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("aurora: API key required")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	llmOpts := []llm.Option{llm.WithModels(o.embedModel, o.chatModel)}
	if o.baseURL != "" {
		llmOpts = append(llmOpts, llm.WithBaseURL(o.baseURL))
	}
	client := llm.New(apiKey, llmOpts...)

	ctor, err := connector.Get(o.provider)
	if err != nil {
		return nil, fmt.Errorf("aurora: %w", err)
	}
	srcCfg := connector.Config{
		Provider: o.provider,
		Endpoint: o.endpoint,
		Token:    o.token,
		Path:     o.dumpPath,
	}

	var rankOpts []ranker.Option
	if o.topK > 0 && o.nameTopK > 0 {
		rankOpts = append(rankOpts, ranker.WithTopK(o.topK, o.nameTopK))
	}
	if o.candidateCap > 0 {
		rankOpts = append(rankOpts, ranker.WithCandidateCap(o.candidateCap))
	}

	var synthOpts []synth.Option
	if o.maxTokens > 0 {
		synthOpts = append(synthOpts, synth.WithSampling(o.temperature, o.maxTokens))
	}

	eng := engine.New(ctor(), srcCfg,
		ranker.New(client, rankOpts...),
		projector.New(redactor.New()),
		synth.New(client, synthOpts...))

	return &Client{engine: eng}, nil
}

// Ask answers one natural-language question. An empty question returns
// engine.ErrEmptyQuestion; source and embedding failures return typed
// errors; generation failures degrade to a Fallback answer rather than
// an error.
func (c *Client) Ask(ctx context.Context, question string) (Answer, error) {
	res, err := c.engine.Answer(ctx, question)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Text: res.Answer, Outcome: outcomeFrom(res.Outcome)}, nil
}

func outcomeFrom(o synth.Outcome) Outcome {
	switch o {
	case synth.FallbackAnswered:
		return Fallback
	case synth.Apologized:
		return Apologized
	default:
		return Answered
	}
}
