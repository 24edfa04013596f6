// Package synth turns ranked, projected messages into a natural-language
// answer. Generation failure is consumed here and degrades to a
// templated fallback; it never escapes as an error.
package synth

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/crimson-sun/aurora/internal/llm"
	"github.com/crimson-sun/aurora/internal/model"
)

// Outcome describes how the answer was produced.
type Outcome int

const (
	// Answered means the generator produced the answer.
	Answered Outcome = iota
	// FallbackAnswered means a templated sentence was built from a
	// projected message, either because the generator failed or because
	// it claimed not to find an answer despite a direct name match.
	FallbackAnswered
	// Apologized means there was nothing to answer from.
	Apologized
)

func (o Outcome) String() string {
	switch o {
	case Answered:
		return "answered"
	case FallbackAnswered:
		return "fallback"
	case Apologized:
		return "apologized"
	default:
		return "unknown"
	}
}

// Result is the synthesizer's output.
type Result struct {
	Answer  string
	Outcome Outcome
}

// Generator is the external chat-completion service.
type Generator interface {
	Complete(ctx context.Context, req llm.ChatRequest) (string, error)
}

const (
	defaultTemperature = 0.2
	defaultMaxTokens   = 200

	apology = "Sorry, I couldn't find a relevant answer."

	notFoundPhrase = "couldn't find"
)

// Synthesizer builds the prompt and invokes the generator.
type Synthesizer struct {
	gen         Generator
	temperature float64
	maxTokens   int
	log         *logrus.Entry
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSampling overrides temperature and maximum output tokens.
func WithSampling(temperature float64, maxTokens int) Option {
	return func(s *Synthesizer) {
		s.temperature = temperature
		s.maxTokens = maxTokens
	}
}

// New creates a Synthesizer backed by the given generator.
func New(gen Generator, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		gen:         gen,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
		log:         logrus.WithField("component", "synth"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize answers the question from the projected context messages.
// nameMatched, when non-nil, is the first projected message that
// qualified under the name-match pre-filter; it powers the override for
// overly conservative generator answers.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, msgs []model.ProjectedMessage, nameMatched *model.ProjectedMessage) Result {
	if len(msgs) == 0 {
		return Result{Answer: apology, Outcome: Apologized}
	}

	answer, err := s.gen.Complete(ctx, llm.ChatRequest{
		System:      systemPrompt,
		User:        userPrompt(question, msgs),
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		s.log.WithError(err).Warn("generation failed, using templated fallback")
		return Result{Answer: mention(msgs[0]), Outcome: FallbackAnswered}
	}

	answer = strings.TrimSpace(answer)
	if nameMatched != nil && strings.Contains(strings.ToLower(answer), notFoundPhrase) {
		// The generator was too conservative despite a strong direct
		// match; answer from that match instead.
		return Result{Answer: mention(*nameMatched), Outcome: FallbackAnswered}
	}
	return Result{Answer: answer, Outcome: Answered}
}

// mention builds the templated fallback sentence from a projected
// message. Only redacted text ever reaches this template.
func mention(m model.ProjectedMessage) string {
	return fmt.Sprintf("Based on available information: %s mentioned: %s", m.UserName, m.Text)
}
