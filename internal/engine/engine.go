// Package engine orchestrates the ask pipeline: fetch messages, rank
// by relevance, project through the redaction boundary, synthesize an
// answer. One pipeline instance handles one request; there is no shared
// mutable state between requests and the message set is re-fetched
// every time.
package engine

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/crimson-sun/aurora/internal/connector"
	"github.com/crimson-sun/aurora/internal/engine/projector"
	"github.com/crimson-sun/aurora/internal/engine/ranker"
	"github.com/crimson-sun/aurora/internal/engine/synth"
	"github.com/crimson-sun/aurora/internal/model"
)

// Engine answers natural-language questions over member messages.
type Engine struct {
	source    connector.Connector
	srcCfg    connector.Config
	ranker    *ranker.Ranker
	projector *projector.Projector
	synth     *synth.Synthesizer
	log       *logrus.Entry
}

// New creates an Engine from its components.
func New(src connector.Connector, srcCfg connector.Config, rk *ranker.Ranker, pj *projector.Projector, sy *synth.Synthesizer) *Engine {
	return &Engine{
		source:    src,
		srcCfg:    srcCfg,
		ranker:    rk,
		projector: pj,
		synth:     sy,
		log:       logrus.WithField("component", "engine"),
	}
}

// Answer runs the full pipeline for one question. Fetch and ranking
// failures abort the request with a typed error; generation failures
// are handled inside the synthesizer and degrade to a fallback answer.
// Raw message text crosses into projected form exactly once, between
// ranking and synthesis.
func (e *Engine) Answer(ctx context.Context, question string) (synth.Result, error) {
	if strings.TrimSpace(question) == "" {
		return synth.Result{}, ErrEmptyQuestion
	}

	msgs, err := e.source.Fetch(ctx, e.srcCfg)
	if err != nil {
		return synth.Result{}, &UpstreamError{Err: err}
	}

	ranked, err := e.ranker.Rank(ctx, question, msgs)
	if err != nil {
		return synth.Result{}, &EmbedError{Err: err}
	}

	projected := e.projector.ProjectBatch(ranked.Top)
	var named *model.ProjectedMessage
	if len(ranked.NameMatched) > 0 {
		p := e.projector.Project(ranked.NameMatched[0])
		named = &p
	}

	res := e.synth.Synthesize(ctx, question, projected, named)
	e.log.WithFields(logrus.Fields{
		"messages":   len(msgs),
		"candidates": len(ranked.Top),
		"outcome":    res.Outcome.String(),
	}).Debug("question answered")
	return res, nil
}
