package engine

import "errors"

// ErrEmptyQuestion rejects blank questions before the pipeline starts.
var ErrEmptyQuestion = errors.New("engine: question must not be empty")

// UpstreamError wraps a failure to fetch messages from the source.
// Fatal: without messages there is nothing to rank.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "engine: fetching messages: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// EmbedError wraps an embedding-service failure during ranking.
// Fatal: without embeddings no ranking is possible.
type EmbedError struct {
	Err error
}

func (e *EmbedError) Error() string {
	return "engine: ranking messages: " + e.Err.Error()
}

func (e *EmbedError) Unwrap() error { return e.Err }
