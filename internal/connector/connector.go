package connector

import (
	"context"

	"github.com/crimson-sun/aurora/internal/model"
)

// Connector fetches the full member message set from a source.
// Messages are re-fetched on every call: connectors hold no
// cross-request state and nothing is cached or persisted.
type Connector interface {
	Fetch(ctx context.Context, cfg Config) ([]model.RawMessage, error)
}

// Config holds provider-specific connection settings.
type Config struct {
	Provider string
	Endpoint string // full URL of the messages API
	Token    string // optional bearer token
	Path     string // local dump path, for file-backed providers
}
