// Package memberapi fetches member messages from the public messages
// HTTP API: a GET returning {"items": [...]}.
package memberapi

import (
	"context"
	"fmt"

	"github.com/crimson-sun/aurora/internal/connector"
	"github.com/crimson-sun/aurora/internal/connector/httpclient"
	"github.com/crimson-sun/aurora/internal/model"
)

func init() {
	connector.Register("memberapi", func() connector.Connector {
		return &Connector{}
	})
}

// Connector implements connector.Connector for the member messages API.
type Connector struct{}

type itemsResponse struct {
	Items []model.RawMessage `json:"items"`
}

// Fetch retrieves the full message set. The source is treated as
// read-only and fully re-fetched per request.
func (c *Connector) Fetch(ctx context.Context, cfg connector.Config) ([]model.RawMessage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("memberapi: endpoint not configured")
	}

	client := httpclient.New(cfg.Endpoint, cfg.Token)
	var resp itemsResponse
	if err := client.GetJSON(ctx, "", nil, &resp); err != nil {
		return nil, fmt.Errorf("memberapi: %w", err)
	}
	return resp.Items, nil
}
