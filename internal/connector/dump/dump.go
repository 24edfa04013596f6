// Package dump reads member messages from a local JSON dump file with
// the same {"items": [...]} shape as the live API. Used for development
// and offline analysis.
package dump

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/crimson-sun/aurora/internal/connector"
	"github.com/crimson-sun/aurora/internal/model"
)

func init() {
	connector.Register("dump", func() connector.Connector {
		return &Connector{}
	})
}

// Connector implements connector.Connector over a dump file.
type Connector struct{}

type itemsResponse struct {
	Items []model.RawMessage `json:"items"`
}

// Fetch reads and decodes the dump file on every call, mirroring the
// no-caching behavior of the live source.
func (c *Connector) Fetch(ctx context.Context, cfg connector.Config) ([]model.RawMessage, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("dump: path not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("dump: %w", err)
	}
	var resp itemsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("dump: decode %s: %w", cfg.Path, err)
	}
	return resp.Items, nil
}
