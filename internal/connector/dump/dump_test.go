package dump

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/crimson-sun/aurora/internal/connector"
)

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messages_dump.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	return path
}

func TestFetch(t *testing.T) {
	path := writeDump(t, `{"items": [
		{"id": "m1", "user_id": "u1", "user_name": "Sophia", "message": "Paris in May", "timestamp": "2024-05-01T00:00:00Z"}
	]}`)

	c := &Connector{}
	msgs, err := c.Fetch(context.Background(), connector.Config{Path: path})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(msgs) != 1 || msgs[0].UserName != "Sophia" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
}

func TestFetchMissingPath(t *testing.T) {
	c := &Connector{}
	if _, err := c.Fetch(context.Background(), connector.Config{}); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestFetchMalformed(t *testing.T) {
	path := writeDump(t, `{"items": "not an array"`)
	c := &Connector{}
	if _, err := c.Fetch(context.Background(), connector.Config{Path: path}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRegistered(t *testing.T) {
	if _, err := connector.Get("dump"); err != nil {
		t.Fatalf("provider not registered: %v", err)
	}
}
