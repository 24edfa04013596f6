package aurora

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/crimson-sun/aurora/internal/engine"
)

// fakeLLM serves the embedding and chat endpoints: identical unit
// vectors for every text, and a fixed completion.
func fakeLLM(t *testing.T, completion string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/embeddings":
			var req struct {
				Input []string `json:"input"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("decode embed request: %v", err)
			}
			fmt.Fprint(w, `{"data":[`)
			for i := range req.Input {
				if i > 0 {
					fmt.Fprint(w, ",")
				}
				fmt.Fprintf(w, `{"embedding":[1,0],"index":%d}`, i)
			}
			fmt.Fprint(w, `]}`)
		case "/chat/completions":
			fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, completion)
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))
}

func writeDump(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messages.json")
	dump := `{"items":[
		{"id":"1","user_id":"u1","user_name":"Layla","timestamp":"2024-05-12T10:00:00Z","message":"Booking my trip to London in May."},
		{"id":"2","user_id":"u2","user_name":"Omar","timestamp":"2024-05-13T10:00:00Z","message":"Dinner reservation confirmed."}
	]}`
	if err := os.WriteFile(path, []byte(dump), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	return path
}

func TestAskAnswered(t *testing.T) {
	srv := fakeLLM(t, "Layla's trip to London is in May.")
	defer srv.Close()

	client, err := New("sk-test", WithDumpFile(writeDump(t)), WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ans, err := client.Ask(context.Background(), "When is Layla's trip to London?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if ans.Outcome != Answered {
		t.Fatalf("outcome: %v", ans.Outcome)
	}
	if ans.Text != "Layla's trip to London is in May." {
		t.Fatalf("answer: %q", ans.Text)
	}
}

func TestAskEmptyQuestion(t *testing.T) {
	srv := fakeLLM(t, "unused")
	defer srv.Close()

	client, err := New("sk-test", WithDumpFile(writeDump(t)), WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := client.Ask(context.Background(), "   "); !errors.Is(err, engine.ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
}

func TestAskUpstreamFailure(t *testing.T) {
	srv := fakeLLM(t, "unused")
	defer srv.Close()

	client, err := New("sk-test", WithDumpFile("/nonexistent/dump.json"), WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.Ask(context.Background(), "anything")
	var ue *engine.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error without API key")
	}
}
