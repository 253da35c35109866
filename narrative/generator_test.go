package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func completionServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			json.Unmarshal(raw, seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testGenerator(t *testing.T, url string) *OpenAIGenerator {
	t.Helper()
	gen, err := NewOpenAIGenerator(Config{
		APIKey:  "test-key",
		BaseURL: url + "/v1/",
		Model:   "test-model",
		Timeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewOpenAIGenerator failed: %v", err)
	}
	return gen
}

func TestNewOpenAIGeneratorRequiresKey(t *testing.T) {
	if _, err := NewOpenAIGenerator(Config{APIKey: "  "}); !errors.Is(err, ErrNoProvider) {
		t.Errorf("Expected ErrNoProvider, got %v", err)
	}
}

func TestOpenAIGenerate(t *testing.T) {
	var seen map[string]any
	srv := completionServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1,
		"model": "test-model",
		"choices": [{
			"index": 0,
			"finish_reason": "stop",
			"message": {"role": "assistant", "content": "  Don't turn around.  "}
		}]
	}`, &seen)

	got, err := testGenerator(t, srv.URL).Generate(context.Background(), Request{
		Prompt:      "hello",
		Temperature: 0.9,
		TopP:        0.8,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "Don't turn around." {
		t.Errorf("Expected trimmed text, got %q", got)
	}
	if seen["model"] != "test-model" {
		t.Errorf("Expected model test-model, got %v", seen["model"])
	}
	if seen["temperature"] != 0.9 || seen["top_p"] != 0.8 {
		t.Errorf("Expected sampling in request, got temperature=%v top_p=%v", seen["temperature"], seen["top_p"])
	}
}

func TestOpenAIGenerateOmitsDefaults(t *testing.T) {
	var seen map[string]any
	srv := completionServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"m",
		"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"lore"}}]}`, &seen)

	if _, err := testGenerator(t, srv.URL).Generate(context.Background(), Request{Prompt: "lore"}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, ok := seen["temperature"]; ok {
		t.Errorf("Expected no temperature, got %v", seen["temperature"])
	}
}

func TestOpenAIGenerateEmpty(t *testing.T) {
	srv := completionServer(t, http.StatusOK,
		`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`, nil)

	if _, err := testGenerator(t, srv.URL).Generate(context.Background(), Request{Prompt: "p"}); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got %v", err)
	}
}

func TestOpenAIGenerateServerError(t *testing.T) {
	srv := completionServer(t, http.StatusInternalServerError, `{"error":{"message":"boom"}}`, nil)

	_, err := testGenerator(t, srv.URL).Generate(context.Background(), Request{Prompt: "p"})
	if err == nil {
		t.Fatal("Expected error from failing provider")
	}
	if errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected transport error, got %v", err)
	}
}
