package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// completionBody builds a minimal chat completions response.
func completionBody(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

// testClient points an OpenRouter client at a test server with no
// backoff between attempts.
func testClient(t *testing.T, handler http.HandlerFunc) *OpenRouterClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewOpenRouterClient("test-key", "")
	c.baseURL = server.URL
	return c
}

const completeAnswer = "The zone us-central1-a is in Iowa, in the central United States."

func TestQuery_ReturnsCompletion(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq chatRequest

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotReq)
		fmt.Fprint(w, completionBody(completeAnswer))
	})

	got, err := c.Query(context.Background(), "where is us-central1-a?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != completeAnswer {
		t.Errorf("unexpected answer: %q", got)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotReq.Model != openRouterDefaultModel {
		t.Errorf("expected default model, got %q", gotReq.Model)
	}
	if gotReq.MaxTokens != 4000 {
		t.Errorf("expected max_tokens 4000, got %d", gotReq.MaxTokens)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("expected single user message, got %+v", gotReq.Messages)
	}
}

func TestQuery_RetriesRateLimit(t *testing.T) {
	attempts := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, completionBody(completeAnswer))
	})

	got, err := c.Query(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != completeAnswer {
		t.Errorf("unexpected answer: %q", got)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestQuery_RetriesIncompleteResponse(t *testing.T) {
	attempts := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			fmt.Fprint(w, completionBody(`{"partial":`))
			return
		}
		fmt.Fprint(w, completionBody(completeAnswer))
	})

	got, err := c.Query(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != completeAnswer {
		t.Errorf("unexpected answer: %q", got)
	}
	if attempts != 2 {
		t.Errorf("expected retry on truncated response, got %d attempts", attempts)
	}
}

func TestQuery_NoRetryOnClientError(t *testing.T) {
	attempts := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "model not found")
	})

	_, err := c.Query(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt for client error, got %d", attempts)
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("expected response body in error, got: %v", err)
	}
}

func TestQuery_AttemptBudgetExhausted(t *testing.T) {
	attempts := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Query(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestQuery_APIErrorField(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error": {"message": "invalid model id"}}`)
	})

	_, err := c.Query(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "invalid model id") {
		t.Errorf("expected api error message, got: %v", err)
	}
}

func TestQuery_MissingKey(t *testing.T) {
	c := NewOpenRouterClient("", "")
	if _, err := c.Query(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestNewOpenRouterClient_ModelOverride(t *testing.T) {
	c := NewOpenRouterClient("k", "openai/gpt-4o-mini")
	if c.model != "openai/gpt-4o-mini" {
		t.Errorf("unexpected model %q", c.model)
	}
}
