package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(baseURL string, retries int) *Client {
	return &Client{
		apiKey:     "test-key",
		baseURL:    baseURL,
		referer:    "https://example.test",
		model:      "allenai/olmo-3.1-32b-think:free",
		http:       &http.Client{Timeout: 5 * time.Second},
		maxRetries: retries,
		retryBase:  time.Millisecond,
	}
}

func TestCompleteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		if r.Header.Get("HTTP-Referer") == "" {
			t.Errorf("missing HTTP-Referer header")
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"hello back"}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	got, err := c.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "hello back" {
		t.Fatalf("content = %q", got)
	}
}

func TestCompleteRetriesOn429(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 5)
	got, err := c.Complete(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "ok" {
		t.Fatalf("content = %q", got)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("calls = %d; want 3", calls)
	}
}

func TestCompleteFatalOn400(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad model"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 5)
	if _, err := c.Complete(context.Background(), "hi"); err == nil {
		t.Fatalf("expected error")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("400 must not be retried; calls = %d", calls)
	}
}

func TestResolveModel(t *testing.T) {
	if got := ResolveModel("allenai_31"); got != "allenai/olmo-3.1-32b-think:free" {
		t.Fatalf("alias resolution = %q", got)
	}
	if got := ResolveModel("vendor/custom-model"); got != "vendor/custom-model" {
		t.Fatalf("passthrough = %q", got)
	}
}
