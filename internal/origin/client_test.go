package origin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCallTool_PostsArgumentsAsIs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"limit":5}` {
			t.Errorf("arguments must be forwarded untouched, got %s", body)
		}
		w.Write([]byte(`{"programs":[],"count":0}`))
	}))
	defer ts.Close()

	c := New(ts.URL, 2*time.Second)
	raw, err := c.CallTool(context.Background(), PathPrograms, json.RawMessage(`{"limit":5}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !json.Valid(raw) {
		t.Errorf("expected valid JSON back, got %s", raw)
	}
}

func TestCallTool_EmptyArgumentsBecomeEmptyObject(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{}` {
			t.Errorf("expected {}, got %s", body)
		}
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := New(ts.URL, 2*time.Second)
	if _, err := c.CallTool(context.Background(), PathRank, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCallTool_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()

	c := New(ts.URL, 2*time.Second)
	_, err := c.CallTool(context.Background(), PathPrograms, nil)
	if err == nil {
		t.Fatal("expected error on non-2xx status")
	}
	if !strings.Contains(err.Error(), "502") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error must embed status and body: %v", err)
	}
}

func TestCallTool_MalformedOriginJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"truncated":`))
	}))
	defer ts.Close()

	c := New(ts.URL, 2*time.Second)
	if _, err := c.CallTool(context.Background(), PathPrograms, nil); err == nil {
		t.Fatal("expected error on malformed origin JSON")
	}
}

func TestCallTool_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer ts.Close()

	c := New(ts.URL, 30*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	if _, err := c.CallTool(ctx, PathPrograms, nil); err == nil {
		t.Fatal("expected error after cancellation")
	}
}
