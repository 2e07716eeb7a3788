package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStoryExtract(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ndown" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("url"); got != "https://www.instagram.com/stories/alice/" {
			t.Errorf("resolver got url = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"url":"https://cdn.example.com/a.jpg"},{"url":"https://cdn.example.com/b.mp4"},{"url":""}]}`))
	}))
	defer srv.Close()

	s := NewStory(srv.URL, srv.Client())
	candidates, err := s.Extract(context.Background(), "https://www.instagram.com/stories/alice/")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2 (empty URL skipped)", len(candidates))
	}
	if candidates[0].Location != "https://cdn.example.com/a.jpg" {
		t.Errorf("candidate[0].Location = %q", candidates[0].Location)
	}
	// Story items leave classification to the prober
	for i, c := range candidates {
		if c.Type.String() != "unknown" {
			t.Errorf("candidate[%d].Type = %v, want Unknown", i, c.Type)
		}
	}
}

func TestStoryExtractExpired(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	s := NewStory(srv.URL, srv.Client())
	candidates, err := s.Extract(context.Background(), "https://www.instagram.com/stories/ghost/")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("len(candidates) = %d, want 0 for an expired story", len(candidates))
	}
}

func TestStoryExtractUpstreamFailure(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewStory(srv.URL, srv.Client())
	if _, err := s.Extract(context.Background(), "https://www.instagram.com/stories/alice/"); err == nil {
		t.Error("Extract() succeeded on upstream 502")
	}
}
