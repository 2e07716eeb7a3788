package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"magpie/internal/media"
)

func ytServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ytdown" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestYouTubeExtractVideo(t *testing.T) {
	// Doubly wrapped envelope, HD variant preferred
	srv := ytServer(t, `{"status":1,"data":{"data":{
		"title":"Some Video",
		"video":"https://dl.example.com/sd.mp4",
		"video_hd":"https://dl.example.com/hd.mp4"
	}}}`)
	defer srv.Close()

	y := NewYouTube(srv.URL, srv.Client())
	candidates, err := y.Extract(context.Background(), "https://www.youtube.com/watch?v=abc")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("len(candidates) = %d, want 1", len(candidates))
	}
	c := candidates[0]
	if c.Location != "https://dl.example.com/hd.mp4" {
		t.Errorf("Location = %q, want the HD variant", c.Location)
	}
	if c.Type != media.Video || c.Title != "Some Video" {
		t.Errorf("candidate = %v %q", c.Type, c.Title)
	}
}

func TestYouTubeExtractBareEnvelope(t *testing.T) {
	srv := ytServer(t, `{"title":"Bare","video":"https://dl.example.com/bare.mp4"}`)
	defer srv.Close()

	y := NewYouTube(srv.URL, srv.Client())
	candidates, err := y.Extract(context.Background(), "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Location != "https://dl.example.com/bare.mp4" {
		t.Fatalf("candidates = %+v, want the bare envelope parsed", candidates)
	}
}

func TestYouTubeExtractAudioFallback(t *testing.T) {
	srv := ytServer(t, `{"data":{"title":"Audio Only","audio":"https://dl.example.com/a.mp3"}}`)
	defer srv.Close()

	y := NewYouTube(srv.URL, srv.Client())
	candidates, err := y.Extract(context.Background(), "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("len(candidates) = %d, want 1", len(candidates))
	}
	if candidates[0].Type != media.Audio || candidates[0].MIME != "audio/mpeg" {
		t.Errorf("candidate = %v %q, want declared audio/mpeg", candidates[0].Type, candidates[0].MIME)
	}
}

func TestYouTubeExtractUnavailable(t *testing.T) {
	srv := ytServer(t, `{"status":0,"data":{}}`)
	defer srv.Close()

	y := NewYouTube(srv.URL, srv.Client())
	candidates, err := y.Extract(context.Background(), "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("len(candidates) = %d, want 0", len(candidates))
	}
}
