package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"magpie/internal/media"
)

func TestTikTokExtractVideo(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{
			"title":"dance video",
			"play":"https://cdn.tikwm.example/play.mp4",
			"author":{"unique_id":"bob"},
			"music_info":{"play":"https://cdn.tikwm.example/music.mp3"}
		}}`))
	}))
	defer srv.Close()

	tk := NewTikTok(srv.URL, srv.Client())
	candidates, err := tk.Extract(context.Background(), "https://www.tiktok.com/@bob/video/7123456789")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want video + music", len(candidates))
	}
	if candidates[0].Type != media.Video || candidates[0].MIME != "video/mp4" {
		t.Errorf("candidate[0] = %v %q, want declared video/mp4", candidates[0].Type, candidates[0].MIME)
	}
	if candidates[0].Title != "dance video @bob" {
		t.Errorf("candidate[0].Title = %q", candidates[0].Title)
	}
	if candidates[1].Type != media.Audio {
		t.Errorf("candidate[1].Type = %v, want Audio", candidates[1].Type)
	}
}

func TestTikTokExtractSlideshow(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{
			"title":"photo dump",
			"images":["https://cdn.tikwm.example/1.jpg","https://cdn.tikwm.example/2.jpg"]
		}}`))
	}))
	defer srv.Close()

	tk := NewTikTok(srv.URL, srv.Client())
	candidates, err := tk.Extract(context.Background(), "https://www.tiktok.com/@bob/video/7123456789")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2 slides", len(candidates))
	}
	for i, c := range candidates {
		if c.Type != media.Image {
			t.Errorf("candidate[%d].Type = %v, want Image", i, c.Type)
		}
	}
}

func TestTikTokExtractNothing(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	tk := NewTikTok(srv.URL, srv.Client())
	candidates, err := tk.Extract(context.Background(), "https://www.tiktok.com/@bob/video/7123456789")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("len(candidates) = %d, want 0", len(candidates))
	}
}
