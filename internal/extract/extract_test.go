package extract

import (
	"net/http"
	"testing"

	"magpie/internal/config"
)

func testClient() *http.Client { return &http.Client{} }

func TestForURL(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name     string
		url      string
		wantKind string
		wantErr  bool
	}{
		{"story URL", "https://www.instagram.com/stories/alice/", "story", false},
		{"instagram post", "https://www.instagram.com/p/Cxyz123/", "instagram", false},
		{"instagram reel", "https://instagram.com/reel/Cxyz123/", "instagram", false},
		{"tiktok video", "https://www.tiktok.com/@bob/video/7123456789", "tiktok", false},
		{"tiktok short link", "https://vm.tiktok.com/ZMabcdef/", "tiktok", false},
		{"youtube watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "youtube", false},
		{"youtube short link", "https://youtu.be/dQw4w9WgXcQ", "youtube", false},
		{"pinterest pin", "https://br.pinterest.com/pin/1234567890/", "pin", false},
		{"pin short link", "https://pin.it/abc123", "pin", false},
		{"unsupported host", "https://example.com/media/1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := ForURL(cfg, testClient(), tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ForURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if ext.Kind() != tt.wantKind {
				t.Errorf("Kind() = %q, want %q", ext.Kind(), tt.wantKind)
			}
		})
	}
}

func TestStoryMatch(t *testing.T) {
	s := NewStory("https://resolver.example", testClient())

	tests := []struct {
		name     string
		url      string
		identity string
		wantErr  bool
	}{
		{"story URL", "https://www.instagram.com/stories/alice/", "alice", false},
		{"story with ID", "https://instagram.com/stories/alice/31415926", "alice", false},
		{"profile URL", "https://www.instagram.com/alice/", "alice", false},
		{"plain HTTP", "http://instagram.com/stories/alice/", "", true},
		{"not instagram", "https://example.com/stories/alice", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := s.Match(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Match(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if identity != tt.identity {
				t.Errorf("Match(%q) = %q, want %q", tt.url, identity, tt.identity)
			}
		})
	}
}

func TestInstagramMatch(t *testing.T) {
	i := NewInstagram("https://resolver.example", testClient())

	tests := []struct {
		url      string
		identity string
		wantErr  bool
	}{
		{"https://www.instagram.com/p/Cxyz123/", "Cxyz123", false},
		{"https://www.instagram.com/reel/Cxyz123/?igsh=1", "Cxyz123", false},
		{"https://www.instagram.com/tv/Cxyz123/", "Cxyz123", false},
		{"https://example.com/p/Cxyz123/", "", true},
		{"https://www.instagram.com/", "", true},
	}

	for _, tt := range tests {
		identity, err := i.Match(tt.url)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Match(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
		if identity != tt.identity {
			t.Errorf("Match(%q) = %q, want %q", tt.url, identity, tt.identity)
		}
	}
}

func TestTikTokMatch(t *testing.T) {
	tk := NewTikTok("https://www.tikwm.com", testClient())

	tests := []struct {
		url      string
		identity string
		wantErr  bool
	}{
		{"https://www.tiktok.com/@bob/video/7123456789", "7123456789", false},
		{"https://vm.tiktok.com/ZMabcdef/", "ZMabcdef", false},
		{"https://example.com/@bob/video/7123456789", "", true},
	}

	for _, tt := range tests {
		identity, err := tk.Match(tt.url)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Match(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
		if identity != tt.identity {
			t.Errorf("Match(%q) = %q, want %q", tt.url, identity, tt.identity)
		}
	}
}

func TestYouTubeMatch(t *testing.T) {
	y := NewYouTube("https://resolver.example", testClient())

	tests := []struct {
		url      string
		identity string
		wantErr  bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/shorts/abc123xyz", "abc123xyz", false},
		{"https://www.youtube.com/", "", true},
		{"https://example.com/watch?v=dQw4w9WgXcQ", "", true},
	}

	for _, tt := range tests {
		identity, err := y.Match(tt.url)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Match(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
		if identity != tt.identity {
			t.Errorf("Match(%q) = %q, want %q", tt.url, identity, tt.identity)
		}
	}
}

func TestPinterestMatch(t *testing.T) {
	p := NewPinterest(testClient())

	tests := []struct {
		url      string
		identity string
		wantErr  bool
	}{
		{"https://br.pinterest.com/pin/1234567890/", "1234567890", false},
		{"https://pin.it/abc123", "abc123", false},
		{"https://example.com/pin/123/", "", true},
	}

	for _, tt := range tests {
		identity, err := p.Match(tt.url)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Match(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
		if identity != tt.identity {
			t.Errorf("Match(%q) = %q, want %q", tt.url, identity, tt.identity)
		}
	}
}

func TestPinSearchMatch(t *testing.T) {
	p := NewPinSearch("https://br.pinterest.com", testClient())

	identity, err := p.Match("  Sunset Beach  ")
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if identity != "sunset beach" {
		t.Errorf("Match() = %q, want normalized %q", identity, "sunset beach")
	}

	if _, err := p.Match("   "); err == nil {
		t.Error("Match() accepted a blank query")
	}
}
