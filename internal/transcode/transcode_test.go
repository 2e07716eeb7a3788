package transcode

import (
	"bytes"
	"context"
	"testing"
)

func TestNonePassesBytesThrough(t *testing.T) {
	payload := []byte("raw video bytes")

	out, err := None{}.Transcode(context.Background(), payload)
	if err != nil {
		t.Fatalf("Transcode() error: %v", err)
	}
	if !bytes.Equal(out, payload) {
		t.Errorf("Transcode() = %q, want input unchanged", out)
	}
}

func TestNewFFmpegMissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if _, err := NewFFmpeg(); err == nil {
		t.Fatal("NewFFmpeg() succeeded with empty PATH, want error")
	}
}

func TestTail(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"a longer error message", 7, "message"},
		{"", 4, ""},
	}
	for _, tt := range tests {
		if got := tail([]byte(tt.in), tt.n); string(got) != tt.want {
			t.Errorf("tail(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
