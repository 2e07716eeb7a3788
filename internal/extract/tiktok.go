package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"magpie/internal/httputil"
	"magpie/internal/media"
)

const tiktokTimeout = 120 * time.Second

var tiktokVideoPattern = regexp.MustCompile(`tiktok\.com/@[^/]+/video/(\d+)`)

// tikwmResponse is the tikwm API envelope. A video post carries "play";
// a slideshow post carries "images" instead.
type tikwmResponse struct {
	Data struct {
		Title  string   `json:"title"`
		Play   string   `json:"play"`
		Images []string `json:"images"`
		Author struct {
			UniqueID string `json:"unique_id"`
		} `json:"author"`
		MusicInfo struct {
			Play string `json:"play"`
		} `json:"music_info"`
	} `json:"data"`
}

// TikTok extracts videos and image slideshows through the tikwm API,
// including the post's music track as a declared audio candidate.
type TikTok struct {
	base   string
	client *http.Client
}

// NewTikTok creates a TikTok extractor against the given tikwm base URL.
func NewTikTok(base string, client *http.Client) *TikTok {
	if client == nil {
		client = httputil.NewClient()
	}
	return &TikTok{base: base, client: client}
}

func (t *TikTok) Kind() string { return "tiktok" }

// Match validates the URL and derives the video ID, falling back to the
// short-link code for vm.tiktok.com shares.
func (t *TikTok) Match(identifier string) (string, error) {
	if err := httputil.ValidateURL(identifier); err != nil {
		return "", err
	}
	u, err := url.Parse(identifier)
	if err != nil {
		return "", err
	}
	host := strings.ToLower(u.Hostname())
	if host != "tiktok.com" && !strings.HasSuffix(host, ".tiktok.com") {
		return "", fmt.Errorf("not a TikTok URL: %q", identifier)
	}
	if m := tiktokVideoPattern.FindStringSubmatch(identifier); m != nil {
		return m[1], nil
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "", fmt.Errorf("TikTok URL has no video path: %q", identifier)
	}
	return path, nil
}

func (t *TikTok) Extract(ctx context.Context, identifier string) ([]media.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, tiktokTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/?url=%s", t.base, url.QueryEscape(identifier))
	body, err := httputil.GetJSON(ctx, t.client, endpoint, jsonLimit)
	if err != nil {
		return nil, fmt.Errorf("querying tikwm: %w", err)
	}

	var parsed tikwmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing tikwm response: %w", err)
	}

	data := parsed.Data
	title := data.Title
	if data.Author.UniqueID != "" {
		title = strings.TrimSpace(fmt.Sprintf("%s @%s", data.Title, data.Author.UniqueID))
	}

	var candidates []media.Candidate
	switch {
	case len(data.Images) > 0:
		// Slideshow post: a declared image per slide.
		for _, img := range data.Images {
			candidates = append(candidates, media.Candidate{
				Location: img,
				Type:     media.Image,
				Title:    title,
			})
		}
	case data.Play != "":
		candidates = append(candidates, media.Candidate{
			Location: data.Play,
			Type:     media.Video,
			MIME:     "video/mp4",
			Title:    title,
		})
	}

	// The music track rides along as a declared audio candidate; if it
	// later fails to fetch, only the track is lost.
	if len(candidates) > 0 && data.MusicInfo.Play != "" {
		candidates = append(candidates, media.Candidate{
			Location: data.MusicInfo.Play,
			Type:     media.Audio,
			MIME:     "audio/mp4",
			Title:    title,
		})
	}

	return candidates, nil
}
