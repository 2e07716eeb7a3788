package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"magpie/internal/httputil"
	"magpie/internal/media"
)

const youtubeTimeout = 60 * time.Second

// ytdownNode is the resolver's ytdown payload. Deployments differ in how
// deeply they wrap the body ({"data":{"data":{...}}} vs {"data":{...}} vs
// bare), so the shape is recursive and payload() unwraps it.
type ytdownNode struct {
	Title   string      `json:"title"`
	Video   string      `json:"video"`
	VideoHD string      `json:"video_hd"`
	Audio   string      `json:"audio"`
	Data    *ytdownNode `json:"data"`
}

// payload descends to the innermost node that carries media fields.
func (n *ytdownNode) payload() *ytdownNode {
	if n.Data != nil && (n.Data.Title != "" || n.Data.Video != "" || n.Data.VideoHD != "" ||
		n.Data.Audio != "" || n.Data.Data != nil) {
		return n.Data.payload()
	}
	return n
}

// YouTube extracts a single video (or, failing that, its audio track)
// through the resolver API's ytdown endpoint.
type YouTube struct {
	base   string
	client *http.Client
}

// NewYouTube creates a YouTube extractor against the given resolver base URL.
func NewYouTube(base string, client *http.Client) *YouTube {
	if client == nil {
		client = httputil.NewClient()
	}
	return &YouTube{base: base, client: client}
}

func (y *YouTube) Kind() string { return "youtube" }

// Match validates the URL and derives the video ID.
func (y *YouTube) Match(identifier string) (string, error) {
	if err := httputil.ValidateURL(identifier); err != nil {
		return "", err
	}
	u, err := url.Parse(identifier)
	if err != nil {
		return "", err
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	switch {
	case host == "youtu.be":
		id := strings.Trim(u.Path, "/")
		if id == "" {
			return "", fmt.Errorf("short link has no video ID: %q", identifier)
		}
		return id, nil
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		if id := u.Query().Get("v"); id != "" {
			return id, nil
		}
		// /shorts/<id> and /embed/<id>
		for _, prefix := range []string{"/shorts/", "/embed/"} {
			if strings.HasPrefix(u.Path, prefix) {
				if id := strings.Trim(strings.TrimPrefix(u.Path, prefix), "/"); id != "" {
					return id, nil
				}
			}
		}
		return "", fmt.Errorf("YouTube URL has no video ID: %q", identifier)
	default:
		return "", fmt.Errorf("not a YouTube URL: %q", identifier)
	}
}

func (y *YouTube) Extract(ctx context.Context, identifier string) ([]media.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, youtubeTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/ytdown?url=%s", y.base, url.QueryEscape(identifier))
	raw, err := httputil.GetJSON(ctx, y.client, endpoint, jsonLimit)
	if err != nil {
		return nil, fmt.Errorf("querying resolver: %w", err)
	}

	var parsed ytdownNode
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parsing resolver response: %w", err)
	}

	body := parsed.payload()
	title := body.Title
	if location := firstOf(body.VideoHD, body.Video); location != "" {
		return []media.Candidate{{
			Location: location,
			Type:     media.Video,
			MIME:     "video/mp4",
			Title:    title,
		}}, nil
	}
	if body.Audio != "" {
		return []media.Candidate{{
			Location: body.Audio,
			Type:     media.Audio,
			MIME:     "audio/mpeg",
			Title:    title,
		}}, nil
	}

	return nil, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
