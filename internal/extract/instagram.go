package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"magpie/internal/httputil"
	"magpie/internal/media"
)

const instagramTimeout = 120 * time.Second

// /p/<shortcode>/, /reel/<shortcode>/, /tv/<shortcode>/
var shortcodePattern = regexp.MustCompile(`(?i)instagram\.com/(?:p|reel|reels|tv)/([^/?]+)`)

// Instagram extracts posts, reels, and carousels through the resolver
// API. Carousels yield several candidates.
type Instagram struct {
	base   string
	client *http.Client
}

// NewInstagram creates an Instagram extractor against the given resolver base URL.
func NewInstagram(base string, client *http.Client) *Instagram {
	if client == nil {
		client = httputil.NewClient()
	}
	return &Instagram{base: base, client: client}
}

func (i *Instagram) Kind() string { return "instagram" }

// Match validates the URL and derives the post shortcode.
func (i *Instagram) Match(identifier string) (string, error) {
	if err := httputil.ValidateURL(identifier); err != nil {
		return "", err
	}
	if m := shortcodePattern.FindStringSubmatch(identifier); m != nil {
		return m[1], nil
	}
	// Fall back to the trimmed path for share links and other shapes.
	u, err := url.Parse(identifier)
	if err != nil || !strings.Contains(strings.ToLower(u.Hostname()), "instagram.com") {
		return "", fmt.Errorf("not an Instagram URL: %q", identifier)
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "", fmt.Errorf("Instagram URL has no post path: %q", identifier)
	}
	return path, nil
}

func (i *Instagram) Extract(ctx context.Context, identifier string) ([]media.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, instagramTimeout)
	defer cancel()

	locations, err := ndown(ctx, i.client, i.base, identifier)
	if err != nil {
		return nil, err
	}

	candidates := make([]media.Candidate, 0, len(locations))
	for _, loc := range locations {
		candidates = append(candidates, media.Candidate{Location: loc})
	}
	return candidates, nil
}
