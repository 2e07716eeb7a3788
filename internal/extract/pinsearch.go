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

const pinSearchTimeout = 30 * time.Second

// The search page inlines result images as JSON-encoded pinimg URLs; the
// DOM itself is hydrated client-side, so a regex over the raw HTML sees
// more results than the parsed tree would.
var pinImagePattern = regexp.MustCompile(`"(https://i\.pinimg\.com/[^"]+)"`)

// PinSearch extracts image candidates for a free-text Pinterest search.
// The identifier is the query itself, not a URL.
type PinSearch struct {
	base   string
	client *http.Client
}

// NewPinSearch creates a search extractor against the given Pinterest base URL.
func NewPinSearch(base string, client *http.Client) *PinSearch {
	if client == nil {
		client = httputil.NewClient()
	}
	return &PinSearch{base: base, client: client}
}

func (p *PinSearch) Kind() string { return "pins" }

// Match normalizes the query: queries are case-insensitive, so the cache
// identity is lower-cased.
func (p *PinSearch) Match(identifier string) (string, error) {
	query := strings.TrimSpace(identifier)
	if query == "" {
		return "", fmt.Errorf("empty search query")
	}
	return strings.ToLower(query), nil
}

func (p *PinSearch) Extract(ctx context.Context, identifier string) ([]media.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, pinSearchTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/search/pins/?q=%s", p.base, url.QueryEscape(strings.TrimSpace(identifier)))
	resp, err := httputil.Get(ctx, p.client, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching search page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching search page: unexpected status %d", resp.StatusCode)
	}

	body, err := httputil.ReadLimited(resp.Body, jsonLimit)
	if err != nil {
		return nil, fmt.Errorf("reading search page: %w", err)
	}

	var candidates []media.Candidate
	for _, m := range pinImagePattern.FindAllStringSubmatch(string(body), -1) {
		loc := upgradeThumb(m[1])
		candidates = append(candidates, media.Candidate{
			Location: loc,
			Type:     media.Image,
			MIME:     "image/jpeg",
		})
	}

	return candidates, nil
}

// upgradeThumb rewrites thumbnail URLs to a larger variant.
func upgradeThumb(u string) string {
	u = strings.ReplaceAll(u, "236x", "736x")
	return strings.ReplaceAll(u, "60x60", "736x")
}
