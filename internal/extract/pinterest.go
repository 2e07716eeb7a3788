package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"magpie/internal/httputil"
	"magpie/internal/media"
)

const pinterestTimeout = 30 * time.Second

var (
	pinIDPattern = regexp.MustCompile(`pinterest\.[^/]+/pin/(\d+)`)

	// Fallback when the page carries no OG tags for the pin.
	pinOriginalsPattern = regexp.MustCompile(`https://i\.pinimg\.com/originals/[^"]+`)
)

// Pinterest extracts the primary media from a pin page by scraping its
// OpenGraph meta tags. Short pin.it links resolve through the client's
// redirect following.
type Pinterest struct {
	client *http.Client
}

// NewPinterest creates a Pinterest pin extractor.
func NewPinterest(client *http.Client) *Pinterest {
	if client == nil {
		client = httputil.NewClient()
	}
	return &Pinterest{client: client}
}

func (p *Pinterest) Kind() string { return "pin" }

// Match validates the URL and derives the pin ID, or the short-link code
// for pin.it URLs.
func (p *Pinterest) Match(identifier string) (string, error) {
	if err := httputil.ValidateURL(identifier); err != nil {
		return "", err
	}
	if m := pinIDPattern.FindStringSubmatch(identifier); m != nil {
		return m[1], nil
	}
	u, err := url.Parse(identifier)
	if err != nil {
		return "", err
	}
	host := strings.ToLower(u.Hostname())
	if host != "pin.it" && host != "pinterest.com" && !strings.HasSuffix(host, ".pinterest.com") {
		return "", fmt.Errorf("not a Pinterest URL: %q", identifier)
	}
	code := strings.Trim(u.Path, "/")
	if code == "" {
		return "", fmt.Errorf("Pinterest URL has no pin path: %q", identifier)
	}
	return code, nil
}

// Extract scrapes the pin page. og:video wins over og:image; image URLs
// are upgraded to their originals variant.
func (p *Pinterest) Extract(ctx context.Context, identifier string) ([]media.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, pinterestTimeout)
	defer cancel()

	resp, err := httputil.Get(ctx, p.client, identifier, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching pin page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching pin page: unexpected status %d", resp.StatusCode)
	}

	body, err := httputil.ReadLimited(resp.Body, jsonLimit)
	if err != nil {
		return nil, fmt.Errorf("reading pin page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing pin page: %w", err)
	}

	title := strings.TrimSpace(strings.TrimSuffix(doc.Find("title").First().Text(), " | Pinterest"))

	if video, ok := doc.Find(`meta[property="og:video"]`).Attr("content"); ok && video != "" {
		return []media.Candidate{{
			Location: video,
			Type:     media.Video,
			MIME:     "video/mp4",
			Title:    title,
		}}, nil
	}

	if image, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && image != "" {
		image = upgradePinImage(image)
		return []media.Candidate{{
			Location: image,
			Type:     media.Image,
			MIME:     "image/jpeg",
			Title:    title,
		}}, nil
	}

	if m := pinOriginalsPattern.FindString(string(body)); m != "" {
		return []media.Candidate{{
			Location: m,
			Type:     media.Image,
			MIME:     "image/jpeg",
			Title:    title,
		}}, nil
	}

	return nil, nil
}

// upgradePinImage rewrites a sized pinimg URL to its originals variant.
func upgradePinImage(u string) string {
	u = strings.ReplaceAll(u, "736x", "originals")
	return strings.ReplaceAll(u, "236x", "originals")
}
