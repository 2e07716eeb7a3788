package extract

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"magpie/internal/httputil"
	"magpie/internal/media"
)

// storyTimeout bounds the resolver call. The API walks the account's live
// stories server-side, which can be slow.
const storyTimeout = 120 * time.Second

var (
	// https://www.instagram.com/stories/username/ (optionally with a story ID)
	storyPattern = regexp.MustCompile(`(?i)instagram\.com/stories/([^/?]+)`)

	// https://www.instagram.com/username/
	profilePattern = regexp.MustCompile(`(?i)instagram\.com/([^/?]+)`)
)

// Story extracts an account's current Instagram stories through the
// resolver API. Stories expire after 24 hours, so NotFound is a routine
// outcome here.
type Story struct {
	base   string
	client *http.Client
}

// NewStory creates a Story extractor against the given resolver base URL.
func NewStory(base string, client *http.Client) *Story {
	if client == nil {
		client = httputil.NewClient()
	}
	return &Story{base: base, client: client}
}

func (s *Story) Kind() string { return "story" }

// Match validates the URL and derives the username.
func (s *Story) Match(identifier string) (string, error) {
	if err := httputil.ValidateURL(identifier); err != nil {
		return "", err
	}
	if m := storyPattern.FindStringSubmatch(identifier); m != nil {
		return m[1], nil
	}
	if m := profilePattern.FindStringSubmatch(identifier); m != nil && m[1] != "stories" {
		return m[1], nil
	}
	return "", fmt.Errorf("not an Instagram story URL: %q", identifier)
}

// Extract returns one candidate per story item. The media type is left to
// the prober: the API mixes images and videos in a single list.
func (s *Story) Extract(ctx context.Context, identifier string) ([]media.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, storyTimeout)
	defer cancel()

	locations, err := ndown(ctx, s.client, s.base, identifier)
	if err != nil {
		return nil, err
	}

	candidates := make([]media.Candidate, 0, len(locations))
	for _, loc := range locations {
		candidates = append(candidates, media.Candidate{Location: loc})
	}
	return candidates, nil
}
