// Package extract discovers candidate media locations for social-media
// URLs and search queries. Each source is a separate extractor behind the
// resolve.Extractor interface; the pipeline never knows which platform it
// is talking to.
package extract

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"magpie/internal/config"
	"magpie/internal/resolve"
)

// jsonLimit caps upstream API and HTML responses. Media payloads are not
// read through this path.
const jsonLimit = 10 << 20

// ForURL returns the extractor responsible for rawURL, picked by host.
// Instagram story URLs take precedence over generic Instagram URLs.
func ForURL(cfg *config.Config, client *http.Client, rawURL string) (resolve.Extractor, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", rawURL, err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch {
	case host == "instagram.com" && strings.HasPrefix(u.Path, "/stories/"):
		return NewStory(cfg.ResolverBase, client), nil
	case host == "instagram.com":
		return NewInstagram(cfg.ResolverBase, client), nil
	case host == "tiktok.com" || strings.HasSuffix(host, ".tiktok.com"):
		return NewTikTok(cfg.TikwmBase, client), nil
	case host == "youtube.com" || host == "youtu.be" || strings.HasSuffix(host, ".youtube.com"):
		return NewYouTube(cfg.ResolverBase, client), nil
	case host == "pin.it" || host == "pinterest.com" || strings.HasSuffix(host, ".pinterest.com"):
		return NewPinterest(client), nil
	default:
		return nil, fmt.Errorf("no extractor for host %q", host)
	}
}
