package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"magpie/internal/httputil"
)

// ndownResponse is the resolver API's media-list envelope, shared by the
// Instagram post and story endpoints.
type ndownResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// ndown asks the resolver API for the downloadable media behind sourceURL
// and returns the raw locations in the order the API reports them.
func ndown(ctx context.Context, client *http.Client, base, sourceURL string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/ndown?url=%s", base, url.QueryEscape(sourceURL))

	body, err := httputil.GetJSON(ctx, client, endpoint, jsonLimit)
	if err != nil {
		return nil, fmt.Errorf("querying resolver: %w", err)
	}

	var parsed ndownResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing resolver response: %w", err)
	}

	locations := make([]string, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		if item.URL != "" {
			locations = append(locations, item.URL)
		}
	}
	return locations, nil
}
