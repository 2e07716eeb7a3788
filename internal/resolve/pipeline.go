// Package resolve implements the media resolution pipeline: validate an
// identifier, consult the cache, extract candidate locations, then probe
// and fetch each candidate with per-candidate failure isolation.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"magpie/internal/cache"
	"magpie/internal/media"
)

// Extractor discovers candidate media locations for a source identifier.
type Extractor interface {
	// Kind names the source, e.g. "story" or "pin". It prefixes cache keys.
	Kind() string

	// Match validates the identifier and derives the normalized identity
	// (username, pin ID, query). An error means the identifier is not a
	// valid input for this source.
	Match(identifier string) (identity string, err error)

	// Extract returns zero or more candidates for the identifier.
	Extract(ctx context.Context, identifier string) ([]media.Candidate, error)
}

// Prober determines a candidate's content type without downloading it.
type Prober interface {
	Probe(ctx context.Context, location string) (mime string, err error)
}

// Fetcher downloads a candidate's full payload.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// Pipeline resolves identifiers into media results. Each source gets its
// own Pipeline with its own cache and TTL; the cache is the only state
// shared between concurrent resolutions.
type Pipeline struct {
	ext     Extractor
	prober  Prober
	fetcher Fetcher
	cache   *cache.Cache[*media.Result]
	limit   int
	logf    func(format string, args ...any)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLimit caps the number of candidates processed per resolution.
// Zero means no cap.
func WithLimit(n int) Option {
	return func(p *Pipeline) { p.limit = n }
}

// WithLogf sets the sink for per-candidate soft-error logging.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(p *Pipeline) { p.logf = logf }
}

// New creates a Pipeline around an extractor and its adapters.
func New(ext Extractor, prober Prober, fetcher Fetcher, c *cache.Cache[*media.Result], opts ...Option) *Pipeline {
	p := &Pipeline{
		ext:     ext,
		prober:  prober,
		fetcher: fetcher,
		cache:   c,
		logf:    func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve turns an identifier into a media.Result. Failures are always
// *Error values; per-candidate fetch and probe errors are recovered
// locally and only their aggregate effect is visible to the caller.
func (p *Pipeline) Resolve(ctx context.Context, identifier string) (*media.Result, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, Errorf(InvalidInput, "empty identifier")
	}

	identity, err := p.ext.Match(identifier)
	if err != nil {
		return nil, WrapErr(InvalidInput, err, "unrecognized identifier")
	}

	key := p.ext.Kind() + ":" + identity
	if cached, ok := p.cache.Get(key); ok {
		hit := *cached
		hit.FromCache = true
		return &hit, nil
	}

	candidates, err := p.ext.Extract(ctx, identifier)
	if err != nil {
		return nil, p.extractionError(err)
	}
	if len(candidates) == 0 {
		return nil, Errorf(NotFound, "no media found for %q", identity)
	}

	candidates = dedup(candidates)
	if p.limit > 0 && len(candidates) > p.limit {
		candidates = candidates[:p.limit]
	}

	items := make([]media.Item, 0, len(candidates))
	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			if isTimeout(err) {
				return nil, WrapErr(Timeout, err, "resolution exceeded its budget")
			}
			return nil, fmt.Errorf("resolution cancelled: %w", err)
		}

		item, err := p.resolveCandidate(ctx, cand)
		if err != nil {
			// A failed candidate is dropped, never retried, and never
			// aborts the batch.
			p.logf("dropping candidate %s: %v", cand.Location, err)
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, Errorf(NoUsableMedia, "found %d candidates for %q but none could be fetched", len(candidates), identity)
	}

	result := &media.Result{
		Identity: identity,
		Items:    items,
		Count:    len(items),
	}
	p.cache.Put(key, result)

	return result, nil
}

// resolveCandidate probes (unless the extractor declared a type) and
// fetches one candidate.
func (p *Pipeline) resolveCandidate(ctx context.Context, cand media.Candidate) (media.Item, error) {
	typ := cand.Type
	mime := cand.MIME

	if typ == media.Unknown {
		probed, err := p.prober.Probe(ctx, cand.Location)
		if err != nil {
			return media.Item{}, err
		}
		mime = probed
		// The sources never emit unclassified binary without a hint, so
		// anything not an image is treated as video. Audio is only ever
		// declared explicitly by an extractor.
		if strings.HasPrefix(probed, "image/") {
			typ = media.Image
		} else {
			typ = media.Video
		}
	}

	if mime == "" {
		mime = defaultMIME(typ)
	}

	payload, err := p.fetcher.Fetch(ctx, cand.Location)
	if err != nil {
		return media.Item{}, err
	}

	return media.Item{
		Type:     typ,
		MIME:     mime,
		Payload:  payload,
		Location: cand.Location,
	}, nil
}

// extractionError maps an extractor failure onto the taxonomy. Extractors
// may return tagged errors directly; everything else is classified here.
func (p *Pipeline) extractionError(err error) error {
	var re *Error
	if errors.As(err, &re) {
		return re
	}
	if isTimeout(err) {
		return WrapErr(Timeout, err, "extraction exceeded its budget")
	}
	return WrapErr(UpstreamError, err, "extraction failed")
}

// dedup drops later duplicates by location, preserving first-occurrence
// order for the output.
func dedup(candidates []media.Candidate) []media.Candidate {
	seen := make(map[string]bool, len(candidates))
	out := candidates[:0:0]
	for _, c := range candidates {
		if seen[c.Location] {
			continue
		}
		seen[c.Location] = true
		out = append(out, c)
	}
	return out
}

func defaultMIME(t media.Type) string {
	switch t {
	case media.Image:
		return "image/jpeg"
	case media.Video:
		return "video/mp4"
	case media.Audio:
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}
