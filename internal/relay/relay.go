// Package relay hands resolved media to a messaging transport. One item
// failing to send never blocks the remaining items.
package relay

import (
	"context"
	"fmt"

	"magpie/internal/media"
	"magpie/internal/transcode"
)

// Transport receives resolved media payloads, routed by type.
type Transport interface {
	SendImage(ctx context.Context, payload []byte, mime, caption string) error
	SendVideo(ctx context.Context, payload []byte, mime, caption string) error
	SendAudio(ctx context.Context, payload []byte, mime string) error
}

// Relay sends results to a Transport, re-encoding video payloads on the
// way when a transcoder is configured.
type Relay struct {
	transport  Transport
	transcoder transcode.Transcoder
	logf       func(format string, args ...any)
}

// New creates a Relay. A nil transcoder sends video bytes as fetched.
func New(transport Transport, transcoder transcode.Transcoder, logf func(format string, args ...any)) *Relay {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Relay{transport: transport, transcoder: transcoder, logf: logf}
}

// Send relays every item of res with caption built from its identity.
// Send failures are logged and skipped; an error is returned only when
// not a single item could be delivered.
func (r *Relay) Send(ctx context.Context, res *media.Result) error {
	caption := res.Identity

	sent := 0
	for i, item := range res.Items {
		if err := r.sendItem(ctx, item, caption); err != nil {
			r.logf("sending item %d/%d (%s): %v", i+1, res.Count, item.Type, err)
			continue
		}
		sent++
	}

	if sent == 0 {
		return fmt.Errorf("all %d items failed to send", res.Count)
	}
	return nil
}

func (r *Relay) sendItem(ctx context.Context, item media.Item, caption string) error {
	switch item.Type {
	case media.Image:
		return r.transport.SendImage(ctx, item.Payload, item.MIME, caption)
	case media.Video:
		payload := item.Payload
		if r.transcoder != nil {
			converted, err := r.transcoder.Transcode(ctx, item.Payload)
			if err != nil {
				// Degraded fallback: deliver the original bytes rather
				// than dropping the item.
				r.logf("transcode failed, sending original: %v", err)
			} else {
				payload = converted
			}
		}
		return r.transport.SendVideo(ctx, payload, item.MIME, caption)
	case media.Audio:
		return r.transport.SendAudio(ctx, item.Payload, item.MIME)
	default:
		return fmt.Errorf("unsendable media type %v", item.Type)
	}
}
