// Package media defines shared types for the magpie application.
package media

import "time"

// Type classifies a media payload.
type Type int

const (
	Unknown Type = iota
	Image
	Video
	Audio
)

func (t Type) String() string {
	switch t {
	case Image:
		return "image"
	case Video:
		return "video"
	case Audio:
		return "audio"
	default:
		return "unknown"
	}
}

// ParseType converts a type name back into a Type.
func ParseType(s string) Type {
	switch s {
	case "image":
		return Image
	case "video":
		return Video
	case "audio":
		return Audio
	default:
		return Unknown
	}
}

// Candidate is a located-but-not-yet-fetched media resource discovered
// during extraction. Type is Unknown unless the extractor can declare it
// (audio tracks and slideshow images carry a declared type).
type Candidate struct {
	Location string // Absolute URL of the remote resource
	Type     Type   // Declared type, or Unknown to let the prober decide
	MIME     string // Declared MIME type, may be empty
	Title    string // Display title, may be empty
}

// Item is one successfully fetched media payload.
type Item struct {
	Type     Type
	MIME     string
	Payload  []byte
	Location string // URL the payload was fetched from
}

// Result is the outcome of one successful resolution. A Result always
// holds at least one item; empty outcomes are reported as errors instead.
type Result struct {
	Identity  string // Username, title, or normalized query
	Items     []Item
	Count     int  // Always len(Items)
	FromCache bool // True when served from the resolution cache
}

// HistoryEntry is a single recorded resolution.
type HistoryEntry struct {
	Source     string // Original URL or query
	Kind       string // Extractor kind, e.g. "story", "pin", "tiktok"
	Identity   string
	Items      int
	ResolvedAt time.Time
}
