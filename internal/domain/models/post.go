package models

import "time"

// EventKind is the classified shape of an incoming webhook payload.
// Classification happens once, up front, so the rest of the pipeline
// never has to re-inspect the raw body.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventAssetChange
	EventPostDeleted
	EventPostChanged
	EventAutomationCreate
)

func (k EventKind) String() string {
	switch k {
	case EventAssetChange:
		return "asset_change"
	case EventPostDeleted:
		return "post_deleted"
	case EventPostChanged:
		return "post_changed"
	case EventAutomationCreate:
		return "automation_create"
	default:
		return "unknown"
	}
}

// NormalizedPost is the best-effort record produced by the sanitizer.
// It lives only for the duration of one webhook invocation; its sole
// destination is a create call against the content store.
type NormalizedPost struct {
	Title       string
	Slug        string
	Body        string
	Excerpt     string
	PublishedAt string
	ReadTime    string
	ImageURL    string
	ImageAlt    string
	Categories  []string
	Tags        []string

	// SEO extras passed through to the created document, never required.
	MetaDescription string
	Keywords        string
	SchemaType      string
	DifficultyLevel string
}

// AssetReference points at an image asset re-hosted in the content store.
type AssetReference struct {
	AssetID string
	AltText string
}

// CreatedPost is what the content store hands back after a successful create.
type CreatedPost struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// BlogPost is the read-side projection served by the blog proxy.
type BlogPost struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	ReadTime    string     `json:"read_time,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}
