package services

import (
	"strings"

	"github.com/josesepulvedapino/astra-consulting-sub000/internal/domain/models"
)

const imageAssetType = "sanity.imageAsset"

// classifier pairs an event kind with its shape predicate. The list is
// evaluated top to bottom and the first match wins, so every field-presence
// assumption lives here and nowhere else in the handler body.
type classifier struct {
	kind  models.EventKind
	match func(raw map[string]any) bool
}

// The deleted-post rule sits above the plain document rule: both match on
// _type == "post", and only the deletion flag separates them.
var classifiers = []classifier{
	{models.EventAssetChange, isAssetEvent},
	{models.EventPostDeleted, isDeletedPostEvent},
	{models.EventPostChanged, isPostDocumentEvent},
	{models.EventAutomationCreate, isAutomationEvent},
}

// Classify assigns a raw payload to exactly one event kind before any branch
// touches its fields.
func Classify(raw map[string]any) models.EventKind {
	for _, c := range classifiers {
		if c.match(raw) {
			return c.kind
		}
	}
	return models.EventUnknown
}

func isAssetEvent(raw map[string]any) bool {
	t, ok := raw["_type"].(string)
	return ok && strings.Contains(t, imageAssetType)
}

func isPostDocumentEvent(raw map[string]any) bool {
	if t, ok := raw["_type"].(string); ok && t == "post" {
		return true
	}
	if doc, ok := raw["document"].(map[string]any); ok {
		if t, ok := doc["_type"].(string); ok && t == "post" {
			return true
		}
	}
	return false
}

func isDeletedPostEvent(raw map[string]any) bool {
	return isPostDocumentEvent(raw) && isTruthy(raw["_deleted"])
}

// isAutomationEvent detects payloads from the no-code automation platform:
// no explicit type tag, only a distinctive field combination of a web URL,
// a post id or timestamp, and a string-typed body.
func isAutomationEvent(raw map[string]any) bool {
	if _, ok := raw["url"]; !ok {
		return false
	}

	_, hasID := raw["id"]
	_, hasTimestamp := raw["timestamp"]
	if !hasID && !hasTimestamp {
		return false
	}

	_, bodyIsString := raw["body"].(string)
	return bodyIsString
}

func isTruthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != "" && val != "false" && val != "0"
	case float64:
		return val != 0
	default:
		return false
	}
}

// eventSlug digs the slug out of a document event, checking the top level
// first and then the nested document.
func eventSlug(raw map[string]any) string {
	if s := extractSlug(raw["slug"]); s != "" {
		return s
	}
	if doc, ok := raw["document"].(map[string]any); ok {
		return extractSlug(doc["slug"])
	}
	return ""
}
