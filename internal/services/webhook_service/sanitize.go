package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/josesepulvedapino/astra-consulting-sub000/internal/domain/models"
)

// Sanitize turns a raw decoded payload into a best-effort NormalizedPost plus
// a list of validation errors. The record is always returned, even when
// validation fails; callers decide based on len(errors).
func Sanitize(raw map[string]any, defaultReadTime string) (models.NormalizedPost, []string) {
	var errs []string

	post := models.NormalizedPost{
		Title:           trimmedString(raw["title"]),
		Body:            trimmedString(raw["body"]),
		Excerpt:         trimmedString(raw["excerpt"]),
		ReadTime:        trimmedString(raw["readTime"]),
		ImageURL:        trimmedString(raw["imageUrl"]),
		ImageAlt:        trimmedString(raw["imageAlt"]),
		PublishedAt:     trimmedString(raw["publishedAt"]),
		MetaDescription: trimmedString(raw["metaDescription"]),
		Keywords:        trimmedString(raw["keywords"]),
		SchemaType:      trimmedString(raw["schemaType"]),
		DifficultyLevel: trimmedString(raw["difficultyLevel"]),
	}

	if post.Title == "" {
		errs = append(errs, "title is required")
	}

	if post.Body == "" {
		errs = append(errs, "body is required")
	}

	slug := extractSlug(raw["slug"])
	if slug == "" {
		errs = append(errs, "slug is required")
	}
	post.Slug = NormalizeSlug(slug)

	post.Tags = normalizeTags(raw["tags"])
	post.Categories = extractCategories(raw)

	if post.ReadTime == "" {
		post.ReadTime = defaultReadTime
	}

	if post.PublishedAt == "" {
		post.PublishedAt = time.Now().UTC().Format(time.RFC3339)
	}

	return post, errs
}

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphenRuns   = regexp.MustCompile(`-{2,}`)
)

// NormalizeSlug lowercases, replaces every run of disallowed characters with
// a single hyphen, collapses repeats and strips edge hyphens. Normalizing an
// already-normalized slug is a no-op.
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalidChars.ReplaceAllString(s, "-")
	s = slugHyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// extractSlug accepts a plain string or a {current: "..."} object.
func extractSlug(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		return trimmedString(val["current"])
	default:
		return ""
	}
}

// normalizeTags accepts an array (keeping only non-empty string entries) or a
// comma-delimited string. Order is preserved; no deduplication is done.
func normalizeTags(v any) []string {
	tags := []string{}

	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					tags = append(tags, trimmed)
				}
			}
		}
	case string:
		for _, part := range strings.Split(val, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
	}

	return tags
}

// extractCategories reads either a "categories" array/string or a singular
// "category" string.
func extractCategories(raw map[string]any) []string {
	var out []string

	switch val := raw["categories"].(type) {
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					out = append(out, trimmed)
				}
			}
		}
	case string:
		if trimmed := strings.TrimSpace(val); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	if len(out) == 0 {
		if single := trimmedString(raw["category"]); single != "" {
			out = append(out, single)
		}
	}

	return out
}

func trimmedString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
