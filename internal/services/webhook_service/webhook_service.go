package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/josesepulvedapino/astra-consulting-sub000/internal/domain/models"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/lib/logger/sl"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/metrics"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/sanity"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/transport/http/dto"
)

// ContentStore is the slice of the content-store layer the dispatcher needs:
// an exact-slug existence check and a create call.
type ContentStore interface {
	PostExists(ctx context.Context, slug string) (bool, error)
	CreatePost(ctx context.Context, doc map[string]any) (string, error)
}

type ImageImporter interface {
	ImportFromURL(ctx context.Context, url, altText string) *models.AssetReference
}

type CacheInvalidator interface {
	Invalidate(ctx context.Context, slug string)
}

type CategoryResolver interface {
	Resolve(label any) string
	DefaultID() string
}

// WebhookService is the entry point of the content-ingestion pipeline. One
// Dispatch call per request; no state survives an invocation.
type WebhookService struct {
	log      *slog.Logger
	store    ContentStore
	importer ImageImporter
	cache    CacheInvalidator
	resolver CategoryResolver

	secret          string
	authorID        string
	defaultReadTime string
}

func NewWebhookService(
	log *slog.Logger,
	store ContentStore,
	importer ImageImporter,
	cache CacheInvalidator,
	resolver CategoryResolver,
	secret, authorID, defaultReadTime string,
) *WebhookService {
	return &WebhookService{
		log:             log,
		store:           store,
		importer:        importer,
		cache:           cache,
		resolver:        resolver,
		secret:          secret,
		authorID:        authorID,
		defaultReadTime: defaultReadTime,
	}
}

// Dispatch decodes, classifies and handles one webhook delivery, returning
// the terminal HTTP status and body. Every branch ends here; nothing is
// retried internally.
func (s *WebhookService) Dispatch(ctx context.Context, raw []byte, providedSecret string) dto.WebhookResult {
	const op = "webhook_service.Dispatch"

	log := s.log.With(
		slog.String("op", op),
	)

	body, err := decodeBody(raw)
	if err != nil {
		log.Warn("malformed webhook body", sl.Err(err))
		return dto.WebhookResult{
			Status: http.StatusBadRequest,
			Body: dto.WebhookError{
				Error:   "invalid JSON payload",
				Details: []string{err.Error()},
			},
		}
	}

	kind := Classify(body)
	metrics.WebhookEventsTotal.WithLabelValues(kind.String()).Inc()
	log.Info("webhook event classified", slog.String("kind", kind.String()))

	switch kind {
	case models.EventAssetChange:
		return ack("ignored")

	case models.EventPostDeleted:
		s.cache.Invalidate(ctx, "")
		return ack("cache cleared")

	case models.EventPostChanged:
		s.cache.Invalidate(ctx, eventSlug(body))
		return ack("revalidated")

	case models.EventAutomationCreate:
		return s.createPost(ctx, body, providedSecret)

	default:
		// Acknowledged but not actionable; an error here would only feed
		// upstream retry storms.
		return dto.WebhookResult{Status: http.StatusNoContent}
	}
}

func (s *WebhookService) createPost(ctx context.Context, body map[string]any, providedSecret string) dto.WebhookResult {
	const op = "webhook_service.createPost"

	log := s.log.With(
		slog.String("op", op),
	)

	if s.secret != "" && providedSecret != s.secret {
		log.Warn("webhook secret mismatch")
		return dto.WebhookResult{
			Status: http.StatusUnauthorized,
			Body:   dto.WebhookError{Error: "invalid webhook secret"},
		}
	}

	post, validationErrs := Sanitize(body, s.defaultReadTime)
	if len(validationErrs) > 0 {
		log.Warn("webhook payload failed validation",
			slog.Any("errors", validationErrs))
		return dto.WebhookResult{
			Status: http.StatusBadRequest,
			Body: dto.WebhookError{
				Error:   "validation failed",
				Details: validationErrs,
			},
		}
	}

	exists, err := s.store.PostExists(ctx, post.Slug)
	if err != nil {
		// Fail open: a failed lookup counts as "not found". Blocking a
		// legitimate post on a flaky query is the worse outcome.
		log.Warn("duplicate check failed, treating slug as new", sl.Err(err))
		exists = false
	}
	if exists {
		log.Info("duplicate slug rejected", slog.String("slug", post.Slug))
		return dto.WebhookResult{
			Status: http.StatusConflict,
			Body: dto.WebhookError{
				Error: fmt.Sprintf("post with slug %q already exists", post.Slug),
			},
		}
	}

	categoryID := s.resolver.DefaultID()
	if len(post.Categories) > 0 {
		categoryID = s.resolver.Resolve(post.Categories[0])
	}

	var image *models.AssetReference
	if post.ImageURL != "" {
		image = s.importer.ImportFromURL(ctx, post.ImageURL, post.ImageAlt)
	}

	doc := buildCreateDoc(post, categoryID, s.authorID, image)

	id, err := s.store.CreatePost(ctx, doc)
	if err != nil {
		log.Error("content store rejected the post", sl.Err(err))

		errBody := dto.WebhookError{Error: "failed to create post"}
		var apiErr *sanity.APIError
		if errors.As(err, &apiErr) {
			errBody.Details = []string{apiErr.Description}
			errBody.DownstreamStatus = apiErr.StatusCode
		} else {
			errBody.Details = []string{err.Error()}
		}

		return dto.WebhookResult{Status: http.StatusInternalServerError, Body: errBody}
	}

	metrics.PostsCreatedTotal.Inc()
	log.Info("post created",
		slog.String("post_id", id),
		slog.String("slug", post.Slug),
	)

	s.cache.Invalidate(ctx, post.Slug)

	return dto.WebhookResult{
		Status: http.StatusOK,
		Body: dto.WebhookAck{
			Success: true,
			Message: "post created",
			ID:      id,
			Title:   post.Title,
			Slug:    post.Slug,
		},
	}
}

// buildCreateDoc assembles the full creation payload: required fields, the
// fixed author reference and exactly one freshly keyed category reference.
func buildCreateDoc(post models.NormalizedPost, categoryID, authorID string, image *models.AssetReference) map[string]any {
	doc := map[string]any{
		"_type":       "post",
		"title":       post.Title,
		"slug":        sanity.Slug{Type: "slug", Current: post.Slug},
		"body":        post.Body,
		"publishedAt": post.PublishedAt,
		"readTime":    post.ReadTime,
		"author":      sanity.Ref(authorID),
		"categories": []sanity.KeyedReference{
			{Type: "reference", Ref: categoryID, Key: uuid.NewString()},
		},
	}

	if post.Excerpt != "" {
		doc["excerpt"] = post.Excerpt
	}
	if len(post.Tags) > 0 {
		doc["tags"] = post.Tags
	}
	if image != nil {
		doc["mainImage"] = sanity.Image{
			Type:  "image",
			Asset: sanity.Ref(image.AssetID),
			Alt:   image.AltText,
		}
	}

	if post.MetaDescription != "" {
		doc["metaDescription"] = post.MetaDescription
	}
	if post.Keywords != "" {
		doc["keywords"] = post.Keywords
	}
	if post.SchemaType != "" {
		doc["schemaType"] = post.SchemaType
	}
	if post.DifficultyLevel != "" {
		doc["difficultyLevel"] = post.DifficultyLevel
	}

	return doc
}

func ack(message string) dto.WebhookResult {
	return dto.WebhookResult{
		Status: http.StatusOK,
		Body:   dto.WebhookAck{Success: true, Message: message},
	}
}

// decodeBody strips C0/C1 control characters (keeping tab and newline),
// normalizes line endings to \n and parses the result as JSON. Non-object
// top-level values decode to an empty map and fall through classification
// as unrecognized.
func decodeBody(raw []byte) (map[string]any, error) {
	cleaned := cleanBody(string(raw))

	var decoded any
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, err
	}

	body, ok := decoded.(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}

	return body, nil
}

func cleanBody(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f) {
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
