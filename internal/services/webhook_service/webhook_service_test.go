package services

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/josesepulvedapino/astra-consulting-sub000/internal/domain/models"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/sanity"
	categoryservice "github.com/josesepulvedapino/astra-consulting-sub000/internal/services/category_service"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/transport/http/dto"
)

var testCtx = context.Background()

type MockContentStore struct {
	mock.Mock
}

func (m *MockContentStore) PostExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentStore) CreatePost(ctx context.Context, doc map[string]any) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

type MockImageImporter struct {
	mock.Mock
}

func (m *MockImageImporter) ImportFromURL(ctx context.Context, url, altText string) *models.AssetReference {
	args := m.Called(ctx, url, altText)
	if ref := args.Get(0); ref != nil {
		return ref.(*models.AssetReference)
	}
	return nil
}

type MockCacheInvalidator struct {
	mock.Mock
}

func (m *MockCacheInvalidator) Invalidate(ctx context.Context, slug string) {
	m.Called(ctx, slug)
}

func newTestService(store *MockContentStore, importer *MockImageImporter, cache *MockCacheInvalidator, secret string) *WebhookService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := categoryservice.NewCategoryResolver("")
	return NewWebhookService(log, store, importer, cache, resolver, secret, "author-astra", "5 min")
}

func TestDispatch_MalformedJSON(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)
	svc := newTestService(store, importer, cache, "")

	res := svc.Dispatch(testCtx, []byte("{not json"), "")

	assert.Equal(t, http.StatusBadRequest, res.Status)
	body, ok := res.Body.(dto.WebhookError)
	require.True(t, ok)
	assert.Equal(t, "invalid JSON payload", body.Error)
	store.AssertExpectations(t)
}

func TestDispatch_ControlCharactersStripped(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)
	svc := newTestService(store, importer, cache, "")

	// Stray C0 bytes and CRLF endings must not break parsing.
	raw := []byte("{\"_type\":\x01 \"sanity.imageAsset\"\r\n}")
	res := svc.Dispatch(testCtx, raw, "")

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, dto.WebhookAck{Success: true, Message: "ignored"}, res.Body)
}

func TestDispatch_AssetEventIgnored(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)
	svc := newTestService(store, importer, cache, "")

	res := svc.Dispatch(testCtx, []byte(`{"_type":"sanity.imageAsset"}`), "")

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, dto.WebhookAck{Success: true, Message: "ignored"}, res.Body)
	store.AssertNotCalled(t, "PostExists", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestDispatch_PostDeletedClearsCache(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)
	cache.On("Invalidate", testCtx, "").Once()
	svc := newTestService(store, importer, cache, "")

	res := svc.Dispatch(testCtx, []byte(`{"_type":"post","_deleted":true}`), "")

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, dto.WebhookAck{Success: true, Message: "cache cleared"}, res.Body)
	cache.AssertExpectations(t)
}

func TestDispatch_PostChangedRevalidatesSlug(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)
	cache.On("Invalidate", testCtx, "my-post").Once()
	svc := newTestService(store, importer, cache, "")

	raw := []byte(`{"document":{"_type":"post","slug":{"current":"my-post"}}}`)
	res := svc.Dispatch(testCtx, raw, "")

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, dto.WebhookAck{Success: true, Message: "revalidated"}, res.Body)
	cache.AssertExpectations(t)
	store.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
}

func TestDispatch_UnknownEventNoContent(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)
	svc := newTestService(store, importer, cache, "")

	res := svc.Dispatch(testCtx, []byte(`{"hello":"world"}`), "")

	assert.Equal(t, http.StatusNoContent, res.Status)
	assert.Nil(t, res.Body)
}

func TestDispatch_NonObjectPayloadNoContent(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)
	svc := newTestService(store, importer, cache, "")

	res := svc.Dispatch(testCtx, []byte(`[1,2,3]`), "")

	assert.Equal(t, http.StatusNoContent, res.Status)
	assert.Nil(t, res.Body)
}

func automationPayload() []byte {
	return []byte(`{
		"url": "https://astraconsulting.cl",
		"id": "abc-123",
		"title": "Automatiza tu negocio",
		"slug": "automatiza-tu-negocio",
		"body": "Contenido del articulo",
		"category": "Automatización de Procesos"
	}`)
}

func TestDispatch_CreatePost(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)

	store.On("PostExists", testCtx, "automatiza-tu-negocio").Return(false, nil).Once()
	store.On("CreatePost", testCtx, mock.MatchedBy(func(doc map[string]any) bool {
		cats, ok := doc["categories"].([]sanity.KeyedReference)
		return doc["title"] == "Automatiza tu negocio" &&
			ok && len(cats) == 1 && cats[0].Ref == "category-automatizacion"
	})).Return("post-1", nil).Once()
	cache.On("Invalidate", testCtx, "automatiza-tu-negocio").Once()

	svc := newTestService(store, importer, cache, "")
	res := svc.Dispatch(testCtx, automationPayload(), "")

	assert.Equal(t, http.StatusOK, res.Status)
	ackBody, ok := res.Body.(dto.WebhookAck)
	require.True(t, ok)
	assert.True(t, ackBody.Success)
	assert.Equal(t, "post-1", ackBody.ID)
	assert.Equal(t, "automatiza-tu-negocio", ackBody.Slug)

	store.AssertExpectations(t)
	cache.AssertExpectations(t)
	importer.AssertNotCalled(t, "ImportFromURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatch_CreatePost_SecretMismatch(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)
	svc := newTestService(store, importer, cache, "top-secret")

	res := svc.Dispatch(testCtx, automationPayload(), "wrong")

	assert.Equal(t, http.StatusUnauthorized, res.Status)
	store.AssertNotCalled(t, "PostExists", mock.Anything, mock.Anything)
}

func TestDispatch_CreatePost_SecretAccepted(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)

	store.On("PostExists", testCtx, mock.Anything).Return(false, nil).Once()
	store.On("CreatePost", testCtx, mock.Anything).Return("post-1", nil).Once()
	cache.On("Invalidate", testCtx, mock.Anything).Once()

	svc := newTestService(store, importer, cache, "top-secret")
	res := svc.Dispatch(testCtx, automationPayload(), "top-secret")

	assert.Equal(t, http.StatusOK, res.Status)
	store.AssertExpectations(t)
}

func TestDispatch_CreatePost_ValidationFailure(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)
	svc := newTestService(store, importer, cache, "")

	raw := []byte(`{"url":"https://astraconsulting.cl","id":"1","body":"x"}`)
	res := svc.Dispatch(testCtx, raw, "")

	assert.Equal(t, http.StatusBadRequest, res.Status)
	body, ok := res.Body.(dto.WebhookError)
	require.True(t, ok)
	assert.Equal(t, "validation failed", body.Error)
	assert.Contains(t, body.Details, "title is required")
	assert.Contains(t, body.Details, "slug is required")
	store.AssertNotCalled(t, "PostExists", mock.Anything, mock.Anything)
}

func TestDispatch_CreatePost_DuplicateSlug(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)

	store.On("PostExists", testCtx, "automatiza-tu-negocio").Return(true, nil).Once()

	svc := newTestService(store, importer, cache, "")
	res := svc.Dispatch(testCtx, automationPayload(), "")

	assert.Equal(t, http.StatusConflict, res.Status)
	store.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestDispatch_CreatePost_DuplicateCheckFailsOpen(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)

	store.On("PostExists", testCtx, mock.Anything).Return(false, assert.AnError).Once()
	store.On("CreatePost", testCtx, mock.Anything).Return("post-1", nil).Once()
	cache.On("Invalidate", testCtx, mock.Anything).Once()

	svc := newTestService(store, importer, cache, "")
	res := svc.Dispatch(testCtx, automationPayload(), "")

	assert.Equal(t, http.StatusOK, res.Status)
	store.AssertExpectations(t)
}

func TestDispatch_CreatePost_ImageImported(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)

	importer.On("ImportFromURL", testCtx, "https://example.com/a.jpg", "portada").
		Return(&models.AssetReference{AssetID: "image-abc", AltText: "portada"}).Once()
	store.On("PostExists", testCtx, mock.Anything).Return(false, nil).Once()
	store.On("CreatePost", testCtx, mock.MatchedBy(func(doc map[string]any) bool {
		img, ok := doc["mainImage"].(sanity.Image)
		return ok && img.Asset.Ref == "image-abc" && img.Alt == "portada"
	})).Return("post-1", nil).Once()
	cache.On("Invalidate", testCtx, mock.Anything).Once()

	svc := newTestService(store, importer, cache, "")
	raw := []byte(`{
		"url": "https://astraconsulting.cl",
		"id": "abc-123",
		"title": "Con imagen",
		"slug": "con-imagen",
		"body": "Contenido",
		"imageUrl": "https://example.com/a.jpg",
		"imageAlt": "portada"
	}`)
	res := svc.Dispatch(testCtx, raw, "")

	assert.Equal(t, http.StatusOK, res.Status)
	importer.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestDispatch_CreatePost_ImageImportFailureIsSoft(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)

	importer.On("ImportFromURL", testCtx, mock.Anything, mock.Anything).Return(nil).Once()
	store.On("PostExists", testCtx, mock.Anything).Return(false, nil).Once()
	store.On("CreatePost", testCtx, mock.MatchedBy(func(doc map[string]any) bool {
		_, hasImage := doc["mainImage"]
		return !hasImage
	})).Return("post-1", nil).Once()
	cache.On("Invalidate", testCtx, mock.Anything).Once()

	svc := newTestService(store, importer, cache, "")
	raw := []byte(`{
		"url": "https://astraconsulting.cl",
		"id": "abc-123",
		"title": "Sin imagen",
		"slug": "sin-imagen",
		"body": "Contenido",
		"imageUrl": "https://example.com/rota.jpg"
	}`)
	res := svc.Dispatch(testCtx, raw, "")

	assert.Equal(t, http.StatusOK, res.Status)
	store.AssertExpectations(t)
}

func TestDispatch_CreatePost_StoreFailure(t *testing.T) {
	store := new(MockContentStore)
	importer := new(MockImageImporter)
	cache := new(MockCacheInvalidator)

	store.On("PostExists", testCtx, mock.Anything).Return(false, nil).Once()
	store.On("CreatePost", testCtx, mock.Anything).
		Return("", &sanity.APIError{StatusCode: 403, Description: "Insufficient permissions"}).Once()

	svc := newTestService(store, importer, cache, "")
	res := svc.Dispatch(testCtx, automationPayload(), "")

	assert.Equal(t, http.StatusInternalServerError, res.Status)
	body, ok := res.Body.(dto.WebhookError)
	require.True(t, ok)
	assert.Equal(t, "failed to create post", body.Error)
	assert.Equal(t, 403, body.DownstreamStatus)
	assert.Equal(t, []string{"Insufficient permissions"}, body.Details)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestBuildCreateDoc_OptionalFields(t *testing.T) {
	post := models.NormalizedPost{
		Title:       "Hola",
		Slug:        "hola",
		Body:        "contenido",
		PublishedAt: "2026-01-15T10:00:00Z",
		ReadTime:    "5 min",
		Tags:        []string{},
	}

	doc := buildCreateDoc(post, "category-seo", "author-astra", nil)

	assert.Equal(t, "post", doc["_type"])
	assert.Equal(t, sanity.Ref("author-astra"), doc["author"])
	assert.NotContains(t, doc, "excerpt")
	assert.NotContains(t, doc, "tags")
	assert.NotContains(t, doc, "mainImage")

	post.Excerpt = "resumen"
	post.Tags = []string{"seo"}
	post.MetaDescription = "meta"
	doc = buildCreateDoc(post, "category-seo", "author-astra", &models.AssetReference{AssetID: "image-1"})

	assert.Equal(t, "resumen", doc["excerpt"])
	assert.Equal(t, []string{"seo"}, doc["tags"])
	assert.Equal(t, "meta", doc["metaDescription"])
	assert.Contains(t, doc, "mainImage")
}
