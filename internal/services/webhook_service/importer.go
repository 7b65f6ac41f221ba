package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/josesepulvedapino/astra-consulting-sub000/internal/domain/models"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/lib/logger/sl"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/metrics"
)

// AssetUploader is the slice of the content-store client the importer needs.
type AssetUploader interface {
	UploadImage(ctx context.Context, data []byte, contentType, filename string) (string, error)
}

// Importer fetches an external image and re-hosts it as a content-store
// asset. Every failure mode returns nil: a post without an image beats no
// post at all, so the caller never sees an error from this component.
type Importer struct {
	log      *slog.Logger
	uploader AssetUploader
	client   *http.Client
}

func NewImporter(log *slog.Logger, uploader AssetUploader) *Importer {
	return &Importer{
		log:      log,
		uploader: uploader,
		client:   &http.Client{Timeout: 20 * time.Second},
	}
}

const defaultImageMIME = "image/jpeg"

func (i *Importer) ImportFromURL(ctx context.Context, url, altText string) *models.AssetReference {
	const op = "webhook_service.Importer.ImportFromURL"

	log := i.log.With(
		slog.String("op", op),
		slog.String("url", url),
	)

	data, contentType, err := i.fetch(ctx, url)
	if err != nil {
		log.Warn("image fetch failed, creating post without image", sl.Err(err))
		metrics.ImageImportFailuresTotal.Inc()
		return nil
	}

	filename := fmt.Sprintf("import-%d%s", time.Now().Unix(), extensionFor(contentType))

	assetID, err := i.uploader.UploadImage(ctx, data, contentType, filename)
	if err != nil {
		log.Warn("asset upload failed, creating post without image", sl.Err(err))
		metrics.ImageImportFailuresTotal.Inc()
		return nil
	}

	log.Info("image imported", slog.String("asset_id", assetID))

	return &models.AssetReference{
		AssetID: assetID,
		AltText: altText,
	}
}

func (i *Importer) fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultImageMIME
	}

	return data, contentType, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
