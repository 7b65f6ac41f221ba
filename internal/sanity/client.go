package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the Sanity HTTP API: GROQ queries, document mutations and
// image-asset uploads. It holds no state beyond connection parameters and is
// safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	dataset    string
	token      string
}

type Config struct {
	ProjectID  string
	Dataset    string
	Token      string
	APIVersion string
	// BaseURL overrides the projectId-derived endpoint; tests point it at an
	// httptest server.
	BaseURL string
}

func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.api.sanity.io/v%s", cfg.ProjectID, cfg.APIVersion)
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    base,
		dataset:    cfg.Dataset,
		token:      cfg.Token,
	}
}

// Query runs a GROQ query and unmarshals the result field into out.
// Params are sent as $-prefixed, JSON-encoded query parameters.
func (c *Client) Query(ctx context.Context, groq string, params map[string]any, out any) error {
	const op = "sanity.Query"

	q := url.Values{}
	q.Set("query", groq)
	for name, val := range params {
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("%s: encode param %q: %w", op, name, err)
		}
		q.Set("$"+name, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/data/query/%s?%s", c.baseURL, c.dataset, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	body, err := c.do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var envelope queryEnvelope
	envelope.Result = out
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	return nil
}

// Create submits a single create mutation and returns the new document ID.
func (c *Client) Create(ctx context.Context, doc map[string]any) (string, error) {
	const op = "sanity.Create"

	payload := map[string]any{
		"mutations": []map[string]any{
			{"create": doc},
		},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	endpoint := fmt.Sprintf("%s/data/mutate/%s?returnIds=true", c.baseURL, c.dataset)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var envelope mutateEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", op, err)
	}

	if len(envelope.Results) == 0 {
		return "", fmt.Errorf("%s: mutation returned no results", op)
	}

	return envelope.Results[0].ID, nil
}

// UploadImage stores raw image bytes as a content-store asset and returns
// the asset document ID.
func (c *Client) UploadImage(ctx context.Context, data []byte, contentType, filename string) (string, error) {
	const op = "sanity.UploadImage"

	endpoint := fmt.Sprintf("%s/assets/images/%s?filename=%s",
		c.baseURL, c.dataset, url.QueryEscape(filename))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", contentType)

	body, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var envelope assetEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", op, err)
	}

	if envelope.Document.ID == "" {
		return "", fmt.Errorf("%s: upload returned no asset id", op)
	}

	return envelope.Document.ID, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

func newAPIError(status int, body []byte) *APIError {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		desc := envelope.Error.Description
		if desc == "" {
			desc = envelope.Message
		}
		if desc != "" {
			return &APIError{StatusCode: status, Description: desc}
		}
	}

	return &APIError{
		StatusCode:  status,
		Description: http.StatusText(status),
		Body:        string(body),
	}
}
