package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/pixelnest/studio-server/config"
	"github.com/pixelnest/studio-server/utils"
)

// ImageUploader pushes raw image bytes to the hosting provider and returns
// a durable URL. The provider's internals are out of scope; this is only
// the boundary.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// httpImageHost uploads via a simple multipart POST to the configured host.
type httpImageHost struct {
	url    string
	key    string
	client *http.Client
}

// NewImageUploaderFromConfig returns the HTTP uploader, or nil when no
// image host is configured (the upload endpoint then answers 503).
func NewImageUploaderFromConfig(cfg *config.Config) ImageUploader {
	if cfg.ImageHostURL == "" {
		utils.Logger.Info().Msg("image host absent, uploads disabled")
		return nil
	}
	return &httpImageHost{
		url:    cfg.ImageHostURL,
		key:    cfg.ImageHostKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (h *httpImageHost) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if h.key != "" {
		req.Header.Set("Authorization", "Bearer "+h.key)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("image host returned %d: %s", resp.StatusCode, snippet)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("image host returned no url")
	}

	return result.URL, nil
}
