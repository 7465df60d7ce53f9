package imaging

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"

	"echosynth-go/internal/logger"
	"echosynth-go/internal/types"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Client paints an image from a text prompt and saves it under dataDir.
type Client struct {
	api     *openai.Client
	model   string
	size    string
	dataDir string
}

func New(apiKey, model, size, dataDir string) *Client {
	if model == "" {
		model = openai.CreateImageModelDallE3
	}
	if size == "" {
		size = openai.CreateImageSize1024x1024
	}
	return &Client{
		api:     openai.NewClient(apiKey),
		model:   model,
		size:    size,
		dataDir: dataDir,
	}
}

// Paint generates an image for prompt, downloads it and writes it to
// <dataDir>/<baseName>_image.png. Returns the saved file path.
func (c *Client) Paint(ctx context.Context, prompt, baseName string) (string, error) {
	log := logger.New().WithField("module", "imaging")

	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Model:          c.model,
		Prompt:         prompt,
		Size:           c.size,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("image generation: %v: %w", err, types.ErrGenerationFailed)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("no image in response: %w", types.ErrGenerationFailed)
	}
	imageURL := resp.Data[0].URL
	log.WithField("image_url", imageURL).Info("image generated, downloading")

	data, err := fetch(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("download image: %v: %w", err, types.ErrGenerationFailed)
	}

	if baseName == "" {
		baseName = "echosynth"
	}
	out := filepath.Join(c.dataDir, baseName+"_image.png")
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %v: %w", c.dataDir, err, types.ErrWriteError)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %v: %w", out, err, types.ErrWriteError)
	}
	log.WithField("image_file", out).WithField("size_bytes", len(data)).Info("image saved")
	return out, nil
}

// fetch GETs url with a bounded retry on transport errors and 5xx responses.
func fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	var lastErr error
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 15 * time.Second
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = err
			return err
		}
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", strings.TrimSpace(string(b)))
			return lastErr
		}
		if resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
			return backoff.Permanent(lastErr)
		}
		body = b
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, err
	}
	return body, nil
}
