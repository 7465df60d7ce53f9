package transcription

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"echosynth-go/internal/logger"
	"echosynth-go/internal/types"
)

// MaxAudioBytes is the provider's upload ceiling for audio files.
const MaxAudioBytes = 25 << 20 // 25 MB

// Client sends audio to the speech-to-text service.
type Client struct {
	api      *openai.Client
	model    string
	maxBytes int64
}

func New(apiKey, model string) *Client {
	if model == "" {
		model = openai.Whisper1
	}
	return &Client{
		api:      openai.NewClient(apiKey),
		model:    model,
		maxBytes: MaxAudioBytes,
	}
}

// Transcribe converts the audio file at path into raw transcript text.
// Oversized files are rejected before any network call is made.
func (c *Client) Transcribe(ctx context.Context, path string) (string, error) {
	log := logger.New().WithField("module", "transcription").WithField("file", path)

	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, types.ErrFileNotFound)
	}
	if fi.Size() > c.maxBytes {
		return "", fmt.Errorf("%s is %d bytes (limit %d): %w", path, fi.Size(), c.maxBytes, types.ErrPayloadTooLarge)
	}

	log.WithField("size_bytes", fi.Size()).Info("starting transcription")
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: path,
	})
	if err != nil {
		return "", fmt.Errorf("transcription request: %v: %w", err, types.ErrGenerationFailed)
	}
	if resp.Text == "" {
		return "", fmt.Errorf("empty transcript for %s: %w", path, types.ErrGenerationFailed)
	}
	log.WithField("transcript_chars", len(resp.Text)).Info("transcription complete")
	return resp.Text, nil
}
