package generation

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"echosynth-go/internal/logger"
	"echosynth-go/internal/types"
)

// Instruction templates for the three text stages. Each stage is the same
// call shape with a different instruction and input field.
const (
	SpeechInstruction = `You are a professional speechwriter. Rewrite the following raw transcript
as a polished, well-structured speech. Preserve the speaker's meaning and key
points, fix grammar and filler words, and keep a natural spoken register.
Return only the speech text.`

	ImagePromptInstruction = `You are an art director. Write a single, vivid, self-contained prompt for
an image-generation model that captures the essence of the following speech.
Describe subject, setting, mood and style in at most 80 words.
Return only the prompt.`

	SummaryInstruction = `Summarize the following speech in a few sentences. Capture the core
message and any calls to action. Return only the summary.`
)

// Client generates text from an instruction plus input text.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
}

func New(apiKey, model string, temperature float32) *Client {
	if model == "" {
		model = openai.GPT4o
	}
	return &Client{
		api:         openai.NewClient(apiKey),
		model:       model,
		temperature: temperature,
	}
}

// Generate sends instruction+input to the text-generation service and returns
// the generated text. Every call goes to the service; nothing is cached.
func (c *Client) Generate(ctx context.Context, instruction, input string) (string, error) {
	log := logger.New().WithField("module", "generation")

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
			{Role: openai.ChatMessageRoleUser, Content: input},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %v: %w", err, types.ErrGenerationFailed)
	}
	out, err := firstChoice(resp)
	if err != nil {
		return "", err
	}
	log.WithField("output_chars", len(out)).Debug("generation complete")
	return out, nil
}

// firstChoice extracts the first non-empty completion from a response.
func firstChoice(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response: %w", types.ErrGenerationFailed)
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("empty completion: %w", types.ErrGenerationFailed)
	}
	return out, nil
}
