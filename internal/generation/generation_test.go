package generation

import (
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"echosynth-go/internal/types"
)

func TestFirstChoice(t *testing.T) {
	tests := []struct {
		name    string
		resp    openai.ChatCompletionResponse
		want    string
		wantErr bool
	}{
		{
			name: "content returned",
			resp: openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "a polished speech"}},
			}},
			want: "a polished speech",
		},
		{
			name: "surrounding whitespace trimmed",
			resp: openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "  text \n"}},
			}},
			want: "text",
		},
		{
			name:    "no choices",
			resp:    openai.ChatCompletionResponse{},
			wantErr: true,
		},
		{
			name: "empty content",
			resp: openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "   "}},
			}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := firstChoice(tt.resp)
			if tt.wantErr {
				if !errors.Is(err, types.ErrGenerationFailed) {
					t.Fatalf("firstChoice() error = %v, want ErrGenerationFailed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("firstChoice() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("firstChoice() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInstructionsAreDistinct(t *testing.T) {
	set := map[string]string{
		"speech":       SpeechInstruction,
		"image prompt": ImagePromptInstruction,
		"summary":      SummaryInstruction,
	}
	seen := map[string]string{}
	for name, instr := range set {
		if instr == "" {
			t.Errorf("%s instruction is empty", name)
		}
		if prev, ok := seen[instr]; ok {
			t.Errorf("%s instruction duplicates %s", name, prev)
		}
		seen[instr] = name
	}
}
