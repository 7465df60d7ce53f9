package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"echosynth-go/internal/generation"
	"echosynth-go/internal/locate"
	"echosynth-go/internal/types"
)

// Service ports the stages call out through. Concrete implementations live in
// internal/transcription, internal/generation, internal/imaging,
// internal/persist and internal/email.
type (
	Transcriber interface {
		Transcribe(ctx context.Context, path string) (string, error)
	}

	TextGenerator interface {
		Generate(ctx context.Context, instruction, input string) (string, error)
	}

	ImagePainter interface {
		Paint(ctx context.Context, prompt, baseName string) (string, error)
	}

	ResultWriter interface {
		Persist(state *types.PipelineState) (path string, res types.Result, err error)
	}

	Mailer interface {
		Send(res types.Result) error
	}
)

// Services bundles everything Build needs. Mailer is optional.
type Services struct {
	Transcriber Transcriber
	Generator   TextGenerator
	Painter     ImagePainter
	Writer      ResultWriter
	Mailer      Mailer
}

// Build assembles the standard EchoSynth stage chain for one audio candidate.
func Build(candidate, dataDir string, svc Services) (*Pipeline, error) {
	return New([]Stage{
		{
			Name:     "locate_audio",
			Status:   StatusLocating,
			Provides: []string{FieldAudioPath},
			Run: func(ctx context.Context, s *types.PipelineState) error {
				resolved, err := locate.Resolve(candidate, dataDir)
				if err != nil {
					return err
				}
				s.AudioFilePath = resolved
				return nil
			},
		},
		{
			Name:     "transcribe_audio",
			Status:   StatusTranscribe,
			Needs:    []string{FieldAudioPath},
			Provides: []string{FieldTranscript},
			Run: func(ctx context.Context, s *types.PipelineState) error {
				text, err := svc.Transcriber.Transcribe(ctx, s.AudioFilePath)
				if err != nil {
					return err
				}
				s.TranscribedText = text
				return nil
			},
		},
		{
			Name:     "write_speech",
			Status:   StatusRefining,
			Needs:    []string{FieldTranscript},
			Provides: []string{FieldSpeech},
			Run: func(ctx context.Context, s *types.PipelineState) error {
				text, err := svc.Generator.Generate(ctx, generation.SpeechInstruction, s.TranscribedText)
				if err != nil {
					return err
				}
				s.SpeechText = text
				return nil
			},
		},
		{
			Name:     "write_image_prompt",
			Status:   StatusImagePrompt,
			Needs:    []string{FieldSpeech},
			Provides: []string{FieldImagePrompt},
			Run: func(ctx context.Context, s *types.PipelineState) error {
				text, err := svc.Generator.Generate(ctx, generation.ImagePromptInstruction, s.SpeechText)
				if err != nil {
					return err
				}
				s.ImagePromptText = text
				return nil
			},
		},
		{
			Name:     "write_summary",
			Status:   StatusSummarize,
			Needs:    []string{FieldSpeech},
			Provides: []string{FieldSummary},
			Run: func(ctx context.Context, s *types.PipelineState) error {
				text, err := svc.Generator.Generate(ctx, generation.SummaryInstruction, s.SpeechText)
				if err != nil {
					return err
				}
				s.SummaryText = text
				return nil
			},
		},
		{
			Name:     "create_image",
			Status:   StatusPainting,
			Needs:    []string{FieldImagePrompt},
			Provides: []string{FieldImageFile},
			Run: func(ctx context.Context, s *types.PipelineState) error {
				path, err := svc.Painter.Paint(ctx, s.ImagePromptText, audioBase(s.AudioFilePath))
				if err != nil {
					return err
				}
				s.ImageFile = path
				return nil
			},
		},
		{
			Name:     "persist_results",
			Status:   StatusPersisting,
			Needs:    []string{FieldTranscript, FieldSpeech, FieldSummary, FieldImageFile},
			Provides: []string{FieldResultsJSON},
			Run: func(ctx context.Context, s *types.PipelineState) error {
				path, res, err := svc.Writer.Persist(s)
				if err != nil {
					return err
				}
				s.ResultsJSON = path
				if svc.Mailer != nil {
					if err := svc.Mailer.Send(res); err != nil {
						return err
					}
					s.EmailSent = true
				}
				return nil
			},
		},
	})
}

// audioBase strips directory and extension from the resolved audio path, used
// to name the generated image next to it (sample.mp3 -> sample_image.png).
func audioBase(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
