package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"echosynth-go/internal/config"
	"echosynth-go/internal/email"
	"echosynth-go/internal/generation"
	"echosynth-go/internal/imaging"
	"echosynth-go/internal/logger"
	"echosynth-go/internal/persist"
	"echosynth-go/internal/pipeline"
	"echosynth-go/internal/transcription"
	"echosynth-go/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	runID := logger.NewRunID()
	log := logger.New().WithRun(runID).WithField("service", "echosynth")
	log.Info("starting")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("configuration error")
	}

	// command-line path wins over AUDIO_FILE_PATH
	candidate := cfg.AudioPath
	if len(os.Args) > 1 {
		candidate = os.Args[1]
	}
	log = log.WithField("audio_candidate", candidate)

	svc := pipeline.Services{
		Transcriber: transcription.New(cfg.APIKey, cfg.TranscribeModel),
		Generator:   generation.New(cfg.APIKey, cfg.ChatModel, cfg.Temperature),
		Painter:     imaging.New(cfg.APIKey, cfg.ImageModel, cfg.ImageSize, cfg.DataDir),
		Writer:      persist.NewWriter(cfg.ResultsPath, cfg.ReportXLSX),
	}
	if cfg.EmailEnabled() {
		svc.Mailer = email.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom, cfg.EmailTo)
		log = log.WithField("email_to", cfg.EmailTo)
	}

	p, err := pipeline.Build(candidate, cfg.DataDir, svc)
	if err != nil {
		log.WithError(err).Fatal("pipeline build error")
	}

	state := &types.PipelineState{RunID: runID, StartedAt: time.Now()}
	if err := p.Run(context.Background(), state); err != nil {
		log.WithError(err).WithField("failed_stage", p.FailedStage()).Fatal("pipeline failed")
	}

	log.WithFields(logrus.Fields{
		"audio_file":       state.AudioFilePath,
		"transcript_chars": len(state.TranscribedText),
		"speech_chars":     len(state.SpeechText),
		"summary_chars":    len(state.SummaryText),
		"image_file":       state.ImageFile,
		"results_json":     state.ResultsJSON,
		"email_sent":       state.EmailSent,
		"duration_ms":      time.Since(state.StartedAt).Milliseconds(),
	}).Info("pipeline complete")
}
