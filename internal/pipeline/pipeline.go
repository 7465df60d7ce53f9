// Package pipeline runs the EchoSynth stages in order over one shared state.
// Stages declare the state fields they read and write; the chain is validated
// when the pipeline is built, not while it runs.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"echosynth-go/internal/logger"
	"echosynth-go/internal/types"
)

// State field names stages can declare as inputs and outputs.
const (
	FieldAudioPath   = "audio_file_path"
	FieldTranscript  = "transcribed_text"
	FieldSpeech      = "speech_text"
	FieldImagePrompt = "image_prompt_text"
	FieldSummary     = "summary_text"
	FieldImageFile   = "image_file"
	FieldResultsJSON = "results_json"
)

// fieldSet maps a declared field name to its populated check.
var fieldSet = map[string]func(*types.PipelineState) bool{
	FieldAudioPath:   func(s *types.PipelineState) bool { return s.AudioFilePath != "" },
	FieldTranscript:  func(s *types.PipelineState) bool { return s.TranscribedText != "" },
	FieldSpeech:      func(s *types.PipelineState) bool { return s.SpeechText != "" },
	FieldImagePrompt: func(s *types.PipelineState) bool { return s.ImagePromptText != "" },
	FieldSummary:     func(s *types.PipelineState) bool { return s.SummaryText != "" },
	FieldImageFile:   func(s *types.PipelineState) bool { return s.ImageFile != "" },
	FieldResultsJSON: func(s *types.PipelineState) bool { return s.ResultsJSON != "" },
}

// Status values of a run, one per stage plus the terminal pair.
type Status string

const (
	StatusInit        Status = "init"
	StatusDone        Status = "done"
	StatusFailed      Status = "failed"
	StatusLocating    Status = "locating"
	StatusTranscribe  Status = "transcribing"
	StatusRefining    Status = "refining"
	StatusImagePrompt Status = "image_prompting"
	StatusSummarize   Status = "summarizing"
	StatusPainting    Status = "painting"
	StatusPersisting  Status = "persisting"
)

// Stage is one discrete unit of pipeline work.
type Stage struct {
	Name     string
	Status   Status
	Needs    []string
	Provides []string
	Run      func(ctx context.Context, state *types.PipelineState) error
}

// Pipeline is an ordered, validated list of stages.
type Pipeline struct {
	stages      []Stage
	status      Status
	failedStage string
}

// New validates the stage chain: every field name must be known, every input
// must be produced by an earlier stage, and no field may be produced twice.
func New(stages []Stage) (*Pipeline, error) {
	provided := map[string]string{}
	for _, st := range stages {
		if st.Name == "" || st.Run == nil {
			return nil, fmt.Errorf("stage %q must have a name and a run function", st.Name)
		}
		for _, need := range st.Needs {
			if _, ok := fieldSet[need]; !ok {
				return nil, fmt.Errorf("stage %s needs unknown field %q", st.Name, need)
			}
			if _, ok := provided[need]; !ok {
				return nil, fmt.Errorf("stage %s needs %q, which no earlier stage provides", st.Name, need)
			}
		}
		for _, out := range st.Provides {
			if _, ok := fieldSet[out]; !ok {
				return nil, fmt.Errorf("stage %s provides unknown field %q", st.Name, out)
			}
			if prev, dup := provided[out]; dup {
				return nil, fmt.Errorf("stage %s provides %q already provided by %s", st.Name, out, prev)
			}
			provided[out] = st.Name
		}
	}
	return &Pipeline{stages: stages, status: StatusInit}, nil
}

// Status returns the pipeline's current status.
func (p *Pipeline) Status() Status {
	return p.status
}

// FailedStage names the stage a failed run stopped at, or "".
func (p *Pipeline) FailedStage() string {
	return p.failedStage
}

// Run executes the stages sequentially against state. The first failure
// aborts the rest and is returned wrapped with the failing stage's name.
func (p *Pipeline) Run(ctx context.Context, state *types.PipelineState) error {
	log := logger.New().WithRun(state.RunID)

	for _, st := range p.stages {
		for _, need := range st.Needs {
			if !fieldSet[need](state) {
				p.fail(st.Name)
				return fmt.Errorf("stage %s: input field %q not populated", st.Name, need)
			}
		}

		p.status = st.Status
		stageLog := log.WithField("stage", st.Name)
		stageLog.Info("stage starting")
		start := time.Now()

		if err := st.Run(ctx, state); err != nil {
			p.fail(st.Name)
			stageLog.WithFields(logrus.Fields{
				"duration_ms": time.Since(start).Milliseconds(),
				"error":       err.Error(),
			}).Warn("stage failed")
			return fmt.Errorf("stage %s: %w", st.Name, err)
		}

		for _, out := range st.Provides {
			if !fieldSet[out](state) {
				p.fail(st.Name)
				return fmt.Errorf("stage %s: declared output %q not populated", st.Name, out)
			}
		}
		stageLog.WithField("duration_ms", time.Since(start).Milliseconds()).Info("stage complete")
	}

	p.status = StatusDone
	return nil
}

func (p *Pipeline) fail(stage string) {
	p.status = StatusFailed
	p.failedStage = stage
}
