package types

import "time"

// PipelineState is the single record threaded through every stage. Each field
// is written once by exactly one stage and read by later stages.
type PipelineState struct {
	RunID           string    `json:"run_id"`
	StartedAt       time.Time `json:"-"`
	AudioFilePath   string    `json:"audio_file_path"`
	TranscribedText string    `json:"transcribed_text,omitempty"`
	SpeechText      string    `json:"speech_text,omitempty"`
	ImagePromptText string    `json:"image_prompt_text,omitempty"`
	SummaryText     string    `json:"summary_text,omitempty"`
	ImageFile       string    `json:"image_file,omitempty"`
	ResultsJSON     string    `json:"results_json,omitempty"`
	EmailSent       bool      `json:"email_sent,omitempty"`
}

// Result is the persisted artifact written at the end of a successful run.
type Result struct {
	SchemaVersion string    `json:"schema_version"`
	RunID         string    `json:"run_id"`
	AudioFile     string    `json:"audio_file"`
	Transcript    string    `json:"transcript"`
	Speech        string    `json:"speech"`
	Summary       string    `json:"summary"`
	ImageFile     string    `json:"image_file"`
	CreatedAt     time.Time `json:"created_at"`
	DurationMs    int64     `json:"duration_ms"`
}

// SchemaVersion identifies the results.json layout.
const SchemaVersion = "1"
