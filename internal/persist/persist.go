package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"echosynth-go/internal/logger"
	"echosynth-go/internal/types"
)

// Writer persists the aggregate pipeline result to disk.
type Writer struct {
	resultsPath string
	reportXLSX  string // optional, empty disables the report
}

func NewWriter(resultsPath, reportXLSX string) *Writer {
	return &Writer{resultsPath: resultsPath, reportXLSX: reportXLSX}
}

// Persist serializes the user-facing fields of state into a versioned JSON
// record and writes it atomically. If a report path is configured, an XLSX
// run report is written alongside. Returns the results file path and the
// record it wrote.
func (w *Writer) Persist(state *types.PipelineState) (string, types.Result, error) {
	log := logger.New().WithField("module", "persist").WithField("results_path", w.resultsPath)

	res := types.Result{
		SchemaVersion: types.SchemaVersion,
		RunID:         state.RunID,
		AudioFile:     state.AudioFilePath,
		Transcript:    state.TranscribedText,
		Speech:        state.SpeechText,
		Summary:       state.SummaryText,
		ImageFile:     state.ImageFile,
		CreatedAt:     time.Now().UTC(),
		DurationMs:    time.Since(state.StartedAt).Milliseconds(),
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", types.Result{}, fmt.Errorf("marshal result: %v: %w", err, types.ErrWriteError)
	}
	if err := writeAtomic(w.resultsPath, data); err != nil {
		return "", types.Result{}, err
	}
	log.WithField("bytes", len(data)).Info("results written")

	if w.reportXLSX != "" {
		if err := writeReport(w.reportXLSX, res); err != nil {
			return "", types.Result{}, err
		}
		log.WithField("report_path", w.reportXLSX).Info("xlsx report written")
	}
	return w.resultsPath, res, nil
}

// writeAtomic writes data via a uniquely named temp file in the target
// directory and renames it into place, so readers never see a partial file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %v: %w", dir, err, types.ErrWriteError)
	}
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.New().String()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %v: %w", tmp, err, types.ErrWriteError)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %v: %w", path, err, types.ErrWriteError)
	}
	return nil
}

// writeReport exports the run as a one-row XLSX sheet for spreadsheet review.
func writeReport(path string, res types.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"run_id", "audio_file", "transcript", "speech", "summary", "image_file", "created_at", "duration_ms"}
	row := []interface{}{res.RunID, res.AudioFile, res.Transcript, res.Speech, res.Summary, res.ImageFile, res.CreatedAt.Format(time.RFC3339), res.DurationMs}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("report header: %v: %w", err, types.ErrWriteError)
	}
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		return fmt.Errorf("report row: %v: %w", err, types.ErrWriteError)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %v: %w", filepath.Dir(path), err, types.ErrWriteError)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %v: %w", path, err, types.ErrWriteError)
	}
	return nil
}
