package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
)

// Config is built once at startup from the environment and read-only after
// that. Every stage gets what it needs from here instead of reaching into
// os.Getenv at run time.
type Config struct {
	APIKey    string
	AudioPath string
	DataDir   string

	ResultsPath string
	ReportXLSX  string

	TranscribeModel string
	ChatModel       string
	ImageModel      string
	ImageSize       string
	Temperature     float32

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	EmailFrom string
	EmailTo   string
}

// Load builds the Config from the current environment.
func Load() (Config, error) {
	cfg := Config{
		APIKey:          os.Getenv("OPENAI_API_KEY"),
		AudioPath:       os.Getenv("AUDIO_FILE_PATH"),
		DataDir:         envOr("DATA_DIR", "data"),
		ReportXLSX:      os.Getenv("REPORT_XLSX"),
		TranscribeModel: envOr("TRANSCRIBE_MODEL", "whisper-1"),
		ChatModel:       envOr("CHAT_MODEL", "gpt-4o"),
		ImageModel:      envOr("IMAGE_MODEL", "dall-e-3"),
		ImageSize:       envOr("IMAGE_SIZE", "1024x1024"),
		Temperature:     0.7,
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        587,
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPass:        os.Getenv("SMTP_PASS"),
		EmailFrom:       os.Getenv("EMAIL_FROM"),
		EmailTo:         os.Getenv("EMAIL_TO"),
	}
	if cfg.APIKey == "" {
		return Config{}, errors.New("OPENAI_API_KEY not set")
	}
	if t := os.Getenv("CHAT_TEMPERATURE"); t != "" {
		f, err := strconv.ParseFloat(t, 32)
		if err != nil {
			return Config{}, errors.New("invalid CHAT_TEMPERATURE: " + t)
		}
		cfg.Temperature = float32(f)
	}
	if p := os.Getenv("SMTP_PORT"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Config{}, errors.New("invalid SMTP_PORT: " + p)
		}
		cfg.SMTPPort = n
	}
	cfg.ResultsPath = envOr("RESULTS_FILE", filepath.Join(cfg.DataDir, "results.json"))
	return cfg, nil
}

// EmailEnabled reports whether the optional email dispatch is configured.
func (c Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.EmailFrom != "" && c.EmailTo != ""
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
