package email

import (
	"strings"
	"testing"

	"echosynth-go/internal/types"
)

func TestSubject(t *testing.T) {
	res := types.Result{AudioFile: "/data/sample.mp3"}
	got := Subject(res)
	if !strings.Contains(got, "sample.mp3") {
		t.Errorf("Subject() = %q, want audio file name included", got)
	}
	if strings.Contains(got, "/data/") {
		t.Errorf("Subject() = %q, should not leak the full path", got)
	}
}

func TestBodyContainsAllFields(t *testing.T) {
	res := types.Result{
		RunID:      "run-9",
		AudioFile:  "/data/sample.mp3",
		Transcript: "hello world",
		Speech:     "Hello, everyone.",
		Summary:    "A greeting.",
		ImageFile:  "/data/sample_image.png",
	}
	body := Body(res)
	for _, want := range []string{res.RunID, res.AudioFile, res.Transcript, res.Speech, res.Summary, res.ImageFile} {
		if !strings.Contains(body, want) {
			t.Errorf("Body() missing %q", want)
		}
	}
}

func TestNewSender(t *testing.T) {
	s := NewSender("smtp.example.com", 587, "user", "pass", "from@example.com", "to@example.com")
	if s.from != "from@example.com" || s.to != "to@example.com" {
		t.Errorf("sender addresses = %q -> %q", s.from, s.to)
	}
	if s.dialer == nil {
		t.Fatal("dialer not configured")
	}
}
