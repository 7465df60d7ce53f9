package email

import (
	"fmt"
	"path/filepath"

	gomail "gopkg.in/gomail.v2"

	"echosynth-go/internal/logger"
	"echosynth-go/internal/types"
)

// Sender dispatches a pipeline result by email over SMTP.
type Sender struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewSender(host string, port int, user, pass, from, to string) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
		to:     to,
	}
}

// Send emails the result payload. The generated image is attached when the
// file still exists.
func (s *Sender) Send(res types.Result) error {
	log := logger.New().WithField("module", "email").WithField("to", s.to)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", Subject(res))
	m.SetBody("text/plain", Body(res))
	if res.ImageFile != "" {
		m.Attach(res.ImageFile)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send to %s: %v: %w", s.to, err, types.ErrDeliveryError)
	}
	log.Info("results emailed")
	return nil
}

// Subject builds the message subject for a result.
func Subject(res types.Result) string {
	return "EchoSynth results: " + filepath.Base(res.AudioFile)
}

// Body renders the result payload as a plain-text message.
func Body(res types.Result) string {
	return fmt.Sprintf(
		"Audio: %s\nRun: %s\n\n--- Speech ---\n%s\n\n--- Summary ---\n%s\n\n--- Transcript ---\n%s\n\nImage saved at: %s\n",
		res.AudioFile, res.RunID, res.Speech, res.Summary, res.Transcript, res.ImageFile,
	)
}
