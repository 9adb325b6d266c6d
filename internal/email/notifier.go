package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/praxisops/dienstplan-api/pkg/logger"
)

// Notifier delivers swap decision mail to the affected members. Delivery is
// best effort everywhere it is called: a failed mail never rolls back the
// decision it announces.
type Notifier interface {
	SendSwapDecision(to, recipientName string, approved bool, shiftDate string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether enough SMTP settings are present to send at all.
func (c Config) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type smtpNotifier struct {
	dialer *gomail.Dialer
	from   string
	logger *logger.Logger
}

// NewNotifier returns an SMTP-backed notifier, or a no-op one when SMTP is
// not configured.
func NewNotifier(cfg Config, log *logger.Logger) Notifier {
	if !cfg.Enabled() {
		log.Info("SMTP not configured, swap notifications disabled")
		return &nopNotifier{}
	}
	return &smtpNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: log,
	}
}

func (n *smtpNotifier) SendSwapDecision(to, recipientName string, approved bool, shiftDate string) error {
	decision := "abgelehnt"
	if approved {
		decision = "genehmigt"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Diensttausch %s", decision))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hallo %s,\n\nIhre Tauschanfrage für den %s wurde %s.\n\nIhr Dienstplan",
		recipientName, shiftDate, decision,
	))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send swap decision mail: %w", err)
	}
	return nil
}

type nopNotifier struct{}

func (n *nopNotifier) SendSwapDecision(string, string, bool, string) error { return nil }
