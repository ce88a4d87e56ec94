// report.go
package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"github.com/jordan-wright/email"

	"sharkwatch/src/config"
)

// SendReport mails the analysis summary with the rendered charts attached.
// Attachments that do not exist are skipped rather than failing the send.
func SendReport(cfg *config.Config, subject, body string, attachments []string) error {
	from := cfg.SendEmail.Username

	e := email.NewEmail()
	e.From = fmt.Sprintf("sharkwatch <%s>", from)
	e.To = cfg.SendEmail.To
	e.Subject = subject
	e.Text = []byte(body)

	for _, path := range attachments {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, err := e.AttachFile(path); err != nil {
			return fmt.Errorf("attach %s: %w", path, err)
		}
	}

	smtpAddr := cfg.SendEmail.Server
	if !strings.Contains(smtpAddr, ":") {
		smtpAddr += ":465" // default SSL port
	}
	host := strings.Split(smtpAddr, ":")[0]

	if err := e.SendWithTLS(
		smtpAddr,
		smtp.PlainAuth("", from, cfg.SendEmail.Password, host),
		&tls.Config{ServerName: host},
	); err != nil {
		return fmt.Errorf("send report via %s: %w", smtpAddr, err)
	}
	return nil
}
