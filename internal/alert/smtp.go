// Package alert implements arbscan.Alerter over SMTP. No third-party
// SMTP client appears anywhere in this module's retrieval pack, so this
// is built directly on the standard library's net/smtp.
package alert

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"arbscan"
)

// SMTPAlerter delivers plain-text alert emails. Construction is cheap;
// one instance is built at startup and reused — net/smtp dials fresh
// per Send, matching the best-effort, low-volume nature of alerts (a
// pooled connection would buy nothing at one alert per cooldown miss).
type SMTPAlerter struct {
	host     string
	port     string
	username string
	password string
	from     string
	to       []string
}

// NewSMTPAlerter builds an SMTPAlerter. host/port/username/password
// configure the SMTP relay; from is the envelope sender; to is the
// recipient list.
func NewSMTPAlerter(host, port, username, password, from string, to []string) *SMTPAlerter {
	return &SMTPAlerter{host: host, port: port, username: username, password: password, from: from, to: to}
}

// Send implements arbscan.Alerter. A delivery failure here must never
// affect the Sink write or the scan loop; callers are expected to log
// the returned error and continue.
func (a *SMTPAlerter) Send(ctx context.Context, opportunity arbscan.Opportunity) error {
	if len(a.to) == 0 {
		return nil
	}

	message := a.buildMessage(opportunity)

	var auth smtp.Auth
	if a.username != "" {
		auth = smtp.PlainAuth("", a.username, a.password, a.host)
	}

	addr := fmt.Sprintf("%s:%s", a.host, a.port)
	if err := smtp.SendMail(addr, auth, a.from, a.to, []byte(message)); err != nil {
		return fmt.Errorf("send alert email: %w", err)
	}
	return nil
}

func (a *SMTPAlerter) buildMessage(opportunity arbscan.Opportunity) string {
	subject := fmt.Sprintf("arbscan: %s %s net $%.2f", opportunity.Pair, opportunity.Route, opportunity.NetUSD)
	body := arbscan.FormatAlert(opportunity)

	msg := strings.Builder{}
	msg.WriteString(fmt.Sprintf("From: %s\r\n", a.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(a.to, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return msg.String()
}
