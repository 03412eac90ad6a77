package email

import (
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/marceelkacz03/lola-crm/config"
	"github.com/marceelkacz03/lola-crm/internal/model"
)

// DigestSender mails the morning follow-up digest to the sales team.
type DigestSender struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewDigestSender(cfg config.SMTPConfig) *DigestSender {
	return &DigestSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		to:     cfg.Digest,
	}
}

func (s *DigestSender) Send(followups *model.DailyFollowups, alerts *model.SalesAlerts) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", s.to)
	msg.SetHeader("Subject", fmt.Sprintf("Daily sales digest: %d follow-ups, %d alerts",
		len(followups.Deals)+len(followups.Activities),
		len(alerts.OverdueFollowups)+len(alerts.InactiveDeals)+len(alerts.MissingFollowups)))
	msg.SetBody("text/plain", buildBody(followups, alerts))

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}
	return nil
}

func buildBody(followups *model.DailyFollowups, alerts *model.SalesAlerts) string {
	var b strings.Builder

	b.WriteString("Follow-ups due today\n")
	b.WriteString("--------------------\n")
	if len(followups.Deals) == 0 && len(followups.Activities) == 0 {
		b.WriteString("None.\n")
	}
	for _, deal := range followups.Deals {
		fmt.Fprintf(&b, "- Deal for %s (%s)\n", deal.AccountName, deal.Status)
	}
	for _, activity := range followups.Activities {
		fmt.Fprintf(&b, "- %s follow-up for %s\n", activity.Type, activity.AccountName)
	}

	b.WriteString("\nAlerts\n")
	b.WriteString("------\n")
	for _, alert := range alerts.OverdueFollowups {
		fmt.Fprintf(&b, "- Overdue follow-up: %s (%s)\n", alert.AccountName, alert.Status)
	}
	for _, alert := range alerts.InactiveDeals {
		fmt.Fprintf(&b, "- No activity since %s: %s\n", alert.LastActivityAt.Format("2006-01-02"), alert.AccountName)
	}
	for _, alert := range alerts.MissingFollowups {
		fmt.Fprintf(&b, "- No follow-up scheduled: %s (%s)\n", alert.AccountName, alert.Status)
	}
	if len(alerts.OverdueFollowups)+len(alerts.InactiveDeals)+len(alerts.MissingFollowups) == 0 {
		b.WriteString("None.\n")
	}

	return b.String()
}
